package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// QuotationForm is the multipart form shared by submit and update.
// Quotations is a JSON array of QuotationEntry.
type QuotationForm struct {
	VendorID   string `form:"vendor_id"`
	Quotations string `form:"quotations"`
	ValidUntil string `form:"valid_until"`
}

type QuotationEntry struct {
	RfqDetailID any `json:"rfq_detail_id"`
	Price       any `json:"price"`
	MOQ         any `json:"moq"`
}

// QuotationBatch is the parsed form ready for the service.
type QuotationBatch struct {
	VendorID   int
	ValidUntil *time.Time
	Lines      []QuotationLine
	Attachment *FileUpload
}

type QuotationLine struct {
	RfqDetailID int
	Price       decimal.Decimal
	MOQ         decimal.Decimal
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type QuotationBatchResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// WorklistItem is one quotable RFQ represented by its lowest open line.
type WorklistItem struct {
	RfqID       int       `json:"rfq_id"`
	RfqDetailID int       `json:"rfq_detail_id"`
	RfqTitle    string    `json:"rfq_title"`
	RfqNumber   string    `json:"rfq_number"`
	RfqDuedate  time.Time `json:"rfq_duedate"`
	RfqType     string    `json:"rfq_type"`
	IsSubmitted bool      `json:"is_submitted"`
}

type QuotationResponse struct {
	ID            int             `json:"id"`
	RfqDetailID   int             `json:"rfq_detail_id"`
	VendorID      int             `json:"vendor_id"`
	Price         decimal.Decimal `json:"price"`
	MOQ           decimal.Decimal `json:"moq"`
	ValidUntil    *time.Time      `json:"valid_until"`
	IsSubmitted   bool            `json:"is_submitted"`
	HasAttachment bool            `json:"has_attachment"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ─── Dashboard / reports ─────────────────────────────────────────────────────

type DashboardSummary struct {
	TotalVendors      int64 `json:"totalVendors"`
	TotalRFQs         int64 `json:"totalRFQs"`
	TotalVendorInputs int64 `json:"totalVendorInputs"`
}

type VendorDashboardSummary struct {
	TotalVendorInputs int64 `json:"totalVendorInputs"`
}

// ReportRow is one submitted quotation flattened for reporting.
// Text fields default to "-" and numbers to 0 when the relation is missing.
type ReportRow struct {
	ID          int             `json:"id"`
	RfqNumber   string          `json:"rfq_number"`
	PartNumber  string          `json:"part_number"`
	PartName    string          `json:"part_name"`
	VendorName  string          `json:"vendor_name"`
	VendorEmail string          `json:"vendor_email"`
	Price       decimal.Decimal `json:"price"`
	MOQ         decimal.Decimal `json:"moq"`
	ValidUntil  *time.Time      `json:"valid_until"`
}

type VendorReportRow struct {
	Number     int             `json:"number"`
	PartNumber string          `json:"part_number"`
	PartName   string          `json:"part_name"`
	Price      decimal.Decimal `json:"price"`
	MOQ        decimal.Decimal `json:"moq"`
	ValidUntil *time.Time      `json:"valid_until"`
}
