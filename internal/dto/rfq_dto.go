package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreateRfqForm is the multipart form of POST /api/rfq. Details and Vendor are
// JSON-encoded arrays; parsing happens in the service so that a malformed
// payload is rejected before any write.
type CreateRfqForm struct {
	UserID        string `form:"user_id"`
	Category      string `form:"rfq_category"`
	Type          string `form:"rfq_type"`
	Title         string `form:"rfq_title"`
	Specification string `form:"rfq_specification"`
	DueDate       string `form:"rfq_duedate"`
	IsActive      string `form:"is_active"`
	IsRelease     string `form:"is_release"`
	ReleaseBy     string `form:"release_by"`
	ReleaseByName string `form:"release_by_name"`
	ReleaseAt     string `form:"release_at"`
	IsLocked      string `form:"is_locked"`
	Status        string `form:"status"`
	Details       string `form:"details"`
	Vendor        string `form:"vendor"`
}

// FileUpload is an uploaded file read fully into memory.
type FileUpload struct {
	Filename string
	Data     []byte
}

// RfqLineInput is one RFQ line as sent by the portal. PartNumber and PRQty
// arrive as either strings or numbers and are coerced by the service.
type RfqLineInput struct {
	PRNumber    string `json:"pr_number"`
	PRItem      string `json:"pr_item"`
	PartNumber  any    `json:"part_number"`
	Description string `json:"description"`
	PRQty       any    `json:"pr_qty"`
	PRUom       string `json:"pr_uom"`
	MatGroup    string `json:"matgroup"`
	SourceType  string `json:"source_type"`
	Status      *int   `json:"status"`
}

type UpdateRfqRequest struct {
	DueDate string `json:"rfq_duedate" validate:"required"`
}

type RfqVendorRequest struct {
	VendorID int  `json:"vendor_id" validate:"required,min=1"`
	Status   *int `json:"status"`
}

type UpdateRfqVendorRequest struct {
	Status *int `json:"status" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RfqDetailResponse struct {
	ID             int        `json:"id"`
	RfqID          int        `json:"rfq_id"`
	PRNumber       string     `json:"pr_number"`
	PRItem         string     `json:"pr_item"`
	PartNumber     string     `json:"part_number"`
	Description    string     `json:"description"`
	PRQty          float64    `json:"pr_qty"`
	PRUom          string     `json:"pr_uom"`
	MatGroup       string     `json:"matgroup"`
	Status         int        `json:"status"`
	SourceType     string     `json:"source_type"`
	CreatedAt      time.Time  `json:"created_at"`
	LastModifiedAt *time.Time `json:"last_modified_at"`
	LastModifiedBy string     `json:"last_modified_by"`
	IsDeleted      bool       `json:"is_deleted"`
}

// AttachmentResponse describes a stored file or picture without its bytes.
type AttachmentResponse struct {
	ID        int        `json:"id"`
	RfqID     int        `json:"rfq_id"`
	Filename  string     `json:"filename"`
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy string     `json:"created_by"`
	UpdatedAt *time.Time `json:"updated_at"`
	UpdatedBy string     `json:"updated_by"`
	IsDeleted bool       `json:"is_deleted"`
}

type RfqVendorResponse struct {
	ID             int             `json:"id"`
	RfqID          int             `json:"rfq_id"`
	VendorID       int             `json:"vendor_id"`
	Status         int             `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	LastModifiedAt *time.Time      `json:"last_modified_at"`
	LastModifiedBy string          `json:"last_modified_by"`
	IsDeleted      bool            `json:"is_deleted"`
	Vendor         *VendorResponse `json:"vendor,omitempty"`
}

type RfqResponse struct {
	RfqID         int        `json:"rfq_id"`
	UserID        *int       `json:"user_id"`
	Category      string     `json:"rfq_category"`
	Type          string     `json:"rfq_type"`
	Number        string     `json:"rfq_number"`
	Title         string     `json:"rfq_title"`
	Specification string     `json:"rfq_specification"`
	DueDate       time.Time  `json:"rfq_duedate"`
	IsActive      bool       `json:"is_active"`
	IsRelease     bool       `json:"is_release"`
	ReleaseBy     string     `json:"release_by"`
	ReleaseByName string     `json:"release_by_name"`
	ReleaseAt     *time.Time `json:"release_at"`
	IsLocked      bool       `json:"is_locked"`
	IsDeleted     bool       `json:"is_deleted"`
	Status        int        `json:"status"`
	IsApproved    string     `json:"is_approved"`
	ApprovedAt    *time.Time `json:"approved_at"`
	ApprovedBy    *string    `json:"approved_by"`
	CreatedBy     string     `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedBy     string     `json:"updated_by"`
	UpdatedAt     time.Time  `json:"updated_at"`

	User     *UserResponse        `json:"user,omitempty"`
	Details  []RfqDetailResponse  `json:"details,omitempty"`
	Files    []AttachmentResponse `json:"files,omitempty"`
	Pictures []AttachmentResponse `json:"pictures,omitempty"`
	Vendors  []RfqVendorResponse  `json:"vendors,omitempty"`
}

// CreateRfqResponse is the created RFQ plus what was attached to it.
// Warnings lists non-fatal problems such as an unreadable vendor list.
type CreateRfqResponse struct {
	RfqResponse
	DetailCount   int      `json:"detail_count"`
	VendorCount   int      `json:"vendor_count"`
	HasPicture    bool     `json:"has_picture"`
	HasAttachment bool     `json:"has_attachment"`
	Warnings      []string `json:"warnings,omitempty"`
}

// RfqLineView is one line together with its parent RFQ summary.
type RfqLineView struct {
	RfqNumber        string               `json:"rfq_number"`
	RfqTitle         string               `json:"rfq_title"`
	RfqSpecification string               `json:"rfq_specification"`
	RfqDuedate       time.Time            `json:"rfq_duedate"`
	User             *UserResponse        `json:"user"`
	Details          []RfqDetailResponse  `json:"details"`
	Pictures         []AttachmentResponse `json:"pictures"`
	Files            []AttachmentResponse `json:"files"`
	PartNumber       string               `json:"part_number"`
	Description      string               `json:"description"`
	PRQty            float64              `json:"pr_qty"`
	PRUom            string               `json:"pr_uom"`
	MatGroup         string               `json:"matgroup"`
	SourceType       string               `json:"source_type"`
}

// Download is a binary payload for Content-Disposition: attachment responses.
type Download struct {
	Filename string
	Data     []byte
}
