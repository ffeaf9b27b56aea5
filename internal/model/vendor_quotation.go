package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// VendorQuotation is a vendor's price for one RFQ line. (VendorID, RfqDetailID)
// identifies at most one row; writes look it up before inserting.
type VendorQuotation struct {
	ID          int             `gorm:"column:id;primaryKey;autoIncrement"`
	RfqDetailID int             `gorm:"column:rfq_detail_id;not null;uniqueIndex:idx_quotation_pair"`
	VendorID    int             `gorm:"column:vendor_id;not null;uniqueIndex:idx_quotation_pair"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(18,2);not null"`
	MOQ         decimal.Decimal `gorm:"column:moq;type:numeric(18,2);not null"`
	ValidUntil  *time.Time      `gorm:"column:valid_until"`
	Attachment  []byte          `gorm:"column:attachment;type:bytea"`
	IsSubmitted Flag            `gorm:"column:is_submitted;type:smallint;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime:false"`

	RfqDetail *RfqDetail `gorm:"foreignKey:RfqDetailID;references:ID"`
	Vendor    *Vendor    `gorm:"foreignKey:VendorID;references:VendorID"`
}

func (VendorQuotation) TableName() string { return "vendor_quotation" }
