package model

import (
	"fmt"
	"time"
)

// Rfq is a request for quotation. Number is empty only between the insert
// and the number update inside the creation transaction.
type Rfq struct {
	RfqID         int            `gorm:"column:rfq_id;primaryKey;autoIncrement"`
	UserID        *int           `gorm:"column:user_id"`
	Category      RfqCategory    `gorm:"column:rfq_category;type:varchar(20);not null"`
	Type          RfqType        `gorm:"column:rfq_type;type:varchar(20);not null"`
	Number        string         `gorm:"column:rfq_number;not null"`
	Title         string         `gorm:"column:rfq_title;not null"`
	Specification string         `gorm:"column:rfq_specification"`
	DueDate       time.Time      `gorm:"column:rfq_duedate;not null"`
	IsActive      Flag           `gorm:"column:is_active;type:smallint;not null"`
	IsRelease     Flag           `gorm:"column:is_release;type:smallint;not null"`
	ReleaseBy     string         `gorm:"column:release_by"`
	ReleaseByName string         `gorm:"column:release_by_name"`
	ReleaseAt     *time.Time     `gorm:"column:release_at"`
	IsLocked      Flag           `gorm:"column:is_locked;type:smallint;not null"`
	IsDeleted     Flag           `gorm:"column:is_deleted;type:smallint;not null"`
	Status        int            `gorm:"column:status;not null"`
	CreatedBy     string         `gorm:"column:created_by"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedBy     string         `gorm:"column:updated_by"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime:false"`
	ApprovedAt    *time.Time     `gorm:"column:approved_at"`
	ApprovedBy    *string        `gorm:"column:approved_by"`
	IsApproved    ApprovalStatus `gorm:"column:is_approved;type:varchar(20)"`

	User     *User        `gorm:"foreignKey:UserID;references:UserID"`
	Details  []RfqDetail  `gorm:"foreignKey:RfqID;references:RfqID"`
	Files    []RfqFile    `gorm:"foreignKey:RfqID;references:RfqID"`
	Pictures []RfqPicture `gorm:"foreignKey:RfqID;references:RfqID"`
	Vendors  []RfqVendor  `gorm:"foreignKey:RfqID;references:RfqID"`
}

func (Rfq) TableName() string { return "trs_rfq" }

// RfqNumber formats the business number RFQ-UTE-{VM|SD}/{DD}{MM}/{id}/{G|I}.
// Day and month are read from at in its own location.
func RfqNumber(category RfqCategory, typ RfqType, at time.Time, id int) string {
	return fmt.Sprintf("RFQ-UTE-%s/%02d%02d/%d/%s",
		category.Code(), at.Day(), int(at.Month()), id, typ.Code())
}

// RfqDetail is one requested line of an RFQ.
type RfqDetail struct {
	ID             int        `gorm:"column:id;primaryKey;autoIncrement"`
	RfqID          int        `gorm:"column:rfq_id;not null;index"`
	PRNumber       string     `gorm:"column:pr_number"`
	PRItem         string     `gorm:"column:pr_item"`
	PartNumber     string     `gorm:"column:part_number"`
	Description    string     `gorm:"column:description"`
	PRQty          float64    `gorm:"column:pr_qty"`
	PRUom          string     `gorm:"column:pr_uom"`
	MatGroup       string     `gorm:"column:matgroup"`
	Status         LineStatus `gorm:"column:status;not null"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	LastModifiedAt *time.Time `gorm:"column:last_modified_at"`
	LastModifiedBy string     `gorm:"column:last_modified_by"`
	IsDeleted      Flag       `gorm:"column:is_deleted;type:smallint;not null"`
	SourceType     SourceType `gorm:"column:source_type;type:varchar(20);not null"`

	Rfq *Rfq `gorm:"foreignKey:RfqID;references:RfqID"`
}

func (RfqDetail) TableName() string { return "trs_rfq_detail" }

// RfqVendor is an invitation of a vendor to an invitation-type RFQ.
type RfqVendor struct {
	ID             int        `gorm:"column:id;primaryKey;autoIncrement"`
	RfqID          int        `gorm:"column:rfq_id;not null;index"`
	VendorID       int        `gorm:"column:vendor_id;not null"`
	Status         LineStatus `gorm:"column:status;not null"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	LastModifiedAt *time.Time `gorm:"column:last_modified_at"`
	LastModifiedBy string     `gorm:"column:last_modified_by"`
	IsDeleted      Flag       `gorm:"column:is_deleted;type:smallint;not null"`

	Vendor *Vendor `gorm:"foreignKey:VendorID;references:VendorID"`
}

func (RfqVendor) TableName() string { return "trs_rfq_vendor" }

// Attachment is the column set shared by RFQ files and pictures.
// Source holds the raw uploaded bytes.
type Attachment struct {
	ID        int        `gorm:"column:id;primaryKey;autoIncrement"`
	RfqID     int        `gorm:"column:rfq_id;not null;index"`
	Filename  string     `gorm:"column:filename;not null"`
	Source    []byte     `gorm:"column:source;type:bytea"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	CreatedBy string     `gorm:"column:created_by"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
	UpdatedBy string     `gorm:"column:updated_by"`
	IsDeleted Flag       `gorm:"column:is_deleted;type:smallint;not null"`
}

type RfqFile struct {
	Attachment
}

func (RfqFile) TableName() string { return "trs_rfq_file" }

type RfqPicture struct {
	Attachment
}

func (RfqPicture) TableName() string { return "trs_rfq_picture" }
