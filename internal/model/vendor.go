package model

import "time"

// Vendor is the vendor master record. VendorCode holds the NIB for
// self-registered vendors.
type Vendor struct {
	VendorID       int        `gorm:"column:vendor_id;primaryKey;autoIncrement"`
	Name           string     `gorm:"column:name;not null"`
	Email          string     `gorm:"column:email;not null"`
	CountryCode    *string    `gorm:"column:country_code"`
	PostalCode     *string    `gorm:"column:postal_code"`
	Address        *string    `gorm:"column:address"`
	VendorCode     string     `gorm:"column:vendor_code;not null"`
	PhoneNo        *string    `gorm:"column:phone_no"`
	VendorType     *string    `gorm:"column:vendor_type"`
	EmailPO        *string    `gorm:"column:email_po"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	CreatedBy      *string    `gorm:"column:created_by"`
	UpdatedAt      *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
	LastModifiedBy *string    `gorm:"column:last_modified_by"`
	IsDeleted      Flag       `gorm:"column:is_deleted;type:smallint;not null"`
	Password       string     `gorm:"column:password;not null"`
}

func (Vendor) TableName() string { return "ms_vendor" }

// RegisterVendor is a vendor portal account created by self-registration.
// It always points at the ms_vendor row created in the same transaction.
type RegisterVendor struct {
	ID             int       `gorm:"column:id;primaryKey;autoIncrement"`
	CompanyName    string    `gorm:"column:company_name;not null"`
	Email          string    `gorm:"column:email;not null"`
	Password       string    `gorm:"column:password;not null"`
	Telephone      *string   `gorm:"column:telephone"`
	Address        *string   `gorm:"column:address"`
	NIB            string    `gorm:"column:nib;not null"`
	VendorCategory *string   `gorm:"column:vendor_category"`
	Referral       *string   `gorm:"column:referral"`
	CompanyAffID   *int      `gorm:"column:company_aff_id"`
	VendorID       *int      `gorm:"column:vendor_id"`
	CreatedAt      time.Time `gorm:"column:created_at"`

	Vendor *Vendor      `gorm:"foreignKey:VendorID;references:VendorID"`
	Kblis  []KbliDetail `gorm:"foreignKey:RegisterVendorID"`
}

func (RegisterVendor) TableName() string { return "register_vendor" }
