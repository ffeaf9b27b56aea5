package model

import "time"

// Kbli is an Indonesian standard industrial classification code.
// Disabled rows (Enable = 0) are treated as deleted.
type Kbli struct {
	ID          int       `gorm:"column:id;primaryKey;autoIncrement"`
	Year        string    `gorm:"column:year;not null"`
	Code        string    `gorm:"column:code;not null"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description;not null"`
	Enable      Flag      `gorm:"column:enable;type:smallint;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Kbli) TableName() string { return "ms_kbli" }

// KbliDetail links a vendor registration to one of its KBLI codes.
type KbliDetail struct {
	ID               int `gorm:"column:id;primaryKey;autoIncrement"`
	KbliID           int `gorm:"column:kbli_id;not null"`
	RegisterVendorID int `gorm:"column:register_vendor_id;not null"`

	Kbli *Kbli `gorm:"foreignKey:KbliID"`
}

func (KbliDetail) TableName() string { return "ms_kbli_detail" }
