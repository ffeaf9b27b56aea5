package repository

import (
	"context"
	"time"

	"github.com/embunadw/E-Procurement/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportRow is a submitted quotation joined with its line, RFQ and vendor.
// Missing relations come back as "-" and NULL amounts as 0.
type ReportRow struct {
	ID          int
	VendorID    int
	RfqNumber   string
	PartNumber  string
	PartName    string
	VendorName  string
	VendorEmail string
	Price       decimal.Decimal
	MOQ         decimal.Decimal `gorm:"column:moq"`
	ValidUntil  *time.Time
}

type QuotationRepository interface {
	FindPair(ctx context.Context, tx *gorm.DB, vendorID, rfqDetailID int) (*model.VendorQuotation, error)
	FindByID(ctx context.Context, id int) (*model.VendorQuotation, error)
	Create(ctx context.Context, tx *gorm.DB, q *model.VendorQuotation) error
	Update(ctx context.Context, tx *gorm.DB, q *model.VendorQuotation) error

	CountSubmitted(ctx context.Context) (int64, error)
	CountByVendor(ctx context.Context, vendorID int) (int64, error)
	// Report lists submitted quotations, optionally for one vendor only.
	Report(ctx context.Context, vendorID *int) ([]ReportRow, error)

	DB() *gorm.DB
}

type quotationRepo struct{ db *gorm.DB }

func NewQuotationRepository(db *gorm.DB) QuotationRepository { return &quotationRepo{db: db} }

func (r *quotationRepo) DB() *gorm.DB { return r.db }

// FindPair locks the row when called inside a transaction so concurrent
// submissions for the same pair serialise.
func (r *quotationRepo) FindPair(ctx context.Context, tx *gorm.DB, vendorID, rfqDetailID int) (*model.VendorQuotation, error) {
	var q model.VendorQuotation
	db := conn(tx, r.db).WithContext(ctx)
	if tx != nil {
		db = db.Clauses(forUpdate)
	}
	err := db.Where("vendor_id = ? AND rfq_detail_id = ?", vendorID, rfqDetailID).
		Order("id").
		First(&q).Error
	return &q, err
}

func (r *quotationRepo) FindByID(ctx context.Context, id int) (*model.VendorQuotation, error) {
	var q model.VendorQuotation
	err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error
	return &q, err
}

func (r *quotationRepo) Create(ctx context.Context, tx *gorm.DB, q *model.VendorQuotation) error {
	return conn(tx, r.db).WithContext(ctx).Omit("RfqDetail", "Vendor").Create(q).Error
}

func (r *quotationRepo) Update(ctx context.Context, tx *gorm.DB, q *model.VendorQuotation) error {
	return conn(tx, r.db).WithContext(ctx).Omit("RfqDetail", "Vendor").Save(q).Error
}

func (r *quotationRepo) CountSubmitted(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.VendorQuotation{}).
		Where("is_submitted = ?", model.FlagOn).Count(&n).Error
	return n, err
}

func (r *quotationRepo) CountByVendor(ctx context.Context, vendorID int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.VendorQuotation{}).
		Where("vendor_id = ?", vendorID).Count(&n).Error
	return n, err
}

func (r *quotationRepo) Report(ctx context.Context, vendorID *int) ([]ReportRow, error) {
	db := r.db.WithContext(ctx).
		Table("vendor_quotation q").
		Select(`q.id, q.vendor_id,
			COALESCE(r.rfq_number, '-') AS rfq_number,
			COALESCE(NULLIF(d.part_number, ''), '-') AS part_number,
			COALESCE(NULLIF(d.description, ''), '-') AS part_name,
			COALESCE(v.name, '-') AS vendor_name,
			COALESCE(v.email, '-') AS vendor_email,
			COALESCE(q.price, 0) AS price,
			COALESCE(q.moq, 0) AS moq,
			q.valid_until`).
		Joins("LEFT JOIN trs_rfq_detail d ON d.id = q.rfq_detail_id").
		Joins("LEFT JOIN trs_rfq r ON r.rfq_id = d.rfq_id").
		Joins("LEFT JOIN ms_vendor v ON v.vendor_id = q.vendor_id").
		Where("q.is_submitted = ?", model.FlagOn)
	if vendorID != nil {
		db = db.Where("q.vendor_id = ?", *vendorID)
	}
	var rows []ReportRow
	err := db.Order("q.id").Scan(&rows).Error
	return rows, err
}
