package repository

import (
	"context"

	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/model"

	"gorm.io/gorm"
)

var vendorList = listSpec{
	table:       "ms_vendor",
	searchCols:  []string{"vendor_code", "name", "email", "vendor_type", "country_code"},
	sortCols:    sortSet("vendor_id", "created_at", "vendor_code", "name", "email", "vendor_type", "country_code"),
	defaultSort: "vendor_id",
}

type VendorRepository interface {
	List(ctx context.Context, q dto.ListQuery) ([]model.Vendor, int64, error)
	FindByID(ctx context.Context, id int) (*model.Vendor, error)
	// FindByIDs returns the non-deleted vendors among ids.
	FindByIDs(ctx context.Context, ids []int) ([]model.Vendor, error)
	Create(ctx context.Context, tx *gorm.DB, v *model.Vendor) error
	Update(ctx context.Context, v *model.Vendor) error
	SoftDelete(ctx context.Context, id int) error
	CountActive(ctx context.Context) (int64, error)

	// Self-registration
	FindRegistrationByEmail(ctx context.Context, email string) (*model.RegisterVendor, error)
	RegistrationEmailTaken(ctx context.Context, email string) (bool, error)
	NIBTaken(ctx context.Context, nib string) (bool, error)
	CreateRegistration(ctx context.Context, tx *gorm.DB, rv *model.RegisterVendor) error
	CreateKbliDetails(ctx context.Context, tx *gorm.DB, details []model.KbliDetail) error

	DB() *gorm.DB
}

type vendorRepo struct{ db *gorm.DB }

func NewVendorRepository(db *gorm.DB) VendorRepository { return &vendorRepo{db: db} }

func (r *vendorRepo) DB() *gorm.DB { return r.db }

func (r *vendorRepo) List(ctx context.Context, q dto.ListQuery) ([]model.Vendor, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Vendor{}).Where("is_deleted = ?", model.FlagOff)
	return paginate[model.Vendor](base, vendorList, q)
}

func (r *vendorRepo) FindByID(ctx context.Context, id int) (*model.Vendor, error) {
	var v model.Vendor
	err := r.db.WithContext(ctx).First(&v, "vendor_id = ?", id).Error
	return &v, err
}

func (r *vendorRepo) FindByIDs(ctx context.Context, ids []int) ([]model.Vendor, error) {
	var vendors []model.Vendor
	if len(ids) == 0 {
		return vendors, nil
	}
	err := r.db.WithContext(ctx).
		Where("vendor_id IN ? AND is_deleted = ?", ids, model.FlagOff).
		Find(&vendors).Error
	return vendors, err
}

func (r *vendorRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Vendor) error {
	return conn(tx, r.db).WithContext(ctx).Create(v).Error
}

func (r *vendorRepo) Update(ctx context.Context, v *model.Vendor) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *vendorRepo) SoftDelete(ctx context.Context, id int) error {
	return setFlag(ctx, r.db, &model.Vendor{}, "vendor_id", id, "is_deleted", model.FlagOn)
}

func (r *vendorRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Vendor{}).Where("is_deleted = ?", model.FlagOff).Count(&n).Error
	return n, err
}

func (r *vendorRepo) FindRegistrationByEmail(ctx context.Context, email string) (*model.RegisterVendor, error) {
	var rv model.RegisterVendor
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&rv).Error
	return &rv, err
}

func (r *vendorRepo) RegistrationEmailTaken(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RegisterVendor{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

func (r *vendorRepo) NIBTaken(ctx context.Context, nib string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RegisterVendor{}).Where("nib = ?", nib).Count(&n).Error
	return n > 0, err
}

func (r *vendorRepo) CreateRegistration(ctx context.Context, tx *gorm.DB, rv *model.RegisterVendor) error {
	return conn(tx, r.db).WithContext(ctx).Omit("Vendor", "Kblis").Create(rv).Error
}

func (r *vendorRepo) CreateKbliDetails(ctx context.Context, tx *gorm.DB, details []model.KbliDetail) error {
	if len(details) == 0 {
		return nil
	}
	return conn(tx, r.db).WithContext(ctx).Omit("Kbli").Create(&details).Error
}
