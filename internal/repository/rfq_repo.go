package repository

import (
	"context"
	"errors"
	"time"

	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/model"

	"gorm.io/gorm"
)

// ErrApprovalConflict is returned by SetApproval when the row is already in
// the opposite terminal state.
var ErrApprovalConflict = errors.New("rfq already in a different terminal approval state")

var rfqList = listSpec{
	table:       "trs_rfq",
	searchCols:  []string{"rfq_number", "rfq_title"},
	sortCols:    sortSet("rfq_number", "rfq_title", "rfq_type", "is_approved", "rfq_id"),
	defaultSort: "rfq_id",
}

// attachment columns without the bytes
const attachmentMeta = "id, rfq_id, filename, created_at, created_by, updated_at, updated_by, is_deleted"

// WorklistRow is one quotable RFQ for a vendor, represented by its lowest open line.
type WorklistRow struct {
	RfqID       int
	RfqDetailID int
	RfqTitle    string
	RfqNumber   string
	RfqDuedate  time.Time
	RfqType     string
	IsSubmitted model.Flag
}

// ReminderRow is one invited vendor of an RFQ that is about to close.
type ReminderRow struct {
	RfqID       int
	RfqNumber   string
	RfqTitle    string
	RfqDuedate  time.Time
	VendorID    int
	VendorName  string
	VendorEmail string
}

type RfqRepository interface {
	// Creation, always inside the caller's transaction.
	Create(ctx context.Context, tx *gorm.DB, r *model.Rfq) error
	UpdateNumber(ctx context.Context, tx *gorm.DB, id int, number string) error
	CreateDetails(ctx context.Context, tx *gorm.DB, details []model.RfqDetail) error
	CreateVendors(ctx context.Context, tx *gorm.DB, vendors []model.RfqVendor) error
	CreateFile(ctx context.Context, tx *gorm.DB, f *model.RfqFile) error
	CreatePicture(ctx context.Context, tx *gorm.DB, p *model.RfqPicture) error

	FindByID(ctx context.Context, id int) (*model.Rfq, error)
	// FindFull loads the user, non-deleted details, attachment metadata and
	// invitations joined with the vendor master.
	FindFull(ctx context.Context, id int) (*model.Rfq, error)
	List(ctx context.Context, q dto.ListQuery, approvedOnly bool) ([]model.Rfq, int64, error)
	UpdateDueDate(ctx context.Context, id int, due time.Time, by string, at time.Time) error
	Archive(ctx context.Context, id int, by string, at time.Time) error
	SetApproval(ctx context.Context, id int, to model.ApprovalStatus, by string, at time.Time) error
	CountActive(ctx context.Context) (int64, error)

	// Attachments with bytes.
	FindFile(ctx context.Context, id int) (*model.RfqFile, error)
	FindPicture(ctx context.Context, id int) (*model.RfqPicture, error)

	// Child collections.
	ListDetails(ctx context.Context, rfqID int) ([]model.RfqDetail, error)
	FindDetail(ctx context.Context, id int) (*model.RfqDetail, error)
	// FindDetailWithRfq loads a non-deleted line with its parent RFQ composition.
	FindDetailWithRfq(ctx context.Context, id int) (*model.RfqDetail, error)
	UpdateDetail(ctx context.Context, d *model.RfqDetail) error
	SoftDeleteDetail(ctx context.Context, id int) error
	ListFiles(ctx context.Context, rfqID int) ([]model.RfqFile, error)
	SoftDeleteFile(ctx context.Context, id int) error
	ListPictures(ctx context.Context, rfqID int) ([]model.RfqPicture, error)
	SoftDeletePicture(ctx context.Context, id int) error
	ListVendors(ctx context.Context, rfqID int) ([]model.RfqVendor, error)
	FindVendor(ctx context.Context, id int) (*model.RfqVendor, error)
	UpdateVendor(ctx context.Context, v *model.RfqVendor) error
	SoftDeleteVendor(ctx context.Context, id int) error

	Worklist(ctx context.Context, vendorID int) ([]WorklistRow, error)
	DueBetween(ctx context.Context, from, to time.Time) ([]ReminderRow, error)

	DB() *gorm.DB
}

type rfqRepo struct{ db *gorm.DB }

func NewRfqRepository(db *gorm.DB) RfqRepository { return &rfqRepo{db: db} }

func (r *rfqRepo) DB() *gorm.DB { return r.db }

// ── Creation ──────────────────────────────────────────────────────────────────

func (r *rfqRepo) Create(ctx context.Context, tx *gorm.DB, rfq *model.Rfq) error {
	return conn(tx, r.db).WithContext(ctx).
		Omit("User", "Details", "Files", "Pictures", "Vendors").
		Create(rfq).Error
}

func (r *rfqRepo) UpdateNumber(ctx context.Context, tx *gorm.DB, id int, number string) error {
	return conn(tx, r.db).WithContext(ctx).Model(&model.Rfq{}).
		Where("rfq_id = ?", id).
		Update("rfq_number", number).Error
}

func (r *rfqRepo) CreateDetails(ctx context.Context, tx *gorm.DB, details []model.RfqDetail) error {
	if len(details) == 0 {
		return nil
	}
	return conn(tx, r.db).WithContext(ctx).Omit("Rfq").Create(&details).Error
}

func (r *rfqRepo) CreateVendors(ctx context.Context, tx *gorm.DB, vendors []model.RfqVendor) error {
	if len(vendors) == 0 {
		return nil
	}
	return conn(tx, r.db).WithContext(ctx).Omit("Vendor").Create(&vendors).Error
}

func (r *rfqRepo) CreateFile(ctx context.Context, tx *gorm.DB, f *model.RfqFile) error {
	return conn(tx, r.db).WithContext(ctx).Create(f).Error
}

func (r *rfqRepo) CreatePicture(ctx context.Context, tx *gorm.DB, p *model.RfqPicture) error {
	return conn(tx, r.db).WithContext(ctx).Create(p).Error
}

// ── Reads and lifecycle ───────────────────────────────────────────────────────

func (r *rfqRepo) FindByID(ctx context.Context, id int) (*model.Rfq, error) {
	var rfq model.Rfq
	err := r.db.WithContext(ctx).First(&rfq, "rfq_id = ?", id).Error
	return &rfq, err
}

func (r *rfqRepo) FindFull(ctx context.Context, id int) (*model.Rfq, error) {
	var rfq model.Rfq
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Details", "is_deleted = ?", model.FlagOff, orderByID).
		Preload("Files", attachmentsOnly).
		Preload("Pictures", attachmentsOnly).
		Preload("Vendors", "is_deleted = ?", model.FlagOff, orderByID).
		Preload("Vendors.Vendor").
		First(&rfq, "rfq_id = ?", id).Error
	return &rfq, err
}

func orderByID(db *gorm.DB) *gorm.DB { return db.Order("id") }

func attachmentsOnly(db *gorm.DB) *gorm.DB {
	return db.Select(attachmentMeta).Where("is_deleted = ?", model.FlagOff).Order("id")
}

func (r *rfqRepo) List(ctx context.Context, q dto.ListQuery, approvedOnly bool) ([]model.Rfq, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Rfq{}).Where("is_deleted = ?", model.FlagOff)
	if approvedOnly {
		base = base.Where("is_approved = ?", string(model.ApprovalApproved))
	}
	return paginate[model.Rfq](base, rfqList, q, "Details")
}

func (r *rfqRepo) UpdateDueDate(ctx context.Context, id int, due time.Time, by string, at time.Time) error {
	return r.updateByID(ctx, id, map[string]any{
		"rfq_duedate": due,
		"updated_by":  by,
		"updated_at":  at,
	})
}

func (r *rfqRepo) Archive(ctx context.Context, id int, by string, at time.Time) error {
	return r.updateByID(ctx, id, map[string]any{
		"is_deleted": model.FlagOn,
		"updated_by": by,
		"updated_at": at,
	})
}

func (r *rfqRepo) updateByID(ctx context.Context, id int, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.Rfq{}).Where("rfq_id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetApproval moves a pending RFQ to a terminal state, or re-stamps one that
// is already in that state. Legacy pending encodings are matched too.
func (r *rfqRepo) SetApproval(ctx context.Context, id int, to model.ApprovalStatus, by string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Rfq{}).
		Where("rfq_id = ?", id).
		Where("is_approved IS NULL OR LOWER(is_approved) IN ('', '0', 'pending') OR is_approved = ?", string(to)).
		Updates(map[string]any{
			"is_approved": to,
			"approved_at": at,
			"approved_by": by,
			"updated_by":  by,
			"updated_at":  at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return ErrApprovalConflict
	}
	return nil
}

func (r *rfqRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Rfq{}).Where("is_deleted = ?", model.FlagOff).Count(&n).Error
	return n, err
}

func (r *rfqRepo) FindFile(ctx context.Context, id int) (*model.RfqFile, error) {
	var f model.RfqFile
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	return &f, err
}

func (r *rfqRepo) FindPicture(ctx context.Context, id int) (*model.RfqPicture, error) {
	var p model.RfqPicture
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

// ── Child collections ─────────────────────────────────────────────────────────

func (r *rfqRepo) ListDetails(ctx context.Context, rfqID int) ([]model.RfqDetail, error) {
	var details []model.RfqDetail
	err := r.db.WithContext(ctx).
		Where("rfq_id = ? AND is_deleted = ?", rfqID, model.FlagOff).
		Order("id").Find(&details).Error
	return details, err
}

func (r *rfqRepo) FindDetail(ctx context.Context, id int) (*model.RfqDetail, error) {
	var d model.RfqDetail
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *rfqRepo) FindDetailWithRfq(ctx context.Context, id int) (*model.RfqDetail, error) {
	var d model.RfqDetail
	err := r.db.WithContext(ctx).
		Preload("Rfq").
		Preload("Rfq.User").
		Preload("Rfq.Details", "is_deleted = ?", model.FlagOff, orderByID).
		Preload("Rfq.Files", attachmentsOnly).
		Preload("Rfq.Pictures", attachmentsOnly).
		Where("id = ? AND is_deleted = ?", id, model.FlagOff).
		First(&d).Error
	return &d, err
}

func (r *rfqRepo) UpdateDetail(ctx context.Context, d *model.RfqDetail) error {
	return r.db.WithContext(ctx).Omit("Rfq").Save(d).Error
}

func (r *rfqRepo) SoftDeleteDetail(ctx context.Context, id int) error {
	return setFlag(ctx, r.db, &model.RfqDetail{}, "id", id, "is_deleted", model.FlagOn)
}

func (r *rfqRepo) ListFiles(ctx context.Context, rfqID int) ([]model.RfqFile, error) {
	var files []model.RfqFile
	err := attachmentsOnly(r.db.WithContext(ctx)).Where("rfq_id = ?", rfqID).Find(&files).Error
	return files, err
}

func (r *rfqRepo) SoftDeleteFile(ctx context.Context, id int) error {
	return setFlag(ctx, r.db, &model.RfqFile{}, "id", id, "is_deleted", model.FlagOn)
}

func (r *rfqRepo) ListPictures(ctx context.Context, rfqID int) ([]model.RfqPicture, error) {
	var pictures []model.RfqPicture
	err := attachmentsOnly(r.db.WithContext(ctx)).Where("rfq_id = ?", rfqID).Find(&pictures).Error
	return pictures, err
}

func (r *rfqRepo) SoftDeletePicture(ctx context.Context, id int) error {
	return setFlag(ctx, r.db, &model.RfqPicture{}, "id", id, "is_deleted", model.FlagOn)
}

func (r *rfqRepo) ListVendors(ctx context.Context, rfqID int) ([]model.RfqVendor, error) {
	var vendors []model.RfqVendor
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Where("rfq_id = ? AND is_deleted = ?", rfqID, model.FlagOff).
		Order("id").Find(&vendors).Error
	return vendors, err
}

func (r *rfqRepo) FindVendor(ctx context.Context, id int) (*model.RfqVendor, error) {
	var v model.RfqVendor
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *rfqRepo) UpdateVendor(ctx context.Context, v *model.RfqVendor) error {
	return r.db.WithContext(ctx).Omit("Vendor").Save(v).Error
}

func (r *rfqRepo) SoftDeleteVendor(ctx context.Context, id int) error {
	return setFlag(ctx, r.db, &model.RfqVendor{}, "id", id, "is_deleted", model.FlagOn)
}

// ── Vendor views ──────────────────────────────────────────────────────────────

const worklistSQL = `
SELECT DISTINCT ON (r.rfq_id)
       r.rfq_id, d.id AS rfq_detail_id, r.rfq_title, r.rfq_number, r.rfq_duedate, r.rfq_type,
       COALESCE(q.is_submitted, 0) AS is_submitted
  FROM trs_rfq r
  JOIN trs_rfq_detail d
    ON d.rfq_id = r.rfq_id AND d.status = @open AND d.is_deleted = 0
  LEFT JOIN vendor_quotation q
    ON q.rfq_detail_id = d.id AND q.vendor_id = @vendor
 WHERE r.is_deleted = 0
   AND (LOWER(r.rfq_type) = 'general'
        OR EXISTS (SELECT 1 FROM trs_rfq_vendor v
                    WHERE v.rfq_id = r.rfq_id AND v.vendor_id = @vendor AND v.is_deleted = 0))
 ORDER BY r.rfq_id, d.id`

func (r *rfqRepo) Worklist(ctx context.Context, vendorID int) ([]WorklistRow, error) {
	var rows []WorklistRow
	err := r.db.WithContext(ctx).
		Raw(worklistSQL, map[string]any{"vendor": vendorID, "open": model.LineOpen}).
		Scan(&rows).Error
	return rows, err
}

func (r *rfqRepo) DueBetween(ctx context.Context, from, to time.Time) ([]ReminderRow, error) {
	var rows []ReminderRow
	err := r.db.WithContext(ctx).
		Table("trs_rfq r").
		Select(`r.rfq_id, r.rfq_number, r.rfq_title, r.rfq_duedate,
			v.vendor_id, v.name AS vendor_name, v.email AS vendor_email`).
		Joins("JOIN trs_rfq_vendor rv ON rv.rfq_id = r.rfq_id AND rv.is_deleted = 0").
		Joins("JOIN ms_vendor v ON v.vendor_id = rv.vendor_id AND v.is_deleted = 0").
		Where("r.is_deleted = 0 AND r.is_approved = ?", string(model.ApprovalApproved)).
		Where("r.rfq_duedate >= ? AND r.rfq_duedate < ?", from, to).
		Where("v.email <> ''").
		Order("r.rfq_id, v.vendor_id").
		Scan(&rows).Error
	return rows, err
}
