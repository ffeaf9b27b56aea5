package service_test

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/model"
	"github.com/embunadw/E-Procurement/internal/repository"

	"gorm.io/gorm"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

var wib = time.FixedZone("WIB", 7*60*60)

// fixedClock returns a Clock frozen at 5 March 2025 10:00 WIB.
func fixedClock() func() time.Time {
	at := time.Date(2025, time.March, 5, 10, 0, 0, 0, wib)
	return func() time.Time { return at }
}

var errBoom = errors.New("boom")

func itoa(i int) string { return strconv.Itoa(i) }

// ── In-memory UserRepository ──────────────────────────────────────────────────

type stubUserRepo struct {
	users  map[int]*model.User
	nextID int
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int]*model.User), nextID: 1}
}

func (r *stubUserRepo) List(_ context.Context, q dto.ListQuery) ([]model.User, int64, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindActiveByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.EmailSF == email && !bool(u.IsDeleted) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) ExistsActive(_ context.Context, column, value string, excludeID int) (bool, error) {
	for _, u := range r.users {
		if bool(u.IsDeleted) || u.UserID == excludeID {
			continue
		}
		var got string
		switch column {
		case repository.UserEmail:
			got = u.EmailSF
		case repository.UserName:
			got = u.Username
		case repository.UserPersonalNumber:
			got = u.PersonalNumber
		default:
			return false, gorm.ErrInvalidField
		}
		if got == value {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	u.UserID = r.nextID
	r.nextID++
	cp := *u
	r.users[u.UserID] = &cp
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	cp := *u
	r.users[u.UserID] = &cp
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id int) error {
	u, ok := r.users[id]
	if !ok || bool(u.IsDeleted) {
		return gorm.ErrRecordNotFound
	}
	u.IsDeleted = model.FlagOn
	return nil
}

// ── In-memory PlantRepository ─────────────────────────────────────────────────

type stubPlantRepo struct {
	plants map[int]*model.Plant
	nextID int
}

var _ repository.PlantRepository = (*stubPlantRepo)(nil)

func newStubPlantRepo() *stubPlantRepo {
	return &stubPlantRepo{plants: make(map[int]*model.Plant), nextID: 1}
}

func (r *stubPlantRepo) List(_ context.Context, _ dto.ListQuery) ([]model.Plant, int64, error) {
	out := make([]model.Plant, 0, len(r.plants))
	for _, p := range r.plants {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPlantRepo) FindByID(_ context.Context, id int) (*model.Plant, error) {
	p, ok := r.plants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPlantRepo) CodeTaken(_ context.Context, code string, excludeID int) (bool, error) {
	for _, p := range r.plants {
		if p.Plant == code && p.PlantID != excludeID && !bool(p.IsDeleted) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPlantRepo) Create(_ context.Context, p *model.Plant) error {
	p.PlantID = r.nextID
	r.nextID++
	cp := *p
	r.plants[p.PlantID] = &cp
	return nil
}

func (r *stubPlantRepo) Update(_ context.Context, p *model.Plant) error {
	cp := *p
	r.plants[p.PlantID] = &cp
	return nil
}

func (r *stubPlantRepo) SoftDelete(_ context.Context, id int) error {
	p, ok := r.plants[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.IsDeleted = model.FlagOn
	return nil
}

// ── In-memory KbliRepository ──────────────────────────────────────────────────

type stubKbliRepo struct {
	kblis  map[int]*model.Kbli
	nextID int
}

var _ repository.KbliRepository = (*stubKbliRepo)(nil)

func newStubKbliRepo() *stubKbliRepo {
	return &stubKbliRepo{kblis: make(map[int]*model.Kbli), nextID: 1}
}

func (r *stubKbliRepo) seed(code string, enabled bool) *model.Kbli {
	k := &model.Kbli{ID: r.nextID, Year: "2020", Code: code, Title: "KBLI " + code, Enable: model.Flag(enabled)}
	r.kblis[k.ID] = k
	r.nextID++
	return k
}

func (r *stubKbliRepo) List(_ context.Context, _ dto.ListQuery) ([]model.Kbli, int64, error) {
	var out []model.Kbli
	for _, k := range r.kblis {
		if k.Enable {
			out = append(out, *k)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubKbliRepo) FindByID(_ context.Context, id int) (*model.Kbli, error) {
	k, ok := r.kblis[id]
	if !ok || !bool(k.Enable) {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *k
	return &cp, nil
}

func (r *stubKbliRepo) CodeTaken(_ context.Context, code string, excludeID int) (bool, error) {
	for _, k := range r.kblis {
		if bool(k.Enable) && k.Code == code && k.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubKbliRepo) CountEnabled(_ context.Context, ids []int) (int64, error) {
	var n int64
	for _, id := range ids {
		if k, ok := r.kblis[id]; ok && bool(k.Enable) {
			n++
		}
	}
	return n, nil
}

func (r *stubKbliRepo) Create(_ context.Context, k *model.Kbli) error {
	k.ID = r.nextID
	r.nextID++
	cp := *k
	r.kblis[k.ID] = &cp
	return nil
}

func (r *stubKbliRepo) Update(_ context.Context, k *model.Kbli) error {
	cp := *k
	r.kblis[k.ID] = &cp
	return nil
}

func (r *stubKbliRepo) Disable(_ context.Context, id int) error {
	k, ok := r.kblis[id]
	if !ok || !bool(k.Enable) {
		return gorm.ErrRecordNotFound
	}
	k.Enable = model.FlagOff
	return nil
}

// ── In-memory VendorRepository ────────────────────────────────────────────────

type stubVendorRepo struct {
	vendors       map[int]*model.Vendor
	registrations map[int]*model.RegisterVendor
	kbliDetails   []model.KbliDetail
	nextID        int
	failKbli      bool
}

var _ repository.VendorRepository = (*stubVendorRepo)(nil)

func newStubVendorRepo() *stubVendorRepo {
	return &stubVendorRepo{
		vendors:       make(map[int]*model.Vendor),
		registrations: make(map[int]*model.RegisterVendor),
		nextID:        1,
	}
}

func (r *stubVendorRepo) seed(name, email string) *model.Vendor {
	v := &model.Vendor{VendorID: r.nextID, Name: name, Email: email, VendorCode: "V" + name}
	r.vendors[v.VendorID] = v
	r.nextID++
	return v
}

func (r *stubVendorRepo) List(_ context.Context, _ dto.ListQuery) ([]model.Vendor, int64, error) {
	out := make([]model.Vendor, 0, len(r.vendors))
	for _, v := range r.vendors {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVendorRepo) FindByID(_ context.Context, id int) (*model.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *stubVendorRepo) FindByIDs(_ context.Context, ids []int) ([]model.Vendor, error) {
	var out []model.Vendor
	for _, id := range ids {
		if v, ok := r.vendors[id]; ok && !bool(v.IsDeleted) {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVendorRepo) Create(_ context.Context, _ *gorm.DB, v *model.Vendor) error {
	v.VendorID = r.nextID
	r.nextID++
	cp := *v
	r.vendors[v.VendorID] = &cp
	return nil
}

func (r *stubVendorRepo) Update(_ context.Context, v *model.Vendor) error {
	cp := *v
	r.vendors[v.VendorID] = &cp
	return nil
}

func (r *stubVendorRepo) SoftDelete(_ context.Context, id int) error {
	v, ok := r.vendors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.IsDeleted = model.FlagOn
	return nil
}

func (r *stubVendorRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, v := range r.vendors {
		if !v.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (r *stubVendorRepo) FindRegistrationByEmail(_ context.Context, email string) (*model.RegisterVendor, error) {
	for _, rv := range r.registrations {
		if rv.Email == email {
			cp := *rv
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVendorRepo) RegistrationEmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := r.FindRegistrationByEmail(ctx, email)
	return err == nil, nil
}

func (r *stubVendorRepo) NIBTaken(_ context.Context, nib string) (bool, error) {
	for _, rv := range r.registrations {
		if rv.NIB == nib {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubVendorRepo) CreateRegistration(_ context.Context, _ *gorm.DB, rv *model.RegisterVendor) error {
	rv.ID = len(r.registrations) + 1
	cp := *rv
	r.registrations[rv.ID] = &cp
	return nil
}

func (r *stubVendorRepo) CreateKbliDetails(_ context.Context, _ *gorm.DB, details []model.KbliDetail) error {
	if r.failKbli {
		return errBoom
	}
	r.kbliDetails = append(r.kbliDetails, details...)
	return nil
}

func (r *stubVendorRepo) DB() *gorm.DB { return nil }

// ── In-memory RfqRepository ───────────────────────────────────────────────────

type stubRfqRepo struct {
	rfqs     map[int]*model.Rfq
	details  map[int]*model.RfqDetail
	invites  map[int]*model.RfqVendor
	files    map[int]*model.RfqFile
	pictures map[int]*model.RfqPicture
	vendors  *stubVendorRepo
	worklist []repository.WorklistRow
	nextID   int

	failDetails bool
}

var _ repository.RfqRepository = (*stubRfqRepo)(nil)

func newStubRfqRepo(vendors *stubVendorRepo) *stubRfqRepo {
	return &stubRfqRepo{
		rfqs:     make(map[int]*model.Rfq),
		details:  make(map[int]*model.RfqDetail),
		invites:  make(map[int]*model.RfqVendor),
		files:    make(map[int]*model.RfqFile),
		pictures: make(map[int]*model.RfqPicture),
		vendors:  vendors,
		nextID:   1,
	}
}

func (r *stubRfqRepo) id() int {
	id := r.nextID
	r.nextID++
	return id
}

func (r *stubRfqRepo) Create(_ context.Context, _ *gorm.DB, rfq *model.Rfq) error {
	rfq.RfqID = r.id()
	cp := *rfq
	r.rfqs[rfq.RfqID] = &cp
	return nil
}

func (r *stubRfqRepo) UpdateNumber(_ context.Context, _ *gorm.DB, id int, number string) error {
	rfq, ok := r.rfqs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rfq.Number = number
	return nil
}

func (r *stubRfqRepo) CreateDetails(_ context.Context, _ *gorm.DB, details []model.RfqDetail) error {
	if r.failDetails {
		return errBoom
	}
	for i := range details {
		details[i].ID = r.id()
		cp := details[i]
		r.details[cp.ID] = &cp
	}
	return nil
}

func (r *stubRfqRepo) CreateVendors(_ context.Context, _ *gorm.DB, invites []model.RfqVendor) error {
	for i := range invites {
		invites[i].ID = r.id()
		cp := invites[i]
		r.invites[cp.ID] = &cp
	}
	return nil
}

func (r *stubRfqRepo) CreateFile(_ context.Context, _ *gorm.DB, f *model.RfqFile) error {
	f.ID = r.id()
	cp := *f
	r.files[f.ID] = &cp
	return nil
}

func (r *stubRfqRepo) CreatePicture(_ context.Context, _ *gorm.DB, p *model.RfqPicture) error {
	p.ID = r.id()
	cp := *p
	r.pictures[p.ID] = &cp
	return nil
}

func (r *stubRfqRepo) FindByID(_ context.Context, id int) (*model.Rfq, error) {
	rfq, ok := r.rfqs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rfq
	return &cp, nil
}

func (r *stubRfqRepo) FindFull(ctx context.Context, id int) (*model.Rfq, error) {
	rfq, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rfq.Details, _ = r.ListDetails(ctx, id)
	rfq.Vendors, _ = r.ListVendors(ctx, id)
	rfq.Files, _ = r.ListFiles(ctx, id)
	rfq.Pictures, _ = r.ListPictures(ctx, id)
	return rfq, nil
}

func (r *stubRfqRepo) List(_ context.Context, _ dto.ListQuery, approvedOnly bool) ([]model.Rfq, int64, error) {
	var out []model.Rfq
	for _, rfq := range r.rfqs {
		if bool(rfq.IsDeleted) || (approvedOnly && rfq.IsApproved != model.ApprovalApproved) {
			continue
		}
		out = append(out, *rfq)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RfqID < out[j].RfqID })
	return out, int64(len(out)), nil
}

func (r *stubRfqRepo) UpdateDueDate(_ context.Context, id int, due time.Time, by string, at time.Time) error {
	rfq, ok := r.rfqs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rfq.DueDate, rfq.UpdatedBy, rfq.UpdatedAt = due, by, at
	return nil
}

func (r *stubRfqRepo) Archive(_ context.Context, id int, by string, at time.Time) error {
	rfq, ok := r.rfqs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rfq.IsDeleted, rfq.UpdatedBy, rfq.UpdatedAt = model.FlagOn, by, at
	return nil
}

func (r *stubRfqRepo) SetApproval(_ context.Context, id int, to model.ApprovalStatus, by string, at time.Time) error {
	rfq, ok := r.rfqs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if rfq.IsApproved.Terminal() && rfq.IsApproved != to {
		return repository.ErrApprovalConflict
	}
	rfq.IsApproved = to
	rfq.ApprovedAt = &at
	rfq.ApprovedBy = &by
	return nil
}

func (r *stubRfqRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, rfq := range r.rfqs {
		if !rfq.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (r *stubRfqRepo) FindFile(_ context.Context, id int) (*model.RfqFile, error) {
	f, ok := r.files[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *stubRfqRepo) FindPicture(_ context.Context, id int) (*model.RfqPicture, error) {
	p, ok := r.pictures[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubRfqRepo) ListDetails(_ context.Context, rfqID int) ([]model.RfqDetail, error) {
	var out []model.RfqDetail
	for _, d := range r.details {
		if d.RfqID == rfqID && !bool(d.IsDeleted) {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRfqRepo) FindDetail(_ context.Context, id int) (*model.RfqDetail, error) {
	d, ok := r.details[id]
	if !ok || bool(d.IsDeleted) {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *stubRfqRepo) FindDetailWithRfq(ctx context.Context, id int) (*model.RfqDetail, error) {
	d, err := r.FindDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Rfq, _ = r.FindFull(ctx, d.RfqID)
	return d, nil
}

func (r *stubRfqRepo) UpdateDetail(_ context.Context, d *model.RfqDetail) error {
	cp := *d
	r.details[d.ID] = &cp
	return nil
}

func (r *stubRfqRepo) SoftDeleteDetail(_ context.Context, id int) error {
	d, ok := r.details[id]
	if !ok || bool(d.IsDeleted) {
		return gorm.ErrRecordNotFound
	}
	d.IsDeleted = model.FlagOn
	return nil
}

func (r *stubRfqRepo) ListFiles(_ context.Context, rfqID int) ([]model.RfqFile, error) {
	var out []model.RfqFile
	for _, f := range r.files {
		if f.RfqID == rfqID && !bool(f.IsDeleted) {
			meta := *f
			meta.Source = nil
			out = append(out, meta)
		}
	}
	return out, nil
}

func (r *stubRfqRepo) SoftDeleteFile(_ context.Context, id int) error {
	f, ok := r.files[id]
	if !ok || bool(f.IsDeleted) {
		return gorm.ErrRecordNotFound
	}
	f.IsDeleted = model.FlagOn
	return nil
}

func (r *stubRfqRepo) ListPictures(_ context.Context, rfqID int) ([]model.RfqPicture, error) {
	var out []model.RfqPicture
	for _, p := range r.pictures {
		if p.RfqID == rfqID && !bool(p.IsDeleted) {
			meta := *p
			meta.Source = nil
			out = append(out, meta)
		}
	}
	return out, nil
}

func (r *stubRfqRepo) SoftDeletePicture(_ context.Context, id int) error {
	p, ok := r.pictures[id]
	if !ok || bool(p.IsDeleted) {
		return gorm.ErrRecordNotFound
	}
	p.IsDeleted = model.FlagOn
	return nil
}

func (r *stubRfqRepo) ListVendors(_ context.Context, rfqID int) ([]model.RfqVendor, error) {
	var out []model.RfqVendor
	for _, inv := range r.invites {
		if inv.RfqID != rfqID || bool(inv.IsDeleted) {
			continue
		}
		cp := *inv
		if r.vendors != nil {
			cp.Vendor, _ = r.vendors.FindByID(context.Background(), inv.VendorID)
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRfqRepo) FindVendor(_ context.Context, id int) (*model.RfqVendor, error) {
	inv, ok := r.invites[id]
	if !ok || bool(inv.IsDeleted) {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *stubRfqRepo) UpdateVendor(_ context.Context, v *model.RfqVendor) error {
	cp := *v
	r.invites[v.ID] = &cp
	return nil
}

func (r *stubRfqRepo) SoftDeleteVendor(_ context.Context, id int) error {
	inv, ok := r.invites[id]
	if !ok || bool(inv.IsDeleted) {
		return gorm.ErrRecordNotFound
	}
	inv.IsDeleted = model.FlagOn
	return nil
}

func (r *stubRfqRepo) Worklist(_ context.Context, _ int) ([]repository.WorklistRow, error) {
	return r.worklist, nil
}

func (r *stubRfqRepo) DueBetween(_ context.Context, _, _ time.Time) ([]repository.ReminderRow, error) {
	return nil, nil
}

func (r *stubRfqRepo) DB() *gorm.DB { return nil }

// ── In-memory QuotationRepository ─────────────────────────────────────────────

type pairKey struct{ vendorID, detailID int }

type stubQuotationRepo struct {
	rows   map[int]*model.VendorQuotation
	nextID int
	report []repository.ReportRow
}

var _ repository.QuotationRepository = (*stubQuotationRepo)(nil)

func newStubQuotationRepo() *stubQuotationRepo {
	return &stubQuotationRepo{rows: make(map[int]*model.VendorQuotation), nextID: 1}
}

func (r *stubQuotationRepo) pairs() map[pairKey]int {
	out := make(map[pairKey]int)
	for _, q := range r.rows {
		out[pairKey{q.VendorID, q.RfqDetailID}]++
	}
	return out
}

func (r *stubQuotationRepo) FindPair(_ context.Context, _ *gorm.DB, vendorID, detailID int) (*model.VendorQuotation, error) {
	for _, q := range r.rows {
		if q.VendorID == vendorID && q.RfqDetailID == detailID {
			cp := *q
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubQuotationRepo) FindByID(_ context.Context, id int) (*model.VendorQuotation, error) {
	q, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *stubQuotationRepo) Create(_ context.Context, _ *gorm.DB, q *model.VendorQuotation) error {
	q.ID = r.nextID
	r.nextID++
	cp := *q
	r.rows[q.ID] = &cp
	return nil
}

func (r *stubQuotationRepo) Update(_ context.Context, _ *gorm.DB, q *model.VendorQuotation) error {
	cp := *q
	r.rows[q.ID] = &cp
	return nil
}

func (r *stubQuotationRepo) CountSubmitted(_ context.Context) (int64, error) {
	var n int64
	for _, q := range r.rows {
		if q.IsSubmitted {
			n++
		}
	}
	return n, nil
}

func (r *stubQuotationRepo) CountByVendor(_ context.Context, vendorID int) (int64, error) {
	var n int64
	for _, q := range r.rows {
		if q.VendorID == vendorID && q.IsSubmitted {
			n++
		}
	}
	return n, nil
}

func (r *stubQuotationRepo) Report(_ context.Context, vendorID *int) ([]repository.ReportRow, error) {
	if vendorID == nil {
		return r.report, nil
	}
	var out []repository.ReportRow
	for _, row := range r.report {
		if row.VendorID == *vendorID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *stubQuotationRepo) DB() *gorm.DB { return nil }

// ── Notifier ──────────────────────────────────────────────────────────────────

type recordingNotifier struct {
	payloads []any
}

func (n *recordingNotifier) EnqueueEmail(_ context.Context, payload interface{}) error {
	n.payloads = append(n.payloads, payload)
	return nil
}
