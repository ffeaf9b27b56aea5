package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/embunadw/E-Procurement/internal/apierror"
	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/infra"
	"github.com/embunadw/E-Procurement/internal/model"
	"github.com/embunadw/E-Procurement/internal/repository"
	"github.com/embunadw/E-Procurement/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/shockerli/cvt"
	"gorm.io/gorm"
)

const warnVendorList = "vendor list could not be read; the RFQ was saved without invited vendors"

type RfqService interface {
	// Create inserts the RFQ, its business number and all children in one
	// transaction. picture and attachment may be nil.
	Create(ctx context.Context, actor string, form dto.CreateRfqForm, picture, attachment *dto.FileUpload) (*dto.CreateRfqResponse, error)
	Get(ctx context.Context, id int) (*dto.RfqResponse, error)
	// List restricts the result to approved RFQs when vendorView is set.
	List(ctx context.Context, q dto.ListQuery, vendorView bool) (*dto.Page[dto.RfqResponse], error)
	UpdateDueDate(ctx context.Context, actor string, id int, req dto.UpdateRfqRequest) (*dto.RfqResponse, error)
	Archive(ctx context.Context, actor string, id int) error
	Approve(ctx context.Context, actor string, id int) (*dto.RfqResponse, error)
	Reject(ctx context.Context, actor string, id int) (*dto.RfqResponse, error)

	DownloadPicture(ctx context.Context, id int) (*dto.Download, error)
	DownloadFile(ctx context.Context, id int) (*dto.Download, error)
	LineView(ctx context.Context, detailID int) (*dto.RfqLineView, error)
	RenderPDF(ctx context.Context, id int) (*dto.Download, error)
}

type rfqService struct {
	repo     repository.RfqRepository
	notifier Notifier
	now      Clock
}

func NewRfqService(repo repository.RfqRepository, notifier Notifier, now Clock) RfqService {
	return &rfqService{repo: repo, notifier: notifier, now: now}
}

// ── Creation ──────────────────────────────────────────────────────────────────

func (s *rfqService) Create(ctx context.Context, actor string, form dto.CreateRfqForm, picture, attachment *dto.FileUpload) (*dto.CreateRfqResponse, error) {
	if strings.TrimSpace(form.UserID) == "" || strings.TrimSpace(form.Title) == "" ||
		strings.TrimSpace(form.DueDate) == "" || form.Category == "" || form.Type == "" {
		return nil, apierror.Validation("user_id, rfq_title, rfq_duedate, rfq_category, and rfq_type are required.")
	}
	now := s.now()
	loc := now.Location()

	userID, err := cvt.IntE(form.UserID)
	if err != nil {
		return nil, apierror.Validation("user_id must be numeric")
	}
	category, err := model.ParseRfqCategory(form.Category)
	if err != nil {
		return nil, apierror.Validation("rfq_category must be vendor or subcontractor")
	}
	typ, err := model.ParseRfqType(form.Type)
	if err != nil {
		return nil, apierror.Validation("rfq_type must be general or invitation")
	}
	due, err := parseDate(form.DueDate, loc)
	if err != nil {
		return nil, apierror.Validation("rfq_duedate is not a valid date")
	}
	releaseAt, err := parseOptionalDate(form.ReleaseAt, loc)
	if err != nil {
		return nil, apierror.Validation("release_at is not a valid date")
	}
	status := 0
	if form.Status != "" {
		if status, err = cvt.IntE(form.Status); err != nil {
			return nil, apierror.Validation("status must be numeric")
		}
	}
	lines, err := parseLines(form.Details)
	if err != nil {
		return nil, err
	}

	var warnings []string
	vendorIDs, err := parseVendorIDs(form.Vendor)
	if err != nil {
		log.Warn().Err(err).Str("vendor", form.Vendor).Msg("rfq: vendor list ignored")
		warnings = append(warnings, warnVendorList)
	}

	rfq := &model.Rfq{
		UserID:        &userID,
		Category:      category,
		Type:          typ,
		Title:         form.Title,
		Specification: form.Specification,
		DueDate:       due,
		IsActive:      model.ParseFlag(form.IsActive, model.FlagOn),
		IsRelease:     model.ParseFlag(form.IsRelease, model.FlagOff),
		ReleaseBy:     form.ReleaseBy,
		ReleaseByName: form.ReleaseByName,
		ReleaseAt:     releaseAt,
		IsLocked:      model.ParseFlag(form.IsLocked, model.FlagOff),
		Status:        status,
		CreatedBy:     actor,
		CreatedAt:     now,
		UpdatedBy:     actor,
		UpdatedAt:     now,
		IsApproved:    model.ApprovalPending,
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, rfq); err != nil {
			return err
		}
		rfq.Number = model.RfqNumber(category, typ, now, rfq.RfqID)
		if err := s.repo.UpdateNumber(ctx, tx, rfq.RfqID, rfq.Number); err != nil {
			return err
		}

		for i := range lines {
			lines[i].RfqID = rfq.RfqID
			lines[i].CreatedAt = now
		}
		if err := s.repo.CreateDetails(ctx, tx, lines); err != nil {
			return err
		}

		invites := make([]model.RfqVendor, len(vendorIDs))
		for i, id := range vendorIDs {
			invites[i] = model.RfqVendor{RfqID: rfq.RfqID, VendorID: id, Status: model.LineOpen, CreatedAt: now}
		}
		if err := s.repo.CreateVendors(ctx, tx, invites); err != nil {
			return err
		}

		if picture != nil {
			p := &model.RfqPicture{Attachment: newAttachment(rfq.RfqID, picture, actor, now)}
			if err := s.repo.CreatePicture(ctx, tx, p); err != nil {
				return err
			}
		}
		if attachment != nil {
			f := &model.RfqFile{Attachment: newAttachment(rfq.RfqID, attachment, actor, now)}
			if err := s.repo.CreateFile(ctx, tx, f); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rfq.Details = lines
	return &dto.CreateRfqResponse{
		RfqResponse:   toRfqResponse(rfq),
		DetailCount:   len(lines),
		VendorCount:   len(vendorIDs),
		HasPicture:    picture != nil,
		HasAttachment: attachment != nil,
		Warnings:      warnings,
	}, nil
}

// parseLines decodes the JSON line-item array. An empty payload means no lines.
func parseLines(raw string) ([]model.RfqDetail, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var inputs []dto.RfqLineInput
	if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
		return nil, apierror.Validation("details must be a JSON array of line items")
	}
	lines := make([]model.RfqDetail, len(inputs))
	for i, in := range inputs {
		line, err := lineFromInput(in)
		if err != nil {
			return nil, apierror.Validation(fmt.Sprintf("details[%d]: %s", i, err.Error()))
		}
		lines[i] = line
	}
	return lines, nil
}

func lineFromInput(in dto.RfqLineInput) (model.RfqDetail, error) {
	var qty float64
	if blank(in.PRQty) {
		in.PRQty = nil
	}
	if in.PRQty != nil {
		v, err := cvt.Float64E(in.PRQty)
		if err != nil {
			return model.RfqDetail{}, errors.New("pr_qty must be numeric")
		}
		qty = v
	}
	var part string
	if in.PartNumber != nil {
		v, err := cvt.StringE(in.PartNumber)
		if err != nil {
			return model.RfqDetail{}, errors.New("part_number must be text or a number")
		}
		part = v
	}
	return model.RfqDetail{
		PRNumber:    in.PRNumber,
		PRItem:      in.PRItem,
		PartNumber:  part,
		Description: in.Description,
		PRQty:       qty,
		PRUom:       in.PRUom,
		MatGroup:    in.MatGroup,
		SourceType:  model.ParseSourceType(in.SourceType),
		Status:      model.LineOpen,
	}, nil
}

func blank(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// parseVendorIDs keeps non-null numeric ids and skips anything else. Only a
// payload that is not a JSON array is an error.
func parseVendorIDs(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var entries []any
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}
	seen := make(map[int]bool, len(entries))
	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		id, err := cvt.IntE(e)
		if err != nil || id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

func newAttachment(rfqID int, f *dto.FileUpload, actor string, now time.Time) model.Attachment {
	return model.Attachment{
		RfqID:     rfqID,
		Filename:  f.Filename,
		Source:    f.Data,
		CreatedAt: now,
		CreatedBy: actor,
	}
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *rfqService) Get(ctx context.Context, id int) (*dto.RfqResponse, error) {
	rfq, err := s.repo.FindFull(ctx, id)
	if err != nil {
		return nil, notFound(err, "RFQ not found")
	}
	resp := toRfqResponse(rfq)
	return &resp, nil
}

func (s *rfqService) List(ctx context.Context, q dto.ListQuery, vendorView bool) (*dto.Page[dto.RfqResponse], error) {
	q = q.Normalize(dto.DefaultRfqLimit)
	rows, total, err := s.repo.List(ctx, q, vendorView)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RfqResponse, len(rows))
	for i := range rows {
		items[i] = toRfqResponse(&rows[i])
	}
	page := dto.NewPage(items, total, q)
	return &page, nil
}

func (s *rfqService) LineView(ctx context.Context, detailID int) (*dto.RfqLineView, error) {
	d, err := s.repo.FindDetailWithRfq(ctx, detailID)
	if err != nil {
		return nil, notFound(err, "RFQ detail not found")
	}
	if d.Rfq == nil || bool(d.Rfq.IsDeleted) {
		return nil, apierror.NotFound("RFQ detail not found")
	}
	r := d.Rfq
	view := &dto.RfqLineView{
		RfqNumber:        r.Number,
		RfqTitle:         r.Title,
		RfqSpecification: r.Specification,
		RfqDuedate:       r.DueDate,
		Details:          toDetailResponses(r.Details),
		Pictures:         toPictureResponses(r.Pictures),
		Files:            toFileResponses(r.Files),
		PartNumber:       d.PartNumber,
		Description:      d.Description,
		PRQty:            d.PRQty,
		PRUom:            d.PRUom,
		MatGroup:         d.MatGroup,
		SourceType:       string(d.SourceType),
	}
	if r.User != nil {
		u := toUserResponse(r.User)
		view.User = &u
	}
	return view, nil
}

// ── Maintenance ───────────────────────────────────────────────────────────────

func (s *rfqService) UpdateDueDate(ctx context.Context, actor string, id int, req dto.UpdateRfqRequest) (*dto.RfqResponse, error) {
	if strings.TrimSpace(req.DueDate) == "" {
		return nil, apierror.Validation("rfq duedate is required to update.")
	}
	now := s.now()
	due, err := parseDate(req.DueDate, now.Location())
	if err != nil {
		return nil, apierror.Validation("rfq_duedate is not a valid date")
	}
	if err := s.repo.UpdateDueDate(ctx, id, due, actor, now); err != nil {
		return nil, notFound(err, "RFQ not found")
	}
	rfq, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "RFQ not found")
	}
	resp := toRfqResponse(rfq)
	return &resp, nil
}

func (s *rfqService) Archive(ctx context.Context, actor string, id int) error {
	return notFound(s.repo.Archive(ctx, id, actor, s.now()), "RFQ not found")
}

// ── Approval ──────────────────────────────────────────────────────────────────

func (s *rfqService) Approve(ctx context.Context, actor string, id int) (*dto.RfqResponse, error) {
	return s.transition(ctx, actor, id, model.ApprovalApproved)
}

func (s *rfqService) Reject(ctx context.Context, actor string, id int) (*dto.RfqResponse, error) {
	return s.transition(ctx, actor, id, model.ApprovalRejected)
}

// transition moves Pending to a terminal state. Repeating the same terminal
// state re-stamps it; switching between terminal states is refused.
func (s *rfqService) transition(ctx context.Context, actor string, id int, to model.ApprovalStatus) (*dto.RfqResponse, error) {
	rfq, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "RFQ not found")
	}
	if rfq.IsApproved.Terminal() && rfq.IsApproved != to {
		return nil, apierror.Conflict(fmt.Sprintf("RFQ is already %s", strings.ToLower(string(rfq.IsApproved))))
	}

	now := s.now()
	if err := s.repo.SetApproval(ctx, id, to, actor, now); err != nil {
		if errors.Is(err, repository.ErrApprovalConflict) {
			return nil, apierror.Conflict("RFQ approval state changed, reload and try again")
		}
		return nil, notFound(err, "RFQ not found")
	}
	rfq.IsApproved = to
	rfq.ApprovedAt = &now
	rfq.ApprovedBy = strPtr(actor)
	rfq.UpdatedBy = actor
	rfq.UpdatedAt = now

	if to == model.ApprovalApproved && rfq.Type == model.TypeInvitation {
		s.notifyInvited(ctx, rfq)
	}
	resp := toRfqResponse(rfq)
	return &resp, nil
}

// notifyInvited queues one e-mail per invited vendor. Failures are logged only.
func (s *rfqService) notifyInvited(ctx context.Context, rfq *model.Rfq) {
	if s.notifier == nil {
		return
	}
	invites, err := s.repo.ListVendors(ctx, rfq.RfqID)
	if err != nil {
		log.Error().Err(err).Int("rfq_id", rfq.RfqID).Msg("rfq: load invitations for notification")
		return
	}
	for _, inv := range invites {
		if inv.Vendor == nil || inv.Vendor.Email == "" || bool(inv.Vendor.IsDeleted) {
			continue
		}
		payload := worker.EmailJobPayload{
			ToEmail: inv.Vendor.Email,
			Subject: fmt.Sprintf("Invitation to quote: %s", rfq.Number),
			Body: fmt.Sprintf("Dear %s,\n\nYou are invited to submit a quotation for %s (%s).\nDue date: %s.\n",
				inv.Vendor.Name, rfq.Number, rfq.Title, rfq.DueDate.Format("02 Jan 2006")),
		}
		if err := s.notifier.EnqueueEmail(ctx, payload); err != nil {
			log.Error().Err(err).Int("rfq_id", rfq.RfqID).Int("vendor_id", inv.VendorID).
				Msg("rfq: enqueue invitation e-mail")
		}
	}
}

// ── Binary views ──────────────────────────────────────────────────────────────

func (s *rfqService) DownloadPicture(ctx context.Context, id int) (*dto.Download, error) {
	p, err := s.repo.FindPicture(ctx, id)
	if err != nil {
		return nil, notFound(err, "Picture not found")
	}
	if bool(p.IsDeleted) || len(p.Source) == 0 {
		return nil, apierror.NotFound("Picture not found")
	}
	return &dto.Download{Filename: p.Filename, Data: p.Source}, nil
}

func (s *rfqService) DownloadFile(ctx context.Context, id int) (*dto.Download, error) {
	f, err := s.repo.FindFile(ctx, id)
	if err != nil {
		return nil, notFound(err, "File not found")
	}
	if bool(f.IsDeleted) || len(f.Source) == 0 {
		return nil, apierror.NotFound("File not found")
	}
	return &dto.Download{Filename: f.Filename, Data: f.Source}, nil
}

func (s *rfqService) RenderPDF(ctx context.Context, id int) (*dto.Download, error) {
	rfq, err := s.repo.FindFull(ctx, id)
	if err != nil {
		return nil, notFound(err, "RFQ not found")
	}
	data, err := infra.RenderRfqPDF(rfq)
	if err != nil {
		return nil, err
	}
	return &dto.Download{Filename: fmt.Sprintf("rfq_%d.pdf", rfq.RfqID), Data: data}, nil
}
