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
	"github.com/embunadw/E-Procurement/internal/model"
	"github.com/embunadw/E-Procurement/internal/repository"

	"github.com/shockerli/cvt"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const msgIncompleteQuotation = "Data tidak lengkap"

type QuotationService interface {
	// Submit upserts every entry by (vendor_id, rfq_detail_id) in one transaction.
	Submit(ctx context.Context, form dto.QuotationForm, attachment *dto.FileUpload) (*dto.QuotationBatchResult, error)
	// Update requires every entry to exist already; the first missing pair
	// aborts the whole batch.
	Update(ctx context.Context, form dto.QuotationForm, attachment *dto.FileUpload) (*dto.QuotationBatchResult, error)
	Worklist(ctx context.Context, vendorID int) (*dto.Page[dto.WorklistItem], error)
	Detail(ctx context.Context, vendorID, rfqDetailID int) (*dto.QuotationResponse, error)
	Download(ctx context.Context, id int) (*dto.Download, error)
}

type quotationService struct {
	repo repository.QuotationRepository
	rfqs repository.RfqRepository
	now  Clock
}

func NewQuotationService(repo repository.QuotationRepository, rfqs repository.RfqRepository, now Clock) QuotationService {
	return &quotationService{repo: repo, rfqs: rfqs, now: now}
}

// parseBatch turns the multipart form into typed lines.
func (s *quotationService) parseBatch(form dto.QuotationForm, attachment *dto.FileUpload) (*dto.QuotationBatch, error) {
	if strings.TrimSpace(form.VendorID) == "" || strings.TrimSpace(form.Quotations) == "" {
		return nil, apierror.Validation(msgIncompleteQuotation)
	}
	vendorID, err := cvt.IntE(form.VendorID)
	if err != nil || vendorID <= 0 {
		return nil, apierror.Validation("vendor_id must be numeric")
	}
	var entries []dto.QuotationEntry
	if err := json.Unmarshal([]byte(form.Quotations), &entries); err != nil {
		return nil, apierror.Validation("quotations must be a JSON array")
	}
	if len(entries) == 0 {
		return nil, apierror.Validation(msgIncompleteQuotation)
	}
	validUntil, err := parseOptionalDate(form.ValidUntil, s.now().Location())
	if err != nil {
		return nil, apierror.Validation("valid_until is not a valid date")
	}

	batch := &dto.QuotationBatch{
		VendorID:   vendorID,
		ValidUntil: validUntil,
		Lines:      make([]dto.QuotationLine, len(entries)),
		Attachment: attachment,
	}
	for i, e := range entries {
		line, err := parseQuotationEntry(e)
		if err != nil {
			return nil, apierror.Validation(fmt.Sprintf("quotations[%d]: %s", i, err.Error()))
		}
		batch.Lines[i] = line
	}
	return batch, nil
}

func parseQuotationEntry(e dto.QuotationEntry) (dto.QuotationLine, error) {
	if e.RfqDetailID == nil {
		return dto.QuotationLine{}, errors.New("rfq_detail_id is required")
	}
	detailID, err := cvt.IntE(e.RfqDetailID)
	if err != nil || detailID <= 0 {
		return dto.QuotationLine{}, errors.New("rfq_detail_id must be numeric")
	}
	price, err := toDecimal(e.Price)
	if err != nil {
		return dto.QuotationLine{}, errors.New("price must be numeric")
	}
	moq, err := toDecimal(e.MOQ)
	if err != nil {
		return dto.QuotationLine{}, errors.New("moq must be numeric")
	}
	return dto.QuotationLine{RfqDetailID: detailID, Price: price, MOQ: moq}, nil
}

// toDecimal accepts JSON numbers and numeric strings; null and "" are zero.
func toDecimal(v any) (decimal.Decimal, error) {
	if v == nil || blank(v) {
		return decimal.Zero, nil
	}
	s, err := cvt.StringE(v)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(strings.TrimSpace(s))
}

func (s *quotationService) Submit(ctx context.Context, form dto.QuotationForm, attachment *dto.FileUpload) (*dto.QuotationBatchResult, error) {
	batch, err := s.parseBatch(form, attachment)
	if err != nil {
		return nil, err
	}
	now := s.now()
	result := &dto.QuotationBatchResult{}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, line := range batch.Lines {
			existing, err := s.repo.FindPair(ctx, tx, batch.VendorID, line.RfqDetailID)
			switch {
			case err == nil:
				applyLine(existing, batch, line, now)
				existing.Attachment = attachmentBytes(batch.Attachment)
				if err := s.repo.Update(ctx, tx, existing); err != nil {
					return err
				}
				result.Updated++
			case errors.Is(err, gorm.ErrRecordNotFound):
				q := &model.VendorQuotation{
					RfqDetailID: line.RfqDetailID,
					VendorID:    batch.VendorID,
					CreatedAt:   now,
				}
				applyLine(q, batch, line, now)
				q.Attachment = attachmentBytes(batch.Attachment)
				if err := s.repo.Create(ctx, tx, q); err != nil {
					return err
				}
				result.Created++
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *quotationService) Update(ctx context.Context, form dto.QuotationForm, attachment *dto.FileUpload) (*dto.QuotationBatchResult, error) {
	batch, err := s.parseBatch(form, attachment)
	if err != nil {
		return nil, err
	}
	now := s.now()
	result := &dto.QuotationBatchResult{}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, line := range batch.Lines {
			existing, err := s.repo.FindPair(ctx, tx, batch.VendorID, line.RfqDetailID)
			if err != nil {
				return notFound(err, "Quotation not found")
			}
			applyLine(existing, batch, line, now)
			if batch.Attachment != nil {
				existing.Attachment = batch.Attachment.Data
			}
			if err := s.repo.Update(ctx, tx, existing); err != nil {
				return err
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func applyLine(q *model.VendorQuotation, batch *dto.QuotationBatch, line dto.QuotationLine, now time.Time) {
	q.Price = line.Price
	q.MOQ = line.MOQ
	q.ValidUntil = batch.ValidUntil
	q.IsSubmitted = model.FlagOn
	q.UpdatedAt = now
}

// attachmentBytes is what a submit stores: the new file, or nothing.
func attachmentBytes(f *dto.FileUpload) []byte {
	if f == nil {
		return nil
	}
	return f.Data
}

func (s *quotationService) Worklist(ctx context.Context, vendorID int) (*dto.Page[dto.WorklistItem], error) {
	rows, err := s.rfqs.Worklist(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WorklistItem, len(rows))
	for i, r := range rows {
		items[i] = dto.WorklistItem{
			RfqID:       r.RfqID,
			RfqDetailID: r.RfqDetailID,
			RfqTitle:    r.RfqTitle,
			RfqNumber:   r.RfqNumber,
			RfqDuedate:  r.RfqDuedate,
			RfqType:     r.RfqType,
			IsSubmitted: bool(r.IsSubmitted),
		}
	}
	return &dto.Page[dto.WorklistItem]{
		Data:        items,
		TotalItems:  int64(len(items)),
		TotalPages:  1,
		CurrentPage: 1,
	}, nil
}

func (s *quotationService) Detail(ctx context.Context, vendorID, rfqDetailID int) (*dto.QuotationResponse, error) {
	q, err := s.repo.FindPair(ctx, nil, vendorID, rfqDetailID)
	if err != nil {
		return nil, notFound(err, "Quotation not found")
	}
	resp := toQuotationResponse(q)
	return &resp, nil
}

func (s *quotationService) Download(ctx context.Context, id int) (*dto.Download, error) {
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Quotation not found")
	}
	if len(q.Attachment) == 0 {
		return nil, apierror.NotFound("Attachment not found")
	}
	return &dto.Download{Filename: fmt.Sprintf("quotation_%d.pdf", q.ID), Data: q.Attachment}, nil
}
