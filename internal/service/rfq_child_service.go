package service

import (
	"context"
	"errors"

	"github.com/embunadw/E-Procurement/internal/apierror"
	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/model"
	"github.com/embunadw/E-Procurement/internal/repository"

	"gorm.io/gorm"
)

// RfqChildService maintains the collections an RFQ owns after creation.
// Deletes are soft and uploads always add a new row.
type RfqChildService interface {
	ListDetails(ctx context.Context, rfqID int) ([]dto.RfqDetailResponse, error)
	AddDetails(ctx context.Context, actor string, rfqID int, lines []dto.RfqLineInput) ([]dto.RfqDetailResponse, error)
	UpdateDetail(ctx context.Context, actor string, id int, in dto.RfqLineInput) (*dto.RfqDetailResponse, error)
	DeleteDetail(ctx context.Context, id int) error

	ListPictures(ctx context.Context, rfqID int) ([]dto.AttachmentResponse, error)
	AddPicture(ctx context.Context, actor string, rfqID int, f *dto.FileUpload) (*dto.AttachmentResponse, error)
	DeletePicture(ctx context.Context, id int) error

	ListFiles(ctx context.Context, rfqID int) ([]dto.AttachmentResponse, error)
	AddFile(ctx context.Context, actor string, rfqID int, f *dto.FileUpload) (*dto.AttachmentResponse, error)
	DeleteFile(ctx context.Context, id int) error

	ListVendors(ctx context.Context, rfqID int) ([]dto.RfqVendorResponse, error)
	AddVendor(ctx context.Context, actor string, rfqID int, req dto.RfqVendorRequest) (*dto.RfqVendorResponse, error)
	UpdateVendor(ctx context.Context, actor string, id int, req dto.UpdateRfqVendorRequest) (*dto.RfqVendorResponse, error)
	DeleteVendor(ctx context.Context, id int) error
}

type rfqChildService struct {
	repo    repository.RfqRepository
	vendors repository.VendorRepository
	now     Clock
}

func NewRfqChildService(repo repository.RfqRepository, vendors repository.VendorRepository, now Clock) RfqChildService {
	return &rfqChildService{repo: repo, vendors: vendors, now: now}
}

func (s *rfqChildService) parent(ctx context.Context, rfqID int) error {
	_, err := s.repo.FindByID(ctx, rfqID)
	return notFound(err, "RFQ not found")
}

// ── Details ───────────────────────────────────────────────────────────────────

func (s *rfqChildService) ListDetails(ctx context.Context, rfqID int) ([]dto.RfqDetailResponse, error) {
	if err := s.parent(ctx, rfqID); err != nil {
		return nil, err
	}
	details, err := s.repo.ListDetails(ctx, rfqID)
	if err != nil {
		return nil, err
	}
	return toDetailResponses(details), nil
}

func (s *rfqChildService) AddDetails(ctx context.Context, actor string, rfqID int, inputs []dto.RfqLineInput) ([]dto.RfqDetailResponse, error) {
	if len(inputs) == 0 {
		return nil, apierror.Validation("At least one detail is required")
	}
	if err := s.parent(ctx, rfqID); err != nil {
		return nil, err
	}
	now := s.now()
	lines := make([]model.RfqDetail, len(inputs))
	for i, in := range inputs {
		line, err := lineFromInput(in)
		if err != nil {
			return nil, apierror.Validation(err.Error())
		}
		if in.Status != nil {
			line.Status = model.LineStatus(*in.Status)
		}
		line.RfqID = rfqID
		line.CreatedAt = now
		line.LastModifiedBy = actor
		lines[i] = line
	}
	if err := s.repo.CreateDetails(ctx, nil, lines); err != nil {
		return nil, err
	}
	return toDetailResponses(lines), nil
}

func (s *rfqChildService) UpdateDetail(ctx context.Context, actor string, id int, in dto.RfqLineInput) (*dto.RfqDetailResponse, error) {
	d, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, notFound(err, "RFQ detail not found")
	}
	line, err := lineFromInput(in)
	if err != nil {
		return nil, apierror.Validation(err.Error())
	}
	d.PRNumber = line.PRNumber
	d.PRItem = line.PRItem
	d.PartNumber = line.PartNumber
	d.Description = line.Description
	d.PRQty = line.PRQty
	d.PRUom = line.PRUom
	d.MatGroup = line.MatGroup
	d.SourceType = line.SourceType
	if in.Status != nil {
		d.Status = model.LineStatus(*in.Status)
	}
	now := s.now()
	d.LastModifiedAt = &now
	d.LastModifiedBy = actor

	if err := s.repo.UpdateDetail(ctx, d); err != nil {
		return nil, err
	}
	resp := toDetailResponse(d)
	return &resp, nil
}

func (s *rfqChildService) DeleteDetail(ctx context.Context, id int) error {
	return notFound(s.repo.SoftDeleteDetail(ctx, id), "RFQ detail not found")
}

// ── Pictures and files ────────────────────────────────────────────────────────

func (s *rfqChildService) ListPictures(ctx context.Context, rfqID int) ([]dto.AttachmentResponse, error) {
	if err := s.parent(ctx, rfqID); err != nil {
		return nil, err
	}
	pictures, err := s.repo.ListPictures(ctx, rfqID)
	if err != nil {
		return nil, err
	}
	return toPictureResponses(pictures), nil
}

func (s *rfqChildService) AddPicture(ctx context.Context, actor string, rfqID int, f *dto.FileUpload) (*dto.AttachmentResponse, error) {
	if f == nil {
		return nil, apierror.Validation("No file uploaded")
	}
	if err := s.parent(ctx, rfqID); err != nil {
		return nil, err
	}
	p := &model.RfqPicture{Attachment: newAttachment(rfqID, f, actor, s.now())}
	if err := s.repo.CreatePicture(ctx, nil, p); err != nil {
		return nil, err
	}
	resp := toAttachmentResponse(&p.Attachment)
	return &resp, nil
}

func (s *rfqChildService) DeletePicture(ctx context.Context, id int) error {
	return notFound(s.repo.SoftDeletePicture(ctx, id), "Picture not found")
}

func (s *rfqChildService) ListFiles(ctx context.Context, rfqID int) ([]dto.AttachmentResponse, error) {
	if err := s.parent(ctx, rfqID); err != nil {
		return nil, err
	}
	files, err := s.repo.ListFiles(ctx, rfqID)
	if err != nil {
		return nil, err
	}
	return toFileResponses(files), nil
}

func (s *rfqChildService) AddFile(ctx context.Context, actor string, rfqID int, f *dto.FileUpload) (*dto.AttachmentResponse, error) {
	if f == nil {
		return nil, apierror.Validation("No file uploaded")
	}
	if err := s.parent(ctx, rfqID); err != nil {
		return nil, err
	}
	file := &model.RfqFile{Attachment: newAttachment(rfqID, f, actor, s.now())}
	if err := s.repo.CreateFile(ctx, nil, file); err != nil {
		return nil, err
	}
	resp := toAttachmentResponse(&file.Attachment)
	return &resp, nil
}

func (s *rfqChildService) DeleteFile(ctx context.Context, id int) error {
	return notFound(s.repo.SoftDeleteFile(ctx, id), "File not found")
}

// ── Invitations ───────────────────────────────────────────────────────────────

func (s *rfqChildService) ListVendors(ctx context.Context, rfqID int) ([]dto.RfqVendorResponse, error) {
	if err := s.parent(ctx, rfqID); err != nil {
		return nil, err
	}
	invites, err := s.repo.ListVendors(ctx, rfqID)
	if err != nil {
		return nil, err
	}
	return toRfqVendorResponses(invites), nil
}

func (s *rfqChildService) AddVendor(ctx context.Context, actor string, rfqID int, req dto.RfqVendorRequest) (*dto.RfqVendorResponse, error) {
	if err := s.parent(ctx, rfqID); err != nil {
		return nil, err
	}
	vendor, err := s.vendors.FindByID(ctx, req.VendorID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && bool(vendor.IsDeleted)) {
		return nil, apierror.Validation("Vendor not found")
	}
	if err != nil {
		return nil, err
	}
	inv := model.RfqVendor{
		RfqID:          rfqID,
		VendorID:       req.VendorID,
		Status:         model.LineOpen,
		CreatedAt:      s.now(),
		LastModifiedBy: actor,
	}
	if req.Status != nil {
		inv.Status = model.LineStatus(*req.Status)
	}
	created := []model.RfqVendor{inv}
	if err := s.repo.CreateVendors(ctx, nil, created); err != nil {
		return nil, err
	}
	created[0].Vendor = vendor
	resp := toRfqVendorResponse(&created[0])
	return &resp, nil
}

func (s *rfqChildService) UpdateVendor(ctx context.Context, actor string, id int, req dto.UpdateRfqVendorRequest) (*dto.RfqVendorResponse, error) {
	inv, err := s.repo.FindVendor(ctx, id)
	if err != nil {
		return nil, notFound(err, "RFQ vendor not found")
	}
	if req.Status != nil {
		inv.Status = model.LineStatus(*req.Status)
	}
	now := s.now()
	inv.LastModifiedAt = &now
	inv.LastModifiedBy = actor
	if err := s.repo.UpdateVendor(ctx, inv); err != nil {
		return nil, err
	}
	resp := toRfqVendorResponse(inv)
	return &resp, nil
}

func (s *rfqChildService) DeleteVendor(ctx context.Context, id int) error {
	return notFound(s.repo.SoftDeleteVendor(ctx, id), "RFQ vendor not found")
}
