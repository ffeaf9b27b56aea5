package service

import (
	"context"

	"github.com/embunadw/E-Procurement/internal/apierror"
	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/model"
	"github.com/embunadw/E-Procurement/internal/repository"
)

type VendorService interface {
	List(ctx context.Context, q dto.ListQuery) (*dto.Page[dto.VendorResponse], error)
	Get(ctx context.Context, id int) (*dto.VendorResponse, error)
	Create(ctx context.Context, actor string, req dto.CreateVendorRequest) (*dto.VendorResponse, error)
	Update(ctx context.Context, actor string, id int, req dto.UpdateVendorRequest) (*dto.VendorResponse, error)
	Delete(ctx context.Context, id int) error
}

type vendorService struct {
	repo repository.VendorRepository
	now  Clock
}

func NewVendorService(repo repository.VendorRepository, now Clock) VendorService {
	return &vendorService{repo: repo, now: now}
}

func (s *vendorService) List(ctx context.Context, q dto.ListQuery) (*dto.Page[dto.VendorResponse], error) {
	q = q.Normalize(dto.DefaultMasterLimit)
	vendors, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VendorResponse, len(vendors))
	for i := range vendors {
		items[i] = toVendorResponse(&vendors[i])
	}
	page := dto.NewPage(items, total, q)
	return &page, nil
}

func (s *vendorService) Get(ctx context.Context, id int) (*dto.VendorResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Vendor not found")
	}
	resp := toVendorResponse(v)
	return &resp, nil
}

func (s *vendorService) Create(ctx context.Context, actor string, req dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	if req.Name == "" || req.Email == "" || req.VendorCode == "" || req.Password == "" {
		return nil, apierror.Validation("Name, email, vendor code, and password are required")
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	v := &model.Vendor{
		Name:        req.Name,
		Email:       req.Email,
		CountryCode: req.CountryCode,
		PostalCode:  req.PostalCode,
		Address:     req.Address,
		VendorCode:  req.VendorCode,
		PhoneNo:     req.PhoneNo,
		VendorType:  req.VendorType,
		EmailPO:     req.EmailPO,
		CreatedAt:   s.now(),
		CreatedBy:   strPtr(actor),
		Password:    hash,
	}
	if err := s.repo.Create(ctx, nil, v); err != nil {
		return nil, err
	}
	resp := toVendorResponse(v)
	return &resp, nil
}

func (s *vendorService) Update(ctx context.Context, actor string, id int, req dto.UpdateVendorRequest) (*dto.VendorResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Vendor not found")
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		v.Password = hash
	}
	assign(&v.Name, req.Name)
	assign(&v.Email, req.Email)
	assign(&v.VendorCode, req.VendorCode)
	if req.CountryCode != nil {
		v.CountryCode = req.CountryCode
	}
	if req.PostalCode != nil {
		v.PostalCode = req.PostalCode
	}
	if req.Address != nil {
		v.Address = req.Address
	}
	if req.PhoneNo != nil {
		v.PhoneNo = req.PhoneNo
	}
	if req.VendorType != nil {
		v.VendorType = req.VendorType
	}
	if req.EmailPO != nil {
		v.EmailPO = req.EmailPO
	}
	now := s.now()
	v.UpdatedAt = &now
	v.LastModifiedBy = strPtr(actor)

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	resp := toVendorResponse(v)
	return &resp, nil
}

func (s *vendorService) Delete(ctx context.Context, id int) error {
	return notFound(s.repo.SoftDelete(ctx, id), "Vendor not found")
}
