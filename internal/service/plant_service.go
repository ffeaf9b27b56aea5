package service

import (
	"context"

	"github.com/embunadw/E-Procurement/internal/apierror"
	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/model"
	"github.com/embunadw/E-Procurement/internal/repository"
)

type PlantService interface {
	List(ctx context.Context, q dto.ListQuery) (*dto.Page[dto.PlantResponse], error)
	Get(ctx context.Context, id int) (*dto.PlantResponse, error)
	Create(ctx context.Context, req dto.PlantRequest) (*dto.PlantResponse, error)
	Update(ctx context.Context, id int, req dto.PlantRequest) (*dto.PlantResponse, error)
	Delete(ctx context.Context, id int) error
}

type plantService struct {
	repo repository.PlantRepository
}

func NewPlantService(repo repository.PlantRepository) PlantService {
	return &plantService{repo: repo}
}

func (s *plantService) List(ctx context.Context, q dto.ListQuery) (*dto.Page[dto.PlantResponse], error) {
	q = q.Normalize(dto.DefaultMasterLimit)
	plants, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PlantResponse, len(plants))
	for i := range plants {
		items[i] = toPlantResponse(&plants[i])
	}
	page := dto.NewPage(items, total, q)
	return &page, nil
}

func (s *plantService) Get(ctx context.Context, id int) (*dto.PlantResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Plant not found")
	}
	resp := toPlantResponse(p)
	return &resp, nil
}

func (s *plantService) Create(ctx context.Context, req dto.PlantRequest) (*dto.PlantResponse, error) {
	if err := s.checkCode(ctx, req.Plant, 0); err != nil {
		return nil, err
	}
	p := &model.Plant{
		Plant:    req.Plant,
		Postcode: req.Postcode,
		City:     req.City,
		Name:     req.Name,
		UserID:   req.UserID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := toPlantResponse(p)
	return &resp, nil
}

func (s *plantService) Update(ctx context.Context, id int, req dto.PlantRequest) (*dto.PlantResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Plant not found")
	}
	if err := s.checkCode(ctx, req.Plant, id); err != nil {
		return nil, err
	}
	p.Plant = req.Plant
	p.Postcode = req.Postcode
	p.City = req.City
	p.Name = req.Name
	if req.UserID != nil {
		p.UserID = req.UserID
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := toPlantResponse(p)
	return &resp, nil
}

func (s *plantService) Delete(ctx context.Context, id int) error {
	return notFound(s.repo.SoftDelete(ctx, id), "Plant not found")
}

func (s *plantService) checkCode(ctx context.Context, code string, selfID int) error {
	taken, err := s.repo.CodeTaken(ctx, code, selfID)
	if err != nil {
		return err
	}
	if taken {
		return apierror.Duplicate("Plant code already exists")
	}
	return nil
}
