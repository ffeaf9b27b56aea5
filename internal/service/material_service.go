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

// ── Material groups ───────────────────────────────────────────────────────────

type MaterialGroupService interface {
	List(ctx context.Context, q dto.ListQuery) (*dto.Page[dto.MaterialGroupResponse], error)
	Get(ctx context.Context, id int) (*dto.MaterialGroupResponse, error)
	Create(ctx context.Context, req dto.MaterialGroupRequest) (*dto.MaterialGroupResponse, error)
	Update(ctx context.Context, id int, req dto.MaterialGroupRequest) (*dto.MaterialGroupResponse, error)
	Delete(ctx context.Context, id int) error
}

type materialGroupService struct {
	repo repository.MaterialGroupRepository
}

func NewMaterialGroupService(repo repository.MaterialGroupRepository) MaterialGroupService {
	return &materialGroupService{repo: repo}
}

const errGroupPairTaken = "A combination of material type and material group has been used."

func (s *materialGroupService) List(ctx context.Context, q dto.ListQuery) (*dto.Page[dto.MaterialGroupResponse], error) {
	q = q.Normalize(dto.DefaultMasterLimit)
	groups, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialGroupResponse, len(groups))
	for i := range groups {
		items[i] = toMaterialGroupResponse(&groups[i])
	}
	page := dto.NewPage(items, total, q)
	return &page, nil
}

func (s *materialGroupService) Get(ctx context.Context, id int) (*dto.MaterialGroupResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Material group not found")
	}
	resp := toMaterialGroupResponse(g)
	return &resp, nil
}

func (s *materialGroupService) Create(ctx context.Context, req dto.MaterialGroupRequest) (*dto.MaterialGroupResponse, error) {
	if err := s.checkPair(ctx, req, 0); err != nil {
		return nil, err
	}
	g := &model.MaterialGroup{
		MaterialType: req.MaterialType,
		Group:        req.MaterialGroup,
		Description:  req.Description,
		UserID:       req.UserID,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	resp := toMaterialGroupResponse(g)
	return &resp, nil
}

func (s *materialGroupService) Update(ctx context.Context, id int, req dto.MaterialGroupRequest) (*dto.MaterialGroupResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Material group not found")
	}
	if err := s.checkPair(ctx, req, id); err != nil {
		return nil, err
	}
	g.MaterialType = req.MaterialType
	g.Group = req.MaterialGroup
	g.Description = req.Description
	if req.UserID != nil {
		g.UserID = req.UserID
	}
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	resp := toMaterialGroupResponse(g)
	return &resp, nil
}

func (s *materialGroupService) Delete(ctx context.Context, id int) error {
	return notFound(s.repo.SoftDelete(ctx, id), "Material group not found")
}

func (s *materialGroupService) checkPair(ctx context.Context, req dto.MaterialGroupRequest, selfID int) error {
	taken, err := s.repo.PairTaken(ctx, req.MaterialType, req.MaterialGroup, selfID)
	if err != nil {
		return err
	}
	if taken {
		return apierror.Duplicate(errGroupPairTaken)
	}
	return nil
}

// ── Materials ─────────────────────────────────────────────────────────────────

type MaterialService interface {
	List(ctx context.Context, q dto.ListQuery) (*dto.Page[dto.MaterialRow], error)
	Get(ctx context.Context, id int) (*dto.MaterialResponse, error)
	Create(ctx context.Context, req dto.MaterialRequest) (*dto.MaterialResponse, error)
	Update(ctx context.Context, id int, req dto.MaterialRequest) (*dto.MaterialResponse, error)
	Delete(ctx context.Context, id int) error
}

type materialService struct {
	repo   repository.MaterialRepository
	groups repository.MaterialGroupRepository
	plants repository.PlantRepository
}

func NewMaterialService(
	repo repository.MaterialRepository,
	groups repository.MaterialGroupRepository,
	plants repository.PlantRepository,
) MaterialService {
	return &materialService{repo: repo, groups: groups, plants: plants}
}

func (s *materialService) List(ctx context.Context, q dto.ListQuery) (*dto.Page[dto.MaterialRow], error) {
	q = q.Normalize(dto.DefaultMasterLimit)
	materials, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.MaterialRow, len(materials))
	for i := range materials {
		rows[i] = toMaterialRow(&materials[i])
	}
	page := dto.NewPage(rows, total, q)
	return &page, nil
}

func (s *materialService) Get(ctx context.Context, id int) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Material not found")
	}
	resp := toMaterialResponse(m)
	return &resp, nil
}

func (s *materialService) Create(ctx context.Context, req dto.MaterialRequest) (*dto.MaterialResponse, error) {
	group, plant, err := s.references(ctx, req)
	if err != nil {
		return nil, err
	}
	m := &model.Material{
		MaterialGroupID:     &group.MaterialGroupID,
		MaterialNumber:      req.MaterialNumber,
		BaseUnit:            req.BaseUnit,
		PlantID:             &plant.PlantID,
		MaterialDescription: req.MaterialDescription,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	m.MaterialGroup, m.Plant = group, plant
	resp := toMaterialResponse(m)
	return &resp, nil
}

func (s *materialService) Update(ctx context.Context, id int, req dto.MaterialRequest) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Material not found")
	}
	group, plant, err := s.references(ctx, req)
	if err != nil {
		return nil, err
	}
	m.MaterialGroupID = &group.MaterialGroupID
	m.PlantID = &plant.PlantID
	m.MaterialNumber = req.MaterialNumber
	m.MaterialDescription = req.MaterialDescription
	m.BaseUnit = req.BaseUnit
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	m.MaterialGroup, m.Plant = group, plant
	resp := toMaterialResponse(m)
	return &resp, nil
}

func (s *materialService) Delete(ctx context.Context, id int) error {
	return notFound(s.repo.SoftDelete(ctx, id), "Material not found")
}

// references loads the group and plant a material points at; a missing
// reference is a validation error, not a 404.
func (s *materialService) references(ctx context.Context, req dto.MaterialRequest) (*model.MaterialGroup, *model.Plant, error) {
	group, err := s.groups.FindByID(ctx, req.MaterialGroupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apierror.Validation("Material group not found")
		}
		return nil, nil, err
	}
	plant, err := s.plants.FindByID(ctx, req.PlantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apierror.Validation("Plant not found")
		}
		return nil, nil, err
	}
	return group, plant, nil
}

// ── Subcontractors ────────────────────────────────────────────────────────────

type SubcontractorService interface {
	List(ctx context.Context) ([]dto.SubcontractorResponse, error)
}

type subcontractorService struct {
	repo repository.SubcontractorRepository
}

func NewSubcontractorService(repo repository.SubcontractorRepository) SubcontractorService {
	return &subcontractorService{repo: repo}
}

func (s *subcontractorService) List(ctx context.Context) ([]dto.SubcontractorResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubcontractorResponse, len(rows))
	for i, r := range rows {
		out[i] = dto.SubcontractorResponse{
			ID:            r.ID,
			Material:      r.Material,
			Description:   r.Description,
			MaterialGroup: r.MaterialGroup,
			UOM:           r.UOM,
		}
	}
	return out, nil
}
