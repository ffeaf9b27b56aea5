package service

import (
	"context"

	"github.com/embunadw/E-Procurement/internal/apierror"
	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/model"
	"github.com/embunadw/E-Procurement/internal/repository"
)

type KbliService interface {
	List(ctx context.Context, q dto.ListQuery) (*dto.Page[dto.KbliResponse], error)
	Get(ctx context.Context, id int) (*dto.KbliResponse, error)
	Create(ctx context.Context, req dto.KbliRequest) (*dto.KbliResponse, error)
	Update(ctx context.Context, id int, req dto.KbliRequest) (*dto.KbliResponse, error)
	Delete(ctx context.Context, id int) error
}

type kbliService struct {
	repo repository.KbliRepository
	now  Clock
}

func NewKbliService(repo repository.KbliRepository, now Clock) KbliService {
	return &kbliService{repo: repo, now: now}
}

func (s *kbliService) List(ctx context.Context, q dto.ListQuery) (*dto.Page[dto.KbliResponse], error) {
	q = q.Normalize(dto.DefaultMasterLimit)
	rows, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.KbliResponse, len(rows))
	for i := range rows {
		items[i] = toKbliResponse(&rows[i])
	}
	page := dto.NewPage(items, total, q)
	return &page, nil
}

func (s *kbliService) Get(ctx context.Context, id int) (*dto.KbliResponse, error) {
	k, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "KBLI not found")
	}
	resp := toKbliResponse(k)
	return &resp, nil
}

func (s *kbliService) Create(ctx context.Context, req dto.KbliRequest) (*dto.KbliResponse, error) {
	if err := checkKbliFields(req); err != nil {
		return nil, err
	}
	if err := s.checkCode(ctx, req.Code, 0); err != nil {
		return nil, err
	}
	now := s.now()
	k := &model.Kbli{
		Year:        req.Year,
		Code:        req.Code,
		Title:       req.Title,
		Description: req.Description,
		Enable:      model.FlagOn,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, k); err != nil {
		return nil, err
	}
	resp := toKbliResponse(k)
	return &resp, nil
}

func (s *kbliService) Update(ctx context.Context, id int, req dto.KbliRequest) (*dto.KbliResponse, error) {
	if err := checkKbliFields(req); err != nil {
		return nil, err
	}
	k, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "KBLI not found")
	}
	if err := s.checkCode(ctx, req.Code, id); err != nil {
		return nil, err
	}
	k.Year, k.Code, k.Title, k.Description = req.Year, req.Code, req.Title, req.Description
	k.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, k); err != nil {
		return nil, err
	}
	resp := toKbliResponse(k)
	return &resp, nil
}

func (s *kbliService) Delete(ctx context.Context, id int) error {
	return notFound(s.repo.Disable(ctx, id), "KBLI not found")
}

func (s *kbliService) checkCode(ctx context.Context, code string, selfID int) error {
	taken, err := s.repo.CodeTaken(ctx, code, selfID)
	if err != nil {
		return err
	}
	if taken {
		return apierror.Conflict("KBLI Code is using")
	}
	return nil
}

func checkKbliFields(req dto.KbliRequest) error {
	if req.Year == "" || req.Code == "" || req.Title == "" || req.Description == "" {
		return apierror.Validation("Missing required fields")
	}
	return nil
}
