package service

import (
	"context"
	"regexp"

	"github.com/embunadw/E-Procurement/internal/apierror"
	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/model"
	"github.com/embunadw/E-Procurement/internal/repository"
)

var personalNumberRe = regexp.MustCompile(`^\d{1,15}$`)

const (
	minPasswordLen = 6
	maxPasswordLen = 12
)

type UserService interface {
	List(ctx context.Context, q dto.ListQuery) (*dto.Page[dto.UserResponse], error)
	Get(ctx context.Context, id int) (*dto.UserResponse, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id int, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id int) error
}

type userService struct {
	repo repository.UserRepository
	now  Clock
}

func NewUserService(repo repository.UserRepository, now Clock) UserService {
	return &userService{repo: repo, now: now}
}

func (s *userService) List(ctx context.Context, q dto.ListQuery) (*dto.Page[dto.UserResponse], error) {
	q = q.Normalize(dto.DefaultMasterLimit)
	users, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, len(users))
	for i := range users {
		items[i] = toUserResponse(&users[i])
	}
	page := dto.NewPage(items, total, q)
	return &page, nil
}

// Get reports soft-deleted users as missing.
func (s *userService) Get(ctx context.Context, id int) (*dto.UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	if u.IsDeleted {
		return nil, apierror.NotFound("User not found")
	}
	resp := toUserResponse(u)
	return &resp, nil
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	if !personalNumberRe.MatchString(req.PersonalNumber) {
		return nil, apierror.Validation("Personal number must be numeric and max 15 digits")
	}
	if err := s.checkUnique(ctx, 0, req.EmailSF, req.Username, req.PersonalNumber); err != nil {
		return nil, err
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	u := &model.User{
		Username:       req.Username,
		Password:       hash,
		PersonalNumber: req.PersonalNumber,
		Dept:           req.Dept,
		Department:     req.Department,
		Division:       req.Division,
		EmailSF:        req.EmailSF,
		Role:           role,
		CreatedAt:      s.now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	resp := toUserResponse(u)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, id int, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	if u.IsDeleted {
		return nil, apierror.NotFound("User not found")
	}

	var email, username, personal string
	if req.EmailSF != nil && *req.EmailSF != u.EmailSF {
		email = *req.EmailSF
	}
	if req.Username != nil && *req.Username != u.Username {
		username = *req.Username
	}
	if req.PersonalNumber != nil {
		if !personalNumberRe.MatchString(*req.PersonalNumber) {
			return nil, apierror.Validation("Personal number must be numeric and max 15 digits")
		}
		if *req.PersonalNumber != u.PersonalNumber {
			personal = *req.PersonalNumber
		}
	}
	if err := s.checkUnique(ctx, u.UserID, email, username, personal); err != nil {
		return nil, err
	}

	if req.Password != nil && *req.Password != "" {
		if err := validatePassword(*req.Password); err != nil {
			return nil, err
		}
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	assign(&u.Username, req.Username)
	assign(&u.EmailSF, req.EmailSF)
	assign(&u.Role, req.Role)
	assign(&u.PersonalNumber, req.PersonalNumber)
	assign(&u.Dept, req.Dept)
	assign(&u.Department, req.Department)
	assign(&u.Division, req.Division)

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	resp := toUserResponse(u)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, id int) error {
	return notFound(s.repo.SoftDelete(ctx, id), "User not found")
}

// checkUnique skips empty values.
func (s *userService) checkUnique(ctx context.Context, selfID int, email, username, personal string) error {
	checks := []struct {
		column, value, msg string
	}{
		{repository.UserEmail, email, "Email already exists"},
		{repository.UserName, username, "Username already exists"},
		{repository.UserPersonalNumber, personal, "Personal number already exists"},
	}
	for _, c := range checks {
		if c.value == "" {
			continue
		}
		taken, err := s.repo.ExistsActive(ctx, c.column, c.value, selfID)
		if err != nil {
			return err
		}
		if taken {
			return apierror.Duplicate(c.msg)
		}
	}
	return nil
}

func validatePassword(p string) error {
	if len(p) < minPasswordLen || len(p) > maxPasswordLen {
		return apierror.Validation("Password must be between 6 and 12 characters")
	}
	return nil
}

// assign copies *src into dst when src is set.
func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
