package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/embunadw/E-Procurement/internal/apierror"
	"github.com/embunadw/E-Procurement/internal/config"
	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/model"
	"github.com/embunadw/E-Procurement/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shockerli/cvt"
	"gorm.io/gorm"
)

const (
	staticAdminID   = 0
	staticAdminName = "Patria Admin"
	maxNIBLength    = 13
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	LoginVendor(ctx context.Context, req dto.VendorLoginRequest) (*dto.VendorLoginResponse, error)
	// RegisterVendor creates the vendor master row, the portal account and
	// the KBLI links in one transaction.
	RegisterVendor(ctx context.Context, req dto.RegisterVendorRequest) (*dto.RegisterVendorResponse, error)
}

type authService struct {
	users   repository.UserRepository
	vendors repository.VendorRepository
	kblis   repository.KbliRepository
	cfg     *config.Config
	now     Clock
}

func NewAuthService(
	users repository.UserRepository,
	vendors repository.VendorRepository,
	kblis repository.KbliRepository,
	cfg *config.Config,
	now Clock,
) AuthService {
	return &authService{users: users, vendors: vendors, kblis: kblis, cfg: cfg, now: now}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.cfg.StaticAdminEmail != "" && s.cfg.StaticAdminPassword != "" &&
		strings.EqualFold(req.EmailSF, s.cfg.StaticAdminEmail) {
		if req.Password != s.cfg.StaticAdminPassword {
			return nil, apierror.Unauthorized("Invalid Password")
		}
		return s.staffSession(staticAdminID, s.cfg.StaticAdminEmail, model.RolePatria, staticAdminName)
	}

	user, err := s.users.FindActiveByEmail(ctx, req.EmailSF)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Unauthorized("User is not active")
		}
		return nil, err
	}
	if !checkPassword(user.Password, req.Password) {
		return nil, apierror.Unauthorized("Invalid Password")
	}
	return s.staffSession(user.UserID, user.EmailSF, strings.ToLower(user.Role), user.Username)
}

func (s *authService) staffSession(id int, email, role, name string) (*dto.LoginResponse, error) {
	token, err := s.sign(jwt.MapClaims{
		"id":       id,
		"email":    email,
		"role":     role,
		"userName": name,
	}, s.cfg.JWTExpirationHours)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    dto.SessionUser{ID: id, Email: email, Role: role, UserName: name},
	}, nil
}

func (s *authService) LoginVendor(ctx context.Context, req dto.VendorLoginRequest) (*dto.VendorLoginResponse, error) {
	rv, err := s.vendors.FindRegistrationByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Unauthorized("Account not found.")
		}
		return nil, err
	}
	if !checkPassword(rv.Password, req.Password) {
		return nil, apierror.Unauthorized("Wrong password.")
	}

	claims := jwt.MapClaims{
		"id":       rv.ID,
		"email":    rv.Email,
		"role":     model.RoleVendor,
		"userName": rv.CompanyName,
	}
	if rv.VendorID != nil {
		claims["vendor_id"] = *rv.VendorID
	}
	token, err := s.sign(claims, s.cfg.VendorJWTExpirationHours)
	if err != nil {
		return nil, err
	}
	return &dto.VendorLoginResponse{
		Success: true,
		Message: "Login berhasil",
		Token:   token,
		Data: dto.VendorSession{
			ID:          rv.ID,
			Email:       rv.Email,
			Name:        rv.CompanyName,
			VendorID:    rv.VendorID,
			CompanyName: rv.CompanyName,
		},
	}, nil
}

func (s *authService) sign(claims jwt.MapClaims, hours int) (string, error) {
	if hours <= 0 {
		hours = 24
	}
	now := s.now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(time.Duration(hours) * time.Hour).Unix()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

// ── Vendor self-registration ──────────────────────────────────────────────────

func (s *authService) RegisterVendor(ctx context.Context, req dto.RegisterVendorRequest) (*dto.RegisterVendorResponse, error) {
	rawKblis := req.KbliIDs
	if len(rawKblis) == 0 {
		rawKblis = req.KbliID
	}
	if req.CompanyName == "" || req.Telephone == "" || req.Address == "" || req.Email == "" ||
		req.Password == "" || req.VendorCategory == "" || req.NIB == "" ||
		req.CompanyAffID == nil || len(rawKblis) == 0 {
		return nil, apierror.Validation("All data must be filled in and the KBLI ID must be an array.")
	}
	if len(req.NIB) > maxNIBLength {
		return nil, apierror.Validation("NIB maximum 13 characters.")
	}
	if !isDigits(req.NIB) {
		return nil, apierror.Validation("NIB may only contain numbers.")
	}
	affID, err := cvt.IntE(req.CompanyAffID)
	if err != nil {
		return nil, apierror.Validation("company affiliate must be numeric.")
	}
	kbliIDs, err := parseIDList(rawKblis)
	if err != nil {
		return nil, apierror.Validation("All KBLI IDs must be numeric.")
	}
	found, err := s.kblis.CountEnabled(ctx, kbliIDs)
	if err != nil {
		return nil, err
	}
	if int(found) != len(kbliIDs) {
		return nil, apierror.Validation("One or more KBLI IDs are not registered.")
	}

	if taken, err := s.vendors.RegistrationEmailTaken(ctx, req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, apierror.Duplicate("Email is already registered.")
	}
	if taken, err := s.vendors.NIBTaken(ctx, req.NIB); err != nil {
		return nil, err
	} else if taken {
		return nil, apierror.Duplicate("NIB has been registered.")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	system := "system"
	vendor := &model.Vendor{
		Name:       req.CompanyName,
		Email:      req.Email,
		Address:    strPtr(req.Address),
		VendorCode: req.NIB,
		PhoneNo:    strPtr(req.Telephone),
		VendorType: strPtr(req.VendorCategory),
		EmailPO:    strPtr(req.Email),
		CreatedAt:  now,
		CreatedBy:  &system,
		Password:   hash,
	}
	rv := &model.RegisterVendor{
		CompanyName:    req.CompanyName,
		Email:          req.Email,
		Password:       hash,
		Telephone:      strPtr(req.Telephone),
		Address:        strPtr(req.Address),
		NIB:            req.NIB,
		VendorCategory: strPtr(req.VendorCategory),
		Referral:       strPtr(req.Referral),
		CompanyAffID:   &affID,
		CreatedAt:      now,
	}

	err = runTx(ctx, s.vendors.DB(), func(tx *gorm.DB) error {
		if err := s.vendors.Create(ctx, tx, vendor); err != nil {
			return err
		}
		rv.VendorID = &vendor.VendorID
		if err := s.vendors.CreateRegistration(ctx, tx, rv); err != nil {
			return err
		}
		details := make([]model.KbliDetail, len(kbliIDs))
		for i, id := range kbliIDs {
			details[i] = model.KbliDetail{KbliID: id, RegisterVendorID: rv.ID}
		}
		return s.vendors.CreateKbliDetails(ctx, tx, details)
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegisterVendorResponse{
		ID:             rv.ID,
		CompanyName:    rv.CompanyName,
		Email:          rv.Email,
		Telephone:      rv.Telephone,
		Address:        rv.Address,
		NIB:            rv.NIB,
		VendorCategory: rv.VendorCategory,
		Referral:       rv.Referral,
		CompanyAffID:   rv.CompanyAffID,
		VendorID:       rv.VendorID,
		KbliIDs:        kbliIDs,
	}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseIDList coerces loosely typed ids and drops duplicates, keeping order.
func parseIDList(raw []any) ([]int, error) {
	seen := make(map[int]bool, len(raw))
	ids := make([]int, 0, len(raw))
	for _, v := range raw {
		if v == nil {
			return nil, errors.New("null id")
		}
		id, err := cvt.IntE(v)
		if err != nil || id <= 0 {
			return nil, errors.New("invalid id")
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}
