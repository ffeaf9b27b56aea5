package dto

import "time"

// ─── Users ───────────────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Username       string `json:"username"        validate:"required,max=100"`
	EmailSF        string `json:"email_sf"        validate:"required,email"`
	Password       string `json:"password"        validate:"required"`
	Role           string `json:"role"            validate:"omitempty,max=20"`
	PersonalNumber string `json:"personal_number" validate:"required"`
	Dept           string `json:"dept"            validate:"required"`
	Department     string `json:"department"      validate:"required"`
	Division       string `json:"division"        validate:"required"`
}

type UpdateUserRequest struct {
	Username       *string `json:"username"        validate:"omitempty,max=100"`
	EmailSF        *string `json:"email_sf"        validate:"omitempty,email"`
	Password       *string `json:"password"`
	Role           *string `json:"role"            validate:"omitempty,max=20"`
	PersonalNumber *string `json:"personal_number"`
	Dept           *string `json:"dept"`
	Department     *string `json:"department"`
	Division       *string `json:"division"`
}

type UserResponse struct {
	UserID         int       `json:"user_id"`
	Username       string    `json:"username"`
	EmailSF        string    `json:"email_sf"`
	Role           string    `json:"role"`
	PersonalNumber string    `json:"personal_number"`
	Dept           string    `json:"dept"`
	Department     string    `json:"department"`
	Division       string    `json:"division"`
	CreatedAt      time.Time `json:"created_at"`
	IsDeleted      bool      `json:"is_deleted"`
}

// ─── Plants ──────────────────────────────────────────────────────────────────

type PlantRequest struct {
	Plant    string  `json:"plant"    validate:"required,max=20"`
	Postcode *string `json:"postcode"`
	City     *string `json:"city"`
	Name     *string `json:"name"`
	UserID   *int    `json:"user_id"`
}

type PlantResponse struct {
	PlantID   int     `json:"plant_id"`
	Plant     string  `json:"plant"`
	Postcode  *string `json:"postcode"`
	City      *string `json:"city"`
	Name      *string `json:"name"`
	UserID    *int    `json:"user_id"`
	IsDeleted bool    `json:"is_deleted"`
}

// ─── Material groups ─────────────────────────────────────────────────────────

type MaterialGroupRequest struct {
	MaterialType  string  `json:"material_type"              validate:"required"`
	MaterialGroup string  `json:"material_group"             validate:"required"`
	Description   *string `json:"material_group_description"`
	UserID        *int    `json:"user_id"`
}

type MaterialGroupResponse struct {
	MaterialGroupID int     `json:"material_group_id"`
	MaterialType    string  `json:"material_type"`
	MaterialGroup   string  `json:"material_group"`
	Description     *string `json:"material_group_description"`
	UserID          *int    `json:"user_id"`
	IsDeleted       bool    `json:"is_deleted"`
}

// ─── Materials ───────────────────────────────────────────────────────────────

type MaterialRequest struct {
	MaterialGroupID     int     `json:"material_group_id"    validate:"required,min=1"`
	PlantID             int     `json:"plant_id"             validate:"required,min=1"`
	MaterialNumber      string  `json:"material_number"      validate:"required"`
	MaterialDescription *string `json:"material_description"`
	BaseUnit            *string `json:"base_unit"`
}

// MaterialRow is the flattened list row; labels are "-" when the group or
// plant is missing.
type MaterialRow struct {
	MaterialID               int     `json:"material_id"`
	MaterialNumber           string  `json:"material_number"`
	MaterialDescription      *string `json:"material_description"`
	MaterialGroup            string  `json:"material_group"`
	MaterialGroupDescription string  `json:"material_group_description"`
	MaterialType             string  `json:"material_type"`
	BaseUnit                 *string `json:"base_unit"`
	Plant                    string  `json:"plant"`
}

type MaterialResponse struct {
	MaterialID          int                    `json:"material_id"`
	MaterialGroupID     *int                   `json:"material_group_id"`
	MaterialNumber      string                 `json:"material_number"`
	MaterialDescription *string                `json:"material_description"`
	BaseUnit            *string                `json:"base_unit"`
	PlantID             *int                   `json:"plant_id"`
	IsDeleted           bool                   `json:"is_deleted"`
	MaterialGroup       *MaterialGroupResponse `json:"materialGroup,omitempty"`
	Plant               *PlantResponse         `json:"plant,omitempty"`
}

// ─── Vendors ─────────────────────────────────────────────────────────────────

type CreateVendorRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"        validate:"omitempty,email"`
	VendorCode  string  `json:"vendor_code"`
	Password    string  `json:"password"`
	CountryCode *string `json:"country_code"`
	PostalCode  *string `json:"postal_code"`
	Address     *string `json:"address"`
	PhoneNo     *string `json:"phone_no"`
	VendorType  *string `json:"vendor_type"`
	EmailPO     *string `json:"email_po"`
}

type UpdateVendorRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	VendorCode  *string `json:"vendor_code"`
	Password    *string `json:"password"`
	CountryCode *string `json:"country_code"`
	PostalCode  *string `json:"postal_code"`
	Address     *string `json:"address"`
	PhoneNo     *string `json:"phone_no"`
	VendorType  *string `json:"vendor_type"`
	EmailPO     *string `json:"email_po"`
}

type VendorResponse struct {
	VendorID       int        `json:"vendor_id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	CountryCode    *string    `json:"country_code"`
	PostalCode     *string    `json:"postal_code"`
	Address        *string    `json:"address"`
	VendorCode     string     `json:"vendor_code"`
	PhoneNo        *string    `json:"phone_no"`
	VendorType     *string    `json:"vendor_type"`
	EmailPO        *string    `json:"email_po"`
	CreatedAt      time.Time  `json:"created_at"`
	CreatedBy      *string    `json:"created_by"`
	UpdatedAt      *time.Time `json:"updated_at"`
	LastModifiedBy *string    `json:"last_modified_by"`
	IsDeleted      bool       `json:"is_deleted"`
}

// ─── KBLI ────────────────────────────────────────────────────────────────────

// KbliRequest fields are all required; the service reports a single message.
type KbliRequest struct {
	Year        string `json:"year"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type KbliResponse struct {
	ID          int       `json:"id"`
	Year        string    `json:"year"`
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Enable      bool      `json:"enable"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ─── Subcontractors ──────────────────────────────────────────────────────────

type SubcontractorResponse struct {
	ID            int     `json:"id"`
	Material      string  `json:"Material"`
	Description   *string `json:"Description"`
	MaterialGroup *string `json:"material_group"`
	UOM           *string `json:"uom"`
}
