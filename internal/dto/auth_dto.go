package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	EmailSF  string `json:"email_sf" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type VendorLoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterVendorRequest is the vendor self-registration payload. KBLI ids may
// arrive as numbers or numeric strings, under kbli_ids or the legacy kbli_id.
// Field rules are checked by the service so that the messages match the portal.
type RegisterVendorRequest struct {
	CompanyName    string `json:"company_name"`
	Telephone      string `json:"telephone"`
	Address        string `json:"address"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	VendorCategory string `json:"vendor_category"`
	NIB            string `json:"nib"`
	Referral       string `json:"referral"`
	CompanyAffID   any    `json:"company_aff_id"`
	KbliIDs        []any  `json:"kbli_ids"`
	KbliID         []any  `json:"kbli_id"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// SessionUser mirrors the staff token claims for the client.
type SessionUser struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	UserName string `json:"userName"`
}

type LoginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    SessionUser `json:"user"`
}

type VendorSession struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	VendorID    *int   `json:"vendor_id"`
	CompanyName string `json:"company_name"`
}

type VendorLoginResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Token   string        `json:"token"`
	Data    VendorSession `json:"data"`
}

type RegisterVendorResponse struct {
	ID             int     `json:"id"`
	CompanyName    string  `json:"company_name"`
	Email          string  `json:"email"`
	Telephone      *string `json:"telephone"`
	Address        *string `json:"address"`
	NIB            string  `json:"nib"`
	VendorCategory *string `json:"vendor_category"`
	Referral       *string `json:"referral"`
	CompanyAffID   *int    `json:"company_aff_id"`
	VendorID       *int    `json:"vendor_id"`
	KbliIDs        []int   `json:"kbli_ids"`
}
