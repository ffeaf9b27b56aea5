package handler

import (
	"net/http"

	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Staff login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LoginVendor godoc
// @Summary Vendor login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.VendorLoginRequest true "Credentials"
// @Success 200 {object} dto.VendorLoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /auth/login-vendor [post]
func (h *AuthHandler) LoginVendor(c *gin.Context) {
	var req dto.VendorLoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.LoginVendor(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) RegisterVendor(c *gin.Context) {
	var req dto.RegisterVendorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegisterVendor(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Vendor and KBLI registered successfully", resp))
}
