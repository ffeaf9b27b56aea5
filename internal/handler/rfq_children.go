package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/embunadw/E-Procurement/internal/apierror"
	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/service"

	"github.com/gin-gonic/gin"
)

// RfqChildrenHandler serves the line, picture, file and invitation
// collections hanging off an RFQ.
type RfqChildrenHandler struct {
	svc       service.RfqChildService
	maxUpload int64
}

func NewRfqChildrenHandler(svc service.RfqChildService, maxUpload int64) *RfqChildrenHandler {
	return &RfqChildrenHandler{svc: svc, maxUpload: maxUpload}
}

// ── Details ──────────────────────────────────────────────────────────────────

func (h *RfqChildrenHandler) ListDetails(c *gin.Context) {
	rfqID, ok := parseID(c, "id")
	if !ok {
		return
	}
	rows, err := h.svc.ListDetails(c.Request.Context(), rfqID)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Successfully retrieved RFQ details", rows))
}

// AddDetails accepts either a single line object or an array of lines.
func (h *RfqChildrenHandler) AddDetails(c *gin.Context) {
	rfqID, ok := parseID(c, "id")
	if !ok {
		return
	}
	lines, err := bindLines(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	rows, err := h.svc.AddDetails(c.Request.Context(), actor(c), rfqID, lines)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusCreated, dto.OK("RFQ detail created successfully", rows))
}

func bindLines(body io.Reader) ([]dto.RfqLineInput, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, apierror.Validation("Missing required fields")
	}
	var lines []dto.RfqLineInput
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &lines); err != nil {
			return nil, apierror.Validation("details must be a JSON array of lines")
		}
	} else {
		var line dto.RfqLineInput
		if err := json.Unmarshal(raw, &line); err != nil {
			return nil, apierror.Validation("Invalid JSON")
		}
		lines = []dto.RfqLineInput{line}
	}
	if len(lines) == 0 {
		return nil, apierror.Validation("Missing required fields")
	}
	return lines, nil
}

func (h *RfqChildrenHandler) UpdateDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in dto.RfqLineInput
	if !bindAndValidate(c, &in) {
		return
	}
	row, err := h.svc.UpdateDetail(c.Request.Context(), actor(c), id, in)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("RFQ detail updated successfully", row))
}

func (h *RfqChildrenHandler) DeleteDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteDetail(c.Request.Context(), id); err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("RFQ detail deleted successfully", nil))
}

// ── Pictures & files ─────────────────────────────────────────────────────────

func (h *RfqChildrenHandler) ListPictures(c *gin.Context) {
	rfqID, ok := parseID(c, "id")
	if !ok {
		return
	}
	rows, err := h.svc.ListPictures(c.Request.Context(), rfqID)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Successfully retrieved pictures", rows))
}

func (h *RfqChildrenHandler) AddPicture(c *gin.Context) {
	rfqID, ok := parseID(c, "id")
	if !ok {
		return
	}
	f, ok := h.requireFile(c)
	if !ok {
		return
	}
	row, err := h.svc.AddPicture(c.Request.Context(), actor(c), rfqID, f)
	if err != nil {
		respondError(c, err, "Error uploading picture")
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Picture uploaded successfully", row))
}

func (h *RfqChildrenHandler) DeletePicture(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeletePicture(c.Request.Context(), id); err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Picture deleted successfully", nil))
}

func (h *RfqChildrenHandler) ListFiles(c *gin.Context) {
	rfqID, ok := parseID(c, "id")
	if !ok {
		return
	}
	rows, err := h.svc.ListFiles(c.Request.Context(), rfqID)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Successfully retrieved files", rows))
}

func (h *RfqChildrenHandler) AddFile(c *gin.Context) {
	rfqID, ok := parseID(c, "id")
	if !ok {
		return
	}
	f, ok := h.requireFile(c)
	if !ok {
		return
	}
	row, err := h.svc.AddFile(c.Request.Context(), actor(c), rfqID, f)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusCreated, dto.OK("File uploaded successfully", row))
}

func (h *RfqChildrenHandler) DeleteFile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteFile(c.Request.Context(), id); err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("File deleted successfully", nil))
}

func (h *RfqChildrenHandler) requireFile(c *gin.Context) (*dto.FileUpload, bool) {
	f, err := readFile(c, "file", h.maxUpload)
	if err != nil {
		respondError(c, err, "Internal server error")
		return nil, false
	}
	if f == nil {
		c.JSON(http.StatusBadRequest, apierror.New("No file uploaded"))
		return nil, false
	}
	return f, true
}

// ── Invited vendors ──────────────────────────────────────────────────────────

func (h *RfqChildrenHandler) ListVendors(c *gin.Context) {
	rfqID, ok := parseID(c, "id")
	if !ok {
		return
	}
	rows, err := h.svc.ListVendors(c.Request.Context(), rfqID)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Successfully retrieved RFQ vendors", rows))
}

func (h *RfqChildrenHandler) AddVendor(c *gin.Context) {
	rfqID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.RfqVendorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	row, err := h.svc.AddVendor(c.Request.Context(), actor(c), rfqID, req)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Vendor added to RFQ successfully", row))
}

func (h *RfqChildrenHandler) UpdateVendor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateRfqVendorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	row, err := h.svc.UpdateVendor(c.Request.Context(), actor(c), id, req)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("RFQ vendor updated successfully", row))
}

func (h *RfqChildrenHandler) DeleteVendor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteVendor(c.Request.Context(), id); err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("RFQ vendor deleted successfully", nil))
}
