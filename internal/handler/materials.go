package handler

import (
	"net/http"

	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/service"

	"github.com/gin-gonic/gin"
)

// ── Material groups ──────────────────────────────────────────────────────────

type MaterialGroupsHandler struct{ svc service.MaterialGroupService }

func NewMaterialGroupsHandler(svc service.MaterialGroupService) *MaterialGroupsHandler {
	return &MaterialGroupsHandler{svc: svc}
}

func (h *MaterialGroupsHandler) List(c *gin.Context) {
	q, ok := bindList(c)
	if !ok {
		return
	}
	page, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Successfully retrieved material group data", page))
}

func (h *MaterialGroupsHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	group, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Material group found", group))
}

func (h *MaterialGroupsHandler) Create(c *gin.Context) {
	var req dto.MaterialGroupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	group, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Material group created successfully", group))
}

func (h *MaterialGroupsHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.MaterialGroupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	group, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Material group updated successfully", group))
}

func (h *MaterialGroupsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Material group deleted successfully", nil))
}

// ── Materials ────────────────────────────────────────────────────────────────

type MaterialsHandler struct{ svc service.MaterialService }

func NewMaterialsHandler(svc service.MaterialService) *MaterialsHandler {
	return &MaterialsHandler{svc: svc}
}

func (h *MaterialsHandler) List(c *gin.Context) {
	q, ok := bindList(c)
	if !ok {
		return
	}
	page, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Successfully retrieved material data", page))
}

func (h *MaterialsHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	m, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Material found", m))
}

func (h *MaterialsHandler) Create(c *gin.Context) {
	var req dto.MaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	m, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create material")
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Material has been created successfully", m))
}

func (h *MaterialsHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.MaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	m, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to update material")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Material updated successfully", m))
}

func (h *MaterialsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete material")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Material deleted successfully", nil))
}

// ── Subcontractors ───────────────────────────────────────────────────────────

type SubcontractorsHandler struct{ svc service.SubcontractorService }

func NewSubcontractorsHandler(svc service.SubcontractorService) *SubcontractorsHandler {
	return &SubcontractorsHandler{svc: svc}
}

func (h *SubcontractorsHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Successfully retrieved subcontractor data", rows))
}
