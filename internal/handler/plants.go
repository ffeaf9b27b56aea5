package handler

import (
	"net/http"

	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/service"

	"github.com/gin-gonic/gin"
)

type PlantsHandler struct{ svc service.PlantService }

func NewPlantsHandler(svc service.PlantService) *PlantsHandler { return &PlantsHandler{svc: svc} }

func (h *PlantsHandler) List(c *gin.Context) {
	q, ok := bindList(c)
	if !ok {
		return
	}
	page, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Successfully retrieved plant data", page))
}

func (h *PlantsHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	plant, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Plant found", plant))
}

func (h *PlantsHandler) Create(c *gin.Context) {
	var req dto.PlantRequest
	if !bindAndValidate(c, &req) {
		return
	}
	plant, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Plant created successfully", plant))
}

func (h *PlantsHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.PlantRequest
	if !bindAndValidate(c, &req) {
		return
	}
	plant, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Plant updated successfully", plant))
}

func (h *PlantsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Plant deleted successfully", nil))
}
