package handler

import (
	"net/http"

	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/service"

	"github.com/gin-gonic/gin"
)

type KblisHandler struct{ svc service.KbliService }

func NewKblisHandler(svc service.KbliService) *KblisHandler { return &KblisHandler{svc: svc} }

func (h *KblisHandler) List(c *gin.Context) {
	q, ok := bindList(c)
	if !ok {
		return
	}
	page, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Successfully retrieved KBLI data", page))
}

func (h *KblisHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	k, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("KBLI found", k))
}

func (h *KblisHandler) Create(c *gin.Context) {
	var req dto.KbliRequest
	if !bindAndValidate(c, &req) {
		return
	}
	k, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusCreated, dto.OK("KBLI created successfully", k))
}

func (h *KblisHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.KbliRequest
	if !bindAndValidate(c, &req) {
		return
	}
	k, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("KBLI updated successfully", k))
}

func (h *KblisHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("KBLI deleted successfully", nil))
}
