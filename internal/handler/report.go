package handler

import (
	"net/http"

	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct{ svc service.ReportService }

func NewReportHandler(svc service.ReportService) *ReportHandler { return &ReportHandler{svc: svc} }

func (h *ReportHandler) Dashboard(c *gin.Context) {
	sum, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch dashboard summary")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Dashboard summary fetched successfully", sum))
}

func (h *ReportHandler) VendorDashboard(c *gin.Context) {
	vendorID, ok := vendorScope(c, c.Query("vendor_id"))
	if !ok {
		return
	}
	sum, err := h.svc.VendorDashboard(c.Request.Context(), vendorID)
	if err != nil {
		respondError(c, err, "Failed to fetch vendor dashboard summary")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Vendor dashboard summary fetched successfully", sum))
}

func (h *ReportHandler) Report(c *gin.Context) {
	rows, err := h.svc.Report(c.Request.Context())
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Successfully retrieved report data", rows))
}

func (h *ReportHandler) VendorReport(c *gin.Context) {
	vendorID, ok := vendorScope(c, c.Query("vendor_id"))
	if !ok {
		return
	}
	rows, err := h.svc.VendorReport(c.Request.Context(), vendorID)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Successfully retrieved report data", rows))
}

func (h *ReportHandler) Export(c *gin.Context) {
	d, err := h.svc.Export(c.Request.Context())
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+d.Filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", d.Data)
}
