package handler

import (
	"net/http"
	"strconv"

	"github.com/embunadw/E-Procurement/internal/apierror"
	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/middleware"
	"github.com/embunadw/E-Procurement/internal/service"

	"github.com/gin-gonic/gin"
)

type QuotationHandler struct {
	svc       service.QuotationService
	maxUpload int64
}

func NewQuotationHandler(svc service.QuotationService, maxUpload int64) *QuotationHandler {
	return &QuotationHandler{svc: svc, maxUpload: maxUpload}
}

// bindForm reads the quotation multipart form. A vendor token always
// submits for its own vendor, whatever vendor_id the form carries; a vendor
// token without one is refused.
func (h *QuotationHandler) bindForm(c *gin.Context) (dto.QuotationForm, *dto.FileUpload, bool) {
	var form dto.QuotationForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Form parse error"))
		return form, nil, false
	}
	if claims := middleware.GetClaims(c); claims.IsVendor() {
		if claims.VendorID == nil {
			c.JSON(http.StatusForbidden, apierror.New("Vendor account is not linked to a vendor"))
			return form, nil, false
		}
		form.VendorID = strconv.Itoa(*claims.VendorID)
	}
	attachment, err := readFile(c, "attachment", h.maxUpload)
	if err != nil {
		respondError(c, err, "Internal server error")
		return form, nil, false
	}
	return form, attachment, true
}

// Submit godoc
// @Summary Submit quotations for RFQ lines (upsert per line)
// @Tags quotation
// @Accept multipart/form-data
// @Produce json
// @Param vendor_id formData string true "Vendor id"
// @Param quotations formData string true "JSON array of {rfq_detail_id, price, moq}"
// @Param valid_until formData string false "Validity date"
// @Param attachment formData file false "Quotation document"
// @Success 201 {object} dto.Envelope
// @Failure 400 {object} apierror.APIError
// @Security BearerAuth
// @Router /api/vendor-quotation [post]
func (h *QuotationHandler) Submit(c *gin.Context) {
	form, attachment, ok := h.bindForm(c)
	if !ok {
		return
	}
	res, err := h.svc.Submit(c.Request.Context(), form, attachment)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Quotation submitted successfully", res))
}

func (h *QuotationHandler) Update(c *gin.Context) {
	form, attachment, ok := h.bindForm(c)
	if !ok {
		return
	}
	res, err := h.svc.Update(c.Request.Context(), form, attachment)
	if err != nil {
		respondError(c, err, "Unexpected error during update")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Quotation updated successfully", res))
}

func (h *QuotationHandler) Worklist(c *gin.Context) {
	vendorID, ok := vendorScope(c, c.Query("vendor_id"))
	if !ok {
		return
	}
	page, err := h.svc.Worklist(c.Request.Context(), vendorID)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Successfully retrieved RFQ data", page))
}

func (h *QuotationHandler) Detail(c *gin.Context) {
	vendorID, ok := vendorScope(c, c.Query("vendor_id"))
	if !ok {
		return
	}
	detailID, err := strconv.Atoi(c.Query("rfq_detail_id"))
	if err != nil || detailID <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("Missing params"))
		return
	}
	q, err := h.svc.Detail(c.Request.Context(), vendorID, detailID)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Quotation found", q))
}

func (h *QuotationHandler) Download(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("quotation_id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("Missing or invalid quotation_id"))
		return
	}
	d, err := h.svc.Download(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	sendDownload(c, d)
}
