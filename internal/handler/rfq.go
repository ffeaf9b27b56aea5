package handler

import (
	"context"
	"net/http"

	"github.com/embunadw/E-Procurement/internal/apierror"
	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/middleware"
	"github.com/embunadw/E-Procurement/internal/model"
	"github.com/embunadw/E-Procurement/internal/service"

	"github.com/gin-gonic/gin"
)

type RfqHandler struct {
	svc       service.RfqService
	maxUpload int64
}

func NewRfqHandler(svc service.RfqService, maxUpload int64) *RfqHandler {
	return &RfqHandler{svc: svc, maxUpload: maxUpload}
}

// Create godoc
// @Summary Create an RFQ with its lines, invitations and attachments
// @Tags rfq
// @Accept multipart/form-data
// @Produce json
// @Param rfq_title formData string true "Title"
// @Param rfq_duedate formData string true "Due date"
// @Param rfq_category formData string true "VM or SD"
// @Param rfq_type formData string true "general or invitation"
// @Param details formData string false "JSON array of lines"
// @Param vendor formData string false "JSON array of vendor ids"
// @Param rfqPicture formData file false "Picture"
// @Param rfqAttachment formData file false "Attachment"
// @Success 201 {object} dto.Envelope
// @Failure 400 {object} apierror.APIError
// @Security BearerAuth
// @Router /api/rfq [post]
func (h *RfqHandler) Create(c *gin.Context) {
	var form dto.CreateRfqForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Form parse error"))
		return
	}
	picture, err := readFile(c, "rfqPicture", h.maxUpload)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	attachment, err := readFile(c, "rfqAttachment", h.maxUpload)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), actor(c), form, picture, attachment)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusCreated, dto.OK("RFQ created successfully", resp))
}

// List shows every live RFQ to staff. Vendor tokens only see approved RFQs;
// staff can preview that view with ?role=vendor.
func (h *RfqHandler) List(c *gin.Context) {
	q, ok := bindList(c)
	if !ok {
		return
	}
	vendorView := middleware.GetClaims(c).IsVendor() || c.Query("role") == model.RoleVendor

	page, err := h.svc.List(c.Request.Context(), q, vendorView)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Successfully retrieved RFQ data", page))
}

func (h *RfqHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rfq, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("RFQ found", rfq))
}

func (h *RfqHandler) UpdateDueDate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateRfqRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DueDate == "" {
		c.JSON(http.StatusBadRequest, apierror.New("rfq duedate is required to update."))
		return
	}
	rfq, err := h.svc.UpdateDueDate(c.Request.Context(), actor(c), id, req)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("RFQ due date updated successfully", rfq))
}

func (h *RfqHandler) Archive(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Archive(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, err, "Failed to archive RFQ")
		return
	}
	c.JSON(http.StatusOK, dto.OK("RFQ archived successfully", nil))
}

func (h *RfqHandler) Approve(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rfq, err := h.svc.Approve(c.Request.Context(), actor(c), id)
	if err != nil {
		respondError(c, err, "Failed to approve RFQ")
		return
	}
	c.JSON(http.StatusOK, dto.OK("RFQ approved successfully", rfq))
}

func (h *RfqHandler) Reject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rfq, err := h.svc.Reject(c.Request.Context(), actor(c), id)
	if err != nil {
		respondError(c, err, "Failed to reject RFQ")
		return
	}
	c.JSON(http.StatusOK, dto.OK("RFQ rejected successfully", rfq))
}

func (h *RfqHandler) LineView(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := h.svc.LineView(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.OK("RFQ detail found", view))
}

func (h *RfqHandler) DownloadPicture(c *gin.Context) {
	h.download(c, h.svc.DownloadPicture)
}

func (h *RfqHandler) DownloadFile(c *gin.Context) {
	h.download(c, h.svc.DownloadFile)
}

func (h *RfqHandler) PDF(c *gin.Context) {
	h.download(c, h.svc.RenderPDF)
}

func (h *RfqHandler) download(c *gin.Context, load func(ctx context.Context, id int) (*dto.Download, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	d, err := load(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}
	sendDownload(c, d)
}
