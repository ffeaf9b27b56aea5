package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/embunadw/E-Procurement/internal/apierror"
	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/middleware"
	"github.com/embunadw/E-Procurement/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func intPtr(v int) *int { return &v }

var (
	staffClaims  = &middleware.JWTClaims{ID: 1, Email: "budi@patria.co.id", UserName: "Budi", Role: "manager"}
	vendorClaims = &middleware.JWTClaims{ID: 7, Email: "sales@maju.co.id", Role: "vendor", VendorID: intPtr(14)}
)

// engine builds a router whose requests carry the given claims.
func engine(claims *middleware.JWTClaims) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set(middleware.ClaimsKey, claims)
		}
		c.Next()
	})
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

type part struct {
	field, filename, content string
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string, files ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, _ = fw.Write([]byte(f.content))
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// ── Stub services ────────────────────────────────────────────────────────────

type stubAuth struct {
	service.AuthService
	loginErr error
}

func (s *stubAuth) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &dto.LoginResponse{Success: true, Message: "Login successful", Token: "t", User: dto.SessionUser{Email: req.EmailSF}}, nil
}

type stubRfq struct {
	service.RfqService
	vendorView  *bool
	createForm  dto.CreateRfqForm
	createActor string
	picture     *dto.FileUpload
	download    *dto.Download
	err         error
}

func (s *stubRfq) List(_ context.Context, q dto.ListQuery, vendorView bool) (*dto.Page[dto.RfqResponse], error) {
	s.vendorView = &vendorView
	p := dto.NewPage([]dto.RfqResponse{{RfqID: 1}}, 1, q.Normalize(dto.DefaultRfqLimit))
	return &p, nil
}

func (s *stubRfq) Create(_ context.Context, actor string, form dto.CreateRfqForm, picture, _ *dto.FileUpload) (*dto.CreateRfqResponse, error) {
	s.createActor, s.createForm, s.picture = actor, form, picture
	if s.err != nil {
		return nil, s.err
	}
	return &dto.CreateRfqResponse{HasPicture: picture != nil}, nil
}

func (s *stubRfq) Approve(_ context.Context, _ string, _ int) (*dto.RfqResponse, error) {
	return nil, s.err
}

func (s *stubRfq) DownloadPicture(_ context.Context, _ int) (*dto.Download, error) {
	return s.download, s.err
}

type stubChildren struct {
	service.RfqChildService
	lines []dto.RfqLineInput
}

func (s *stubChildren) AddDetails(_ context.Context, _ string, _ int, lines []dto.RfqLineInput) ([]dto.RfqDetailResponse, error) {
	s.lines = lines
	return make([]dto.RfqDetailResponse, len(lines)), nil
}

func (s *stubChildren) AddPicture(_ context.Context, _ string, rfqID int, f *dto.FileUpload) (*dto.AttachmentResponse, error) {
	return &dto.AttachmentResponse{RfqID: rfqID, Filename: f.Filename}, nil
}

type stubQuotation struct {
	service.QuotationService
	form       dto.QuotationForm
	attachment *dto.FileUpload
	worklistID int
}

func (s *stubQuotation) Submit(_ context.Context, form dto.QuotationForm, attachment *dto.FileUpload) (*dto.QuotationBatchResult, error) {
	s.form, s.attachment = form, attachment
	return &dto.QuotationBatchResult{Created: 1}, nil
}

func (s *stubQuotation) Worklist(_ context.Context, vendorID int) (*dto.Page[dto.WorklistItem], error) {
	s.worklistID = vendorID
	return &dto.Page[dto.WorklistItem]{Data: []dto.WorklistItem{}, CurrentPage: 1, TotalPages: 1}, nil
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestLogin_PropagatesUnauthorized(t *testing.T) {
	h := NewAuthHandler(&stubAuth{loginErr: apierror.Unauthorized("Wrong password.")})
	r := engine(nil)
	r.POST("/auth/login", h.Login)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email_sf":"a@b.c","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := do(r, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Wrong password.", decode(t, w)["message"])
}

func TestLogin_MissingFieldsIs400(t *testing.T) {
	r := engine(nil)
	r.POST("/auth/login", NewAuthHandler(&stubAuth{}).Login)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email_sf":"a@b.c"}`))
	req.Header.Set("Content-Type", "application/json")
	w := do(r, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])
}

func TestRfqList_VendorView(t *testing.T) {
	cases := []struct {
		name   string
		claims *middleware.JWTClaims
		query  string
		want   bool
	}{
		{"staff", staffClaims, "", false},
		{"staff preview", staffClaims, "?role=vendor", true},
		{"vendor token", vendorClaims, "", true},
		{"vendor cannot opt out", vendorClaims, "?role=manager", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubRfq{}
			r := engine(tc.claims)
			r.GET("/api/rfq", NewRfqHandler(svc, 1<<20).List)

			w := do(r, httptest.NewRequest(http.MethodGet, "/api/rfq"+tc.query, nil))
			require.Equal(t, http.StatusOK, w.Code)
			require.NotNil(t, svc.vendorView)
			assert.Equal(t, tc.want, *svc.vendorView)
		})
	}
}

func TestRfqList_NonNumericPage(t *testing.T) {
	r := engine(staffClaims)
	r.GET("/api/rfq", NewRfqHandler(&stubRfq{}, 1<<20).List)
	w := do(r, httptest.NewRequest(http.MethodGet, "/api/rfq?page=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRfqCreate_Multipart(t *testing.T) {
	svc := &stubRfq{}
	r := engine(staffClaims)
	r.POST("/api/rfq", NewRfqHandler(svc, 1<<20).Create)

	req := multipartRequest(t, http.MethodPost, "/api/rfq", map[string]string{
		"user_id": "1", "rfq_title": "Seal kit", "rfq_duedate": "2025-03-20",
		"rfq_category": "VM", "rfq_type": "invitation",
		"details": `[{"part_number":"SK-01","pr_qty":"4"}]`, "vendor": "[2,3]",
	}, part{"rfqPicture", "seal.png", "\x89PNG\r\n\x1a\n"})
	w := do(r, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "RFQ created successfully", decode(t, w)["message"])
	assert.Equal(t, "Budi", svc.createActor)
	assert.Equal(t, "Seal kit", svc.createForm.Title)
	assert.Equal(t, "[2,3]", svc.createForm.Vendor)
	require.NotNil(t, svc.picture)
	assert.Equal(t, "seal.png", svc.picture.Filename)
}

func TestRfqCreate_RejectsOversizedAndDuplicateFiles(t *testing.T) {
	r := engine(staffClaims)
	r.POST("/api/rfq", NewRfqHandler(&stubRfq{}, 8).Create)

	w := do(r, multipartRequest(t, http.MethodPost, "/api/rfq", map[string]string{"rfq_title": "x"},
		part{"rfqAttachment", "big.pdf", "0123456789"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, multipartRequest(t, http.MethodPost, "/api/rfq", map[string]string{"rfq_title": "x"},
		part{"rfqPicture", "a.png", "a"}, part{"rfqPicture", "b.png", "b"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRfqApprove_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{apierror.NotFound("RFQ not found"), http.StatusNotFound, "RFQ not found"},
		{apierror.Conflict("RFQ has already been rejected"), http.StatusConflict, "RFQ has already been rejected"},
		{errors.New("pq: connection reset"), http.StatusInternalServerError, "Failed to approve RFQ"},
	}
	for _, tc := range cases {
		r := engine(staffClaims)
		r.PUT("/api/rfq/:id/approve", NewRfqHandler(&stubRfq{err: tc.err}, 1<<20).Approve)
		w := do(r, httptest.NewRequest(http.MethodPut, "/api/rfq/5/approve", nil))
		assert.Equal(t, tc.code, w.Code)
		assert.Equal(t, tc.msg, decode(t, w)["message"])
	}
}

func TestRfqGet_InvalidID(t *testing.T) {
	r := engine(staffClaims)
	r.GET("/api/rfq/:id", NewRfqHandler(&stubRfq{}, 1<<20).Get)
	w := do(r, httptest.NewRequest(http.MethodGet, "/api/rfq/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid ID format", decode(t, w)["message"])
}

func TestDownloadPicture_Headers(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	svc := &stubRfq{download: &dto.Download{Filename: "seal.png", Data: png}}
	r := engine(staffClaims)
	r.GET("/api/rfq-picture/:id", NewRfqHandler(svc, 1<<20).DownloadPicture)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/rfq-picture/3", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="seal.png"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, png, w.Body.Bytes())
}

func TestAddDetails_ObjectOrArray(t *testing.T) {
	svc := &stubChildren{}
	r := engine(staffClaims)
	r.POST("/api/rfq/:id/details", NewRfqChildrenHandler(svc, 1<<20).AddDetails)

	w := do(r, httptest.NewRequest(http.MethodPost, "/api/rfq/1/details", strings.NewReader(`{"part_number":"P1","pr_qty":2}`)))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, svc.lines, 1)

	w = do(r, httptest.NewRequest(http.MethodPost, "/api/rfq/1/details", strings.NewReader(`[{"part_number":"P1"},{"part_number":"P2"}]`)))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, svc.lines, 2)

	w = do(r, httptest.NewRequest(http.MethodPost, "/api/rfq/1/details", strings.NewReader(`[]`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddPicture_RequiresFile(t *testing.T) {
	r := engine(staffClaims)
	r.POST("/api/rfq/:id/pictures", NewRfqChildrenHandler(&stubChildren{}, 1<<20).AddPicture)

	w := do(r, multipartRequest(t, http.MethodPost, "/api/rfq/1/pictures", map[string]string{"note": "x"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", decode(t, w)["message"])

	w = do(r, multipartRequest(t, http.MethodPost, "/api/rfq/1/pictures", nil, part{"file", "a.jpg", "jpg"}))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestQuotationSubmit_VendorTokenPinsVendorID(t *testing.T) {
	svc := &stubQuotation{}
	r := engine(vendorClaims)
	r.POST("/api/vendor-quotation", NewQuotationHandler(svc, 1<<20).Submit)

	w := do(r, multipartRequest(t, http.MethodPost, "/api/vendor-quotation", map[string]string{
		"vendor_id": "99", "quotations": `[{"rfq_detail_id":1,"price":"10"}]`,
	}, part{"attachment", "q.pdf", "%PDF-1.4"}))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Quotation submitted successfully", decode(t, w)["message"])
	assert.Equal(t, "14", svc.form.VendorID)
	require.NotNil(t, svc.attachment)
	assert.Equal(t, "q.pdf", svc.attachment.Filename)
}

func TestQuotationWrite_UnlinkedVendorForbidden(t *testing.T) {
	unlinked := &middleware.JWTClaims{ID: 8, Email: "new@vendor.co.id", Role: "vendor"}
	fields := map[string]string{"vendor_id": "99", "quotations": `[{"rfq_detail_id":1,"price":"10"}]`}

	for _, method := range []string{http.MethodPost, http.MethodPut} {
		t.Run(method, func(t *testing.T) {
			svc := &stubQuotation{}
			h := NewQuotationHandler(svc, 1<<20)
			r := engine(unlinked)
			r.POST("/api/vendor-quotation", h.Submit)
			r.PUT("/api/vendor-quotation", h.Update)

			w := do(r, multipartRequest(t, method, "/api/vendor-quotation", fields))
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Empty(t, svc.form.VendorID)
		})
	}
}

func TestWorklist_VendorScope(t *testing.T) {
	t.Run("staff without vendor_id", func(t *testing.T) {
		r := engine(staffClaims)
		r.GET("/api/vendor-quotation", NewQuotationHandler(&stubQuotation{}, 1<<20).Worklist)
		w := do(r, httptest.NewRequest(http.MethodGet, "/api/vendor-quotation", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "vendor_id is required", decode(t, w)["message"])
	})

	t.Run("staff with vendor_id", func(t *testing.T) {
		svc := &stubQuotation{}
		r := engine(staffClaims)
		r.GET("/api/vendor-quotation", NewQuotationHandler(svc, 1<<20).Worklist)
		w := do(r, httptest.NewRequest(http.MethodGet, "/api/vendor-quotation?vendor_id=3", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 3, svc.worklistID)
	})

	t.Run("vendor ignores query", func(t *testing.T) {
		svc := &stubQuotation{}
		r := engine(vendorClaims)
		r.GET("/api/vendor-quotation", NewQuotationHandler(svc, 1<<20).Worklist)
		w := do(r, httptest.NewRequest(http.MethodGet, "/api/vendor-quotation?vendor_id=3", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 14, svc.worklistID)
	})
}
