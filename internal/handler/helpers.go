package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/embunadw/E-Procurement/internal/apierror"
	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/middleware"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// decimal.Decimal is validated as its float value.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds the JSON body and runs validator tags. On failure it
// writes the 400 response and returns false.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindList reads the common page/limit/search/sort/order query parameters.
func bindList(c *gin.Context) (dto.ListQuery, bool) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("page and limit must be numeric"))
		return q, false
	}
	return q, true
}

// respondError writes a classified service error with its own status and
// message. Anything else is logged and answered with fallback as a 500.
func respondError(c *gin.Context, err error, fallback string) {
	status := apierror.Status(err)
	if status == http.StatusInternalServerError {
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Err(err).
			Msg(fallback)
		c.JSON(status, apierror.New(fallback))
		return
	}
	c.JSON(status, apierror.New(err.Error()))
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID format"))
		return 0, false
	}
	return id, true
}

// readFile loads an optional multipart file. A missing part, or a request that
// is not multipart at all, yields nil.
func readFile(c *gin.Context, field string, maxBytes int64) (*dto.FileUpload, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, apierror.Validation("Form parse error")
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > 1 {
		return nil, apierror.Validation("Only one " + field + " may be uploaded")
	}
	fh := files[0]
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, apierror.Validation(fmt.Sprintf("%s exceeds the %d MB upload limit", field, maxBytes>>20))
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, fh.Size+1))
	if err != nil {
		return nil, err
	}
	return &dto.FileUpload{Filename: fh.Filename, Data: data}, nil
}

// sendDownload streams d as an attachment, sniffing the content type.
func sendDownload(c *gin.Context, d *dto.Download) {
	mt := mimetype.Detect(d.Data)
	name := strings.ReplaceAll(d.Filename, `"`, "")
	if name == "" {
		name = "download" + mt.Extension()
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, mt.String(), d.Data)
}

// actor is the audit name of the caller.
func actor(c *gin.Context) string {
	return middleware.GetClaims(c).Actor()
}

// vendorScope resolves the vendor a request acts for. Vendor tokens are pinned
// to their own vendor id; staff tokens pass it explicitly.
func vendorScope(c *gin.Context, requested string) (int, bool) {
	if claims := middleware.GetClaims(c); claims.IsVendor() {
		if claims.VendorID == nil {
			c.JSON(http.StatusForbidden, apierror.New("Vendor account is not linked to a vendor"))
			return 0, false
		}
		return *claims.VendorID, true
	}
	if strings.TrimSpace(requested) == "" {
		c.JSON(http.StatusBadRequest, apierror.New("vendor_id is required"))
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(requested))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("vendor_id is required and must be a number"))
		return 0, false
	}
	return id, true
}
