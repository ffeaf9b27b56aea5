package dto

import "strings"

// Envelope is the success envelope shared by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// ─── Pagination ──────────────────────────────────────────────────────────────

const (
	DefaultMasterLimit = 100
	DefaultRfqLimit    = 10

	MaxLimit = 1000
	// MaxPage keeps (page-1)*limit well inside int32.
	MaxPage = 1_000_000
)

// ListQuery carries the common list parameters. Sort is resolved against a
// per-resource allow-list by the repository; unknown keys fall back to the
// resource default.
type ListQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Search string `form:"search"`
	Sort   string `form:"sort"`
	Order  string `form:"order"`
}

// Normalize fills page and limit defaults and clamps both to their maximum.
func (q ListQuery) Normalize(defaultLimit int) ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

func (q ListQuery) Offset() int { return (q.Page - 1) * q.Limit }

// Desc reports whether order is "desc"; anything else sorts ascending.
func (q ListQuery) Desc() bool { return strings.EqualFold(q.Order, "desc") }

// Page is the paginated list envelope payload.
type Page[T any] struct {
	Data        []T   `json:"data"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}

func NewPage[T any](items []T, total int64, q ListQuery) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if q.Limit > 0 {
		pages = int((total + int64(q.Limit) - 1) / int64(q.Limit))
	}
	return Page[T]{Data: items, TotalItems: total, TotalPages: pages, CurrentPage: q.Page}
}
