package pagination

import (
	"net/http"
	"strconv"
)

const (
	defaultPage    = 1
	defaultPerPage = 20
	maxPerPage     = 100
)

// Params holds pagination parameters. Page is 1-based; Offset is the
// zero-based row offset handed to the storage layer.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

// DefaultParams returns sensible pagination defaults.
func DefaultParams() Params {
	return Params{
		Page:    defaultPage,
		PerPage: defaultPerPage,
	}
}

// FromRequest extracts pagination parameters from the `page` and `size`
// query parameters. Invalid or out-of-range values fall back to defaults.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	if size := r.URL.Query().Get("size"); size != "" {
		if v, err := strconv.Atoi(size); err == nil && v > 0 && v <= maxPerPage {
			p.PerPage = v
		}
	}

	p.Offset = (p.Page - 1) * p.PerPage
	return p
}

// ResultPage wraps one page of a larger result set with count metadata.
type ResultPage[T any] struct {
	Items       []T `json:"items"`
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
}

// NewResultPage builds a ResultPage from one page of items and the total count.
func NewResultPage[T any](items []T, totalItems int, params Params) ResultPage[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := totalItems / params.PerPage
	if totalItems%params.PerPage > 0 {
		totalPages++
	}

	return ResultPage[T]{
		Items:       items,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: params.Page,
		PerPage:     params.PerPage,
	}
}

// IsEmpty reports whether the page holds no items.
func (p ResultPage[T]) IsEmpty() bool {
	return len(p.Items) == 0
}
