package query

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	DefaultSort  = "created_at"
)

// sortFields whitelists document fields callers may sort by. Anything else
// falls back to creation time.
var sortFields = map[string]string{
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
	"views":      "views",
	"duration":   "duration",
	"title":      "title",
}

// Defaults returns the params used when no caller input is in play.
func Defaults() Params {
	return Params{
		Page:       DefaultPage,
		Limit:      DefaultLimit,
		SortBy:     DefaultSort,
		Descending: true,
	}
}

// Params describes one page of a filtered, sorted listing.
type Params struct {
	Page       int
	Limit      int
	SortBy     string
	Descending bool
	Search     string
}

// ParseParams reads pagination input leniently: non-numeric or non-positive
// page/limit fall back to defaults instead of failing, unknown sort fields
// fall back to newest-first by creation time.
func ParseParams(values url.Values) Params {
	p := Params{
		Page:       DefaultPage,
		Limit:      DefaultLimit,
		SortBy:     DefaultSort,
		Descending: true,
	}

	if n, err := strconv.Atoi(values.Get("page")); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(values.Get("limit")); err == nil && n > 0 {
		p.Limit = n
	}
	if field, ok := sortFields[values.Get("sortBy")]; ok {
		p.SortBy = field
	}
	if values.Get("sortType") == "asc" {
		p.Descending = false
	}
	p.Search = strings.TrimSpace(values.Get("query"))

	return p
}

// SortSpec renders the sort clause for a mango query.
func (p Params) SortSpec() []map[string]string {
	direction := "desc"
	if !p.Descending {
		direction = "asc"
	}
	return []map[string]string{{p.SortBy: direction}}
}

// Result is one bounded page plus the size of the full filtered set.
type Result[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Paginate slices an already filtered, already sorted set into the requested
// page. Total always reflects the whole set, never just the returned page.
func Paginate[T any](items []T, p Params) Result[T] {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}

	total := len(items)
	totalPages := (total + p.Limit - 1) / p.Limit

	start := (p.Page - 1) * p.Limit
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}

	page := make([]T, end-start)
	copy(page, items[start:end])

	return Result[T]{
		Items:      page,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
