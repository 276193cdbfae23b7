package service

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"mini-admin/internal/model"
	"mini-admin/internal/repository"
)

// Paging limits for list queries.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (page-1)*limit well inside the range of a row offset.
	MaxPage = math.MaxInt32
)

// ParseUserQuery reads the user list parameters from a query string.
// Malformed numbers are left at zero and replaced by defaults later.
func ParseUserQuery(v url.Values) model.UserQuery {
	return model.UserQuery{
		Page:   atoi(v.Get("page")),
		Limit:  atoi(v.Get("limit")),
		Search: v.Get("search"),
		Role:   v.Get("role"),
	}
}

// ParseProductQuery reads the product list parameters from a query string.
func ParseProductQuery(v url.Values) model.ProductQuery {
	return model.ProductQuery{
		Page:      atoi(v.Get("page")),
		Limit:     atoi(v.Get("limit")),
		Search:    v.Get("search"),
		Category:  v.Get("category"),
		MinPrice:  v.Get("minPrice"),
		MaxPrice:  v.Get("maxPrice"),
		SortBy:    v.Get("sortBy"),
		SortOrder: v.Get("sortOrder"),
	}
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// normalizePage clamps page and limit into their accepted ranges.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// priceBound parses an optional price bound; unusable values are ignored.
func priceBound(raw string) *float64 {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &f
}

var sortableFields = map[string]bool{
	model.SortCreatedAt: true,
	model.SortUpdatedAt: true,
	model.SortPrice:     true,
	model.SortName:      true,
}

// productSort resolves the requested ordering. Unknown fields fall back to
// newest first; any direction other than "asc" is descending.
func productSort(sortBy, sortOrder string) repository.ProductSort {
	if !sortableFields[sortBy] {
		return repository.ProductSort{Field: model.SortCreatedAt, Desc: true}
	}
	return repository.ProductSort{Field: sortBy, Desc: sortOrder != "asc"}
}

// productFilters echoes q the way the client sent it, with the documented
// defaults for sorting.
func productFilters(q model.ProductQuery) model.ProductFilters {
	f := model.ProductFilters{
		Search:    q.Search,
		Category:  q.Category,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}
	if q.MinPrice != "" {
		f.MinPrice = &q.MinPrice
	}
	if q.MaxPrice != "" {
		f.MaxPrice = &q.MaxPrice
	}
	if f.SortBy == "" {
		f.SortBy = model.SortCreatedAt
	}
	if f.SortOrder == "" {
		f.SortOrder = "desc"
	}
	return f
}
