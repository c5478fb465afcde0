package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/thao-tran/glowcare-admin-api/utils"
	"gorm.io/gorm"
)

const (
	// DefaultPage is used when no page parameter is provided
	DefaultPage = 1
	// DefaultLimit is used when no limit parameter is provided
	DefaultLimit = 10
)

// ListParams are the parsed list-endpoint query parameters
type ListParams struct {
	Search string
	SortBy string
	Page   int
	Limit  int
}

// ParseListParams parses search/sortBy/page/limit from a query string.
// page and limit must be positive integers when present; non-numeric or
// non-positive values are rejected instead of being coerced to defaults.
func ParseListParams(query url.Values) (ListParams, error) {
	params := ListParams{
		Search: query.Get("search"),
		SortBy: query.Get("sortBy"),
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return ListParams{}, utils.NewValidationError(fmt.Sprintf("page must be a positive integer, got %q", raw))
		}
		params.Page = page
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return ListParams{}, utils.NewValidationError(fmt.Sprintf("limit must be a positive integer, got %q", raw))
		}
		params.Limit = limit
	}

	return params, nil
}

// Offset returns the row offset for the requested page
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ApplySearch adds a case-insensitive substring filter over the given
// columns, OR-ed together. An empty search leaves the query untouched.
func ApplySearch(db *gorm.DB, search string, columns ...string) *gorm.DB {
	if search == "" || len(columns) == 0 {
		return db
	}

	pattern := "%" + strings.ToLower(search) + "%"
	conditions := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, column := range columns {
		conditions[i] = fmt.Sprintf("LOWER(%s) LIKE ?", column)
		args[i] = pattern
	}

	return db.Where(strings.Join(conditions, " OR "), args...)
}

// ApplySort parses a "field:order" sort spec and adds the matching ORDER BY.
// The order is descending only when it is exactly "desc". Fields not present
// in the sortable map silently no-op, leaving natural store order; this also
// keeps arbitrary input out of the ORDER BY clause.
func ApplySort(db *gorm.DB, sortBy string, sortable map[string]string) *gorm.DB {
	if sortBy == "" {
		return db
	}

	field := sortBy
	order := "asc"
	if idx := strings.Index(sortBy, ":"); idx >= 0 {
		field = sortBy[:idx]
		if sortBy[idx+1:] == "desc" {
			order = "desc"
		}
	}

	column, ok := sortable[field]
	if !ok {
		return db
	}

	return db.Order(column + " " + order)
}

// TotalPages computes ceil(total/limit)
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// PageResult carries the pagination metadata of a list response
type PageResult struct {
	Total       int64
	TotalPages  int
	CurrentPage int
}

// PaginatedList runs the full list contract against a model: search filter,
// count, sort, offset/limit, preloads. Results go into dest.
func PaginatedList(db *gorm.DB, model interface{}, params ListParams, searchColumns []string, sortable map[string]string, dest interface{}, preloads ...string) (PageResult, error) {
	base := ApplySearch(db.Model(model), params.Search, searchColumns...)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return PageResult{}, utils.NewInternalError(err)
	}

	query := ApplySort(base.Session(&gorm.Session{}), params.SortBy, sortable)
	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	if err := query.Offset(params.Offset()).Limit(params.Limit).Find(dest).Error; err != nil {
		return PageResult{}, utils.NewInternalError(err)
	}

	return PageResult{
		Total:       total,
		TotalPages:  TotalPages(total, params.Limit),
		CurrentPage: params.Page,
	}, nil
}
