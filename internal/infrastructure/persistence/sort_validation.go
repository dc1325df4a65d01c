package persistence

import (
	"strings"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"gorm.io/gorm"
)

// validateSortOrder normalizes the sort direction to ASC or DESC.
// Returns "DESC" if the input is invalid or empty.
func validateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// validateSortField validates the sort field against a whitelist of column
// names. OrderBy reaches the query as raw SQL, so anything outside the
// whitelist falls back to created_at.
func validateSortField(sortField string, allowedFields map[string]bool) string {
	trimmed := strings.TrimSpace(sortField)
	if allowedFields[trimmed] {
		return trimmed
	}
	return "created_at"
}

// applyPagination applies ordering and pagination from the filter. When the
// filter carries no explicit ordering, defaultOrder is used verbatim.
func applyPagination(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool, defaultOrder string) *gorm.DB {
	if filter.OrderBy != "" {
		query = query.Order(validateSortField(filter.OrderBy, allowedFields) + " " + validateSortOrder(filter.OrderDir))
	} else if defaultOrder != "" {
		query = query.Order(defaultOrder)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}
