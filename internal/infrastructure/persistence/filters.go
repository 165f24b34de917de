package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/venturehub/backend/internal/domain/shared"
)

// applyFilter applies pagination and ordering to a query
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyKeyFilters applies the whitelisted key filters to a query.
// Keys not in the whitelist are ignored so callers cannot inject
// arbitrary column predicates.
func applyKeyFilters(query *gorm.DB, filter shared.Filter, allowed map[string]string) *gorm.DB {
	for key, value := range filter.Filters {
		column, ok := allowed[key]
		if !ok {
			continue
		}
		query = query.Where(column+" = ?", value)
	}
	return query
}
