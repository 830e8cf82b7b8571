package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/vpetrenko/catalog_api/internal/apperr"
	"github.com/vpetrenko/catalog_api/internal/events"
	"github.com/vpetrenko/catalog_api/internal/repo"
	"github.com/vpetrenko/catalog_api/internal/transport"
)

// CatalogService enforces the catalog rules the store cannot express by
// itself: parent-existence checks, slug derivation and friendly conflict
// answers ahead of the unique indexes.
type CatalogService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
}

type PageInfo struct {
	Total int64
	Page  int
	Limit int
}

var sortColumns = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"price":     "price",
}

// listFilters declares which of the shared query knobs a resource supports.
// Parent-scope filters not listed here are dropped, never forwarded to a
// table that has no such column.
type listFilters struct {
	priceSort     bool
	byCategory    bool
	bySubCategory bool
}

// listParams normalizes the query contract: page>=1, limit clamped to 1..100,
// sort column whitelisted, descending unless order=asc.
func listParams(q transport.ListQuery, f listFilters) (repo.ListParams, PageInfo) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	col, ok := sortColumns[q.SortBy]
	if !ok || (col == "price" && !f.priceSort) {
		col = "created_at"
	}

	p := repo.ListParams{
		Offset:     (page - 1) * limit,
		Limit:      limit,
		SortColumn: col,
		Desc:       q.Order != "asc",
		Search:     q.Search,
		IsActive:   q.IsActive,
	}
	if f.byCategory {
		p.CategoryID = q.CategoryID
	}
	if f.bySubCategory {
		p.SubCategoryID = q.SubCategoryID
	}
	return p, PageInfo{Page: page, Limit: limit}
}

// storeErr maps the storage layer's sentinel errors onto the taxonomy; the
// duplicated-key branch is what settles races the pre-checks cannot see.
func storeErr(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(notFoundMsg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict(conflictMsg)
	default:
		return apperr.Internal("storage error", err)
	}
}
