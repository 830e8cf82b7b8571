package repo

import (
	"strings"

	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

// ListParams is the filter/pagination contract shared by every catalog
// listing. SortColumn is whitelisted by the caller before it gets here.
type ListParams struct {
	Offset int
	Limit  int

	SortColumn string
	Desc       bool

	Search        string
	IsActive      *bool
	CategoryID    string
	SubCategoryID string
}

func (p ListParams) apply(q *gorm.DB) *gorm.DB {
	if p.Search != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(p.Search))+"%")
	}
	if p.IsActive != nil {
		q = q.Where("is_active = ?", *p.IsActive)
	}
	if p.CategoryID != "" {
		q = q.Where("category_id = ?", p.CategoryID)
	}
	if p.SubCategoryID != "" {
		q = q.Where("sub_category_id = ?", p.SubCategoryID)
	}
	return q
}

func (p ListParams) order() string {
	dir := "DESC"
	if !p.Desc {
		dir = "ASC"
	}
	return p.SortColumn + " " + dir
}

// escapeLike neutralizes LIKE metacharacters in user-supplied search terms.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
