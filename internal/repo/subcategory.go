package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vpetrenko/catalog_api/internal/models"
)

func (r *GormRepo) GetSubCategory(ctx context.Context, id string) (*models.SubCategory, error) {
	var sub models.SubCategory
	err := r.DB.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *GormRepo) ListSubCategories(ctx context.Context, p ListParams) (int64, []models.SubCategory, error) {
	var total int64
	base := p.apply(r.DB.WithContext(ctx).Model(&models.SubCategory{}))
	if err := base.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.SubCategory, 0, p.Limit)
	err := base.Preload("Category").Order(p.order()).Offset(p.Offset).Limit(p.Limit).Find(&items).Error
	if err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

// SubCategoryTaken reports whether a name or slug collision exists inside the
// category. Both are checked because distinct names can derive one slug.
func (r *GormRepo) SubCategoryTaken(ctx context.Context, name, slug, categoryID, excludeID string) (bool, error) {
	q := r.DB.WithContext(ctx).Model(&models.SubCategory{}).
		Where("(LOWER(name) = ? OR slug = ?) AND category_id = ?", strings.ToLower(name), slug, categoryID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) CreateSubCategory(ctx context.Context, sub *models.SubCategory) error {
	return r.DB.WithContext(ctx).Create(sub).Error
}

func (r *GormRepo) SaveSubCategory(ctx context.Context, sub *models.SubCategory) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(sub).Error
}

func (r *GormRepo) DeleteSubCategory(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.SubCategory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
