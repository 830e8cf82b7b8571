package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/vpetrenko/catalog_api/internal/models"
)

func (r *GormRepo) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) ListCategories(ctx context.Context, p ListParams) (int64, []models.Category, error) {
	var total int64
	base := p.apply(r.DB.WithContext(ctx).Model(&models.Category{}))
	if err := base.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Category, 0, p.Limit)
	if err := base.Order(p.order()).Offset(p.Offset).Limit(p.Limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

// CategoryTaken is the friendly pre-check; the unique indexes on name and
// slug remain authoritative under concurrent creates.
func (r *GormRepo) CategoryTaken(ctx context.Context, name, slug, excludeID string) (bool, error) {
	q := r.DB.WithContext(ctx).Model(&models.Category{}).
		Where("LOWER(name) = ? OR slug = ?", strings.ToLower(name), slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}

func (r *GormRepo) SaveCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Save(cat).Error
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
