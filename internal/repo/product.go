package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vpetrenko/catalog_api/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var prod models.Product
	err := r.DB.WithContext(ctx).
		Preload("Category").Preload("SubCategory").
		Where("id = ?", id).First(&prod).Error
	if err != nil {
		return nil, err
	}
	return &prod, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, p ListParams) (int64, []models.Product, error) {
	var total int64
	base := p.apply(r.DB.WithContext(ctx).Model(&models.Product{}))
	if err := base.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, p.Limit)
	err := base.Preload("Category").Preload("SubCategory").
		Order(p.order()).Offset(p.Offset).Limit(p.Limit).Find(&items).Error
	if err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) ProductTaken(ctx context.Context, name, slug, subCategoryID, excludeID string) (bool, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("(LOWER(name) = ? OR slug = ?) AND sub_category_id = ?", strings.ToLower(name), slug, subCategoryID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(prod).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
