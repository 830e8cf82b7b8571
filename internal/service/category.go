package service

import (
	"context"
	"strings"

	"github.com/vpetrenko/catalog_api/internal/apperr"
	"github.com/vpetrenko/catalog_api/internal/models"
	"github.com/vpetrenko/catalog_api/internal/slug"
	"github.com/vpetrenko/catalog_api/internal/transport"
)

const (
	categoryNotFound = "Category not found"
	categoryExists   = "Category already exists"
)

func (s *CatalogService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	cat, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return nil, storeErr(err, categoryNotFound, categoryExists)
	}
	return cat, nil
}

func (s *CatalogService) ListCategories(ctx context.Context, q transport.ListQuery) (PageInfo, []models.Category, error) {
	params, info := listParams(q, listFilters{})
	total, items, err := s.Repo.ListCategories(ctx, params)
	if err != nil {
		return info, nil, apperr.Internal("cannot list categories", err)
	}
	info.Total = total
	return info, items, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	sl := slug.Make(name)
	if sl == "" {
		return nil, apperr.Validation(apperr.FieldError{Field: "name", Message: "name must contain at least one letter or digit"})
	}

	taken, err := s.Repo.CategoryTaken(ctx, name, sl, "")
	if err != nil {
		return nil, apperr.Internal("cannot create category", err)
	}
	if taken {
		return nil, apperr.Conflict(categoryExists)
	}

	cat := &models.Category{Name: name, Slug: sl, IsActive: true}
	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		return nil, storeErr(err, categoryNotFound, categoryExists)
	}

	s.Events.Publish(ctx, "category.created", cat.ID, cat)
	return cat, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, req transport.UpdateCategoryRequest) (*models.Category, error) {
	cat, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return nil, storeErr(err, categoryNotFound, categoryExists)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		sl := slug.Make(name)
		if sl == "" {
			return nil, apperr.Validation(apperr.FieldError{Field: "name", Message: "name must contain at least one letter or digit"})
		}
		taken, err := s.Repo.CategoryTaken(ctx, name, sl, cat.ID)
		if err != nil {
			return nil, apperr.Internal("cannot update category", err)
		}
		if taken {
			return nil, apperr.Conflict(categoryExists)
		}
		cat.Name = name
		cat.Slug = sl
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}

	if err := s.Repo.SaveCategory(ctx, cat); err != nil {
		return nil, storeErr(err, categoryNotFound, categoryExists)
	}

	s.Events.Publish(ctx, "category.updated", cat.ID, cat)
	return cat, nil
}

// DeleteCategory removes the category only; dependent subcategories and
// products are left in place and keep their now-dangling reference.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		return storeErr(err, categoryNotFound, categoryExists)
	}
	s.Events.Publish(ctx, "category.deleted", id, nil)
	return nil
}
