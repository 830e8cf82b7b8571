package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/vpetrenko/catalog_api/internal/apperr"
	"github.com/vpetrenko/catalog_api/internal/models"
	"github.com/vpetrenko/catalog_api/internal/slug"
	"github.com/vpetrenko/catalog_api/internal/transport"
)

const (
	subCategoryNotFound = "Subcategory not found"
	subCategoryExists   = "Subcategory already exists in this category"
)

func (s *CatalogService) GetSubCategory(ctx context.Context, id string) (*models.SubCategory, error) {
	sub, err := s.Repo.GetSubCategory(ctx, id)
	if err != nil {
		return nil, storeErr(err, subCategoryNotFound, subCategoryExists)
	}
	return sub, nil
}

func (s *CatalogService) ListSubCategories(ctx context.Context, q transport.ListQuery) (PageInfo, []models.SubCategory, error) {
	params, info := listParams(q, listFilters{byCategory: true})
	total, items, err := s.Repo.ListSubCategories(ctx, params)
	if err != nil {
		return info, nil, apperr.Internal("cannot list subcategories", err)
	}
	info.Total = total
	return info, items, nil
}

func (s *CatalogService) CreateSubCategory(ctx context.Context, req transport.CreateSubCategoryRequest) (*models.SubCategory, error) {
	name := strings.TrimSpace(req.Name)
	sl := slug.Make(name)
	if sl == "" {
		return nil, apperr.Validation(apperr.FieldError{Field: "name", Message: "name must contain at least one letter or digit"})
	}

	if _, err := s.Repo.GetCategory(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(categoryNotFound)
		}
		return nil, apperr.Internal("cannot create subcategory", err)
	}

	taken, err := s.Repo.SubCategoryTaken(ctx, name, sl, req.CategoryID, "")
	if err != nil {
		return nil, apperr.Internal("cannot create subcategory", err)
	}
	if taken {
		return nil, apperr.Conflict(subCategoryExists)
	}

	sub := &models.SubCategory{
		Name:       name,
		Slug:       sl,
		CategoryID: req.CategoryID,
		IsActive:   true,
	}
	if err := s.Repo.CreateSubCategory(ctx, sub); err != nil {
		return nil, storeErr(err, subCategoryNotFound, subCategoryExists)
	}

	s.Events.Publish(ctx, "subcategory.created", sub.ID, sub)
	return sub, nil
}

func (s *CatalogService) UpdateSubCategory(ctx context.Context, id string, req transport.UpdateSubCategoryRequest) (*models.SubCategory, error) {
	sub, err := s.Repo.GetSubCategory(ctx, id)
	if err != nil {
		return nil, storeErr(err, subCategoryNotFound, subCategoryExists)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		sl := slug.Make(name)
		if sl == "" {
			return nil, apperr.Validation(apperr.FieldError{Field: "name", Message: "name must contain at least one letter or digit"})
		}
		taken, err := s.Repo.SubCategoryTaken(ctx, name, sl, sub.CategoryID, sub.ID)
		if err != nil {
			return nil, apperr.Internal("cannot update subcategory", err)
		}
		if taken {
			return nil, apperr.Conflict(subCategoryExists)
		}
		sub.Name = name
		sub.Slug = sl
	}
	if req.IsActive != nil {
		sub.IsActive = *req.IsActive
	}

	if err := s.Repo.SaveSubCategory(ctx, sub); err != nil {
		return nil, storeErr(err, subCategoryNotFound, subCategoryExists)
	}

	s.Events.Publish(ctx, "subcategory.updated", sub.ID, sub)
	return sub, nil
}

func (s *CatalogService) DeleteSubCategory(ctx context.Context, id string) error {
	if err := s.Repo.DeleteSubCategory(ctx, id); err != nil {
		return storeErr(err, subCategoryNotFound, subCategoryExists)
	}
	s.Events.Publish(ctx, "subcategory.deleted", id, nil)
	return nil
}
