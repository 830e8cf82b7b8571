package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"gorm.io/gorm"

	"github.com/vpetrenko/catalog_api/internal/apperr"
	"github.com/vpetrenko/catalog_api/internal/models"
	"github.com/vpetrenko/catalog_api/internal/slug"
	"github.com/vpetrenko/catalog_api/internal/transport"
)

const (
	productNotFound = "Product not found"
	productExists   = "Product already exists in this subcategory"

	// externalUrl is admin-supplied but served to anonymous traffic, so
	// only this scheme may ever be redirected to.
	trustedScheme = "https"
)

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, storeErr(err, productNotFound, productExists)
	}
	return prod, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, q transport.ListQuery) (PageInfo, []models.Product, error) {
	params, info := listParams(q, listFilters{priceSort: true, byCategory: true, bySubCategory: true})
	total, items, err := s.Repo.ListProducts(ctx, params)
	if err != nil {
		return info, nil, apperr.Internal("cannot list products", err)
	}
	info.Total = total
	return info, items, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	sl := slug.Make(name)
	if sl == "" {
		return nil, apperr.Validation(apperr.FieldError{Field: "name", Message: "name must contain at least one letter or digit"})
	}
	if req.Price == nil {
		return nil, apperr.Validation(apperr.FieldError{Field: "price", Message: "price is required"})
	}
	if req.Price.IsNegative() {
		return nil, apperr.Validation(apperr.FieldError{Field: "price", Message: "price must be greater than or equal to 0"})
	}

	if _, err := s.Repo.GetCategory(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(categoryNotFound)
		}
		return nil, apperr.Internal("cannot create product", err)
	}
	if _, err := s.Repo.GetSubCategory(ctx, req.SubCategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(subCategoryNotFound)
		}
		return nil, apperr.Internal("cannot create product", err)
	}

	taken, err := s.Repo.ProductTaken(ctx, name, sl, req.SubCategoryID, "")
	if err != nil {
		return nil, apperr.Internal("cannot create product", err)
	}
	if taken {
		return nil, apperr.Conflict(productExists)
	}

	prod := &models.Product{
		Name:          name,
		Slug:          sl,
		Brand:         strings.TrimSpace(req.Brand),
		Price:         *req.Price,
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
		ExternalURL:   req.ExternalURL,
		IsActive:      true,
	}
	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		return nil, storeErr(err, productNotFound, productExists)
	}

	s.Events.Publish(ctx, "product.created", prod.ID, prod)
	return prod, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req transport.UpdateProductRequest) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, storeErr(err, productNotFound, productExists)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		sl := slug.Make(name)
		if sl == "" {
			return nil, apperr.Validation(apperr.FieldError{Field: "name", Message: "name must contain at least one letter or digit"})
		}
		taken, err := s.Repo.ProductTaken(ctx, name, sl, prod.SubCategoryID, prod.ID)
		if err != nil {
			return nil, apperr.Internal("cannot update product", err)
		}
		if taken {
			return nil, apperr.Conflict(productExists)
		}
		prod.Name = name
		prod.Slug = sl
	}
	if req.Brand != nil {
		prod.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apperr.Validation(apperr.FieldError{Field: "price", Message: "price must be greater than or equal to 0"})
		}
		prod.Price = *req.Price
	}
	if req.ExternalURL != nil {
		prod.ExternalURL = *req.ExternalURL
	}
	if req.IsActive != nil {
		prod.IsActive = *req.IsActive
	}

	if err := s.Repo.SaveProduct(ctx, prod); err != nil {
		return nil, storeErr(err, productNotFound, productExists)
	}

	s.Events.Publish(ctx, "product.updated", prod.ID, prod)
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return storeErr(err, productNotFound, productExists)
	}
	s.Events.Publish(ctx, "product.deleted", id, nil)
	return nil
}

// ProductRedirectURL resolves the redirect target for a product and refuses
// anything but the trusted scheme, so a stored URL can never turn the public
// redirect route into an open redirect.
func (s *CatalogService) ProductRedirectURL(ctx context.Context, id string) (string, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return "", storeErr(err, productNotFound, productExists)
	}
	if prod.ExternalURL == "" {
		return "", apperr.NotFound("Product has no external URL")
	}

	u, err := url.Parse(prod.ExternalURL)
	if err != nil || u.Scheme != trustedScheme {
		return "", apperr.UnsafeRedirect("external URL does not use a trusted scheme")
	}
	return prod.ExternalURL, nil
}
