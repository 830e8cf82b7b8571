package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/vpetrenko/catalog_api/internal/apperr"
	"github.com/vpetrenko/catalog_api/internal/service"
	"github.com/vpetrenko/catalog_api/internal/transport"
	"github.com/vpetrenko/catalog_api/internal/validation"
)

type CategoryHTTP struct {
	Svc *service.CatalogService
}

func (h *CategoryHTTP) List(c echo.Context) error {
	var q transport.ListQuery
	if err := c.Bind(&q); err != nil {
		return apperr.BadRequest("invalid query parameters")
	}
	if err := validation.Struct(q); err != nil {
		return err
	}

	info, items, err := h.Svc.ListCategories(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return respondPage(c, "Categories fetched", info, len(items), items)
}

func (h *CategoryHTTP) Get(c echo.Context) error {
	id := c.Param("id")
	if err := validation.ID("id", id); err != nil {
		return err
	}

	cat, err := h.Svc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respondOK(c, "Category fetched", cat)
}

func (h *CategoryHTTP) Create(c echo.Context) error {
	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("invalid body")
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	cat, err := h.Svc.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return respondCreated(c, "Category created successfully", cat)
}

func (h *CategoryHTTP) Update(c echo.Context) error {
	id := c.Param("id")
	if err := validation.ID("id", id); err != nil {
		return err
	}

	var req transport.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("invalid body")
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	cat, err := h.Svc.UpdateCategory(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return respondOK(c, "Category updated successfully", cat)
}

func (h *CategoryHTTP) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := validation.ID("id", id); err != nil {
		return err
	}

	if err := h.Svc.DeleteCategory(c.Request().Context(), id); err != nil {
		return err
	}
	return respondOK(c, "Category deleted successfully", nil)
}
