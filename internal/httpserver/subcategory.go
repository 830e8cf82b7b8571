package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/vpetrenko/catalog_api/internal/apperr"
	"github.com/vpetrenko/catalog_api/internal/service"
	"github.com/vpetrenko/catalog_api/internal/transport"
	"github.com/vpetrenko/catalog_api/internal/validation"
)

type SubCategoryHTTP struct {
	Svc *service.CatalogService
}

func (h *SubCategoryHTTP) List(c echo.Context) error {
	var q transport.ListQuery
	if err := c.Bind(&q); err != nil {
		return apperr.BadRequest("invalid query parameters")
	}
	if err := validation.Struct(q); err != nil {
		return err
	}

	info, items, err := h.Svc.ListSubCategories(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return respondPage(c, "Subcategories fetched", info, len(items), items)
}

// ListByCategory scopes the listing to one parent category.
func (h *SubCategoryHTTP) ListByCategory(c echo.Context) error {
	categoryID := c.Param("categoryId")
	if err := validation.ID("categoryId", categoryID); err != nil {
		return err
	}

	var q transport.ListQuery
	if err := c.Bind(&q); err != nil {
		return apperr.BadRequest("invalid query parameters")
	}
	if err := validation.Struct(q); err != nil {
		return err
	}
	q.CategoryID = categoryID

	info, items, err := h.Svc.ListSubCategories(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return respondPage(c, "Subcategories fetched", info, len(items), items)
}

func (h *SubCategoryHTTP) Get(c echo.Context) error {
	id := c.Param("id")
	if err := validation.ID("id", id); err != nil {
		return err
	}

	sub, err := h.Svc.GetSubCategory(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respondOK(c, "Subcategory fetched", sub)
}

func (h *SubCategoryHTTP) Create(c echo.Context) error {
	var req transport.CreateSubCategoryRequest
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("invalid body")
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	sub, err := h.Svc.CreateSubCategory(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return respondCreated(c, "Subcategory created successfully", sub)
}

func (h *SubCategoryHTTP) Update(c echo.Context) error {
	id := c.Param("id")
	if err := validation.ID("id", id); err != nil {
		return err
	}

	var req transport.UpdateSubCategoryRequest
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("invalid body")
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	sub, err := h.Svc.UpdateSubCategory(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return respondOK(c, "Subcategory updated successfully", sub)
}

func (h *SubCategoryHTTP) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := validation.ID("id", id); err != nil {
		return err
	}

	if err := h.Svc.DeleteSubCategory(c.Request().Context(), id); err != nil {
		return err
	}
	return respondOK(c, "Subcategory deleted successfully", nil)
}
