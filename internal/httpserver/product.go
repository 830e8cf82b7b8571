package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vpetrenko/catalog_api/internal/apperr"
	"github.com/vpetrenko/catalog_api/internal/service"
	"github.com/vpetrenko/catalog_api/internal/transport"
	"github.com/vpetrenko/catalog_api/internal/validation"
)

type ProductHTTP struct {
	Svc *service.CatalogService
}

func (h *ProductHTTP) List(c echo.Context) error {
	var q transport.ListQuery
	if err := c.Bind(&q); err != nil {
		return apperr.BadRequest("invalid query parameters")
	}
	if err := validation.Struct(q); err != nil {
		return err
	}

	info, items, err := h.Svc.ListProducts(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return respondPage(c, "Products fetched", info, len(items), items)
}

func (h *ProductHTTP) ListBySubCategory(c echo.Context) error {
	subCategoryID := c.Param("subcategoryId")
	if err := validation.ID("subcategoryId", subCategoryID); err != nil {
		return err
	}

	var q transport.ListQuery
	if err := c.Bind(&q); err != nil {
		return apperr.BadRequest("invalid query parameters")
	}
	if err := validation.Struct(q); err != nil {
		return err
	}
	q.SubCategoryID = subCategoryID

	info, items, err := h.Svc.ListProducts(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return respondPage(c, "Products fetched", info, len(items), items)
}

func (h *ProductHTTP) Get(c echo.Context) error {
	id := c.Param("id")
	if err := validation.ID("id", id); err != nil {
		return err
	}

	prod, err := h.Svc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respondOK(c, "Product fetched", prod)
}

func (h *ProductHTTP) Create(c echo.Context) error {
	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("invalid body")
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	prod, err := h.Svc.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return respondCreated(c, "Product created successfully", prod)
}

func (h *ProductHTTP) Update(c echo.Context) error {
	id := c.Param("id")
	if err := validation.ID("id", id); err != nil {
		return err
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("invalid body")
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	prod, err := h.Svc.UpdateProduct(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return respondOK(c, "Product updated successfully", prod)
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := validation.ID("id", id); err != nil {
		return err
	}

	if err := h.Svc.DeleteProduct(c.Request().Context(), id); err != nil {
		return err
	}
	return respondOK(c, "Product deleted successfully", nil)
}

// Redirect sends anonymous traffic to the product's external URL, but only
// after the trusted-scheme check.
func (h *ProductHTTP) Redirect(c echo.Context) error {
	id := c.Param("id")
	if err := validation.ID("id", id); err != nil {
		return err
	}

	target, err := h.Svc.ProductRedirectURL(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, target)
}
