package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpetrenko/catalog_api/internal/apperr"
	"github.com/vpetrenko/catalog_api/internal/models"
	"github.com/vpetrenko/catalog_api/internal/transport"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func mustCreateCategory(t *testing.T, svc *CatalogService, name string) *models.Category {
	t.Helper()
	cat, err := svc.CreateCategory(context.Background(), transport.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return cat
}

func mustCreateSubCategory(t *testing.T, svc *CatalogService, name, categoryID string) *models.SubCategory {
	t.Helper()
	sub, err := svc.CreateSubCategory(context.Background(), transport.CreateSubCategoryRequest{
		Name:       name,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return sub
}

func mustCreateProduct(t *testing.T, svc *CatalogService, name, categoryID, subCategoryID string) *models.Product {
	t.Helper()
	prod, err := svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		Name:          name,
		Price:         decPtr("199.99"),
		CategoryID:    categoryID,
		SubCategoryID: subCategoryID,
		ExternalURL:   "https://partner.example/x",
	})
	require.NoError(t, err)
	return prod
}

func TestCreateCategory_DerivesSlug(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)

	cat := mustCreateCategory(t, svc, "  Graphic & Web Design ")
	assert.Equal(t, "Graphic & Web Design", cat.Name)
	assert.Equal(t, "graphic-web-design", cat.Slug)
	assert.True(t, cat.IsActive)
	assert.NotEmpty(t, cat.ID)
}

func TestCreateCategory_Duplicate(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	mustCreateCategory(t, svc, "Design")

	tests := []struct {
		name  string
		input string
	}{
		{name: "exact", input: "Design"},
		{name: "different case", input: "DESIGN"},
		{name: "surrounding whitespace", input: "  Design  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCategory(context.Background(), transport.CreateCategoryRequest{Name: tt.input})
			requireKind(t, err, apperr.KindConflict)
		})
	}
}

func TestCreateCategory_NameWithoutAlnum(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	_, err := svc.CreateCategory(context.Background(), transport.CreateCategoryRequest{Name: "!!!"})
	requireKind(t, err, apperr.KindValidation)
}

func TestUpdateCategory_Partial(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	cat := mustCreateCategory(t, svc, "Design")

	// toggling isActive leaves name and slug alone
	updated, err := svc.UpdateCategory(context.Background(), cat.ID, transport.UpdateCategoryRequest{
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Design", updated.Name)
	assert.Equal(t, "design", updated.Slug)
	assert.False(t, updated.IsActive)

	// renaming recomputes the slug
	updated, err = svc.UpdateCategory(context.Background(), cat.ID, transport.UpdateCategoryRequest{
		Name: strPtr("Print Design"),
	})
	require.NoError(t, err)
	assert.Equal(t, "print-design", updated.Slug)
	assert.False(t, updated.IsActive)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	_, err := svc.UpdateCategory(context.Background(), "00000000-0000-0000-0000-000000000000",
		transport.UpdateCategoryRequest{Name: strPtr("X")})
	requireKind(t, err, apperr.KindNotFound)
}

func TestCreateSubCategory_ParentChecks(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)

	_, err := svc.CreateSubCategory(context.Background(), transport.CreateSubCategoryRequest{
		Name:       "Logo Design",
		CategoryID: "00000000-0000-0000-0000-000000000000",
	})
	requireKind(t, err, apperr.KindNotFound)

	design := mustCreateCategory(t, svc, "Design")
	marketing := mustCreateCategory(t, svc, "Marketing")

	sub := mustCreateSubCategory(t, svc, "Logo Design", design.ID)
	assert.Equal(t, "logo-design", sub.Slug)
	assert.Equal(t, design.ID, sub.CategoryID)

	// same name under another category is fine
	_, err = svc.CreateSubCategory(context.Background(), transport.CreateSubCategoryRequest{
		Name:       "Logo Design",
		CategoryID: marketing.ID,
	})
	require.NoError(t, err)

	// same name under the same category is not
	_, err = svc.CreateSubCategory(context.Background(), transport.CreateSubCategoryRequest{
		Name:       "logo design",
		CategoryID: design.ID,
	})
	requireKind(t, err, apperr.KindConflict)
}

func TestCreateProduct_Validation(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	design := mustCreateCategory(t, svc, "Design")
	logo := mustCreateSubCategory(t, svc, "Logo Design", design.ID)

	_, err := svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		Name:          "Business Card",
		CategoryID:    design.ID,
		SubCategoryID: logo.ID,
		ExternalURL:   "https://partner.example/x",
	})
	requireKind(t, err, apperr.KindValidation)

	_, err = svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		Name:          "Business Card",
		Price:         decPtr("-1"),
		CategoryID:    design.ID,
		SubCategoryID: logo.ID,
		ExternalURL:   "https://partner.example/x",
	})
	requireKind(t, err, apperr.KindValidation)
}

func TestCreateProduct_ParentChecksAndUniqueness(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	design := mustCreateCategory(t, svc, "Design")
	logo := mustCreateSubCategory(t, svc, "Logo Design", design.ID)

	missing := "00000000-0000-0000-0000-000000000000"

	_, err := svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		Name: "Business Card", Price: decPtr("199.99"),
		CategoryID: missing, SubCategoryID: logo.ID,
		ExternalURL: "https://partner.example/x",
	})
	requireKind(t, err, apperr.KindNotFound)

	_, err = svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		Name: "Business Card", Price: decPtr("199.99"),
		CategoryID: design.ID, SubCategoryID: missing,
		ExternalURL: "https://partner.example/x",
	})
	requireKind(t, err, apperr.KindNotFound)

	prod := mustCreateProduct(t, svc, "Business Card", design.ID, logo.ID)
	assert.Equal(t, "business-card", prod.Slug)
	assert.True(t, prod.Price.Equal(decimal.RequireFromString("199.99")))

	_, err = svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		Name: "business card", Price: decPtr("10"),
		CategoryID: design.ID, SubCategoryID: logo.ID,
		ExternalURL: "https://partner.example/y",
	})
	requireKind(t, err, apperr.KindConflict)
}

func TestUpdateProduct_PartialLeavesRestUntouched(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	design := mustCreateCategory(t, svc, "Design")
	logo := mustCreateSubCategory(t, svc, "Logo Design", design.ID)
	prod := mustCreateProduct(t, svc, "Business Card", design.ID, logo.ID)

	updated, err := svc.UpdateProduct(context.Background(), prod.ID, transport.UpdateProductRequest{
		Brand: strPtr("Acme"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Brand)
	assert.Equal(t, "Business Card", updated.Name)
	assert.Equal(t, "business-card", updated.Slug)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("199.99")))
	assert.Equal(t, "https://partner.example/x", updated.ExternalURL)

	fetched, err := svc.GetProduct(context.Background(), prod.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", fetched.Brand)
	assert.Equal(t, "Business Card", fetched.Name)
}

func TestDeleteCategory_DoesNotCascade(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	design := mustCreateCategory(t, svc, "Design")
	logo := mustCreateSubCategory(t, svc, "Logo Design", design.ID)
	prod := mustCreateProduct(t, svc, "Business Card", design.ID, logo.ID)

	require.NoError(t, svc.DeleteCategory(context.Background(), design.ID))

	_, err := svc.GetCategory(context.Background(), design.ID)
	requireKind(t, err, apperr.KindNotFound)

	// children stay behind with dangling parent references
	_, err = svc.GetSubCategory(context.Background(), logo.ID)
	require.NoError(t, err)
	_, err = svc.GetProduct(context.Background(), prod.ID)
	require.NoError(t, err)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	err := svc.DeleteCategory(context.Background(), "00000000-0000-0000-0000-000000000000")
	requireKind(t, err, apperr.KindNotFound)
}

func TestListCategories_Pagination(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	const n, limit = 25, 10

	for i := 0; i < n; i++ {
		mustCreateCategory(t, svc, fmt.Sprintf("Category %02d", i))
	}

	seen := make(map[string]int)
	var pages int
	for page := 1; ; page++ {
		info, items, err := svc.ListCategories(context.Background(), transport.ListQuery{
			Page: page, Limit: limit, SortBy: "name", Order: "asc",
		})
		require.NoError(t, err)
		require.EqualValues(t, n, info.Total, "total is invariant across pages")
		if len(items) == 0 {
			break
		}
		pages++
		for _, it := range items {
			seen[it.ID]++
		}
	}

	assert.Equal(t, 3, pages) // ceil(25/10)
	assert.Len(t, seen, n)
	for id, count := range seen {
		assert.Equalf(t, 1, count, "category %s appeared %d times", id, count)
	}
}

func TestListCategories_ClampsLimitAndPage(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	mustCreateCategory(t, svc, "Design")

	info, _, err := svc.ListCategories(context.Background(), transport.ListQuery{Page: -3, Limit: 100000})
	require.NoError(t, err)
	assert.Equal(t, 1, info.Page)
	assert.Equal(t, 100, info.Limit)
}

func TestListCategories_SearchEscapesWildcards(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	mustCreateCategory(t, svc, "100% Cotton")
	mustCreateCategory(t, svc, "1000 Threads")

	info, items, err := svc.ListCategories(context.Background(), transport.ListQuery{Search: "100%"})
	require.NoError(t, err)
	require.EqualValues(t, 1, info.Total)
	assert.Equal(t, "100% Cotton", items[0].Name)
}

func TestListSubCategories_ScopedToParent(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	design := mustCreateCategory(t, svc, "Design")
	marketing := mustCreateCategory(t, svc, "Marketing")
	mustCreateSubCategory(t, svc, "Logo Design", design.ID)
	mustCreateSubCategory(t, svc, "Icons", design.ID)
	mustCreateSubCategory(t, svc, "SEO", marketing.ID)

	info, items, err := svc.ListSubCategories(context.Background(), transport.ListQuery{CategoryID: design.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, info.Total)
	for _, sub := range items {
		assert.Equal(t, design.ID, sub.CategoryID)
	}
}

func TestListProducts_FiltersAndPopulatesParents(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	design := mustCreateCategory(t, svc, "Design")
	logo := mustCreateSubCategory(t, svc, "Logo Design", design.ID)
	printing := mustCreateSubCategory(t, svc, "Print", design.ID)
	mustCreateProduct(t, svc, "Business Card", design.ID, logo.ID)
	mustCreateProduct(t, svc, "Letterhead", design.ID, printing.ID)

	info, items, err := svc.ListProducts(context.Background(), transport.ListQuery{SubCategoryID: logo.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, info.Total)
	require.Len(t, items, 1)
	assert.Equal(t, "Business Card", items[0].Name)
	require.NotNil(t, items[0].Category)
	assert.Equal(t, "Design", items[0].Category.Name)
	require.NotNil(t, items[0].SubCategory)
	assert.Equal(t, "Logo Design", items[0].SubCategory.Name)

	info, _, err = svc.ListProducts(context.Background(), transport.ListQuery{CategoryID: design.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, info.Total)

	active := false
	info, _, err = svc.ListProducts(context.Background(), transport.ListQuery{IsActive: &active})
	require.NoError(t, err)
	assert.EqualValues(t, 0, info.Total)
}

func TestProductRedirectURL(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	design := mustCreateCategory(t, svc, "Design")
	logo := mustCreateSubCategory(t, svc, "Logo Design", design.ID)
	prod := mustCreateProduct(t, svc, "Business Card", design.ID, logo.ID)

	target, err := svc.ProductRedirectURL(context.Background(), prod.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://partner.example/x", target)

	// stored URL with an untrusted scheme must never redirect
	insecure := &models.Product{
		Name: "Sticker", Slug: "sticker",
		Price:      decimal.RequireFromString("5"),
		CategoryID: design.ID, SubCategoryID: logo.ID,
		ExternalURL: "http://partner.example/y",
		IsActive:    true,
	}
	require.NoError(t, svc.Repo.CreateProduct(context.Background(), insecure))

	_, err = svc.ProductRedirectURL(context.Background(), insecure.ID)
	requireKind(t, err, apperr.KindUnsafeRedirect)

	_, err = svc.ProductRedirectURL(context.Background(), "00000000-0000-0000-0000-000000000000")
	requireKind(t, err, apperr.KindNotFound)
}

func TestCreateSubCategory_SlugCollision(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	design := mustCreateCategory(t, svc, "Design")
	marketing := mustCreateCategory(t, svc, "Marketing")
	mustCreateSubCategory(t, svc, "Logo Design", design.ID)

	// distinct name, same derived slug within the same category
	_, err := svc.CreateSubCategory(context.Background(), transport.CreateSubCategoryRequest{
		Name:       "Logo--Design",
		CategoryID: design.ID,
	})
	requireKind(t, err, apperr.KindConflict)

	// the same slug is free in another category
	sub := mustCreateSubCategory(t, svc, "Logo Design", marketing.ID)
	assert.Equal(t, "logo-design", sub.Slug)
}

func TestCreateProduct_SlugCollision(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	design := mustCreateCategory(t, svc, "Design")
	logo := mustCreateSubCategory(t, svc, "Logo Design", design.ID)
	printing := mustCreateSubCategory(t, svc, "Print", design.ID)
	mustCreateProduct(t, svc, "Business Card", design.ID, logo.ID)

	_, err := svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		Name:          "Business  Card",
		Price:         decPtr("9.99"),
		CategoryID:    design.ID,
		SubCategoryID: logo.ID,
		ExternalURL:   "https://partner.example/x",
	})
	requireKind(t, err, apperr.KindConflict)

	prod := mustCreateProduct(t, svc, "Business Card", design.ID, printing.ID)
	assert.Equal(t, "business-card", prod.Slug)
}

func TestList_IgnoresUnsupportedParentFilters(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t)
	design := mustCreateCategory(t, svc, "Design")
	mustCreateCategory(t, svc, "Marketing")
	logo := mustCreateSubCategory(t, svc, "Logo Design", design.ID)

	// categories have no parent columns; a stray filter must not leak into SQL
	info, _, err := svc.ListCategories(context.Background(), transport.ListQuery{
		CategoryID:    design.ID,
		SubCategoryID: logo.ID,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, info.Total)

	info, _, err = svc.ListSubCategories(context.Background(), transport.ListQuery{SubCategoryID: logo.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, info.Total)
}
