package transport

import "github.com/shopspring/decimal"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type UpdateCategoryRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=50"`
	IsActive *bool   `json:"isActive"`
}

type CreateSubCategoryRequest struct {
	Name       string `json:"name" validate:"required,max=50"`
	CategoryID string `json:"categoryId" validate:"required,uuid"`
}

type UpdateSubCategoryRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=50"`
	IsActive *bool   `json:"isActive"`
}

type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,max=100"`
	Brand         string          `json:"brand" validate:"omitempty,max=100"`
	Price         *decimal.Decimal `json:"price"`
	CategoryID    string          `json:"categoryId" validate:"required,uuid"`
	SubCategoryID string          `json:"subcategoryId" validate:"required,uuid"`
	ExternalURL   string          `json:"externalUrl" validate:"required,url,startswith=https://"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Brand       *string          `json:"brand" validate:"omitempty,max=100"`
	Price       *decimal.Decimal `json:"price"`
	ExternalURL *string          `json:"externalUrl" validate:"omitempty,url,startswith=https://"`
	IsActive    *bool            `json:"isActive"`
}

// ListQuery is the shared list-endpoint contract. Parent-scope ids apply to
// subcategories (categoryId) and products (categoryId, subcategoryId).
type ListQuery struct {
	Page          int    `query:"page"`
	Limit         int    `query:"limit"`
	SortBy        string `query:"sortBy"`
	Order         string `query:"order"`
	Search        string `query:"search" validate:"omitempty,max=100"`
	IsActive      *bool  `query:"isActive"`
	CategoryID    string `query:"categoryId" validate:"omitempty,uuid"`
	SubCategoryID string `query:"subcategoryId" validate:"omitempty,uuid"`
}
