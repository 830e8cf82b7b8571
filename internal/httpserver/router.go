package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/vpetrenko/catalog_api/internal/middleware"
	"github.com/vpetrenko/catalog_api/internal/models"
)

type Deps struct {
	Auth          *AuthHTTP
	Categories    *CategoryHTTP
	SubCategories *SubCategoryHTTP
	Products      *ProductHTTP
	Guard         *middleware.Guard
}

func Register(e *echo.Echo, d *Deps) {
	// 100 requests per 15 minutes per IP across the API, 5 per 15 minutes
	// on login to blunt credential guessing
	api := e.Group("/api", rateLimiter(100, 15*time.Minute))

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	auth := api.Group("/auth")
	auth.POST("/login", d.Auth.Login, rateLimiter(5, 15*time.Minute))
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout)
	auth.GET("/me", d.Auth.Me, d.Guard.Authenticate)

	adminOnly := []echo.MiddlewareFunc{d.Guard.Authenticate, d.Guard.RequireRole(models.RoleAdmin)}

	categories := api.Group("/categories")
	categories.GET("", d.Categories.List)
	categories.GET("/:id", d.Categories.Get)
	categories.POST("", d.Categories.Create, adminOnly...)
	categories.PUT("/:id", d.Categories.Update, adminOnly...)
	categories.DELETE("/:id", d.Categories.Delete, adminOnly...)

	subcategories := api.Group("/subcategories")
	subcategories.GET("", d.SubCategories.List)
	subcategories.GET("/category/:categoryId", d.SubCategories.ListByCategory)
	subcategories.GET("/:id", d.SubCategories.Get)
	subcategories.POST("", d.SubCategories.Create, adminOnly...)
	subcategories.PUT("/:id", d.SubCategories.Update, adminOnly...)
	subcategories.DELETE("/:id", d.SubCategories.Delete, adminOnly...)

	products := api.Group("/products")
	products.GET("", d.Products.List)
	products.GET("/subcategory/:subcategoryId", d.Products.ListBySubCategory)
	products.GET("/redirect/:id", d.Products.Redirect)
	products.GET("/:id", d.Products.Get)
	products.POST("", d.Products.Create, adminOnly...)
	products.PUT("/:id", d.Products.Update, adminOnly...)
	products.DELETE("/:id", d.Products.Delete, adminOnly...)
}

func rateLimiter(max int, window time.Duration) echo.MiddlewareFunc {
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(max) / window.Seconds()),
			Burst:     max,
			ExpiresIn: window,
		}),
	})
}
