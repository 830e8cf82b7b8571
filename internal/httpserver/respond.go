package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vpetrenko/catalog_api/internal/service"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// listEnvelope flattens the pagination fields next to the page data: total
// counts the filtered set before paging, results the returned page.
type listEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Total   int64  `json:"total"`
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	Results int    `json:"results"`
	Data    any    `json:"data"`
}

func respondOK(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func respondCreated(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

func respondPage(c echo.Context, message string, info service.PageInfo, results int, data any) error {
	return c.JSON(http.StatusOK, listEnvelope{
		Success: true,
		Message: message,
		Total:   info.Total,
		Page:    info.Page,
		Limit:   info.Limit,
		Results: results,
		Data:    data,
	})
}
