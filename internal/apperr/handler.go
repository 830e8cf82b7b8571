package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/vpetrenko/catalog_api/internal/logging"
)

type envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Stack   string       `json:"stack,omitempty"`
}

// NewHTTPErrorHandler converts any error escaping a handler into the uniform
// error envelope. Outside production the envelope carries a stack trace;
// in production unexpected errors collapse to a generic message.
func NewHTTPErrorHandler(production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		resp := envelope{Success: false, Message: "Internal Server Error"}

		var appErr *Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = appErr.Status()
			resp.Message = appErr.Message
			resp.Errors = appErr.Fields
		case errors.As(err, &httpErr):
			status = httpErr.Code
			resp.Message = fmt.Sprintf("%v", httpErr.Message)
		}

		if status >= http.StatusInternalServerError {
			logging.FromContext(c.Request().Context()).Error("unhandled error", "error", err)
			if production {
				resp.Message = "Internal Server Error"
			} else {
				resp.Message = err.Error()
				resp.Stack = string(debug.Stack())
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, resp)
	}
}
