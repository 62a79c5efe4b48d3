package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "internal server error"

// NewErrorHandler renders every error as {"message": ...}. Server errors are
// logged with their cause and answered with a generic message.
func NewErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := internalErrorMessage
		cause := err

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok && code < http.StatusInternalServerError {
				msg = m
			}
			if he.Internal != nil {
				cause = he.Internal
			}
		}

		if code >= http.StatusInternalServerError {
			log.Error("http.error",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", code,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"error", cause,
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, map[string]string{"message": msg})
	}
}
