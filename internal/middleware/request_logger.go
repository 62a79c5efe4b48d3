package middleware

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/otel/trace"
)

// RequestID tags each request with a uuid unless the caller supplied one.
func RequestID() echo.MiddlewareFunc {
	return echoMw.RequestIDWithConfig(echoMw.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// RequestLogger writes one access line per request.
func RequestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
				"user_agent", v.UserAgent,
			}
			if traceID := TraceID(c); traceID != "" {
				attrs = append(attrs, "trace_id", traceID)
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			log.Info("http.access", attrs...)
			return nil
		},
	})
}

// TraceID returns the OpenTelemetry trace id of the request, if any.
func TraceID(c echo.Context) string {
	sc := trace.SpanContextFromContext(c.Request().Context())
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}
