package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, nil))
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["message"]
}

func TestErrorHandler_HTTPError(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/book", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewErrorHandler(newTestLogger(&buf))(echo.NewHTTPError(http.StatusConflict, "room already booked: 1"), c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "room already booked: 1", decodeMessage(t, rec))
	assert.Empty(t, buf.String(), "client errors are not logged")
}

func TestErrorHandler_HidesInternalErrors(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/book", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewErrorHandler(newTestLogger(&buf))(errors.New("open /data/rooms.txt: permission denied"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, internalErrorMessage, decodeMessage(t, rec))
	assert.Contains(t, buf.String(), "permission denied")
}

func TestErrorHandler_LogsInternalCause(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	he := echo.NewHTTPError(http.StatusInternalServerError, "persistence failure: disk full")
	he.Internal = errors.New("disk full")
	NewErrorHandler(newTestLogger(&buf))(he, c)

	assert.Equal(t, internalErrorMessage, decodeMessage(t, rec))
	assert.Contains(t, buf.String(), "disk full")
}

func TestRequestLogger_WritesAccessLine(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestID())
	e.Use(RequestLogger(newTestLogger(&buf)))
	e.GET("/api/status", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	requestID := rec.Header().Get(echo.HeaderXRequestID)
	assert.Len(t, requestID, 36)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http.access", entry["msg"])
	assert.Equal(t, "/api/status", entry["uri"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, requestID, entry["request_id"])
	assert.NotContains(t, entry, "trace_id")
}

func TestTraceID(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(trace.ContextWithSpanContext(context.Background(), sc))
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", TraceID(c))
	assert.Empty(t, TraceID(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())))
}
