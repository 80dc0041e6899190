package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parcelgate/courier/internal/middleware"
)

func TestRequestID_Generated(t *testing.T) {
	var fromContext string
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromContext = middleware.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.NotEmpty(t, fromContext)
	assert.Equal(t, fromContext, w.Header().Get(middleware.RequestIDHeader))
}

func TestRequestID_ReusesIncomingHeader(t *testing.T) {
	var fromContext string
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromContext = middleware.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "upstream-id")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "upstream-id", fromContext)
	assert.Equal(t, "upstream-id", w.Header().Get(middleware.RequestIDHeader))
}

func TestWithRequestLogger_InjectsLogger(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, nil))

	var got *slog.Logger
	handler := middleware.WithRequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = middleware.GetLogger(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/shipments", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.NotNil(t, got)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGetLogger_Fallback(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, base, middleware.GetLogger(req.Context(), base))
	assert.NotNil(t, middleware.GetLogger(req.Context()))
}
