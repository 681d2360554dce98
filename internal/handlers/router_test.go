package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/elearning-service/internal/utils"
)

type stubReadiness struct {
	err error
}

func (s stubReadiness) HealthCheck(context.Context) error { return s.err }

func newTestRouter(readiness ReadinessChecker, origins ...string) *gin.Engine {
	return newLoggedRouter(readiness, io.Discard, origins...)
}

func newLoggedRouter(readiness ReadinessChecker, out io.Writer, origins ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := utils.NewSlogLogger(slog.New(slog.NewJSONHandler(out, nil)))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := gin.New()
	SetupMiddleware(router, logger, origins)
	NewHandlerManager(readiness, logger).SetupRoutes(router)
	return router
}

func TestHealth(t *testing.T) {
	router := newTestRouter(stubReadiness{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, serviceName, body["service"])
}

func TestReady(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "ready", wantStatus: http.StatusOK, wantBody: "ready"},
		{name: "database down", err: errors.New("ping: connection refused"), wantStatus: http.StatusServiceUnavailable, wantBody: "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(stubReadiness{err: tt.err})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body["status"])
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(stubReadiness{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/ready", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), requestIDHeader)
}

func TestCORSAllowList(t *testing.T) {
	const allowed = "https://lms.example.com"
	router := newTestRouter(stubReadiness{}, allowed)

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{name: "allowed preflight", method: http.MethodOptions, origin: allowed, wantStatus: http.StatusNoContent, wantOrigin: allowed},
		{name: "refused preflight", method: http.MethodOptions, origin: "https://evil.example.com", wantStatus: http.StatusForbidden},
		{name: "allowed read", method: http.MethodGet, origin: allowed, wantStatus: http.StatusOK, wantOrigin: allowed},
		{name: "foreign read has no cors headers", method: http.MethodGet, origin: "https://evil.example.com", wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/health", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantOrigin != "" {
				assert.Equal(t, "Origin", w.Header().Get("Vary"))
			}
		})
	}
}

func TestRequestLogsCarryRequestID(t *testing.T) {
	var logs bytes.Buffer
	router := newLoggedRouter(stubReadiness{err: errors.New("redis: connection refused")}, &logs)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	req.Header.Set(requestIDHeader, "req-9")
	router.ServeHTTP(httptest.NewRecorder(), req)

	lines := bytes.Split(bytes.TrimSpace(logs.Bytes()), []byte("\n"))
	require.Len(t, lines, 2, "readiness warning and access log")
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		assert.Equal(t, "req-9", entry[utils.RequestIDKey])
		assert.Equal(t, serviceName, entry["service"])
	}
}

func TestRecoveryLogsPanic(t *testing.T) {
	var logs bytes.Buffer
	router := newLoggedRouter(stubReadiness{}, &logs)
	router.GET("/panic", func(*gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(requestIDHeader, "req-10")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "req-10", w.Header().Get(requestIDHeader))
	assert.Contains(t, logs.String(), `"msg":"Handler panicked"`)
	assert.Contains(t, logs.String(), `"request_id":"req-10"`)
}
