package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routekit/pkg/config"
	"routekit/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:            8080,
		LogLevel:        logger.INFO,
		LogFormat:       logger.JSON,
		GlobalPrefix:    "/api",
		RequestTimeout:  time.Second,
		MaxRequestSize:  1024,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		ShutdownTimeout: time.Second,
		Log:             logger.Discard(),
	}
}

func TestApplication_Endpoints(t *testing.T) {
	a, err := NewApplication(testConfig())
	require.NoError(t, err)

	h := a.Handler()

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{name: "health", method: http.MethodGet, target: "/health", status: http.StatusOK},
		{name: "ready", method: http.MethodGet, target: "/ready", status: http.StatusOK},
		{name: "normalize", method: http.MethodGet, target: "/api/normalize?path=x//y/", status: http.StatusOK},
		{name: "non canonical redirects", method: http.MethodGet, target: "/api//routes/", status: http.StatusMovedPermanently},
		{name: "inspect", method: http.MethodPost, target: "/api/inspect", body: `{"value":{}}`, status: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, target: "/api/nope", status: http.StatusNotFound},
		{name: "wrong method", method: http.MethodDelete, target: "/api/routes", status: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.target, nil)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestApplication_Routes(t *testing.T) {
	cfg := testConfig()
	cfg.GlobalPrefix = "/v1"

	a, err := NewApplication(cfg)
	require.NoError(t, err)

	var paths []string
	for _, r := range a.Routes() {
		paths = append(paths, r.Method+" "+r.Path)
	}
	assert.Equal(t, []string{"POST /v1/inspect", "GET /v1/normalize", "GET /v1/routes"}, paths)
}

func TestApplication_CanonicalRedirects(t *testing.T) {
	a, err := NewApplication(testConfig())
	require.NoError(t, err)

	tests := []struct {
		name     string
		method   string
		target   string
		status   int
		location string
	}{
		{name: "post with duplicate slashes", method: http.MethodPost, target: "/api//inspect", status: http.StatusPermanentRedirect, location: "/api/inspect"},
		{name: "get with duplicate and trailing slashes", method: http.MethodGet, target: "/api//routes/", status: http.StatusMovedPermanently, location: "/api/routes"},
		{name: "post with trailing slash", method: http.MethodPost, target: "/api/inspect/", status: http.StatusPermanentRedirect, location: "/api/inspect"},
		{name: "health with trailing slash", method: http.MethodGet, target: "//health/", status: http.StatusMovedPermanently, location: "/health"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			a.Handler().ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
		})
	}
}
