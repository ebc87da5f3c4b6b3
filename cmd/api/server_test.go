package main

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHome(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>My express app</title>")
	assert.Contains(t, rec.Body.String(), "<h1>Hello there!</h1>")
}

func TestHealthcheck(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/healthcheck", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeJSON[struct {
		Status     string            `json:"status"`
		SystemInfo map[string]string `json:"system_info"`
	}](t, rec)
	assert.Equal(t, "available", body.Status)
	assert.Equal(t, "test", body.SystemInfo["environment"])
	assert.Contains(t, body.SystemInfo, "version")
}

func TestTrailingSlash(t *testing.T) {
	ts := newTestServer(t)
	ts.insertGenre(t, "genre1")

	for _, path := range []string{"/api/genres/", "/api/movies/"} {
		rec := ts.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := ts.do(t, http.MethodGet, "/api/genres/", "", nil)
	assert.Len(t, decodeJSON[[]map[string]any](t, rec), 1)
}

func TestMetrics(t *testing.T) {
	ts := newTestServer(t)

	ts.do(t, http.MethodGet, "/api/genres", "", nil)

	rec := ts.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "vidly_requests_total")
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/genres", "", nil)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/customers", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorHandling(t *testing.T) {
	ts := newTestServer(t)
	ts.e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})
	ts.e.GET("/fail", func(c echo.Context) error {
		return errors.New("database exploded")
	})

	rec := ts.do(t, http.MethodGet, "/panic", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Something failed.", rec.Body.String())
	assert.Equal(t, "close", rec.Header().Get("Connection"))

	rec = ts.do(t, http.MethodGet, "/fail", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Something failed.", rec.Body.String())
}

func TestRateLimiter(t *testing.T) {
	ts := newTestServer(t)
	ts.app.config.Limiter.Disabled = false
	ts.app.config.Limiter.RPS = 1
	ts.app.config.Limiter.Burst = 2
	ts.e = ts.app.routes()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, ts.do(t, http.MethodGet, "/api/genres", "", nil).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
