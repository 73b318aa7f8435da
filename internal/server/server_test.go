package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/midbel/barchart/internal/config"
	"github.com/midbel/barchart/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const sample = `
title = "languages"

[rows]
count = 5
max = 100

[columns]
labels = ["go", "python", "rust"]

[[series]]
name = "score"
values = [95, 60, 10]
`

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, _, err := config.GetConfig(nil, "")
	require.NoError(t, err)
	return cfg
}

func newTestServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)
	srv := httptest.NewServer(NewHandler(cfg, m, reg))
	t.Cleanup(srv.Close)
	return srv
}

func TestRender(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	resp, err := http.Post(srv.URL+"/render", "application/toml", strings.NewReader(sample))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, svgContentType, resp.Header.Get("Content-Type"))
}

func TestRenderMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	resp, err := http.Get(srv.URL + "/render")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRenderBadDocument(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	resp, err := http.Post(srv.URL+"/render", "application/toml", strings.NewReader("title = "))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRenderRejectedDocument(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	resp, err := http.Post(srv.URL+"/render", "application/toml", strings.NewReader(`title = "empty"`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRenderBodyTooLarge(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTP.MaxBody = 16
	srv := newTestServer(t, cfg)

	resp, err := http.Post(srv.URL+"/render", "application/toml", strings.NewReader(sample))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	cfg := testConfig(t)
	srv := newTestServer(t, cfg)
	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	cfg.Prometheus.Enabled = true
	srv = newTestServer(t, cfg)
	resp, err = http.Post(srv.URL+"/render", "application/toml", strings.NewReader(sample))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
