package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-wallet-server-go/internal/config"
	"solana-wallet-server-go/internal/logger"
)

func TestNewApp_ServesConfiguredRoutes(t *testing.T) {
	cfg := config.GetConfigFromEnv(filepath.Join(t.TempDir(), "none.env"))
	cfg.Metrics.Path = "/internal/metrics"

	log, err := logger.NewLogger(logger.LogConfig{Level: "error", Format: "json"})
	require.NoError(t, err)
	log.SetOutput(io.Discard)

	app := NewApp(cfg, log)
	assert.Equal(t, cfg.Server.ListenAddr, app.server.Addr)
	assert.Equal(t, cfg.Server.ReadTimeout, app.server.ReadTimeout)

	for path, want := range map[string]int{
		"/health":           http.StatusOK,
		"/internal/metrics": http.StatusOK,
		"/metrics":          http.StatusBadRequest,
	} {
		rec := httptest.NewRecorder()
		app.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Code, path)
	}
}

func TestNewApp_MetricsDisabled(t *testing.T) {
	cfg := config.GetConfigFromEnv(filepath.Join(t.TempDir(), "none.env"))
	cfg.Metrics.Enabled = false

	log, err := logger.NewLogger(logger.LogConfig{Level: "error", Format: "json"})
	require.NoError(t, err)
	log.SetOutput(io.Discard)

	app := NewApp(cfg, log)
	assert.Nil(t, app.metrics)

	rec := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
