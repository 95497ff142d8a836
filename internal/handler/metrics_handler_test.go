package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/grading-engine/internal/service"
)

func TestMetricsHandlerReady(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewMetricsHandler(service.NewMetricsService(), map[string]ReadinessCheck{
		"database": func(ctx context.Context) error { return nil },
		"redis":    func(ctx context.Context) error { return nil },
	})

	c, w := newGinContext(http.MethodGet, "/ready", nil)
	h.Ready(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, "ok", body.Checks["redis"])
}

func TestMetricsHandlerReadyReportsFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewMetricsHandler(nil, map[string]ReadinessCheck{
		"database": func(ctx context.Context) error { return errors.New("connection refused") },
	})

	c, w := newGinContext(http.MethodGet, "/ready", nil)
	h.Ready(c)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestMetricsHandlerHealthAndPrometheus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	metrics.RecordGradeProcessed(true, true)
	h := NewMetricsHandler(metrics, nil)

	c, w := newGinContext(http.MethodGet, "/health", nil)
	h.Health(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	c, w = newGinContext(http.MethodGet, "/metrics", nil)
	h.Prometheus(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "grading_results_processed_total")

	c, w = newGinContext(http.MethodGet, "/metrics", nil)
	NewMetricsHandler(nil, nil).Prometheus(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.True(t, c.IsAborted())
	assert.JSONEq(t, `{"error":"metrics disabled"}`, w.Body.String())
}
