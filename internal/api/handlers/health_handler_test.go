package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newHealthRouter(local Pinger, extra map[string]Pinger) *gin.Engine {
	h := NewHealthHandler(local, extra)
	return newTestEngine(func(r *gin.Engine) {
		r.GET("/liveness", h.Liveness)
		r.GET("/readiness", h.Readiness)
		r.GET("/health", h.Health)
	})
}

func TestHealthHandlerHealthy(t *testing.T) {
	r := newHealthRouter(fakePinger{}, map[string]Pinger{"redis": fakePinger{}})

	assert.Equal(t, http.StatusOK, doRequest(t, r, http.MethodGet, "/liveness", "").Code)
	assert.Equal(t, http.StatusOK, doRequest(t, r, http.MethodGet, "/readiness", "").Code)

	w := doRequest(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[HealthResponse](t, w)
	assert.Equal(t, map[string]string{"local": "ok", "redis": "ok"}, resp.Checks)
}

func TestHealthHandlerLocalDown(t *testing.T) {
	r := newHealthRouter(fakePinger{err: errors.New("connection refused")}, nil)

	assert.Equal(t, http.StatusOK, doRequest(t, r, http.MethodGet, "/liveness", "").Code)

	w := doRequest(t, r, http.MethodGet, "/readiness", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "not_ready", decode[HealthResponse](t, w).Status)
}

func TestHealthHandlerExtraDown(t *testing.T) {
	r := newHealthRouter(fakePinger{}, map[string]Pinger{"redis": fakePinger{err: errors.New("timeout")}})

	// redis fora não tira a aplicação do ar
	assert.Equal(t, http.StatusOK, doRequest(t, r, http.MethodGet, "/readiness", "").Code)

	w := doRequest(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode[HealthResponse](t, w)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "failed", resp.Checks["redis"])
}
