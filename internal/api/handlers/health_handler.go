package handlers

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger é uma dependência com verificação de conexão
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler gerencia os endpoints de health check
type HealthHandler struct {
	local Pinger
	extra map[string]Pinger
}

// NewHealthHandler cria o handler. local é a base de CEPs, exigida pelo readiness;
// extra são dependências verificadas só no /health (ex: redis).
func NewHealthHandler(local Pinger, extra map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		local: local,
		extra: extra,
	}
}

// HealthResponse representa a resposta do health check
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// Liveness godoc
// @Summary Liveness probe endpoint
// @Description Verifica se a aplicação está viva (sem checagem de dependências externas)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /liveness [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: time.Now().Unix(),
	})
}

// Readiness godoc
// @Summary Readiness probe endpoint
// @Description Verifica se a aplicação está pronta para receber tráfego (valida a base local de CEPs)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readiness [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ready",
		Checks:    make(map[string]string),
		Timestamp: time.Now().Unix(),
	}

	if check(ctx, h.local) {
		response.Checks["local"] = "ok"
	} else {
		response.Checks["local"] = "failed"
		response.Status = "not_ready"
		response.Error = "Base local de CEPs indisponível"
	}

	statusCode := http.StatusOK
	if response.Status == "not_ready" {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, response)
}

// Health godoc
// @Summary Comprehensive health check endpoint
// @Description Verifica a base local e as demais dependências (para monitoramento externo de uptime)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Checks:    make(map[string]string),
		Timestamp: time.Now().Unix(),
	}

	checks := map[string]Pinger{"local": h.local}
	for name, p := range h.extra {
		checks[name] = p
	}

	var failed []string
	for name, p := range checks {
		if check(ctx, p) {
			response.Checks[name] = "ok"
		} else {
			response.Checks[name] = "failed"
			failed = append(failed, name)
		}
	}

	statusCode := http.StatusOK
	if len(failed) > 0 {
		sort.Strings(failed)
		response.Status = "unhealthy"
		response.Error = "Falha na verificação de: " + strings.Join(failed, ", ")
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, response)
}

func check(ctx context.Context, p Pinger) bool {
	if p == nil {
		return false
	}
	return p.Ping(ctx) == nil
}
