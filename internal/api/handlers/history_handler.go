package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	middlewares "github.com/prefeitura-guaira/app-busca-cep/internal/middleware"
	"github.com/prefeitura-guaira/app-busca-cep/internal/storage"
)

// HistoryHandler expõe o histórico de buscas do cliente
type HistoryHandler struct {
	store storage.HistoryStore
}

func NewHistoryHandler(store storage.HistoryStore) *HistoryHandler {
	return &HistoryHandler{store: store}
}

// HistoryResponse lista os termos do mais recente para o mais antigo
type HistoryResponse struct {
	Mode  storage.HistoryMode `json:"modo" example:"cep"`
	Terms []string            `json:"termos"`
}

// List godoc
// @Summary Histórico de buscas
// @Description Últimos termos buscados no modo informado, do mais recente para o mais antigo
// @Tags historico
// @Produce json
// @Param X-Client-ID header string false "Identificador do cliente"
// @Param modo path string true "Modo do histórico" Enums(cep, endereco)
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/historico/{modo} [get]
func (h *HistoryHandler) List(c *gin.Context) {
	mode, err := storage.ParseHistoryMode(c.Param("modo"))
	if err != nil {
		respondError(c, err)
		return
	}

	terms, err := h.store.ListHistory(c.Request.Context(), middlewares.GetClientID(c), mode)
	if err != nil {
		respondError(c, err)
		return
	}
	if terms == nil {
		terms = []string{}
	}
	c.JSON(http.StatusOK, HistoryResponse{Mode: mode, Terms: terms})
}

// Clear godoc
// @Summary Limpa o histórico
// @Tags historico
// @Param X-Client-ID header string false "Identificador do cliente"
// @Param modo path string true "Modo do histórico" Enums(cep, endereco)
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/historico/{modo} [delete]
func (h *HistoryHandler) Clear(c *gin.Context) {
	mode, err := storage.ParseHistoryMode(c.Param("modo"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.store.ClearHistory(c.Request.Context(), middlewares.GetClientID(c), mode); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
