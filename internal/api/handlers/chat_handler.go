package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/prefeitura-guaira/app-busca-cep/internal/chat"
)

// Responder é o assistente de conversa
type Responder interface {
	Respond(ctx context.Context, message string) *chat.Reply
}

// ChatHandler atende o assistente de conversa
type ChatHandler struct {
	assistant Responder
	validator *validator.Validate
}

func NewChatHandler(assistant Responder) *ChatHandler {
	return &ChatHandler{
		assistant: assistant,
		validator: newValidator(),
	}
}

// ChatRequest é a mensagem enviada ao assistente
type ChatRequest struct {
	Message string `json:"mensagem" validate:"required,max=500" example:"qual o cep da rua 8?"`
}

// Chat godoc
// @Summary Assistente de CEP
// @Description Classifica a mensagem (saudação, agradecimento, ajuda, CEP ou endereço) e responde em texto e HTML
// @Tags chat
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Mensagem"
// @Success 200 {object} chat.Reply
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidation(c, err)
		return
	}

	c.JSON(http.StatusOK, h.assistant.Respond(c.Request.Context(), req.Message))
}
