package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ClientIDHeader  = "X-Client-ID"
	RequestIDHeader = "X-Request-ID"

	ClientIDKey  = "client_id"
	RequestIDKey = "request_id"
)

// ClientIdentity identifica o navegador que guarda favoritos e histórico.
// Sem X-Client-ID válido, gera um uuid novo e devolve no header da resposta
// para que o front-end passe a enviá-lo.
func ClientIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := strings.TrimSpace(c.GetHeader(ClientIDHeader))
		if _, err := uuid.Parse(clientID); err != nil {
			clientID = uuid.NewString()
		}
		c.Set(ClientIDKey, clientID)
		c.Header(ClientIDHeader, clientID)

		c.Next()
	}
}

// RequestID propaga X-Request-ID ou gera um novo
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetClientID retorna o id do cliente definido por ClientIdentity
func GetClientID(c *gin.Context) string {
	if id, exists := c.Get(ClientIDKey); exists {
		if idStr, ok := id.(string); ok {
			return idStr
		}
	}
	return ""
}

// GetRequestID retorna o id da requisição
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDKey); exists {
		if idStr, ok := id.(string); ok {
			return idStr
		}
	}
	return ""
}
