package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefeitura-guaira/app-busca-cep/internal/chat"
	"github.com/prefeitura-guaira/app-busca-cep/internal/search/query"
)

type fakeResponder struct{ message string }

func (f *fakeResponder) Respond(ctx context.Context, message string) *chat.Reply {
	f.message = message
	return &chat.Reply{
		Intent: query.Intent{Kind: query.IntentThanks},
		Text:   "Por nada!",
		HTML:   "<p>Por nada!</p>\n",
	}
}

func TestChatHandler(t *testing.T) {
	responder := &fakeResponder{}
	h := NewChatHandler(responder)
	r := newTestEngine(func(r *gin.Engine) { r.POST("/chat", h.Chat) })

	w := doRequest(t, r, http.MethodPost, "/chat", `{"mensagem":"obrigado"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "obrigado", responder.message)

	reply := decode[chat.Reply](t, w)
	assert.Equal(t, "Por nada!", reply.Text)
	assert.Equal(t, query.IntentThanks, reply.Intent.Kind)
}

func TestChatHandlerValidation(t *testing.T) {
	h := NewChatHandler(&fakeResponder{})
	r := newTestEngine(func(r *gin.Engine) { r.POST("/chat", h.Chat) })

	assert.Equal(t, http.StatusBadRequest, doRequest(t, r, http.MethodPost, "/chat", `{"mensagem":""}`).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, r, http.MethodPost, "/chat", `nao e json`).Code)
}
