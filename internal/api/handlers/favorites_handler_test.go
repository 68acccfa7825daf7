package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefeitura-guaira/app-busca-cep/internal/storage"
)

func newFavoritesRouter() *gin.Engine {
	h := NewFavoritesHandler(storage.NewMemoryStore(10))
	return newTestEngine(func(r *gin.Engine) {
		r.GET("/favoritos", h.List)
		r.POST("/favoritos", h.Add)
		r.DELETE("/favoritos/:cep", h.Remove)
	})
}

func TestFavoritesHandler(t *testing.T) {
	r := newFavoritesRouter()
	body := `{"cep":"14790-000","logradouro":"Rua 8","bairro":"Centro","localidade":"Guaíra","uf":"SP"}`

	w := doRequest(t, r, http.MethodPost, "/favoritos", body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, FavoriteResult{Added: true, CEP: "14790000"}, decode[FavoriteResult](t, w))

	// o mesmo CEP não é duplicado
	w = doRequest(t, r, http.MethodPost, "/favoritos", `{"cep":"14790000","logradouro":"Outra"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[FavoriteResult](t, w).Added)

	w = doRequest(t, r, http.MethodGet, "/favoritos", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[FavoritesResponse](t, w)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Rua 8", list.Favorites[0].Street)

	w = doRequest(t, r, http.MethodDelete, "/favoritos/14790-000", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, r, http.MethodDelete, "/favoritos/14790000", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodGet, "/favoritos", "")
	assert.Equal(t, 0, decode[FavoritesResponse](t, w).Count)
}

func TestFavoritesHandlerValidation(t *testing.T) {
	r := newFavoritesRouter()

	tests := []string{
		`{"cep":"123"}`,
		`{"logradouro":"Rua 8"}`,
		`{"cep":"14790000","uf":"SAO"}`,
		`{"cep":"14790000","origem":"outra"}`,
	}
	for _, body := range tests {
		w := doRequest(t, r, http.MethodPost, "/favoritos", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}
