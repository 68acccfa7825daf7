package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
	"github.com/prefeitura-guaira/app-busca-cep/internal/storage"
)

func newSearchRouter(searcher *fakeSearcher, history storage.HistoryStore) *gin.Engine {
	h := NewSearchHandler(searcher, history, SearchOptions{FormCap: 20, City: "Guaíra", UF: "SP"})
	return newTestEngine(func(r *gin.Engine) {
		r.GET("/busca", h.Search)
		r.GET("/enderecos", h.Address)
		r.GET("/cep/:cep", h.CEP)
		r.GET("/lookup", h.Lookup)
	})
}

func TestSearchHandler(t *testing.T) {
	searcher := &fakeSearcher{resp: sampleResponse()}
	history := storage.NewMemoryStore(10)
	r := newSearchRouter(searcher, history)

	w := doRequest(t, r, http.MethodGet, "/busca?q=rua+oito", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "rua oito", searcher.term)
	assert.Equal(t, 20, searcher.limit, "sem limit usa o limite do formulário")

	resp := decode[models.SearchResponse](t, w)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "14790000", resp.Results[0].PostalCode)

	terms, err := history.ListHistory(context.Background(), testClientID, storage.HistoryAddress)
	require.NoError(t, err)
	assert.Equal(t, []string{"rua oito"}, terms)
}

func TestSearchHandlerValidation(t *testing.T) {
	r := newSearchRouter(&fakeSearcher{}, nil)

	assert.Equal(t, http.StatusBadRequest, doRequest(t, r, http.MethodGet, "/busca", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, r, http.MethodGet, "/busca?q=rua&limit=-1", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, r, http.MethodGet, "/busca?q=rua&limit=abc", "").Code)
}

func TestSearchHandlerErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{models.ErrInvalidInput, http.StatusBadRequest},
		{models.ErrNotFound, http.StatusNotFound},
		{models.ErrServiceUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		history := storage.NewMemoryStore(10)
		r := newSearchRouter(&fakeSearcher{err: tt.err}, history)

		w := doRequest(t, r, http.MethodGet, "/busca?q=rua+xyz", "")
		assert.Equal(t, tt.status, w.Code)
		assert.Equal(t, tt.err.Error(), decode[ErrorResponse](t, w).Error)

		terms, _ := history.ListHistory(context.Background(), testClientID, storage.HistoryAddress)
		assert.Empty(t, terms, "busca sem sucesso não entra no histórico")
	}
}

func TestAddressHandler(t *testing.T) {
	searcher := &fakeSearcher{resp: sampleResponse()}
	r := newSearchRouter(searcher, nil)

	w := doRequest(t, r, http.MethodGet, "/enderecos?logradouro=av+1a&bairro=+Centro+&limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.AddressQuery{Street: "av 1a", Neighborhood: "Centro", Cap: 5}, searcher.query)

	w = doRequest(t, r, http.MethodGet, "/enderecos?bairro=Maraca", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.AddressQuery{Neighborhood: "Maraca", Cap: 20}, searcher.query)

	w = doRequest(t, r, http.MethodGet, "/enderecos?logradouro=+&bairro=", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCEPHandler(t *testing.T) {
	rec := guairaRecord
	searcher := &fakeSearcher{record: &rec}
	history := storage.NewMemoryStore(10)
	r := newSearchRouter(searcher, history)

	w := doRequest(t, r, http.MethodGet, "/cep/14790-000", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "14790-000", searcher.code)

	resp := decode[CEPResponse](t, w)
	assert.Equal(t, "14790000", resp.PostalCode)
	assert.Equal(t, "14790-000", resp.FormattedCEP)
	assert.Contains(t, resp.Share.Text, "CEP: 14790-000")
	assert.Contains(t, resp.Share.Maps, "https://www.google.com/maps/search/")

	terms, err := history.ListHistory(context.Background(), testClientID, storage.HistoryCEP)
	require.NoError(t, err)
	assert.Equal(t, []string{"14790-000"}, terms)
}

func TestCEPHandlerInvalid(t *testing.T) {
	searcher := &fakeSearcher{}
	r := newSearchRouter(searcher, nil)

	w := doRequest(t, r, http.MethodGet, "/cep/1479", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, searcher.code, "CEP inválido não chega ao orquestrador")
}

func TestCEPHandlerNotFound(t *testing.T) {
	r := newSearchRouter(&fakeSearcher{err: models.ErrNotFound}, nil)

	w := doRequest(t, r, http.MethodGet, "/cep/99999999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLookupHandler(t *testing.T) {
	searcher := &fakeSearcher{records: []models.AddressRecord{guairaRecord}}
	r := newSearchRouter(searcher, nil)

	w := doRequest(t, r, http.MethodGet, "/lookup?logradouro=rua+8", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.AddressFilter{Street: "rua 8"}, searcher.filter)

	resp := decode[models.LookupResponse](t, w)
	assert.Equal(t, 1, resp.Count)

	searcher.err = models.ErrServiceUnavailable
	w = doRequest(t, r, http.MethodGet, "/lookup?bairro=centro", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doRequest(t, r, http.MethodGet, "/lookup", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
