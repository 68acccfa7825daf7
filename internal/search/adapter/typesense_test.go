package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typesense/typesense-go/v3/typesense"
)

const searchResponse = `{
	"found": 3,
	"out_of": 3,
	"page": 1,
	"search_time_ms": 1,
	"hits": [
		{"document": {"cep": "14790030", "logradouro": "Avenida 1-A", "bairro": "Centro", "localidade": "Guaíra", "uf": "SP", "logradouro_busca": "avenida 1 a", "bairro_busca": "centro"}},
		{"document": {"cep": "14790040", "logradouro": "Avenida 11", "bairro": "Centro", "localidade": "Guaíra", "uf": "SP", "logradouro_busca": "avenida 11", "bairro_busca": "centro"}},
		{"document": {"cep": "14790050", "logradouro": "Rua A 1", "bairro": "Maracá", "localidade": "Guaíra", "uf": "SP", "logradouro_busca": "rua a 1", "bairro_busca": "maraca"}}
	]
}`

func newTestTypesense(t *testing.T, check func(r *http.Request)) *TypesenseLookup {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		check(r)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchResponse))
	}))
	t.Cleanup(srv.Close)

	client := typesense.NewClient(
		typesense.WithServer(srv.URL),
		typesense.WithAPIKey("test"),
	)
	return NewTypesenseLookup(client, "ceps", nil)
}

func TestTypesenseQueryByField(t *testing.T) {
	lookup := newTestTypesense(t, func(r *http.Request) {
		assert.Equal(t, "/collections/ceps/documents/search", r.URL.Path)
		assert.Equal(t, "avenida 1 a", r.URL.Query().Get("q"))
		assert.Equal(t, "logradouro_busca", r.URL.Query().Get("query_by"))
		assert.Equal(t, "always", r.URL.Query().Get("infix"))
	})

	records, err := lookup.QueryByField(context.Background(), models.FieldStreet, "Avenida 1-A", 50)
	require.NoError(t, err)
	require.Len(t, records, 1, "apenas a frase inteira conta")
	assert.Equal(t, "14790030", records[0].PostalCode)
	assert.Equal(t, models.SourceLocal, records[0].Source)
}

func TestTypesenseQueryByCode(t *testing.T) {
	lookup := newTestTypesense(t, func(r *http.Request) {
		assert.Equal(t, "cep:=`14790030`", r.URL.Query().Get("filter_by"))
	})

	records, err := lookup.QueryByCode(context.Background(), "14790-030")
	require.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = lookup.QueryByCode(context.Background(), "123")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestTypesenseQueryByFilter(t *testing.T) {
	lookup := newTestTypesense(t, func(r *http.Request) {})

	records, err := lookup.QueryByFilter(context.Background(), models.AddressFilter{Street: "avenida", Neighborhood: "centro"}, 10)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = lookup.QueryByFilter(context.Background(), models.AddressFilter{Neighborhood: "Maracá"}, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Rua A 1", records[0].Street)

	_, err = lookup.QueryByFilter(context.Background(), models.AddressFilter{}, 10)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestDocumentFromRecord(t *testing.T) {
	rec := models.AddressRecord{
		PostalCode:   "14790000",
		Street:       "Praça Sérgio Pereira",
		Neighborhood: "Centro",
		Locality:     "Guaíra",
		Region:       "SP",
	}

	doc := DocumentFromRecord(rec)
	assert.Equal(t, "praca sergio pereira", doc["logradouro_busca"])
	assert.Equal(t, "centro", doc["bairro_busca"])
	assert.NotContains(t, doc, "complemento")

	back := recordFromDocument(doc)
	rec.Source = models.SourceLocal
	assert.Equal(t, rec, back)
}

func TestBuildFilterBy(t *testing.T) {
	assert.Equal(t, "", buildFilterBy(nil))
	assert.Equal(t, "cep:=`14790000`", buildFilterBy(map[string]string{"cep": "14790000"}))
	assert.Equal(t, "uf:=`SP`", buildFilterBy(map[string]string{"uf": "S`P"}))
}
