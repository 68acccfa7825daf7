package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
	"github.com/prefeitura-guaira/app-busca-cep/internal/search/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	byCode    map[string]*models.AddressRecord
	results   []models.RankedResult
	searchErr error
	codeErr   error

	lastTerm  string
	lastLimit int
}

func (f *fakeSearcher) Search(ctx context.Context, term string, limit int) (*models.SearchResponse, error) {
	f.lastTerm = term
	f.lastLimit = limit
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if len(f.results) == 0 {
		return nil, models.ErrNotFound
	}
	return &models.SearchResponse{Results: f.results, Count: len(f.results)}, nil
}

func (f *fakeSearcher) SearchByCode(ctx context.Context, code string) (*models.AddressRecord, error) {
	if f.codeErr != nil {
		return nil, f.codeErr
	}
	if rec, ok := f.byCode[code]; ok {
		return rec, nil
	}
	return nil, models.ErrNotFound
}

func newTestAssistant(s Searcher) *Assistant {
	return NewAssistant(s, Options{City: "Guaíra", Region: "SP"})
}

func TestRespondFixedReplies(t *testing.T) {
	a := newTestAssistant(&fakeSearcher{})

	tests := []struct {
		message string
		kind    query.IntentKind
		text    string
	}{
		{"Oi", query.IntentGreeting, "Olá! 👋 Posso ajudar a encontrar CEPs ou logradouros de Guaíra/SP e todo o Brasil. O que você procura?"},
		{"muito obrigado", query.IntentThanks, "Por nada! 😊 Estou aqui sempre que precisar!"},
		{"preciso de ajuda", query.IntentHelp, ""},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			reply := a.Respond(context.Background(), tt.message)
			assert.Equal(t, tt.kind, reply.Intent.Kind)
			if tt.text != "" {
				assert.Equal(t, tt.text, reply.Text)
			}
			assert.NotEmpty(t, reply.HTML)
			assert.Empty(t, reply.Results)
		})
	}

	help := a.Respond(context.Background(), "ajuda")
	assert.Contains(t, help.Text, "Buscar CEP (ex: \"CEP 14900-000\")")
	assert.Contains(t, help.Text, "Encontrar logradouros de Guaíra e todo o Brasil!")
}

func TestRespondPostalCodeLocal(t *testing.T) {
	s := &fakeSearcher{byCode: map[string]*models.AddressRecord{
		"14790000": {PostalCode: "14790000", Street: "Rua 8", Neighborhood: "Centro", Source: models.SourceLocal},
	}}
	a := newTestAssistant(s)

	reply := a.Respond(context.Background(), "qual o endereço do cep 14790-000?")

	assert.Equal(t, query.IntentPostalCodeQuery, reply.Intent.Kind)
	assert.Equal(t, "📍 O CEP 14790-000 corresponde a:\nRua 8, Centro\nGuaíra/SP", reply.Text)
	assert.Contains(t, reply.HTML, "<strong>14790-000</strong>")
	require.Len(t, reply.Results, 1)
	assert.Equal(t, 1.0, reply.Results[0].Score)
}

func TestRespondPostalCodeExternal(t *testing.T) {
	s := &fakeSearcher{byCode: map[string]*models.AddressRecord{
		"01001000": {PostalCode: "01001000", Street: "Praça da Sé", Neighborhood: "Sé", Locality: "São Paulo", Region: "SP", Source: models.SourceExternal},
	}}
	a := newTestAssistant(s)

	reply := a.Respond(context.Background(), "01001000")

	assert.Contains(t, reply.Text, "Praça da Sé, Sé\nSão Paulo/SP")
	assert.Contains(t, reply.Text, "✨ Resultado via ViaCEP")
}

func TestRespondPostalCodeFailures(t *testing.T) {
	notFound := newTestAssistant(&fakeSearcher{})
	reply := notFound.Respond(context.Background(), "cep 99999-999")
	assert.Equal(t, "Não encontrei esse CEP 😕 Verifique se está correto.", reply.Text)

	unavailable := newTestAssistant(&fakeSearcher{codeErr: models.ErrServiceUnavailable})
	reply = unavailable.Respond(context.Background(), "cep 99999-999")
	assert.Equal(t, "❌ Ops! Tive um problema ao consultar. Tente novamente!", reply.Text)
}

func TestRespondAddress(t *testing.T) {
	s := &fakeSearcher{results: []models.RankedResult{
		{AddressRecord: models.AddressRecord{PostalCode: "14790030", Street: "Avenida 1-A", Neighborhood: "Centro", Source: models.SourceLocal}, Score: 1},
		{AddressRecord: models.AddressRecord{PostalCode: "14790040", Street: "Avenida 11", Neighborhood: "Centro", Source: models.SourceExternal}, Score: 0.8},
	}}
	a := newTestAssistant(s)

	reply := a.Respond(context.Background(), "qual o cep da av 1a")

	assert.Equal(t, query.IntentAddressQuery, reply.Intent.Kind)
	assert.Equal(t, "av 1a", s.lastTerm)
	assert.Equal(t, DefaultCap, s.lastLimit)
	assert.Contains(t, reply.Text, "🗺️ Encontrei em Guaíra:")
	assert.Contains(t, reply.Text, "• Avenida 1-A, Centro")
	assert.Contains(t, reply.Text, "CEP: 14790-030")
	assert.Len(t, reply.Results, 2)
}

func TestRespondAddressOnlyExternal(t *testing.T) {
	s := &fakeSearcher{results: []models.RankedResult{
		{AddressRecord: models.AddressRecord{PostalCode: "14790040", Street: "Rua Oito", Source: models.SourceExternal}, Score: 0.9},
	}}
	a := NewAssistant(s, Options{City: "Guaíra", Region: "SP", Cap: 3})

	reply := a.Respond(context.Background(), "rua oito")

	assert.Contains(t, reply.Text, "🗺️ Encontrei via ViaCEP:")
	assert.Equal(t, 3, s.lastLimit)
}

func TestRespondAddressFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		text string
	}{
		{"not found", nil, "Não encontrei nenhum logradouro com esse nome. 🤔 Tente outro termo."},
		{"unavailable", models.ErrServiceUnavailable, "❌ Ops! Tive um problema ao consultar. Tente novamente!"},
		{"unexpected", errors.New("boom"), "❌ Ops! Tive um problema ao consultar. Tente novamente!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAssistant(&fakeSearcher{searchErr: tt.err})
			reply := a.Respond(context.Background(), "rua inexistente")
			assert.Equal(t, tt.text, reply.Text)
		})
	}
}

func TestRespondInvalidInput(t *testing.T) {
	a := newTestAssistant(&fakeSearcher{searchErr: models.ErrInvalidInput})

	reply := a.Respond(context.Background(), "?")
	assert.Contains(t, reply.Text, "Não entendi muito bem")
}

func TestRespondAskForPostalCode(t *testing.T) {
	s := &fakeSearcher{}
	a := newTestAssistant(s)

	reply := a.Respond(context.Background(), "CEP")
	assert.Equal(t, "Informe o CEP no formato 00000-000 que eu busco para você! 🔍", reply.Text)
	assert.Empty(t, s.lastTerm)
}

func TestRespondBareQuestionAsksForPostalCode(t *testing.T) {
	for _, msg := range []string{"qual o cep", "Qual o CEP da?"} {
		s := &fakeSearcher{}
		a := newTestAssistant(s)

		reply := a.Respond(context.Background(), msg)
		assert.Equal(t, "Informe o CEP no formato 00000-000 que eu busco para você! 🔍", reply.Text, msg)
		assert.Empty(t, s.lastTerm, msg)
	}
}
