// Package chat implementa o assistente de conversa: classifica a mensagem,
// consulta o orquestrador de busca e monta a resposta em texto e HTML.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
	"github.com/prefeitura-guaira/app-busca-cep/internal/observability"
	"github.com/prefeitura-guaira/app-busca-cep/internal/search/query"
	"github.com/prefeitura-guaira/app-busca-cep/internal/utils"
	"go.uber.org/zap"
)

// DefaultCap é quantos endereços o chat lista por resposta
const DefaultCap = 5

// Mensagens fixas do assistente
const (
	msgGreeting = "Olá! 👋 Posso ajudar a encontrar CEPs ou logradouros de %s/%s e todo o Brasil. O que você procura?"
	msgThanks   = "Por nada! 😊 Estou aqui sempre que precisar!"
	msgHelp     = "💡 Posso te ajudar com:\n" +
		"• Buscar CEP (ex: \"CEP 14900-000\")\n" +
		"• Buscar rua (ex: \"Rua 8\")\n" +
		"• Encontrar logradouros de %s e todo o Brasil!\n\n" +
		"O que você gostaria de fazer?"
	msgAskPostalCode   = "Informe o CEP no formato 00000-000 que eu busco para você! 🔍"
	msgCodeNotFound    = "Não encontrei esse CEP 😕 Verifique se está correto."
	msgAddressNotFound = "Não encontrei nenhum logradouro com esse nome. 🤔 Tente outro termo."
	msgNotUnderstood   = "🤔 Não entendi muito bem. Tente perguntar sobre um CEP ou endereço!\n\n" +
		"Exemplos:\n• \"CEP 14900-000\"\n• \"Rua 8\"\n• \"Avenida Brasil\""
	msgFailure        = "❌ Ops! Tive um problema ao consultar. Tente novamente!"
	msgExternalSource = "✨ Resultado via ViaCEP"
)

// Searcher é a parte do orquestrador usada pelo chat
type Searcher interface {
	Search(ctx context.Context, term string, limit int) (*models.SearchResponse, error)
	SearchByCode(ctx context.Context, code string) (*models.AddressRecord, error)
}

// Reply é a resposta do assistente. Text é texto puro; HTML é o mesmo conteúdo renderizado.
type Reply struct {
	Intent  query.Intent          `json:"intent"`
	Text    string                `json:"text"`
	HTML    string                `json:"html"`
	Results []models.RankedResult `json:"results,omitempty"`
}

// Options configura o assistente
type Options struct {
	Cap        int
	City       string
	Region     string
	Classifier *query.Classifier
	Logger     *zap.Logger
}

// Assistant responde mensagens livres sobre CEPs e endereços
type Assistant struct {
	searcher   Searcher
	classifier *query.Classifier
	cap        int
	city       string
	region     string
	logger     *zap.Logger
}

// NewAssistant cria o assistente
func NewAssistant(searcher Searcher, opts Options) *Assistant {
	a := &Assistant{
		searcher:   searcher,
		classifier: opts.Classifier,
		cap:        opts.Cap,
		city:       opts.City,
		region:     opts.Region,
		logger:     opts.Logger,
	}
	if a.classifier == nil {
		a.classifier = query.NewClassifier(nil)
	}
	if a.cap <= 0 {
		a.cap = DefaultCap
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	return a
}

// Respond classifica a mensagem e monta a resposta. Falhas de consulta viram
// mensagens para o usuário; Respond nunca retorna erro.
func (a *Assistant) Respond(ctx context.Context, message string) *Reply {
	intent := a.classifier.Classify(message)
	observability.ChatIntentsTotal.WithLabelValues(string(intent.Kind)).Inc()

	reply := &Reply{Intent: intent}
	var md string

	switch intent.Kind {
	case query.IntentGreeting:
		md = fmt.Sprintf(msgGreeting, a.city, a.region)
	case query.IntentThanks:
		md = msgThanks
	case query.IntentHelp:
		md = fmt.Sprintf(msgHelp, a.city)
	case query.IntentPostalCodeQuery:
		md = a.postalCodeReply(ctx, intent.PostalCode, reply)
	default:
		// pergunta sem logradouro, como "qual o cep"
		if intent.Term == "" && query.Normalize(message) != "" {
			md = msgAskPostalCode
			break
		}
		md = a.addressReply(ctx, intent.Term, reply)
	}

	reply.Text = utils.StripMarkdown(md)
	reply.HTML = utils.RenderHTML(md)
	return reply
}

func (a *Assistant) postalCodeReply(ctx context.Context, code string, reply *Reply) string {
	rec, err := a.searcher.SearchByCode(ctx, code)
	if err != nil {
		return a.failureMessage(err, msgCodeNotFound)
	}

	reply.Results = []models.RankedResult{{AddressRecord: *rec, Score: 1}}

	var b strings.Builder
	fmt.Fprintf(&b, "📍 O CEP **%s** corresponde a:\n", utils.FormatCEP(rec.PostalCode))
	b.WriteString(a.streetLine(*rec))
	b.WriteString("\n")
	b.WriteString(a.cityLine(*rec))
	if rec.Source == models.SourceExternal {
		b.WriteString("\n\n")
		b.WriteString(msgExternalSource)
	}
	return b.String()
}

func (a *Assistant) addressReply(ctx context.Context, term string, reply *Reply) string {
	// "cep" sozinho, sem número
	if term == "cep" {
		return msgAskPostalCode
	}

	resp, err := a.searcher.Search(ctx, term, a.cap)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			return msgNotUnderstood
		}
		return a.failureMessage(err, msgAddressNotFound)
	}

	reply.Results = resp.Results

	header := "🗺️ Encontrei em " + a.city + ":"
	if allExternal(resp.Results) {
		header = "🗺️ Encontrei via ViaCEP:"
	}

	items := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		items = append(items, "• "+a.streetLine(r.AddressRecord)+"\n  CEP: "+utils.FormatCEP(r.PostalCode))
	}
	return header + "\n" + strings.Join(items, "\n\n")
}

// failureMessage escolhe entre "não encontrado" e a mensagem de falha
func (a *Assistant) failureMessage(err error, notFound string) string {
	if errors.Is(err, models.ErrNotFound) {
		return notFound
	}
	a.logger.Warn("consulta do chat falhou", zap.Error(err))
	return msgFailure
}

func (a *Assistant) streetLine(rec models.AddressRecord) string {
	street := utils.EscapeMarkdown(rec.Street)
	if street == "" {
		street = "(logradouro não informado)"
	}
	if rec.Neighborhood == "" {
		return street
	}
	return street + ", " + utils.EscapeMarkdown(rec.Neighborhood)
}

func (a *Assistant) cityLine(rec models.AddressRecord) string {
	city, region := rec.Locality, rec.Region
	if city == "" {
		city = a.city
	}
	if region == "" {
		region = a.region
	}
	return utils.EscapeMarkdown(city) + "/" + utils.EscapeMarkdown(region)
}

func allExternal(results []models.RankedResult) bool {
	if len(results) == 0 {
		return false
	}
	for _, r := range results {
		if r.Source != models.SourceExternal {
			return false
		}
	}
	return true
}
