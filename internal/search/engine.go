package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
	"github.com/prefeitura-guaira/app-busca-cep/internal/observability"
	"github.com/prefeitura-guaira/app-busca-cep/internal/search/query"
	"github.com/prefeitura-guaira/app-busca-cep/internal/search/ranking"
	"github.com/prefeitura-guaira/app-busca-cep/internal/utils"
)

// LocalLookup é a base de CEPs do município. As consultas por campo usam
// substring sem diferenciar maiúsculas.
type LocalLookup interface {
	QueryByField(ctx context.Context, field models.AddressField, pattern string, limit int) ([]models.AddressRecord, error)
	QueryByCode(ctx context.Context, code string) ([]models.AddressRecord, error)
	QueryByFilter(ctx context.Context, filter models.AddressFilter, limit int) ([]models.AddressRecord, error)
}

// PostalAPI é a API pública de CEP.
// LookupByCode retorna models.ErrNotFound quando o CEP não existe.
type PostalAPI interface {
	LookupByCode(ctx context.Context, code string) (*models.AddressRecord, error)
	LookupByFreeText(ctx context.Context, region, locality, street string) ([]models.AddressRecord, error)
}

// Pinger é implementado pelos backends que conseguem verificar a conexão
type Pinger interface {
	Ping(ctx context.Context) error
}

// Policy define quando a API externa participa de uma busca por endereço
type Policy string

const (
	// PolicyFallback consulta a API externa só quando a base local não trouxe nada
	PolicyFallback Policy = "fallback"
	// PolicyParallel consulta as duas fontes ao mesmo tempo; a base local tem precedência na mescla
	PolicyParallel Policy = "parallel"
)

const (
	DefaultLocalLimit = 50
	// LookupLimit é o máximo de registros da consulta direta à base local
	LookupLimit = 100
	// MinExternalTermLength é o tamanho mínimo aceito pela busca por texto da API externa
	MinExternalTermLength = 3
)

// Canais de consulta, usados em métricas, spans e logs
const (
	channelLocalStreet       = "local_street"
	channelLocalNeighborhood = "local_neighborhood"
	channelLocalCode         = "local_code"
	channelLocalFilter       = "local_filter"
	channelExternalText      = "external_text"
	channelExternalCode      = "external_code"
)

// Options configura o Engine
type Options struct {
	Region     string // UF usada na busca por texto externa
	Locality   string // cidade usada na busca por texto externa
	Policy     Policy
	LocalLimit int
	Cache      *SearchCache // nil desabilita o cache
	Rules      *query.Rules // nil usa as regras embarcadas
	Logger     *zap.Logger
}

// Engine orquestra as buscas de endereço e de CEP sobre a base local e a API externa
type Engine struct {
	local      LocalLookup
	external   PostalAPI
	parser     *query.Parser
	cache      *SearchCache
	logger     *zap.Logger
	region     string
	locality   string
	policy     Policy
	localLimit int
}

// NewEngine cria um novo motor de busca. external pode ser nil.
func NewEngine(local LocalLookup, external PostalAPI, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := opts.Policy
	if policy != PolicyParallel {
		policy = PolicyFallback
	}
	localLimit := opts.LocalLimit
	if localLimit <= 0 {
		localLimit = DefaultLocalLimit
	}

	return &Engine{
		local:      local,
		external:   external,
		parser:     query.NewParser(opts.Rules),
		cache:      opts.Cache,
		logger:     logger,
		region:     opts.Region,
		locality:   opts.Locality,
		policy:     policy,
		localLimit: localLimit,
	}
}

// searchPlan descreve uma busca por endereço
type searchPlan struct {
	kind               string
	term               string
	fields             []models.AddressField
	external           bool
	neighborhoodFilter []string
	limit              int
}

// Search busca um termo livre no logradouro e no bairro da base local e, conforme
// a política, na API externa. Retorna no máximo limit resultados ordenados por
// similaridade.
//
// Erros: models.ErrInvalidInput (limit <= 0 ou termo sem variantes),
// models.ErrNotFound (os canais responderam sem resultado) e
// models.ErrServiceUnavailable (todos os canais consultados falharam).
func (e *Engine) Search(ctx context.Context, term string, limit int) (*models.SearchResponse, error) {
	return e.run(ctx, searchPlan{
		kind:     "address",
		term:     term,
		fields:   []models.AddressField{models.FieldStreet, models.FieldNeighborhood},
		external: true,
		limit:    limit,
	})
}

// SearchAddress atende o formulário de endereço. Com logradouro, busca as variantes
// no campo logradouro e usa o bairro como filtro; só com bairro, busca no campo bairro.
func (e *Engine) SearchAddress(ctx context.Context, q models.AddressQuery) (*models.SearchResponse, error) {
	street := strings.TrimSpace(q.Street)
	neighborhood := strings.TrimSpace(q.Neighborhood)

	switch {
	case street != "":
		plan := searchPlan{
			kind:     "form",
			term:     street,
			fields:   []models.AddressField{models.FieldStreet},
			external: true,
			limit:    q.Cap,
		}
		if neighborhood != "" {
			plan.neighborhoodFilter = e.neighborhoodForms(neighborhood)
		}
		return e.run(ctx, plan)
	case neighborhood != "":
		return e.run(ctx, searchPlan{
			kind:   "form",
			term:   neighborhood,
			fields: []models.AddressField{models.FieldNeighborhood},
			limit:  q.Cap,
		})
	default:
		observability.SearchOutcomesTotal.WithLabelValues("form", "invalid").Inc()
		return nil, fmt.Errorf("%w: informe logradouro e/ou bairro", models.ErrInvalidInput)
	}
}

// neighborhoodForms retorna as formas aceitas no filtro de bairro (normalizada e corrigida)
func (e *Engine) neighborhoodForms(neighborhood string) []string {
	forms := []string{query.Normalize(neighborhood)}
	if corrected := e.parser.Rules().Correct(neighborhood); corrected != forms[0] {
		forms = append(forms, corrected)
	}
	return forms
}

func (e *Engine) run(ctx context.Context, p searchPlan) (*models.SearchResponse, error) {
	startTime := time.Now()
	timing := models.TimingMeta{}

	ctx, span := observability.Tracer().Start(ctx, "search."+p.kind)
	defer span.End()

	if p.limit <= 0 {
		return nil, e.finish(span, p.kind, fmt.Errorf("%w: %w", models.ErrInvalidInput, ErrInvalidCap))
	}

	parsed := e.parser.Parse(p.term)
	if len(parsed.Variants) == 0 {
		return nil, e.finish(span, p.kind, fmt.Errorf("%w: %w", models.ErrInvalidInput, ErrTermTooShort))
	}
	span.SetAttributes(
		attribute.String("search.term", parsed.Normalized),
		attribute.Int("search.variants", len(parsed.Variants)),
		attribute.Int("search.limit", p.limit),
	)

	var cacheKey string
	if e.cache != nil {
		cacheKey = e.cache.GenerateKey(
			p.kind,
			parsed.Normalized,
			fieldsKey(p.fields),
			strings.Join(p.neighborhoodFilter, ","),
			strconv.Itoa(p.limit),
			string(e.policy),
		)
		if cached := e.cache.Get(cacheKey); cached != nil {
			span.SetAttributes(attribute.Bool("search.cached", true))
			return cached, e.finish(span, p.kind, nil)
		}
	}

	lookupStart := time.Now()
	tally := &channelTally{}
	runExternal := p.external && e.external != nil

	var localHits, externalHits [][]models.AddressRecord
	if runExternal && e.policy == PolicyParallel {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			localHits = e.queryLocal(ctx, parsed.Variants, p.fields, tally)
		}()
		go func() {
			defer wg.Done()
			externalHits = e.queryExternal(ctx, parsed.Variants, tally)
		}()
		wg.Wait()
	} else {
		localHits = e.queryLocal(ctx, parsed.Variants, p.fields, tally)
	}

	merged := newMergeSet(p.neighborhoodFilter)
	merged.addAll(localHits, models.SourceLocal)

	if runExternal && e.policy == PolicyFallback && merged.len() == 0 {
		externalHits = e.queryExternal(ctx, parsed.Variants, tally)
	}
	externalUsed := merged.addAll(externalHits, models.SourceExternal) > 0

	timing.LookupMs = elapsedMs(lookupStart)

	rankStart := time.Now()
	results := ranking.Rank(merged.records, parsed.Variants, p.limit)
	timing.RankingMs = elapsedMs(rankStart)

	if len(results) == 0 {
		if tally.allFailed() {
			return nil, e.finish(span, p.kind, models.ErrServiceUnavailable)
		}
		return nil, e.finish(span, p.kind, models.ErrNotFound)
	}

	timing.TotalMs = elapsedMs(startTime)

	response := &models.SearchResponse{
		Results: results,
		Count:   len(results),
		Query: models.QueryMeta{
			Original:     p.term,
			Normalized:   parsed.Normalized,
			Variants:     parsed.Variants,
			ExternalUsed: externalUsed,
		},
		Timing: timing,
	}

	if cacheKey != "" {
		e.cache.Set(cacheKey, cachedCopy(response))
	}

	return response, e.finish(span, p.kind, nil)
}

// queryLocal consulta cada variante em cada campo, todas ao mesmo tempo.
// O resultado tem uma posição por (variante, campo), na ordem das variantes.
func (e *Engine) queryLocal(ctx context.Context, variants []string, fields []models.AddressField, tally *channelTally) [][]models.AddressRecord {
	out := make([][]models.AddressRecord, len(variants)*len(fields))

	var wg sync.WaitGroup
	for i, variant := range variants {
		for j, field := range fields {
			wg.Add(1)
			go func(slot int, variant string, field models.AddressField) {
				defer wg.Done()
				records, err := e.call(ctx, channelForField(field), variant, func(ctx context.Context) ([]models.AddressRecord, error) {
					return e.local.QueryByField(ctx, field, variant, e.localLimit)
				})
				tally.record(err)
				out[slot] = records
			}(i*len(fields)+j, variant, field)
		}
	}
	wg.Wait()

	return out
}

// queryExternal consulta a busca por texto da API externa para as variantes
// com pelo menos MinExternalTermLength caracteres
func (e *Engine) queryExternal(ctx context.Context, variants []string, tally *channelTally) [][]models.AddressRecord {
	out := make([][]models.AddressRecord, len(variants))

	var wg sync.WaitGroup
	for i, variant := range variants {
		if utf8.RuneCountInString(variant) < MinExternalTermLength {
			continue
		}
		wg.Add(1)
		go func(slot int, variant string) {
			defer wg.Done()
			records, err := e.call(ctx, channelExternalText, variant, func(ctx context.Context) ([]models.AddressRecord, error) {
				return e.external.LookupByFreeText(ctx, e.region, e.locality, variant)
			})
			tally.record(err)
			out[slot] = records
		}(i, variant)
	}
	wg.Wait()

	return out
}

// SearchByCode busca um CEP exato: primeiro na base local, depois na API externa.
// Números por extenso são aceitos ("um quatro nove ...").
func (e *Engine) SearchByCode(ctx context.Context, code string) (*models.AddressRecord, error) {
	ctx, span := observability.Tracer().Start(ctx, "search.code")
	defer span.End()

	digits := utils.DigitsOnly(e.parser.Rules().ExpandNumerals(code))
	if !utils.IsValidCEP(digits) {
		return nil, e.finish(span, "code", fmt.Errorf("%w: %w", models.ErrInvalidInput, ErrInvalidCode))
	}
	span.SetAttributes(attribute.String("search.cep", digits))

	tally := &channelTally{}

	records, err := e.call(ctx, channelLocalCode, digits, func(ctx context.Context) ([]models.AddressRecord, error) {
		return e.local.QueryByCode(ctx, digits)
	})
	tally.record(err)
	if rec := firstWithCode(records, digits, models.SourceLocal); rec != nil {
		return rec, e.finish(span, "code", nil)
	}

	if e.external != nil {
		records, err = e.call(ctx, channelExternalCode, digits, func(ctx context.Context) ([]models.AddressRecord, error) {
			rec, err := e.external.LookupByCode(ctx, digits)
			if errors.Is(err, models.ErrNotFound) {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			return []models.AddressRecord{*rec}, nil
		})
		tally.record(err)
		if rec := firstWithCode(records, digits, models.SourceExternal); rec != nil {
			return rec, e.finish(span, "code", nil)
		}
	}

	if tally.allFailed() {
		return nil, e.finish(span, "code", models.ErrServiceUnavailable)
	}
	return nil, e.finish(span, "code", models.ErrNotFound)
}

// Lookup repassa um filtro por logradouro e/ou bairro direto para a base local,
// sem variantes nem ranking
func (e *Engine) Lookup(ctx context.Context, filter models.AddressFilter, limit int) ([]models.AddressRecord, error) {
	filter.Street = strings.TrimSpace(filter.Street)
	filter.Neighborhood = strings.TrimSpace(filter.Neighborhood)
	if filter.IsEmpty() {
		return nil, fmt.Errorf("%w: informe logradouro e/ou bairro", models.ErrInvalidInput)
	}
	if limit <= 0 || limit > LookupLimit {
		limit = LookupLimit
	}

	records, err := e.call(ctx, channelLocalFilter, filter.Street+"|"+filter.Neighborhood, func(ctx context.Context) ([]models.AddressRecord, error) {
		return e.local.QueryByFilter(ctx, filter, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrServiceUnavailable, err)
	}
	if records == nil {
		records = []models.AddressRecord{}
	}
	return records, nil
}

// Ping verifica a base local, quando o backend suporta
func (e *Engine) Ping(ctx context.Context) error {
	if p, ok := e.local.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// call executa uma consulta em um canal com span, métricas e log de falha.
// Falhas voltam embrulhadas em ErrChannelUnavailable.
func (e *Engine) call(
	ctx context.Context,
	channel string,
	variant string,
	fn func(context.Context) ([]models.AddressRecord, error),
) ([]models.AddressRecord, error) {
	ctx, span := observability.Tracer().Start(ctx, "lookup."+channel)
	defer span.End()
	span.SetAttributes(attribute.String("lookup.variant", variant))

	start := time.Now()
	records, err := fn(ctx)
	observability.LookupDuration.WithLabelValues(channel).Observe(time.Since(start).Seconds())

	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrChannelUnavailable, channel, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		observability.LookupRequestsTotal.WithLabelValues(channel, "error").Inc()
		e.logger.Warn("falha em canal de consulta",
			zap.String("channel", channel),
			zap.String("variant", variant),
			zap.Error(err),
		)
		return nil, err
	}

	observability.LookupRequestsTotal.WithLabelValues(channel, "ok").Inc()
	span.SetAttributes(attribute.Int("lookup.results", len(records)))
	return records, nil
}

// finish registra o resultado da busca em métricas e no span
func (e *Engine) finish(span trace.Span, kind string, err error) error {
	outcome := outcomeFor(err)
	observability.SearchOutcomesTotal.WithLabelValues(kind, outcome).Inc()
	span.SetAttributes(attribute.String("search.outcome", outcome))
	if outcome == "unavailable" {
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return "found"
	case errors.Is(err, models.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	default:
		return "unavailable"
	}
}

// channelTally conta as chamadas feitas e as que falharam
type channelTally struct {
	mu        sync.Mutex
	attempted int
	failed    int
}

func (t *channelTally) record(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attempted++
	if err != nil {
		t.failed++
	}
}

// allFailed indica que houve chamadas e nenhuma respondeu
func (t *channelTally) allFailed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attempted > 0 && t.failed == t.attempted
}

// mergeSet junta resultados de vários canais sem repetir CEP.
// O primeiro registro visto para um CEP é o que fica.
type mergeSet struct {
	seen    map[string]bool
	records []models.AddressRecord
	filter  []string
}

func newMergeSet(neighborhoodFilter []string) *mergeSet {
	return &mergeSet{seen: make(map[string]bool), filter: neighborhoodFilter}
}

// addAll adiciona os lotes na ordem recebida e retorna quantos registros entraram
func (m *mergeSet) addAll(batches [][]models.AddressRecord, source models.Source) int {
	added := 0
	for _, batch := range batches {
		for _, rec := range batch {
			code := utils.DigitsOnly(rec.PostalCode)
			if !utils.IsValidCEP(code) || m.seen[code] || !m.accepts(rec) {
				continue
			}
			m.seen[code] = true
			rec.PostalCode = code
			rec.Source = source
			m.records = append(m.records, rec)
			added++
		}
	}
	return added
}

func (m *mergeSet) accepts(rec models.AddressRecord) bool {
	if len(m.filter) == 0 {
		return true
	}
	neighborhood := query.Normalize(rec.Neighborhood)
	for _, f := range m.filter {
		if strings.Contains(neighborhood, f) {
			return true
		}
	}
	return false
}

func (m *mergeSet) len() int {
	return len(m.records)
}

func firstWithCode(records []models.AddressRecord, code string, source models.Source) *models.AddressRecord {
	for _, rec := range records {
		if utils.DigitsOnly(rec.PostalCode) == code {
			rec.PostalCode = code
			rec.Source = source
			return &rec
		}
	}
	return nil
}

func channelForField(field models.AddressField) string {
	if field == models.FieldNeighborhood {
		return channelLocalNeighborhood
	}
	return channelLocalStreet
}

func fieldsKey(fields []models.AddressField) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}

// cachedCopy guarda a resposta marcada como vinda do cache
func cachedCopy(resp *models.SearchResponse) *models.SearchResponse {
	c := *resp
	c.Query.Cached = true
	return &c
}

func elapsedMs(since time.Time) float64 {
	return float64(time.Since(since).Microseconds()) / 1000
}
