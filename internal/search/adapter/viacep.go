package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
	"github.com/prefeitura-guaira/app-busca-cep/internal/observability"
	"github.com/prefeitura-guaira/app-busca-cep/internal/utils"
	"go.uber.org/zap"
)

// MinFreeTextLength é o tamanho mínimo do logradouro aceito pela busca por texto
const MinFreeTextLength = 3

// ViaCEPOptions configura o cliente da API ViaCEP
type ViaCEPOptions struct {
	BaseURL   string
	Timeout   time.Duration
	CacheTTL  time.Duration
	CacheSize int
	Logger    *zap.Logger
}

// ViaCEPClient consulta a API pública ViaCEP
type ViaCEPClient struct {
	httpClient *http.Client
	baseURL    string
	cache      *LRUCache[models.AddressRecord]
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewViaCEPClient cria o cliente. Com CacheSize <= 0 as consultas por CEP não são cacheadas.
func NewViaCEPClient(opts ViaCEPOptions) *ViaCEPClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &ViaCEPClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		cacheTTL:   opts.CacheTTL,
		logger:     logger,
	}
	if opts.CacheSize > 0 && opts.CacheTTL > 0 {
		c.cache = NewLRUCache[models.AddressRecord](opts.CacheSize)
	}
	return c
}

// viaCEPAddress espelha o JSON retornado pela API
type viaCEPAddress struct {
	CEP         string          `json:"cep"`
	Logradouro  string          `json:"logradouro"`
	Complemento string          `json:"complemento"`
	Bairro      string          `json:"bairro"`
	Localidade  string          `json:"localidade"`
	UF          string          `json:"uf"`
	Erro        json.RawMessage `json:"erro,omitempty"`
}

// notFound interpreta o campo "erro", que já veio como booleano e como string
func (a viaCEPAddress) notFound() bool {
	v := strings.Trim(string(bytes.TrimSpace(a.Erro)), `"`)
	return v == "true"
}

func (a viaCEPAddress) toRecord(fallbackCode string) models.AddressRecord {
	code := utils.DigitsOnly(a.CEP)
	if code == "" {
		code = fallbackCode
	}
	return models.AddressRecord{
		PostalCode:   code,
		Street:       a.Logradouro,
		Neighborhood: a.Bairro,
		Locality:     a.Localidade,
		Region:       a.UF,
		Complement:   a.Complemento,
		Source:       models.SourceExternal,
	}
}

// LookupByCode busca um CEP de 8 dígitos. Retorna models.ErrNotFound quando
// a API responde que o CEP não existe.
func (c *ViaCEPClient) LookupByCode(ctx context.Context, code string) (*models.AddressRecord, error) {
	code = utils.DigitsOnly(code)
	if !utils.IsValidCEP(code) {
		return nil, fmt.Errorf("%w: CEP deve ter 8 dígitos", models.ErrInvalidInput)
	}

	if c.cache != nil {
		if rec, ok := c.cache.Get(code); ok {
			observability.CacheTotal.WithLabelValues("viacep", "hit").Inc()
			return &rec, nil
		}
		observability.CacheTotal.WithLabelValues("viacep", "miss").Inc()
	}

	body, err := c.get(ctx, c.baseURL+"/"+code+"/json/")
	if err != nil {
		return nil, err
	}

	var addr viaCEPAddress
	if err := json.Unmarshal(body, &addr); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta da ViaCEP: %w", err)
	}
	if addr.notFound() {
		return nil, models.ErrNotFound
	}

	rec := addr.toRecord(code)
	if c.cache != nil {
		c.cache.Set(code, rec, c.cacheTTL)
	}
	return &rec, nil
}

// LookupByFreeText busca logradouros de uma cidade. Respostas que não são uma
// lista (a API devolve um objeto de erro) contam como nenhum resultado.
func (c *ViaCEPClient) LookupByFreeText(ctx context.Context, region, locality, street string) ([]models.AddressRecord, error) {
	street = strings.TrimSpace(street)
	if region == "" || locality == "" || street == "" {
		return nil, fmt.Errorf("%w: UF, cidade e logradouro são obrigatórios", models.ErrInvalidInput)
	}
	if utf8.RuneCountInString(street) < MinFreeTextLength {
		return nil, fmt.Errorf("%w: logradouro deve ter pelo menos %d caracteres", models.ErrInvalidInput, MinFreeTextLength)
	}

	endpoint := fmt.Sprintf("%s/%s/%s/%s/json/",
		c.baseURL,
		url.PathEscape(region),
		url.PathEscape(locality),
		url.PathEscape(street),
	)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil
	}

	var items []viaCEPAddress
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta da ViaCEP: %w", err)
	}

	records := make([]models.AddressRecord, 0, len(items))
	for _, item := range items {
		rec := item.toRecord("")
		if !utils.IsValidCEP(rec.PostalCode) {
			c.logger.Debug("registro da ViaCEP sem CEP válido ignorado", zap.String("cep", item.CEP))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (c *ViaCEPClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar requisição: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao chamar ViaCEP: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta da ViaCEP: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("ViaCEP respondeu com erro",
			zap.Int("status", resp.StatusCode),
			zap.String("url", endpoint),
		)
		return nil, fmt.Errorf("ViaCEP retornou status %d", resp.StatusCode)
	}

	return body, nil
}
