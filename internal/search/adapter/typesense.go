package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
	"github.com/prefeitura-guaira/app-busca-cep/internal/search/query"
	"github.com/prefeitura-guaira/app-busca-cep/internal/utils"
	"github.com/typesense/typesense-go/v3/typesense"
	"github.com/typesense/typesense-go/v3/typesense/api"
	"go.uber.org/zap"
)

// maxPerPage é o limite de hits por página aceito pelo Typesense
const maxPerPage = 250

// TypesenseLookup é a base local de CEPs em uma collection do Typesense.
// Os campos *_busca são indexados com infix, o que permite busca por substring.
type TypesenseLookup struct {
	client     *typesense.Client
	collection string
	logger     *zap.Logger
}

// NewTypesenseLookup cria o backend para a collection informada
func NewTypesenseLookup(client *typesense.Client, collection string, logger *zap.Logger) *TypesenseLookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TypesenseLookup{
		client:     client,
		collection: collection,
		logger:     logger,
	}
}

// Ping verifica a saúde do servidor
func (t *TypesenseLookup) Ping(ctx context.Context) error {
	ok, err := t.client.Health(ctx, 2*time.Second)
	if err != nil {
		return fmt.Errorf("erro ao verificar Typesense: %w", err)
	}
	if !ok {
		return fmt.Errorf("typesense não está saudável")
	}
	return nil
}

// QueryByField busca registros cujo campo normalizado contém o padrão normalizado
func (t *TypesenseLookup) QueryByField(ctx context.Context, field models.AddressField, pattern string, limit int) ([]models.AddressRecord, error) {
	column, err := searchColumn(field)
	if err != nil {
		return nil, err
	}
	pattern = query.Normalize(pattern)
	if pattern == "" {
		return nil, nil
	}

	docs, err := t.search(ctx, pattern, column, "", limit)
	if err != nil {
		return nil, err
	}
	return filterDocuments(docs, map[string]string{column: pattern}, limit), nil
}

// QueryByCode busca registros com o CEP exato
func (t *TypesenseLookup) QueryByCode(ctx context.Context, code string) ([]models.AddressRecord, error) {
	code = utils.DigitsOnly(code)
	if !utils.IsValidCEP(code) {
		return nil, fmt.Errorf("%w: CEP deve ter 8 dígitos", models.ErrInvalidInput)
	}

	docs, err := t.search(ctx, "*", columnStreetSearch, buildFilterBy(map[string]string{"cep": code}), CodeLookupLimit)
	if err != nil {
		return nil, err
	}
	return filterDocuments(docs, nil, CodeLookupLimit), nil
}

// QueryByFilter busca pelo logradouro (quando informado) e restringe pelo bairro
func (t *TypesenseLookup) QueryByFilter(ctx context.Context, filter models.AddressFilter, limit int) ([]models.AddressRecord, error) {
	street := query.Normalize(filter.Street)
	neighborhood := query.Normalize(filter.Neighborhood)

	required := make(map[string]string, 2)
	if street != "" {
		required[columnStreetSearch] = street
	}
	if neighborhood != "" {
		required[columnNeighborhoodSearch] = neighborhood
	}

	var q, column string
	switch {
	case street != "":
		q, column = street, columnStreetSearch
	case neighborhood != "":
		q, column = neighborhood, columnNeighborhoodSearch
	default:
		return nil, fmt.Errorf("%w: informe logradouro ou bairro", models.ErrInvalidInput)
	}

	// com os dois campos a restrição do bairro é aplicada depois, sobre uma página cheia
	perPage := limit
	if len(required) > 1 {
		perPage = maxPerPage
	}
	docs, err := t.search(ctx, q, column, "", perPage)
	if err != nil {
		return nil, err
	}
	return filterDocuments(docs, required, limit), nil
}

func (t *TypesenseLookup) search(ctx context.Context, q, queryBy, filterBy string, limit int) ([]map[string]interface{}, error) {
	perPage := limit
	if perPage <= 0 || perPage > maxPerPage {
		perPage = maxPerPage
	}
	page := 1

	params := &api.SearchCollectionParams{
		Q:        &q,
		QueryBy:  &queryBy,
		PerPage:  &perPage,
		Page:     &page,
		NumTypos: strPtr("0"),
		Infix:    strPtr("always"),
		SortBy:   strPtr("_text_match:desc"),
	}
	if filterBy != "" {
		params.FilterBy = &filterBy
	}

	result, err := t.client.Collection(t.collection).Documents().Search(ctx, params)
	if err != nil {
		t.logger.Error("erro na busca no Typesense",
			zap.String("collection", t.collection),
			zap.String("query_by", queryBy),
			zap.Error(err),
		)
		return nil, fmt.Errorf("erro na busca no Typesense: %w", err)
	}

	if result.Hits == nil {
		return nil, nil
	}
	docs := make([]map[string]interface{}, 0, len(*result.Hits))
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		docs = append(docs, *hit.Document)
	}
	return docs, nil
}

// EnsureCollection cria a collection com o schema informado quando ela ainda não existe
func (t *TypesenseLookup) EnsureCollection(ctx context.Context, schema *api.CollectionSchema) (bool, error) {
	if _, err := t.client.Collection(t.collection).Retrieve(ctx); err == nil {
		return false, nil
	}

	schema.Name = t.collection
	if _, err := t.client.Collections().Create(ctx, schema); err != nil {
		return false, fmt.Errorf("erro ao criar collection %s: %w", t.collection, err)
	}
	t.logger.Info("Collection criada", zap.String("collection", t.collection), zap.Int("fields", len(schema.Fields)))
	return true, nil
}

// Index grava os registros na collection, um documento por registro
func (t *TypesenseLookup) Index(ctx context.Context, records []models.AddressRecord) (int, error) {
	indexed := 0
	for _, rec := range records {
		if _, err := t.client.Collection(t.collection).Documents().Create(ctx, DocumentFromRecord(rec), &api.DocumentIndexParameters{}); err != nil {
			return indexed, fmt.Errorf("erro ao indexar CEP %s: %w", rec.PostalCode, err)
		}
		indexed++
	}
	return indexed, nil
}

// DocumentFromRecord converte um registro no documento indexado, com os campos de busca normalizados
func DocumentFromRecord(rec models.AddressRecord) map[string]interface{} {
	doc := map[string]interface{}{
		"cep":                    rec.PostalCode,
		"logradouro":             rec.Street,
		"bairro":                 rec.Neighborhood,
		"localidade":             rec.Locality,
		"uf":                     rec.Region,
		columnStreetSearch:       query.Normalize(rec.Street),
		columnNeighborhoodSearch: query.Normalize(rec.Neighborhood),
	}
	if rec.Complement != "" {
		doc["complemento"] = rec.Complement
	}
	return doc
}

// recordFromDocument faz o caminho inverso de DocumentFromRecord
func recordFromDocument(doc map[string]interface{}) models.AddressRecord {
	return models.AddressRecord{
		PostalCode:   utils.DigitsOnly(stringField(doc, "cep")),
		Street:       stringField(doc, "logradouro"),
		Neighborhood: stringField(doc, "bairro"),
		Locality:     stringField(doc, "localidade"),
		Region:       stringField(doc, "uf"),
		Complement:   stringField(doc, "complemento"),
		Source:       models.SourceLocal,
	}
}

// filterDocuments mantém só documentos cujos campos contêm os valores exigidos.
// Termos com várias palavras casam token a token no Typesense; aqui a frase
// precisa aparecer inteira, como no LIKE do Postgres.
func filterDocuments(docs []map[string]interface{}, required map[string]string, limit int) []models.AddressRecord {
	records := make([]models.AddressRecord, 0, len(docs))
	for _, doc := range docs {
		matched := true
		for column, value := range required {
			if !strings.Contains(stringField(doc, column), value) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		records = append(records, recordFromDocument(doc))
		if limit > 0 && len(records) == limit {
			break
		}
	}
	return records
}

func stringField(doc map[string]interface{}, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

// buildFilterBy monta filtros de igualdade exata, com o valor entre crases
func buildFilterBy(filters map[string]string) string {
	if len(filters) == 0 {
		return ""
	}

	parts := make([]string, 0, len(filters))
	for key, value := range filters {
		parts = append(parts, fmt.Sprintf("%s:=`%s`", key, strings.ReplaceAll(value, "`", "")))
	}
	return strings.Join(parts, " && ")
}

func strPtr(s string) *string { return &s }
