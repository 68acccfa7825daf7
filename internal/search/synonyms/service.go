package synonyms

import (
	"context"
	"fmt"
	"strings"

	"github.com/prefeitura-guaira/app-busca-cep/internal/search/query"
	"github.com/typesense/typesense-go/v3/typesense"
	"github.com/typesense/typesense-go/v3/typesense/api"
	"go.uber.org/zap"
)

// Service gerencia sinônimos da collection de CEPs no Typesense
type Service struct {
	client     *typesense.Client
	collection string
	logger     *zap.Logger
}

// NewService cria um novo serviço de sinônimos
func NewService(client *typesense.Client, collection string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:     client,
		collection: collection,
		logger:     logger,
	}
}

// LoadDefaults carrega os grupos derivados das regras. Falhas em um grupo
// são registradas e não interrompem os demais.
func (s *Service) LoadDefaults(ctx context.Context, rules *query.Rules) (int, error) {
	groups := DefaultGroups(rules)
	s.logger.Info("Carregando sinônimos", zap.String("collection", s.collection), zap.Int("groups", len(groups)))

	loaded := 0
	for _, group := range groups {
		if err := s.UpsertSynonym(ctx, group.Root, group.Synonyms); err != nil {
			s.logger.Warn("erro ao carregar sinônimo", zap.String("root", group.Root), zap.Error(err))
			continue
		}
		loaded++
	}

	s.logger.Info("Sinônimos carregados", zap.Int("loaded", loaded), zap.Int("total", len(groups)))
	if loaded == 0 && len(groups) > 0 {
		return 0, fmt.Errorf("nenhum sinônimo carregado na collection %s", s.collection)
	}
	return loaded, nil
}

// UpsertSynonym cria ou atualiza um sinônimo
func (s *Service) UpsertSynonym(ctx context.Context, root string, synonyms []string) error {
	id := SanitizeID(root)

	allSynonyms := append([]string{root}, synonyms...)
	synonymSchema := &api.SearchSynonymSchema{
		Synonyms: allSynonyms,
	}

	if _, err := s.client.Collection(s.collection).Synonyms().Upsert(ctx, id, synonymSchema); err != nil {
		return fmt.Errorf("erro ao upsert sinônimo %s: %w", id, err)
	}
	return nil
}

// ListSynonyms lista todos os sinônimos configurados
func (s *Service) ListSynonyms(ctx context.Context) ([]*api.SearchSynonym, error) {
	result, err := s.client.Collection(s.collection).Synonyms().Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar sinônimos: %w", err)
	}
	return result, nil
}

// SanitizeID converte um termo em ID de sinônimo. Numerais ganham prefixo
// para não colidir com IDs puramente numéricos.
func SanitizeID(s string) string {
	s = query.Normalize(s)
	s = strings.ReplaceAll(s, " ", "_")
	if s != "" && s[0] >= '0' && s[0] <= '9' {
		s = "num_" + s
	}
	return "syn_" + s
}
