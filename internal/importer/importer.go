package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v3/typesense/api"
	"go.uber.org/zap"

	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
	"github.com/prefeitura-guaira/app-busca-cep/internal/search/adapter"
	"github.com/prefeitura-guaira/app-busca-cep/internal/search/query"
	"github.com/prefeitura-guaira/app-busca-cep/internal/search/synonyms"
)

// DefaultBatchSize é quantos registros vão em cada escrita
const DefaultBatchSize = 1000

// Sink é o destino dos registros importados
type Sink interface {
	Name() string
	// Prepare cria tabela, collection ou o que mais o destino precisar
	Prepare(ctx context.Context) error
	Write(ctx context.Context, batch []models.AddressRecord) (int, error)
}

// Stats resume uma importação
type Stats struct {
	Read       int
	Rejected   int
	Duplicates int
	Written    int
	Batches    int
	Duration   time.Duration
}

// Importer grava os registros lidos do CSV no destino em lotes
type Importer struct {
	sink      Sink
	batchSize int
	dryRun    bool
	logger    *zap.Logger
}

// NewImporter cria o importador. Com dryRun, nada é gravado.
func NewImporter(sink Sink, batchSize int, dryRun bool, logger *zap.Logger) *Importer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		sink:      sink,
		batchSize: batchSize,
		dryRun:    dryRun,
		logger:    logger,
	}
}

// Run grava os registros válidos de result
func (im *Importer) Run(ctx context.Context, result *ReadResult) (*Stats, error) {
	start := time.Now()
	stats := &Stats{
		Read:       len(result.Records) + len(result.Rejected) + result.Duplicates,
		Rejected:   len(result.Rejected),
		Duplicates: result.Duplicates,
	}

	for _, rej := range result.Rejected {
		im.logger.Warn("linha rejeitada", zap.Int("line", rej.Line), zap.String("reason", rej.Reason))
	}

	if im.dryRun {
		im.logger.Info("[DRY-RUN] nada será gravado",
			zap.String("sink", im.sink.Name()),
			zap.Int("records", len(result.Records)),
		)
		stats.Duration = time.Since(start)
		return stats, nil
	}

	if err := im.sink.Prepare(ctx); err != nil {
		return stats, fmt.Errorf("erro ao preparar %s: %w", im.sink.Name(), err)
	}

	for i := 0; i < len(result.Records); i += im.batchSize {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		end := min(i+im.batchSize, len(result.Records))

		n, err := im.sink.Write(ctx, result.Records[i:end])
		stats.Written += n
		if err != nil {
			return stats, fmt.Errorf("erro no lote %d: %w", stats.Batches+1, err)
		}
		stats.Batches++
		im.logger.Info("lote gravado",
			zap.Int("batch", stats.Batches),
			zap.Int("written", stats.Written),
			zap.Int("total", len(result.Records)),
		)
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// PostgresSink grava na tabela de CEPs via COPY
type PostgresSink struct {
	lookup *adapter.PostgresLookup
}

func NewPostgresSink(lookup *adapter.PostgresLookup) *PostgresSink {
	return &PostgresSink{lookup: lookup}
}

func (s *PostgresSink) Name() string { return "postgres" }

func (s *PostgresSink) Prepare(ctx context.Context) error {
	return s.lookup.EnsureSchema(ctx)
}

func (s *PostgresSink) Write(ctx context.Context, batch []models.AddressRecord) (int, error) {
	n, err := s.lookup.CopyRecords(ctx, batch)
	return int(n), err
}

// TypesenseSink grava na collection de CEPs e carrega os sinônimos padrão
type TypesenseSink struct {
	lookup   *adapter.TypesenseLookup
	schema   *api.CollectionSchema
	synonyms *synonyms.Service
	rules    *query.Rules
	logger   *zap.Logger
}

// NewTypesenseSink cria o destino. synonymService pode ser nil.
func NewTypesenseSink(lookup *adapter.TypesenseLookup, schema *api.CollectionSchema, synonymService *synonyms.Service, rules *query.Rules, logger *zap.Logger) *TypesenseSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TypesenseSink{
		lookup:   lookup,
		schema:   schema,
		synonyms: synonymService,
		rules:    rules,
		logger:   logger,
	}
}

func (s *TypesenseSink) Name() string { return "typesense" }

func (s *TypesenseSink) Prepare(ctx context.Context) error {
	created, err := s.lookup.EnsureCollection(ctx, s.schema)
	if err != nil {
		return err
	}
	if !created {
		s.logger.Info("Collection já existe; schema mantido")
	}

	if s.synonyms == nil {
		return nil
	}
	n, err := s.synonyms.LoadDefaults(ctx, s.rules)
	if err != nil {
		return fmt.Errorf("erro ao carregar sinônimos: %w", err)
	}
	s.logger.Info("Sinônimos carregados", zap.Int("count", n))
	return nil
}

func (s *TypesenseSink) Write(ctx context.Context, batch []models.AddressRecord) (int, error) {
	return s.lookup.Index(ctx, batch)
}
