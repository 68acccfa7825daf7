package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/prefeitura-guaira/app-busca-cep/internal/config"
	"github.com/prefeitura-guaira/app-busca-cep/internal/importer"
	"github.com/prefeitura-guaira/app-busca-cep/internal/migration/schemas"
	"github.com/prefeitura-guaira/app-busca-cep/internal/observability"
	"github.com/prefeitura-guaira/app-busca-cep/internal/search/adapter"
	"github.com/prefeitura-guaira/app-busca-cep/internal/search/query"
	"github.com/prefeitura-guaira/app-busca-cep/internal/search/synonyms"
	tsclient "github.com/prefeitura-guaira/app-busca-cep/internal/typesense"
)

type ImportConfig struct {
	File          string
	Backend       string
	BatchSize     int
	DryRun        bool
	SchemaVersion string
	LoadSynonyms  bool
	City          string
	UF            string
}

func main() {
	cfg := config.LoadConfig()
	registry := schemas.NewRegistry()

	file := flag.String("file", "", "Arquivo CSV (cep,logradouro,bairro,localidade,uf)")
	backend := flag.String("backend", cfg.LocalBackend, "Destino: postgres ou typesense")
	batchSize := flag.Int("batch", importer.DefaultBatchSize, "Registros por lote")
	dryRun := flag.Bool("dry-run", false, "Valida o arquivo sem gravar")
	schemaVersion := flag.String("schema", registry.GetCurrentVersion(), "Versão do schema da collection (typesense)")
	loadSynonyms := flag.Bool("synonyms", true, "Carrega os sinônimos padrão (typesense)")
	city := flag.String("city", cfg.DefaultCity, "Localidade para linhas sem cidade")
	uf := flag.String("uf", cfg.DefaultUF, "UF para linhas sem UF")
	flag.Parse()

	logger, err := observability.NewLogger(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao criar logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	importCfg := &ImportConfig{
		File:          *file,
		Backend:       *backend,
		BatchSize:     *batchSize,
		DryRun:        *dryRun,
		SchemaVersion: *schemaVersion,
		LoadSynonyms:  *loadSynonyms,
		City:          *city,
		UF:            *uf,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, importCfg, cfg, registry, logger); err != nil {
		logger.Error("Erro na importação", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, importCfg *ImportConfig, cfg *config.Config, registry *schemas.Registry, logger *zap.Logger) error {
	if importCfg.File == "" {
		return fmt.Errorf("informe o arquivo com -file")
	}

	f, err := os.Open(importCfg.File)
	if err != nil {
		return fmt.Errorf("erro ao abrir %s: %w", importCfg.File, err)
	}
	defer f.Close()

	result, err := importer.ReadCSV(f, importCfg.City, importCfg.UF)
	if err != nil {
		return err
	}
	logger.Info("Arquivo lido",
		zap.String("file", importCfg.File),
		zap.Int("valid", len(result.Records)),
		zap.Int("rejected", len(result.Rejected)),
		zap.Int("duplicates", result.Duplicates),
	)

	sink, closeSink, err := newSink(ctx, importCfg, cfg, registry, logger)
	if err != nil {
		return err
	}
	defer closeSink()

	stats, err := importer.NewImporter(sink, importCfg.BatchSize, importCfg.DryRun, logger).Run(ctx, result)
	if err != nil {
		return err
	}

	logger.Info("Importação concluída",
		zap.String("backend", sink.Name()),
		zap.Bool("dry_run", importCfg.DryRun),
		zap.Int("read", stats.Read),
		zap.Int("written", stats.Written),
		zap.Int("rejected", stats.Rejected),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("batches", stats.Batches),
		zap.Duration("duration", stats.Duration),
	)
	return nil
}

func newSink(ctx context.Context, importCfg *ImportConfig, cfg *config.Config, registry *schemas.Registry, logger *zap.Logger) (importer.Sink, func(), error) {
	switch importCfg.Backend {
	case config.BackendPostgres:
		if importCfg.DryRun {
			return importer.NewPostgresSink(nil), func() {}, nil
		}
		lookup, err := adapter.NewPostgresLookup(ctx, cfg.DatabaseURL, cfg.AddressTable, logger)
		if err != nil {
			return nil, nil, err
		}
		return importer.NewPostgresSink(lookup), lookup.Close, nil

	case config.BackendTypesense:
		def, err := registry.GetSchema(importCfg.SchemaVersion)
		if err != nil {
			return nil, nil, err
		}
		client := tsclient.NewClient(cfg)
		lookup := adapter.NewTypesenseLookup(client, cfg.TypesenseCollection, logger)

		var synonymService *synonyms.Service
		if importCfg.LoadSynonyms {
			synonymService = synonyms.NewService(client, cfg.TypesenseCollection, logger)
		}
		logger.Info("Schema selecionado", zap.String("version", def.Version), zap.String("collection", cfg.TypesenseCollection))
		sink := importer.NewTypesenseSink(lookup, def.CollectionSchema(cfg.TypesenseCollection), synonymService, query.DefaultRules(), logger)
		return sink, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("backend desconhecido %q (use postgres ou typesense)", importCfg.Backend)
	}
}
