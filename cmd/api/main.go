package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/prefeitura-guaira/app-busca-cep/docs"
	"github.com/prefeitura-guaira/app-busca-cep/internal/api/routes"
	"github.com/prefeitura-guaira/app-busca-cep/internal/chat"
	"github.com/prefeitura-guaira/app-busca-cep/internal/config"
	"github.com/prefeitura-guaira/app-busca-cep/internal/observability"
	"github.com/prefeitura-guaira/app-busca-cep/internal/search"
	"github.com/prefeitura-guaira/app-busca-cep/internal/search/adapter"
	"github.com/prefeitura-guaira/app-busca-cep/internal/search/query"
	"github.com/prefeitura-guaira/app-busca-cep/internal/storage"
	tsclient "github.com/prefeitura-guaira/app-busca-cep/internal/typesense"
)

// @title           Busca CEP API
// @version         1.0
// @description     API de busca de CEPs e logradouros do município, com base local (Postgres ou Typesense) e a API ViaCEP

// @contact.name   Prefeitura Municipal de Guaíra
// @contact.url    https://guaira.sp.gov.br

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

func main() {
	cfg := config.LoadConfig()

	logger, err := observability.NewLogger(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao criar logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	observability.InitTracer(cfg, logger)
	defer observability.ShutdownTracer(logger)

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	local, closeLocal, err := newLocalLookup(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Erro ao conectar na base local", zap.String("backend", cfg.LocalBackend), zap.Error(err))
	}
	defer closeLocal()

	viaCEP := adapter.NewViaCEPClient(adapter.ViaCEPOptions{
		BaseURL:   cfg.ViaCEP.BaseURL,
		Timeout:   cfg.ViaCEP.Timeout,
		CacheTTL:  cfg.ViaCEP.CacheTTL,
		CacheSize: cfg.ViaCEP.CacheSize,
		Logger:    logger,
	})

	var cache *search.SearchCache
	if cfg.Search.CacheTTL > 0 && cfg.Search.CacheSize > 0 {
		cache = search.NewSearchCache(cfg.Search.CacheTTL, cfg.Search.CacheSize)
	}

	rules := query.DefaultRules()
	engine := search.NewEngine(local, viaCEP, search.Options{
		Region:     cfg.DefaultUF,
		Locality:   cfg.DefaultCity,
		Policy:     search.Policy(cfg.Search.ExternalPolicy),
		LocalLimit: cfg.Search.LocalLimit,
		Cache:      cache,
		Rules:      rules,
		Logger:     logger,
	})

	assistant := chat.NewAssistant(engine, chat.Options{
		Cap:        cfg.Search.ChatCap,
		City:       cfg.DefaultCity,
		Region:     cfg.DefaultUF,
		Classifier: query.NewClassifier(rules),
		Logger:     logger,
	})

	store, closeStore := newStore(ctx, cfg, logger)
	defer closeStore()

	r := routes.SetupRouter(routes.Dependencies{
		Config:    cfg,
		Searcher:  engine,
		Local:     engine,
		Assistant: assistant,
		Store:     store,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Servidor iniciado",
			zap.String("port", cfg.ServerPort),
			zap.String("backend", cfg.LocalBackend),
			zap.String("external_policy", cfg.Search.ExternalPolicy),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Erro ao iniciar servidor", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Encerrando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Erro ao encerrar servidor", zap.Error(err))
	}
}

// newLocalLookup conecta no backend configurado em LOCAL_BACKEND
func newLocalLookup(ctx context.Context, cfg *config.Config, logger *zap.Logger) (search.LocalLookup, func(), error) {
	switch cfg.LocalBackend {
	case config.BackendTypesense:
		lookup := adapter.NewTypesenseLookup(tsclient.NewClient(cfg), cfg.TypesenseCollection, logger)
		if err := lookup.Ping(ctx); err != nil {
			// o readiness reporta a falha; o servidor sobe mesmo assim
			logger.Warn("Typesense indisponível na inicialização", zap.Error(err))
		}
		return lookup, func() {}, nil
	default:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		lookup, err := adapter.NewPostgresLookup(connectCtx, cfg.DatabaseURL, cfg.AddressTable, logger)
		if err != nil {
			return nil, nil, err
		}
		return lookup, lookup.Close, nil
	}
}

// newStore usa o Redis quando REDIS_ADDR está definido; senão, memória
func newStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, func()) {
	if !cfg.UseRedis() {
		logger.Info("Favoritos e histórico em memória")
		return storage.NewMemoryStore(cfg.HistoryMax), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	store := storage.NewRedisStore(rdb, cfg.HistoryMax, logger)
	if err := store.Ping(ctx); err != nil {
		logger.Warn("Redis indisponível na inicialização", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	return store, func() { _ = rdb.Close() }
}
