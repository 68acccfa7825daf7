package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/prefeitura-guaira/app-busca-cep/internal/api/handlers"
	"github.com/prefeitura-guaira/app-busca-cep/internal/config"
	middlewares "github.com/prefeitura-guaira/app-busca-cep/internal/middleware"
	"github.com/prefeitura-guaira/app-busca-cep/internal/storage"
)

// Dependencies são os serviços montados em cmd/api
type Dependencies struct {
	Config    *config.Config
	Searcher  handlers.AddressSearcher
	Local     handlers.Pinger
	Assistant handlers.Responder
	Store     storage.Store
	Logger    *zap.Logger
}

func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	r := gin.New()

	r.Use(
		gin.Recovery(),
		middlewares.RequestID(),
		middlewares.AccessLog(deps.Logger),
		middlewares.RequestTiming(),
		corsMiddleware(),
	)

	searchHandler := handlers.NewSearchHandler(deps.Searcher, deps.Store, handlers.SearchOptions{
		FormCap: deps.Config.Search.FormCap,
		City:    deps.Config.DefaultCity,
		UF:      deps.Config.DefaultUF,
		Logger:  deps.Logger,
	})
	chatHandler := handlers.NewChatHandler(deps.Assistant)
	favoritesHandler := handlers.NewFavoritesHandler(deps.Store)
	historyHandler := handlers.NewHistoryHandler(deps.Store)

	extra := map[string]handlers.Pinger{}
	if deps.Config.UseRedis() {
		extra["redis"] = deps.Store
	}
	healthHandler := handlers.NewHealthHandler(deps.Local, extra)

	r.GET("/liveness", healthHandler.Liveness)
	r.GET("/readiness", healthHandler.Readiness)
	r.GET("/health", healthHandler.Health)

	api := r.Group("/api/v1")
	api.Use(middlewares.ClientIdentity())
	{
		api.GET("/busca", searchHandler.Search)
		api.GET("/enderecos", searchHandler.Address)
		api.GET("/cep/:cep", searchHandler.CEP)
		api.GET("/lookup", searchHandler.Lookup)

		api.POST("/chat", chatHandler.Chat)

		api.GET("/favoritos", favoritesHandler.List)
		api.POST("/favoritos", favoritesHandler.Add)
		api.DELETE("/favoritos/:cep", favoritesHandler.Remove)

		api.GET("/historico/:modo", historyHandler.List)
		api.DELETE("/historico/:modo", historyHandler.Clear)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With, X-Client-ID, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Client-ID, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
