package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rafabene/cwsite-users/docs" // registra o documento OpenAPI

	"github.com/rafabene/cwsite-users/internal/domain/ports"
	"github.com/rafabene/cwsite-users/internal/handlers/dto"
	"github.com/rafabene/cwsite-users/internal/handlers/middleware"
	"github.com/rafabene/cwsite-users/internal/infrastructure/i18n"
	"github.com/rafabene/cwsite-users/internal/infrastructure/telemetry"
)

// RouterConfig reúne as dependências do router
type RouterConfig struct {
	BaseURL        string
	AllowedOrigins []string
	EnableSwagger  bool
	I18n           *i18n.Service
	Logger         ports.Logger
	Users          *UserHandler
	Health         *HealthHandler
}

// NewRouter monta o engine gin com middlewares e rotas de consulta
func NewRouter(cfg RouterConfig) *gin.Engine {
	RegisterValidators()

	router := gin.New()
	// %2F dentro de um nome não pode virar separador de rota; o handler
	// decodifica o parâmetro com PathUnescape (QueryUnescape trocaria + por espaço)
	router.UseRawPath = true
	router.UnescapePathValues = false

	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Logger))

	// Middleware global para adicionar base URL ao contexto
	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.BaseURL)
		c.Next()
	})

	router.Use(telemetry.RouteSpanName())

	router.Use(middleware.NewI18nMiddleware(cfg.I18n).DetectLanguage())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.NoRoute(func(c *gin.Context) {
		dto.WriteProblem(c, dto.RouteNotFoundProblemI18n(c))
	})

	router.GET("/health", cfg.Health.Health)

	users := router.Group("/user")
	{
		users.GET("/id/:id", cfg.Users.GetUserByID)
		users.GET("/discord/:discordId", cfg.Users.GetUserByDiscordID)
		users.GET("/name/:name", cfg.Users.GetUserByName)
	}

	if cfg.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return router
}
