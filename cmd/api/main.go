package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	httphandlers "github.com/rafabene/cwsite-users/internal/handlers/http"
	"github.com/rafabene/cwsite-users/internal/infrastructure/config"
	"github.com/rafabene/cwsite-users/internal/infrastructure/i18n"
	"github.com/rafabene/cwsite-users/internal/infrastructure/logging"
	"github.com/rafabene/cwsite-users/internal/infrastructure/persistence"
	"github.com/rafabene/cwsite-users/internal/infrastructure/telemetry"
	"github.com/rafabene/cwsite-users/internal/services"
)

// @title			cwsite users API
// @version		1.0
// @description	Consulta somente leitura de usuários por UUID, id do Discord ou nome.
// @BasePath		/
func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting cwsite users api",
		"env", cfg.Env,
		"version", "dev",
	)

	// Tracing (opcional)
	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.Telemetry)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		log.Fatal(err)
	}

	// Conectar ao banco de dados
	gormLogger := logging.NewGormLogger(logger, cfg.Logging.Level, cfg.Database.SlowThreshold)
	db, err := persistence.NewDatabaseConnection(&cfg.Database, gormLogger, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewDefaultService(cfg.I18n.DefaultLanguage)
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Repositories, services e handlers
	userRepo := persistence.NewUserRepository(db)
	userService := services.NewUserService(userRepo, logger)
	userHandler := httphandlers.NewUserHandler(userService, logger)
	healthHandler := httphandlers.NewHealthHandler(persistence.NewPinger(db), cfg.Env, logger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httphandlers.NewRouter(httphandlers.RouterConfig{
		BaseURL:        cfg.Server.BaseURL,
		AllowedOrigins: cfg.CORS.Origins(),
		EnableSwagger:  cfg.Env != "production",
		I18n:           i18nService,
		Logger:         logger,
		Users:          userHandler,
		Health:         healthHandler,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           telemetry.Middleware(router, cfg.Telemetry.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	if err := persistence.Close(db); err != nil {
		logger.Error("failed to close database", "error", err)
	}

	if err := shutdownTracing(ctx); err != nil {
		logger.Error("failed to flush traces", "error", err)
	}

	logger.Info("server exited")
}
