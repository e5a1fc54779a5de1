// Package main is the entry point for the Odoo Gateway service.
// @title Odoo Gateway API
// @version 1.0
// @description HTTP gateway exposing Odoo External JSON-2 API operations as a validated tool surface
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/bmya/odoo-gateway
// @contact.email support@bmya.cl

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8085
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/bmya/odoo-gateway/docs"
	"github.com/bmya/odoo-gateway/internal/api/handlers"
	"github.com/bmya/odoo-gateway/internal/api/routes"
	"github.com/bmya/odoo-gateway/internal/config"
	"github.com/bmya/odoo-gateway/internal/core/cache"
	gatewayerrors "github.com/bmya/odoo-gateway/internal/domain/errors"
	rediscache "github.com/bmya/odoo-gateway/internal/infrastructure/cache/redis"
	"github.com/bmya/odoo-gateway/internal/odoo"
	"github.com/bmya/odoo-gateway/internal/tools"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogging(cfg.Log)

	// Load tenant definitions and build the client registry
	tenants, err := config.LoadTenants(cfg.Odoo.TenantsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load tenant configurations")
	}

	registry := buildRegistry(cfg.Odoo, tenants)
	log.Info().Int("tenants", len(tenants)).Msg("tenant registry ready")

	// Initialize cache client using factory pattern
	cacheClient, err := createCacheClient(cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize cache client")
	}
	if cacheClient != nil {
		defer cacheClient.Close()
	}

	// Initialize tool dispatcher
	dispatcher, err := tools.NewDispatcher(tools.DispatcherConfig{
		Registry: registry,
		Cache:    cacheClient,
		CacheTTL: cfg.Cache.TTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tool dispatcher")
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Setup router
	router := routes.Setup(routes.Handlers{
		Health: handlers.NewHealthHandler(cacheClient),
		Tools:  handlers.NewToolsHandler(dispatcher),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("address", cfg.Server.Address()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// setupLogging configures the global zerolog logger.
func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// buildRegistry creates the per-tenant client registry from the tenant
// definitions, applying the shared timeout and retry settings.
func buildRegistry(cfg config.OdooConfig, tenants map[string]config.Tenant) *odoo.Registry {
	configs := make(map[string]odoo.ClientConfig, len(tenants))
	for name, t := range tenants {
		configs[name] = odoo.ClientConfig{
			URL:        t.URL,
			Database:   t.Database,
			APIKey:     t.APIKey,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
		}
	}
	return odoo.NewRegistry(configs)
}

// createCacheClient creates a cache client based on the configuration.
// The "none" type disables result caching and returns a nil client.
func createCacheClient(cfg config.CacheConfig) (cache.Cache, error) {
	cacheType := cache.Type(cfg.Type)

	switch cacheType {
	case cache.TypeRedis:
		return rediscache.NewCache(rediscache.Config{
			Host:       cfg.Host,
			Port:       cfg.Port,
			Password:   cfg.Password,
			DB:         cfg.DB,
			DefaultTTL: cfg.TTL,
		})
	case cache.TypeNone:
		return nil, nil
	default:
		return nil, gatewayerrors.NewConfigurationError(fmt.Sprintf("unsupported cache type: %s", cfg.Type))
	}
}
