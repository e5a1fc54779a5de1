// Package routes wires handlers and middleware into the gin router.
package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/bmya/odoo-gateway/internal/api/handlers"
	"github.com/bmya/odoo-gateway/internal/api/middleware"
)

// BasePath is the prefix for all API routes.
const BasePath = "/api/v1/odoo-gateway"

// Handlers groups the handlers mounted by Setup.
type Handlers struct {
	Health *handlers.HealthHandler
	Tools  *handlers.ToolsHandler
}

// Setup creates a gin engine with the standard middleware chain and all
// routes registered.
func Setup(h Handlers) *gin.Engine {
	router := gin.New()

	logging := middleware.NewLoggingMiddleware()
	errs := middleware.NewErrorMiddleware()

	router.Use(errs.Recovery())
	router.Use(logging.RequestLogger())
	router.Use(logging.Logger())
	router.NoRoute(middleware.NotFound())

	Register(router, h)
	return router
}

// Register mounts the API routes on an existing engine.
func Register(router *gin.Engine, h Handlers) {
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group(BasePath)
	{
		api.GET("/health", h.Health.Health)
		api.GET("/ready", h.Health.Ready)
		api.GET("/live", h.Health.Live)

		api.GET("/tools", h.Tools.ListTools)
		api.POST("/tools/:name", h.Tools.CallTool)
	}
}
