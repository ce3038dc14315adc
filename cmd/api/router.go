package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"billpop-backend/internal/shared/middleware"
	"billpop-backend/internal/shared/response"
	"billpop-backend/pkg/container"
)

// SetupRouter builds the gin engine with the shared middleware chain
// and every domain's routes mounted under /api.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler(c))

		c.ClientHandler.RegisterRoutes(api)
		c.InvoiceHandler.RegisterRoutes(api)
	}

	return router
}

// healthHandler reports service health including its dependencies.
// Redis being down degrades the report but not the status code; the
// database being down makes the service unhealthy.
func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		status := map[string]interface{}{
			"service": c.Config.App.Name,
			"version": c.Config.App.Version,
			"status":  "healthy",
		}

		if err := c.DB.HealthCheck(checkCtx); err != nil {
			status["status"] = "unhealthy"
			status["database"] = err.Error()
			response.ErrorWithDetails(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "Service is unhealthy", status)
			return
		}
		status["database"] = "up"

		if c.Cache != nil {
			if err := c.Cache.Ping(checkCtx); err != nil {
				status["cache"] = "down"
			} else {
				status["cache"] = "up"
			}
		} else {
			status["cache"] = "disabled"
		}

		response.Success(ctx, http.StatusOK, status)
	}
}
