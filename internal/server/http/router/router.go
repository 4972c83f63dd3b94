package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/tidex114/est-backend/internal/config"
	"github.com/tidex114/est-backend/internal/domain/model"
	"github.com/tidex114/est-backend/internal/metrics"
	"github.com/tidex114/est-backend/internal/server/http/dto"
	"github.com/tidex114/est-backend/internal/server/http/handlers"
	"github.com/tidex114/est-backend/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CatalogFacade, collector *metrics.Collector, cfg *config.Config, logger *slog.Logger) (*gin.Engine, error) {
	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	offerHandler := handlers.NewOfferHandler(facade, cfg.DefaultCurrency)
	healthHandler := handlers.NewHealthHandler(facade, logger)

	engine.GET("/healthz", healthHandler.Check)
	engine.GET("/metrics", gin.WrapH(collector.Handler()))

	api := engine.Group("/api/v1")
	api.Use(middleware.AuthRequired(facade))

	offers := api.Group("/offers")
	offers.GET("", offerHandler.ListActive)
	offers.GET("/:id", offerHandler.Get)

	customer := offers.Group("/:id")
	customer.Use(middleware.RequireRole(model.RoleUser))
	customer.POST("/reserve", offerHandler.Reserve)

	partner := api.Group("/partner/offers")
	partner.Use(middleware.RequireRole(model.RolePartner))
	partner.POST("", offerHandler.Create)
	partner.GET("", offerHandler.ListMine)
	partner.PATCH("/:id", offerHandler.Update)
	partner.DELETE("/:id", offerHandler.Delete)
	partner.POST("/:id/activate", offerHandler.Activate)
	partner.POST("/:id/pause", offerHandler.Pause)
	partner.POST("/:id/cancel", offerHandler.Cancel)
	partner.POST("/:id/release", offerHandler.Release)

	return engine, nil
}
