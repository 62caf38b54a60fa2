// Package http wires the gin router, middleware, and handlers.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vendora/vendora-backend/internal/admission"
	"github.com/vendora/vendora-backend/internal/cache"
	"github.com/vendora/vendora-backend/internal/http/handlers"
	"github.com/vendora/vendora-backend/internal/override"
	"github.com/vendora/vendora-backend/internal/security"
	"github.com/vendora/vendora-backend/internal/storeconfig"
	"gorm.io/gorm"
)

// RouterConfig carries the dependencies and settings for NewRouter.
type RouterConfig struct {
	DB          *gorm.DB      // Database connection.
	Cache       cache.Client  // Settings cache client.
	JWTSecret   string        // HMAC secret for identity tokens.
	TokenExpiry time.Duration // Issued token lifetime.
	CacheTTL    time.Duration // Settings cache TTL.
}

// NewRouter assembles the full HTTP surface.
func NewRouter(cfg RouterConfig) *gin.Engine {
	store := storeconfig.NewStore(cfg.DB)
	gateway := admission.NewGateway(store, cfg.Cache, cfg.CacheTTL)
	overrideManager := override.NewManager(store, cfg.Cache)

	settingsHandler := handlers.NewSettingsHandler(store, cfg.Cache)
	overrideHandler := handlers.NewOverrideHandler(overrideManager)
	admissionHandler := handlers.NewAdmissionHandler(gateway)
	healthHandler := handlers.NewHealthHandler(cfg.DB)
	authHandler := handlers.NewAuthHandler(cfg.DB, cfg.JWTSecret, cfg.TokenExpiry)

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger())

	router.GET("/healthz", healthHandler.Healthz)

	api := router.Group("/api/v1")
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(Auth(cfg.JWTSecret))

	sellers := authed.Group("/sellers")
	sellers.Use(RequireCapability(security.CapManageOwnStore))
	sellers.GET("/:id/settings", settingsHandler.Get)
	sellers.PATCH("/:id/settings/:section", settingsHandler.Update)

	admin := authed.Group("/admin")
	admin.Use(RequireCapability(security.CapOverrideStore))
	admin.PUT("/sellers/:id/overrides", overrideHandler.Apply)
	admin.DELETE("/sellers/:id/overrides", overrideHandler.Remove)

	orders := authed.Group("/orders")
	orders.Use(RequireCapability(security.CapPlaceOrder))
	orders.POST("/admission", admissionHandler.Check)

	return router
}
