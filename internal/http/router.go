package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	if cfg.ReadOnly != nil && cfg.ReadOnly.IsEnabled() {
		router.Use(cfg.ReadOnly.Handler())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	store := NewStoreController(cfg.StoreService, cfg.AuditService)
	library := NewLibraryController(cfg.StoreService)
	progress := NewProgressController(cfg.StoreService, cfg.AuditService)

	// Health endpoints
	router.GET("/health", health.Status)

	api := router.Group("/api")
	{
		api.GET("/store", store.ListAudiobooks)
		api.GET("/store/", store.ListAudiobooks)
		api.POST("/store/purchase", store.Purchase)

		api.GET("/library/:user_id", library.ListLibrary)

		api.GET("/progress/:user_id/:audiobook_id", progress.GetProgress)
		api.PUT("/progress/:user_id/:audiobook_id", progress.SetProgress)
	}

	return router
}
