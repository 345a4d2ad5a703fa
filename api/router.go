package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/sitelens/api/handler"
	"github.com/use-agent/sitelens/api/middleware"
	"github.com/use-agent/sitelens/audit"
	"github.com/use-agent/sitelens/cache"
	"github.com/use-agent/sitelens/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(a *audit.Auditor, cfg *config.Config, cc *cache.Cache, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health, no auth required.
	v1.GET("/health", handler.Health(a, startTime))

	// Protected group: auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// The four audit modules.
	protected.POST("/basic-info", handler.BasicInfo(a, cc))
	protected.POST("/seo-elements", handler.SEOElements(a, cc))
	protected.POST("/tech-seo", handler.TechSEO(a, cc))
	protected.POST("/accessibility", handler.Accessibility(a, cc))

	// Composite report.
	protected.POST("/report", handler.Report(a, cc, cfg.Webhook))

	// Visual evidence.
	protected.GET("/screenshot", handler.Screenshot(a))

	return r
}
