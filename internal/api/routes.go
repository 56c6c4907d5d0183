package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonesrussell/domain-scout/internal/config"
	"github.com/jonesrussell/domain-scout/internal/handler"
	"github.com/jonesrussell/domain-scout/internal/logger"
	"github.com/jonesrussell/domain-scout/internal/middleware"
)

// Deps carries everything the router needs.
type Deps struct {
	Domains   *handler.DomainHandler
	Favorites *handler.FavoriteHandler

	// Checks maps dependency names to health probes. Names present in
	// Critical render the whole service unhealthy when failing.
	Checks   map[string]HealthChecker
	Critical map[string]bool

	// Registry serves /metrics when set.
	Registry *prometheus.Registry
}

// SetupRoutes registers all API routes.
func SetupRoutes(router *gin.Engine, cfg *config.Config, deps Deps) {
	router.GET("/health", healthHandler(cfg.Service.Name, cfg.Service.Version, deps.Checks, deps.Critical))

	if deps.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
			deps.Registry,
			promhttp.HandlerOpts{},
		)))
	}

	window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second

	v1 := router.Group("/api/v1")

	// Domain checks fan out to the registrar, so they sit behind the
	// per-IP rate limiter.
	domains := v1.Group("/domains")
	domains.Use(middleware.RateLimiter(cfg.RateLimit.MaxChecksPerMinute, window))
	domains.POST("/suggest", deps.Domains.HandleSuggest)
	domains.POST("/check", deps.Domains.HandleCheck)

	favorites := v1.Group("/favorites")
	favorites.POST("", deps.Favorites.HandleSave)
	favorites.GET("", deps.Favorites.HandleList)
	favorites.DELETE("/:id", deps.Favorites.HandleDelete)
}

// BuildServer creates the HTTP server from service configuration.
func BuildServer(cfg *config.Config, log logger.Logger, deps Deps) *Server {
	serverCfg := &Config{
		Port:           cfg.Service.Port,
		Debug:          cfg.Service.Debug,
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
	}

	return NewServer(serverCfg, log, func(router *gin.Engine) {
		SetupRoutes(router, cfg, deps)
	})
}
