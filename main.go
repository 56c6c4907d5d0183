package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jonesrussell/domain-scout/internal/api"
	"github.com/jonesrussell/domain-scout/internal/cache"
	"github.com/jonesrussell/domain-scout/internal/config"
	"github.com/jonesrussell/domain-scout/internal/dispatcher"
	"github.com/jonesrussell/domain-scout/internal/generator"
	"github.com/jonesrussell/domain-scout/internal/handler"
	"github.com/jonesrussell/domain-scout/internal/logger"
	"github.com/jonesrussell/domain-scout/internal/metrics"
	"github.com/jonesrussell/domain-scout/internal/registrar"
	"github.com/jonesrussell/domain-scout/internal/storage"

	_ "github.com/lib/pq"
)

// Database connection timeout.
const dbConnectTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	db, err := connectDatabase(cfg, log)
	if err != nil {
		log.Error("Failed to connect to database", logger.Error(err))
		return 1
	}
	defer func() { _ = db.Close() }()

	return runServer(cfg, log, db)
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	configPath := config.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// connectDatabase opens and verifies the PostgreSQL connection.
func connectDatabase(cfg *config.Config, log logger.Logger) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbConnectTimeout)
	defer cancel()

	db, err := storage.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	log.Info("Database connected",
		logger.String("host", cfg.Database.Host),
		logger.Int("port", cfg.Database.Port),
		logger.String("database", cfg.Database.Database),
	)

	return db, nil
}

// selectRegistrar picks the primary adapter. Without credentials every
// check is served by the synthetic adapter.
func selectRegistrar(cfg *config.Config, log logger.Logger, fallback registrar.Client) registrar.Client {
	if !cfg.Registrar.Configured() {
		log.Warn("Registrar credentials missing, serving synthetic availability data")
		return fallback
	}

	log.Info("Registrar configured", logger.String("base_url", cfg.Registrar.BaseURL))
	return registrar.NewGoDaddy(cfg.Registrar.BaseURL, cfg.Registrar.APIKey, cfg.Registrar.APISecret)
}

// buildCache creates the optional Redis availability cache.
func buildCache(cfg *config.Config, log logger.Logger) *cache.Redis {
	if !cfg.Cache.Enabled {
		return nil
	}

	redisCache, err := cache.NewRedis(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.TTL, log)
	if err != nil {
		log.Warn("Redis unavailable, running without availability cache", logger.Error(err))
		return nil
	}

	log.Info("Availability cache connected", logger.String("addr", cfg.Cache.Addr))
	return redisCache
}

// runServer wires all dependencies and runs the HTTP server.
func runServer(cfg *config.Config, log logger.Logger, db *sqlx.DB) int {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	met := metrics.New(registry)

	fallback := registrar.NewMock()
	client := selectRegistrar(cfg, log, fallback)

	redisCache := buildCache(cfg, log)
	if redisCache != nil {
		defer func() { _ = redisCache.Close() }()
	}

	policy := dispatcher.Policy{
		MaxWorkers:       cfg.Dispatcher.MaxWorkers,
		MaxRetries:       cfg.Dispatcher.MaxRetries,
		MaxDomains:       cfg.Dispatcher.MaxDomains,
		CheckTimeout:     cfg.Dispatcher.CheckTimeout,
		BackoffBase:      cfg.Dispatcher.BackoffBase,
		PremiumThreshold: cfg.Dispatcher.PremiumThreshold,
	}

	dispatcherOpts := []dispatcher.Option{dispatcher.WithMetrics(met)}
	if redisCache != nil {
		dispatcherOpts = append(dispatcherOpts, dispatcher.WithCache(redisCache))
	}
	disp := dispatcher.New(client, fallback, policy, log, dispatcherOpts...)

	gen := generator.New(generator.DefaultConfig())
	repo := storage.NewFavoriteRepository(db)

	deps := api.Deps{
		Domains:   handler.NewDomainHandler(gen, disp, log, cfg.Service.MaxSuggestions),
		Favorites: handler.NewFavoriteHandler(repo, log),
		Checks:    map[string]api.HealthChecker{"database": repo.Ping},
		Critical:  map[string]bool{"database": true},
		Registry:  registry,
	}
	if redisCache != nil {
		deps.Checks["redis"] = redisCache.Ping
	}

	server := api.BuildServer(cfg, log, deps)

	log.Info("domain-scout starting", logger.Int("port", cfg.Service.Port))

	if err := server.RunWithGracefulShutdown(context.Background()); err != nil {
		log.Error("Server error", logger.Error(err))
		return 1
	}

	log.Info("domain-scout exited cleanly")
	return 0
}
