package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/core/services"
	"github.com/SscSPs/invoice_workflow_app/internal/handlers"
	"github.com/SscSPs/invoice_workflow_app/internal/middleware"
	"github.com/SscSPs/invoice_workflow_app/internal/platform/config"
	"github.com/SscSPs/invoice_workflow_app/internal/platform/metrics"
	"github.com/SscSPs/invoice_workflow_app/internal/repositories"
	"github.com/SscSPs/invoice_workflow_app/internal/seed"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// @title Invoice Workflow API
// @version 1.0
// @description Invoice application, approval and payment workflow.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	repos, closeStore, err := repositories.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open workflow store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()
	logger.Info("Workflow store ready", slog.String("driver", cfg.StoreDriver))

	var gatherer prometheus.Gatherer
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
		gatherer = reg
	}

	if cfg.SeedDemoData {
		_, err := seed.Load(middleware.WithLogger(ctx, logger), repos, seed.DefaultStart, services.WithMetrics(m))
		if errors.Is(err, seed.ErrNotEmpty) {
			logger.Warn("Skipping demo data", slog.String("reason", err.Error()))
		} else if err != nil {
			logger.Error("Failed to load demo data", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	serviceContainer := services.NewServiceContainer(repos, middleware.ContextIdentityProvider{}, services.WithMetrics(m))
	if !cfg.IsProduction {
		serviceContainer.Directory = seed.Directory{}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("Invalid REDIS_URL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		redisClient = redis.NewClient(opts)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("Error closing redis client", slog.String("error", err.Error()))
			}
		}()
		logger.Info("Rate limit counters stored in redis", slog.String("addr", opts.Addr))
	}
	rateLimiter, err := middleware.NewLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, metrics, CORS)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.MetricsMiddleware(m),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, gatherer, middleware.RateLimit(rateLimiter))

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
