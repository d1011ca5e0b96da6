package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dumpsterly/dumpsterly-api/config"
	"github.com/dumpsterly/dumpsterly-api/pkg/api/handlers"
	"github.com/dumpsterly/dumpsterly-api/pkg/cache"
	"github.com/dumpsterly/dumpsterly-api/pkg/jobs"
	"github.com/dumpsterly/dumpsterly-api/pkg/logger"
	"github.com/dumpsterly/dumpsterly-api/pkg/metrics"
	custommiddleware "github.com/dumpsterly/dumpsterly-api/pkg/middleware"
	"github.com/dumpsterly/dumpsterly-api/pkg/seo"
	"github.com/dumpsterly/dumpsterly-api/pkg/store"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Info("configuration loaded", "environment", cfg.APIEnvironment)

	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Warn("failed to initialize sentry", "error", err)
		} else {
			log.Info("sentry initialized", "environment", cfg.SentryEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Redis is optional. Without it, search results simply are not cached.
	var cacheClient *cache.Client
	if cfg.RedisURL != "" {
		var err error
		cacheClient, err = cache.NewClient(cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, continuing without cache", "error", err)
			cacheClient = nil
		} else {
			defer cacheClient.Close()
		}
	}

	// The store degrades to sample data on its own when no backend is
	// configured or reachable, so construction never fails.
	st := store.New(cfg, cacheClient, log)
	defer st.Close()
	log.Info("store initialized", "backend", string(st.Backend()))

	engine := seo.New(cfg.NicheConfigDir, cfg.Niche, cfg.SiteURL, nil, log)

	prometheusMetrics := metrics.New()
	st.SetMetrics(prometheusMetrics)

	cronManager := jobs.NewCronManager(st, log)
	if err := cronManager.SetupJobs(); err != nil {
		log.Error("failed to set up cron jobs", "error", err)
		os.Exit(1)
	}
	cronManager.Start()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()

	rateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{
			// Repanic so the Recover middleware still produces the response
			Repanic: true,
		}))
	}
	e.Use(prometheusMetrics.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
		},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))
	e.Use(middleware.Gzip())
	e.Use(middleware.Secure())
	e.Use(rateLimiter.RateLimitMiddleware())

	healthHandler := handlers.NewHealthHandler(st)
	businessHandler := handlers.NewBusinessHandler(st, prometheusMetrics)
	leadHandler := handlers.NewLeadHandler(st, prometheusMetrics)
	seoHandler := handlers.NewSEOHandler(engine, prometheusMetrics)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"name":        cfg.SiteName + " API",
			"status":      "running",
			"environment": cfg.APIEnvironment,
			"timestamp":   time.Now().Unix(),
		})
	})
	e.GET("/health", healthHandler.Health)
	e.GET("/health/db", healthHandler.DBHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/api/v1")

	v1.GET("/businesses", businessHandler.List)
	v1.GET("/businesses/:id", businessHandler.Get)
	v1.POST("/businesses", businessHandler.Create)
	v1.PATCH("/businesses/:id", businessHandler.Update)

	v1.GET("/leads", leadHandler.List)
	v1.POST("/leads", leadHandler.Create)
	v1.PATCH("/leads/:id/status", leadHandler.UpdateStatus)

	v1.POST("/seo/metadata", seoHandler.Metadata)
	v1.POST("/seo/structured-data", seoHandler.StructuredData)
	v1.POST("/seo/internal-links", seoHandler.InternalLinks)

	address := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.Info("starting server", "address", address)

	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	cronManager.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
