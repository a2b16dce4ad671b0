// Command server runs the invoicing HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	invoicingapp "github.com/kizora/invoicer/internal/application/invoicing"
	"github.com/kizora/invoicer/internal/infrastructure/cache"
	"github.com/kizora/invoicer/internal/infrastructure/config"
	"github.com/kizora/invoicer/internal/infrastructure/logger"
	"github.com/kizora/invoicer/internal/infrastructure/persistence"
	"github.com/kizora/invoicer/internal/infrastructure/printing"
	"github.com/kizora/invoicer/internal/infrastructure/storage"
	"github.com/kizora/invoicer/internal/infrastructure/telemetry"
	"github.com/kizora/invoicer/internal/interfaces/http/handler"
	"github.com/kizora/invoicer/internal/interfaces/http/middleware"
	"github.com/kizora/invoicer/internal/interfaces/http/router"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

const preferenceCacheTTL = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	tel, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	// Rebuild the logger so entries also reach the OTLP logs pipeline.
	if tel.Logs.IsEnabled() {
		log, err = logger.New(logCfg, tel.Logs.ZapCore(logger.ParseLevel(cfg.Log.Level)))
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting invoicer",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", Version),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.DBTracing(cfg.Telemetry, db.Driver(), log).RegisterOtelGorm(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	if cfg.Database.Driver == config.DriverSQLite || cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate schema", zap.Error(err))
		}
	}
	log.Info("Database connected successfully", zap.String("driver", db.Driver()))

	store, err := cache.NewStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
		cache.WithKeyPrefix(cfg.App.Name+":"),
	).CreateStore()
	if err != nil {
		log.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing cache store", zap.Error(err))
		}
	}()

	archive, err := storage.NewArchive(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize export archive", zap.Error(err))
	}

	issuer := printing.Issuer{
		Name:          cfg.Company.Name,
		Address:       cfg.Company.Address,
		City:          cfg.Company.City,
		Phone:         cfg.Company.Phone,
		Email:         cfg.Company.Email,
		Website:       cfg.Company.Website,
		GST:           cfg.Company.GST,
		CIN:           cfg.Company.CIN,
		LogoURL:       cfg.Company.LogoURL,
		WatermarkText: cfg.Company.WatermarkText,
	}.WithDefaults()
	exporter, err := printing.NewExportRenderer(issuer)
	if err != nil {
		log.Fatal("Failed to load export templates", zap.Error(err))
	}

	projectRepo := persistence.NewGormProjectRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)

	clock := invoicingapp.SystemClock{}
	preferenceService := invoicingapp.NewTemplatePreferenceService(settingsRepo, store, preferenceCacheTTL, log)
	projectService := invoicingapp.NewProjectService(projectRepo, clock, log)
	invoiceService := invoicingapp.NewInvoiceService(projectRepo, preferenceService,
		printing.NewLiveView(issuer), exporter, log,
		invoicingapp.WithArchive(archive),
		invoicingapp.WithMetrics(tel.Metrics),
		invoicingapp.WithClock(clock),
	)
	importService := invoicingapp.NewImportService(projectRepo, store, invoicingapp.ImportServiceConfig{
		MaxUploadSize: cfg.Import.MaxUploadSize,
		SessionTTL:    cfg.Import.SessionTTL,
		Clock:         clock,
		Metrics:       tel.Metrics,
	}, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanAttributes())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(tel.Meter.Meter(telemetry.TracerName)))
	if tel.Profiler.IsEnabled() {
		engine.Use(middleware.Profiling(middleware.DefaultProfilingConfig()))
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{"X-Request-ID", "Content-Disposition", "X-Archive-Key"},
		MaxAge:        12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	healthHandler := handler.NewHealthHandler(db, Version, log)
	engine.GET("/health", healthHandler.Check)

	if cfg.Storage.Backend == config.StorageFileSystem {
		engine.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		r.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	router.RegisterAPI(r, router.Handlers{
		Projects:  handler.NewProjectHandler(projectService),
		Invoices:  handler.NewInvoiceHandler(invoiceService),
		Templates: handler.NewTemplateHandler(preferenceService),
		Imports:   handler.NewImportHandler(importService),
	}).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
