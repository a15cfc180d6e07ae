package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appintegration "github.com/kobo/backend/internal/application/integration"
	appmessaging "github.com/kobo/backend/internal/application/messaging"
	apporder "github.com/kobo/backend/internal/application/order"
	appshipping "github.com/kobo/backend/internal/application/shipping"
	"github.com/kobo/backend/internal/domain/integration"
	"github.com/kobo/backend/internal/domain/messaging"
	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/domain/shared/valueobject"
	"github.com/kobo/backend/internal/domain/shipping"
	"github.com/kobo/backend/internal/infrastructure/auth"
	"github.com/kobo/backend/internal/infrastructure/config"
	"github.com/kobo/backend/internal/infrastructure/event"
	"github.com/kobo/backend/internal/infrastructure/labels"
	"github.com/kobo/backend/internal/infrastructure/logger"
	"github.com/kobo/backend/internal/infrastructure/mail"
	"github.com/kobo/backend/internal/infrastructure/marketplace"
	"github.com/kobo/backend/internal/infrastructure/persistence"
	"github.com/kobo/backend/internal/infrastructure/scheduler"
	"github.com/kobo/backend/internal/infrastructure/spreadsheet"
	"github.com/kobo/backend/internal/infrastructure/storage"
	"github.com/kobo/backend/internal/infrastructure/telemetry"
	"github.com/kobo/backend/internal/interfaces/http/handler"
	"github.com/kobo/backend/internal/interfaces/http/middleware"
	"github.com/kobo/backend/internal/interfaces/http/router"
)

// scheduledIngestor adapts the fetch use case to the scheduler, carrying the
// configured mailbox batch size into every scheduled run.
type scheduledIngestor struct {
	fetch *apporder.FetchService
	batch int
}

func (s *scheduledIngestor) FetchNewOrders(ctx context.Context) (*apporder.FetchResultResponse, error) {
	return s.fetch.FetchNewOrders(ctx, order.FetchOptions{MaxResults: s.batch})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Kobo order admin backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if cfg.Telemetry.Enabled {
		if err := telemetry.EnableDBTracing(db.DB, log); err != nil {
			log.Fatal("Failed to enable database tracing", zap.Error(err))
		}
	}

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	labelRepo := persistence.NewGormLabelRepository(db.DB)
	templateRepo := persistence.NewGormTemplateRepository(db.DB)
	mappingRepo := persistence.NewGormMappingRepository(db.DB)

	// Domain event bus
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(event.NewOrderLogHandler(log))

	// Admin session
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		_ = redisClient.Close()
	}()
	jwtService := auth.NewJWTService(cfg.JWT)
	authenticator := auth.NewAuthenticator(cfg.Auth, jwtService, auth.NewRedisSessionRevoker(redisClient))

	// Order lifecycle
	orderService := apporder.NewService(orderRepo, cfg.Fulfillment.OverdueThresholdDays)
	orderService.SetEventPublisher(bus)

	// Label issuance
	renderer := labels.NewChromeRenderer(cfg.Labels, log)
	defer renderer.Close()
	issuers := map[valueobject.ShippingMethod]shipping.Issuer{
		valueobject.ShippingMethodClickPost:     labels.NewClickPostIssuer(renderer, cfg.Labels, log),
		valueobject.ShippingMethodYamatoCompact: labels.NewYamatoCompactIssuer(log),
	}
	var archiver shipping.Archiver
	if cfg.Storage.Enabled {
		s3Archiver, err := storage.NewS3LabelArchiver(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize label archive", zap.Error(err))
		}
		archiver = s3Archiver
		log.Info("Label archive enabled", zap.String("bucket", cfg.Storage.Bucket))
	}
	labelService := appshipping.NewLabelService(labelRepo, orderRepo, issuers, archiver, log)

	// Product name mappings
	var mappingSource integration.MappingSource
	if cfg.Sheets.Enabled {
		sheetsSource, err := spreadsheet.NewSheetsMappingSource(ctx, cfg.Sheets, log)
		if err != nil {
			log.Fatal("Failed to initialize spreadsheet source", zap.Error(err))
		}
		mappingSource = sheetsSource
		log.Info("Mapping spreadsheet enabled", zap.String("spreadsheet_id", cfg.Sheets.SpreadsheetID))
	}
	mappingService := appintegration.NewMappingService(mappingRepo, mappingSource, log)

	// Customer messages. Product names go through the mapping table when the
	// spreadsheet is configured, otherwise they pass through unchanged.
	var productNames messaging.ProductNameResolver = messaging.IdentityProductNameResolver{}
	if cfg.Sheets.Enabled {
		productNames = mappingService
	}
	templateService := appmessaging.NewTemplateService(templateRepo)
	generateService := appmessaging.NewGenerateService(templateRepo, orderRepo, productNames, messaging.StaticShippingMethodLabels{})

	// Mailbox ingestion
	var fetchService *apporder.FetchService
	if cfg.Gmail.Enabled {
		emailSource, err := mail.NewGmailSource(ctx, cfg.Gmail, log)
		if err != nil {
			log.Fatal("Failed to initialize Gmail source", zap.Error(err))
		}
		fetcher := marketplace.NewChromeFetcher(cfg.Marketplace, log)
		defer fetcher.Close()

		var notifier order.NotificationSender
		if cfg.SendGrid.Enabled {
			sender, err := mail.NewSendGridSender(cfg.SendGrid, log)
			if err != nil {
				log.Fatal("Failed to initialize notification sender", zap.Error(err))
			}
			notifier = sender
		}

		fetchService = apporder.NewFetchService(orderRepo, emailSource, fetcher, notifier, log)
		fetchService.SetEventPublisher(bus)
		log.Info("Mailbox ingestion enabled", zap.String("query", cfg.Gmail.Query))
	}

	// Background polling
	if cfg.Scheduler.Enabled && fetchService != nil {
		poll := scheduler.NewMailPollScheduler(
			&scheduledIngestor{fetch: fetchService, batch: cfg.Gmail.MaxResults},
			mappingService,
			cfg.Scheduler.PollInterval,
			cfg.Scheduler.SyncMappings,
			log,
		)
		poll.Start(ctx)
		defer poll.Stop()
	}

	// HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxy configuration", zap.Error(err))
	}
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled),
		middleware.SpanErrorMarker(),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		}),
	)

	authHandler := handler.NewAuthHandler(authenticator)
	router.NewRouter(engine, router.WithSessionMiddleware(middleware.SessionAuth(authenticator))).
		RegisterPublic(
			handler.NewSystemHandler(),
			authHandler,
		).
		Register(
			router.RegistrarFunc(authHandler.RegisterProtectedRoutes),
			handler.NewOrderHandler(orderService, fetchService, cfg.Gmail.MaxResults),
			handler.NewLabelHandler(labelService),
			handler.NewMessageHandler(generateService),
			handler.NewTemplateHandler(templateService),
			handler.NewMappingHandler(mappingService),
		).
		Setup()

	engine.GET("/healthz", healthHandler(db))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness including database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
