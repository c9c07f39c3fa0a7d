package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	syncapp "github.com/wmsconnector/backend/internal/application/sync"
	"github.com/wmsconnector/backend/internal/domain/sync"
	"github.com/wmsconnector/backend/internal/infrastructure/cache"
	"github.com/wmsconnector/backend/internal/infrastructure/config"
	"github.com/wmsconnector/backend/internal/infrastructure/logger"
	"github.com/wmsconnector/backend/internal/infrastructure/persistence"
	wmsinfra "github.com/wmsconnector/backend/internal/infrastructure/wms"
	"github.com/wmsconnector/backend/internal/interfaces/http/handler"
	"github.com/wmsconnector/backend/internal/interfaces/http/middleware"
	"github.com/wmsconnector/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting WMS Connector",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)

	// Notice store: Redis when enabled, otherwise in-process
	var noticeStore sync.NoticeStore
	var closers []io.Closer
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisNoticeStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		noticeStore = redisStore
		closers = append(closers, redisStore)
		log.Info("Redis notice store connected")
	} else {
		memStore := cache.NewInMemoryNoticeStore()
		noticeStore = memStore
		closers = append(closers, memStore)
	}

	snapshotStore := cache.NewInMemorySnapshotStore()
	closers = append(closers, snapshotStore)

	// Set gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.CORS(middleware.DefaultCORSConfig()),
	)

	r := router.NewRouter(engine)
	r.Register(handler.NewSystemHandler(cfg.WMS.Complete()))
	r.Register(handler.NewNoticeHandler(noticeStore))

	// The integration is fail-closed: without a complete warehouse
	// configuration no sync route is wired and the connector only serves
	// its system endpoints.
	if cfg.WMS.Complete() {
		wmsConfig := wmsinfra.NewConfig(
			cfg.WMS.APIBaseURL,
			cfg.WMS.WarehouseID,
			cfg.WMS.WarehouseCode,
			cfg.WMS.StoreToken,
			cfg.WMS.ManagementToken,
		)
		wmsConfig.TimeoutSeconds = cfg.WMS.TimeoutSeconds

		wmsClient, err := wmsinfra.NewHTTPClient(wmsConfig)
		if err != nil {
			log.Fatal("Failed to build WMS client", zap.Error(err))
		}

		stockService := syncapp.NewStockSyncService(productRepo, wmsClient, log)
		orderService := syncapp.NewOrderSyncService(
			orderRepo, wmsClient, stockService, noticeStore, cfg.WMS.WarehouseCode, log)
		productService := syncapp.NewProductSyncService(
			productRepo, wmsClient, snapshotStore, noticeStore, log)
		dispatcher := syncapp.NewDispatcher(orderService, log)

		r.Register(handler.NewOrderSyncHandler(orderService))
		r.Register(handler.NewProductSyncHandler(productService))
		r.Register(handler.NewStockSyncHandler(stockService))
		r.Register(handler.NewWebhookHandler(dispatcher))

		log.Info("WMS integration enabled",
			zap.String("warehouse_id", cfg.WMS.WarehouseID),
			zap.String("warehouse_code", cfg.WMS.WarehouseCode))
	} else {
		log.Warn("WMS configuration incomplete, sync routes disabled")
	}

	r.Setup()

	engine.GET("/health", healthHandler(db, log))

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

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	for _, closer := range closers {
		if err := closer.Close(); err != nil {
			log.Error("Error closing store", zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness of the connector and its database
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
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
