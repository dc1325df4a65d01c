package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/application/cart"
	catalogapp "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/application/catalog"
	checkoutapp "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/application/checkout"
	orderapp "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/application/order"
	domaincatalog "github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/catalog"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/coupon"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/infrastructure/cache"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/infrastructure/config"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/infrastructure/logger"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/infrastructure/persistence"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/infrastructure/telemetry"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/interfaces/http/handler"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/interfaces/http/middleware"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Quadrinho Rei",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize tracing before anything that emits spans
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.RegisterGormTracing(db.DB, cfg.Database.DBName, log); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	// Product cache is an optional read-side optimization; catalog reads fall
	// back to the database when Redis is unavailable.
	var productCache domaincatalog.ProductCache
	redisCache, err := cache.NewRedisProductCache(cache.RedisConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cache.WithTTL(cfg.Checkout.ProductCacheTTL), cache.WithLogger(log))
	if err != nil {
		log.Warn("Redis unavailable, catalog reads will skip the cache", zap.Error(err))
	} else {
		productCache = redisCache
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing product cache", zap.Error(err))
			}
		}()
	}

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	lineRepo := persistence.NewGormLineRepository(db.DB)
	couponRepo := persistence.NewGormCouponRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	tradeRepo := persistence.NewGormTradeRepository(db.DB)
	stockLedger := persistence.NewGormStockLedger(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	// Coupon selection policy is validated at config load time
	couponSelector, err := coupon.NewSelector(coupon.Policy(cfg.Checkout.CouponPolicy))
	if err != nil {
		log.Fatal("Failed to create coupon selector", zap.Error(err))
	}

	// Initialize application services
	catalogService := catalogapp.NewService(productRepo, productCache)
	cartService := cartapp.NewService(lineRepo, productRepo, stockLedger, couponRepo, txManager)
	checkoutService := checkoutapp.NewService(lineRepo, productRepo, couponRepo, orderRepo, couponSelector, txManager)
	orderService := orderapp.NewService(orderRepo, tradeRepo, couponRepo, stockLedger, txManager)

	// Register custom binding validations before serving requests
	middleware.SetupValidator()

	// Build the router and mount handlers
	r := router.New(log, router.Config{
		CORS: middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
			MaxAge:       12 * time.Hour,
		},
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := r.Engine().SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	r.Register(handler.NewProductHandler(catalogService)).
		Register(handler.NewCartHandler(cartService)).
		Register(handler.NewCheckoutHandler(checkoutService)).
		Register(handler.NewOrderHandler(orderService)).
		Register(handler.NewSystemHandler(db))
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        r.Engine(),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
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

	log.Info("Server exited gracefully")
}
