// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RaulRamazanov/Shop/internal/admin"
	"github.com/RaulRamazanov/Shop/internal/auth"
	"github.com/RaulRamazanov/Shop/internal/cart"
	"github.com/RaulRamazanov/Shop/internal/config"
	"github.com/RaulRamazanov/Shop/internal/core"
	"github.com/RaulRamazanov/Shop/internal/favorite"
	"github.com/RaulRamazanov/Shop/internal/health"
	"github.com/RaulRamazanov/Shop/internal/item"
	"github.com/RaulRamazanov/Shop/internal/middleware"
	"github.com/RaulRamazanov/Shop/internal/sale"
	"github.com/RaulRamazanov/Shop/internal/server"
	"github.com/RaulRamazanov/Shop/internal/user"
	"github.com/RaulRamazanov/Shop/internal/web"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		telemetry, err = core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if err != nil {
			logger.Warn("tracing disabled", "error", err)
		} else {
			logger.Info("tracing enabled", "endpoint", cfg.Otel.Endpoint)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"driver", cfg.Database.Driver,
		"max_open_conns", db.Stats().MaxOpenConnections,
	)

	if cfg.Database.AutoMigrate {
		if err := core.Migrate(ctx, db.DB); err != nil {
			return err
		}
		logger.Info("database schema migrated")
	}

	var rdb *core.Redis
	if cfg.Redis.Enabled() {
		rdb, err = core.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)
	} else {
		logger.Info("redis disabled, catalog cache off and rate limits local")
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("token manager initialized",
		"algorithm", "HS256",
		"ttl", jwtManager.TokenTTL(),
	)

	renderer, err := web.NewRenderer()
	if err != nil {
		return err
	}

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(db.DB, userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(jwtManager, userSvc)
	authHandler := auth.NewHandler(authSvc, cfg.Cookie)

	catalogCache := item.NewCatalogCache(rdb.ClientOrNil(), cfg.Catalog.CacheTTL)
	itemSvc := item.NewService(db.DB, item.NewRepository(db.DB), catalogCache)
	itemHandler := item.NewHandler(itemSvc)

	cartSvc := cart.NewService(db.DB, cart.NewRepository(db.DB))
	cartHandler := cart.NewHandler(cartSvc)

	favoriteHandler := favorite.NewHandler(
		favorite.NewService(db.DB, favorite.NewRepository(db.DB)),
	)

	saleHandler := sale.NewHandler(sale.NewRepository(db.DB))

	webHandler := web.NewHandler(renderer, itemSvc)

	checkers := []health.NamedChecker{{Name: "database", Checker: db}}
	if rdb != nil {
		checkers = append(checkers, health.NamedChecker{Name: "redis", Checker: rdb})
	}
	healthHandler := health.NewHandler(checkers...)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DB:       db,
		Redis:    rdb,
		Renderer: renderer,
		Catalog:  itemSvc,
		Users:    userSvc,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(rdb.ClientOrNil(), middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
			BypassFunc: func(r *http.Request) bool {
				return r.URL.Path == "/healthz" || r.URL.Path == "/readyz"
			},
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	loginLimiter := middleware.NewRateLimiter(
		rdb.ClientOrNil(),
		middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.LoginRequests,
				cfg.RateLimit.LoginBurst,
				cfg.RateLimit.Window,
			),
			KeyFunc:  middleware.KeyByRoute("login"),
			FailOpen: true,
		},
	).Handler

	authenticator := middleware.Authenticator(jwtManager, userSvc, cfg.Cookie.Name)
	optionalAuth := middleware.OptionalAuth(jwtManager, userSvc, cfg.Cookie.Name)

	itemGuard, userGuard := passthrough, passthrough
	if cfg.Auth.ProtectManagement {
		itemGuard = chain(authenticator, middleware.RequireAdmin)
		userGuard = chain(authenticator, middleware.RequireSuperadmin)
		logger.Info("management endpoints require admin and superadmin roles")
	}

	healthHandler.RegisterRoutes(router)
	webHandler.RegisterRoutes(router, optionalAuth)
	authHandler.RegisterRoutes(router, authenticator, loginLimiter)
	userHandler.RegisterRoutes(router, userGuard)
	itemHandler.RegisterRoutes(router, itemGuard)
	cartHandler.RegisterRoutes(router, authenticator)
	favoriteHandler.RegisterRoutes(router, authenticator)
	saleHandler.RegisterRoutes(router, authenticator)
	adminHandler.RegisterRoutes(router, authenticator)
	adminHandler.RegisterSuperadminRoutes(router, authenticator,
		userHandler.RegisterSuperadminRoutes,
		saleHandler.RegisterSuperadminRoutes,
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown error", "error", err)
	}

	if err := rdb.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func passthrough(next http.Handler) http.Handler {
	return next
}

func chain(
	mws ...func(http.Handler) http.Handler,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
