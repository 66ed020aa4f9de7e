package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/admin-console/internal/api/http"
	"github.com/spec-kit/admin-console/internal/api/http/handlers"
	"github.com/spec-kit/admin-console/internal/auth"
	"github.com/spec-kit/admin-console/internal/config"
	"github.com/spec-kit/admin-console/internal/events"
	"github.com/spec-kit/admin-console/internal/observability"
	"github.com/spec-kit/admin-console/internal/persistence"
	"github.com/spec-kit/admin-console/internal/remote"
	"github.com/spec-kit/admin-console/internal/repository"
	"github.com/spec-kit/admin-console/internal/service"
	"github.com/spec-kit/admin-console/internal/session"
	"github.com/spec-kit/admin-console/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), os.DirFS(persistence.MigrationsDir), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	var (
		redis  *persistence.Redis
		stores repository.TokenStores
	)
	switch cfg.Session.TokenStore {
	case config.TokenStoreMemory:
		logger.Warn("in-memory token store; sessions will not survive a restart")
		stores = repository.NewMemoryTokenStores()
	default:
		redis = persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		stores = repository.NewRedisTokenStores(redis.Handle(), cfg.Session.TokenKeyPrefix, cfg.Session.TokenTTL(), logger)
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	var auditRepo repository.AuditRepository
	if pg.Enabled() {
		auditRepo = repository.NewAuditRepository(pg.PoolHandle())
	}
	auditWorker := worker.StartAuditWorker(ctx, dispatcher, auditRepo, metrics, logger)

	api := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.Timeout())
	registry := session.NewRegistry(session.RegistryDeps{
		Stores:     stores,
		API:        api,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	go worker.RunSessionSweeper(ctx, registry, cfg.Session.SweepInterval(), cfg.Session.IdleTTL(), metrics, logger)

	authService := service.NewAuthService(api, logger)
	directoryService := service.NewDirectoryService()
	orderService := service.NewOrderService()
	auditService := service.NewAuditService(repository.NewAuditRepository(pg.PoolHandle()))

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:    handlers.NewAuthHandler(authService),
		Console: handlers.NewConsoleHandler(orderService),
		Admin:   handlers.NewAdminHandler(directoryService, auditService),
		Clients: auth.NewClientMiddleware(registry, cfg.Session),
		Metrics: metrics.Handler(),
	})

	go func() {
		logger.Info("console listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("remote_api", cfg.Remote.BaseURL),
			zap.String("token_store", cfg.Session.TokenStore))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	cancel()
	<-auditWorker.Done()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
