package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/store-rating-service/internal/api/http"
	"github.com/spec-kit/store-rating-service/internal/api/http/handlers"
	"github.com/spec-kit/store-rating-service/internal/auth"
	"github.com/spec-kit/store-rating-service/internal/config"
	"github.com/spec-kit/store-rating-service/internal/events"
	"github.com/spec-kit/store-rating-service/internal/observability"
	"github.com/spec-kit/store-rating-service/internal/persistence"
	"github.com/spec-kit/store-rating-service/internal/repository"
	"github.com/spec-kit/store-rating-service/internal/service"
	"github.com/spec-kit/store-rating-service/internal/worker"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var denylist auth.Denylist
	if redis != nil {
		denylist = auth.NewRedisDenylist(redis.Client)
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	storeRepo := repository.NewStoreRepository(pool)
	ratingRepo := repository.NewRatingRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:   userRepo,
		Denylist:   denylist,
		Dispatcher: dispatcher,
	})
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	userService := service.NewUserService(userRepo, storeRepo, ratingRepo, hasher)
	storeService := service.NewStoreService(storeRepo, userRepo, ratingRepo, dispatcher)
	ratingService := service.NewRatingService(ratingRepo, storeRepo, dispatcher)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, denylist, logger)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Stores:         handlers.NewStoresHandler(storeService, ratingService),
		Owner:          handlers.NewOwnerHandler(storeService),
		Admin:          handlers.NewAdminHandler(userService, storeService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
