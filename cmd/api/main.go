package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/dns-auth/token-service/internal/api/http"
	"github.com/dns-auth/token-service/internal/api/http/handlers"
	"github.com/dns-auth/token-service/internal/auth"
	"github.com/dns-auth/token-service/internal/config"
	"github.com/dns-auth/token-service/internal/observability"
	"github.com/dns-auth/token-service/internal/persistence"
	"github.com/dns-auth/token-service/internal/repository"
	"github.com/dns-auth/token-service/internal/service"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	codec, err := auth.NewCodec(auth.CipherMode(cfg.Auth.TokenCipherMode), []byte(cfg.Auth.TokenKey))
	if err != nil {
		logger.Fatal("failed to init token codec", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	userRepo := repository.NewUserRepository(pg.PoolHandle())
	attemptRepo := repository.NewLoginAttemptRepository(redis.Client)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		Users:    userRepo,
		Verifier: auth.BcryptVerifier{},
		Attempts: attemptRepo,
		Issuer:   auth.NewIssuer(codec, nil),
		Logger:   logger,
	})
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	interceptor := auth.NewInterceptor(auth.NewAuthenticator(codec, nil), logger, metrics)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Auth:        handlers.NewAuthHandler(authService),
		Users:       handlers.NewUsersHandler(userService),
		Interceptor: interceptor,
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
