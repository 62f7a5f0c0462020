// @title         buildings API
// @version       1.0
// @description   Token-authenticated backend for the building design editor.
// @BasePath      /
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token: "Bearer <JWT>".
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"

	_ "github.com/artem13815/buildings/docs"

	// internal imports
	"github.com/artem13815/buildings/api/http"
	"github.com/artem13815/buildings/api/http/handlers"
	"github.com/artem13815/buildings/api/http/presenter"
	"github.com/artem13815/buildings/pkg/auth"
	"github.com/artem13815/buildings/pkg/config"
	"github.com/artem13815/buildings/pkg/design"
	"github.com/artem13815/buildings/pkg/health"
	"github.com/artem13815/buildings/pkg/health/checkers"
	"github.com/artem13815/buildings/pkg/logging"
	"github.com/artem13815/buildings/pkg/repository/memory"
	pgrepo "github.com/artem13815/buildings/pkg/repository/postgres"
	"github.com/artem13815/buildings/pkg/security/jwt"
	"github.com/artem13815/buildings/pkg/session"
	"github.com/artem13815/buildings/pkg/storage/postgres"
	redisstore "github.com/artem13815/buildings/pkg/storage/redis"
)

func main() {
	// Load configuration from env/.env
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	if cfg.InsecureSecret() {
		log.Warn("JWT_SECRET_KEY is not set, using the development secret; do not run like this in production")
	}

	var (
		users     auth.UserRepository
		readiness []health.Checker
	)

	// Credential store: PostgreSQL when configured, process memory otherwise
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL, int32(cfg.DBMaxConns))
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			return err
		}
		users = pgrepo.NewUserRepository(pool)
		readiness = append(readiness, checkers.NewPostgresChecker(pool))
		log.Info("credential store ready", "backend", "postgres")
	} else {
		users = memory.NewUserRepository()
		log.Info("credential store ready", "backend", "memory")
	}

	// Session storage
	sessCfg := session.Config{
		Expiration:   cfg.SessionTTL,
		CookieSecure: cfg.SessionCookieSecure,
	}
	if cfg.SessionStore == "redis" {
		client, err := redisstore.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		storage := redisstore.NewStorage(client, "sessions:")
		defer storage.Close()
		sessCfg.Storage = storage
		readiness = append(readiness, checkers.NewRedisChecker(storage))
		log.Info("session store ready", "backend", "redis", "addr", cfg.RedisAddr)
	}
	sessions := session.New(sessCfg)

	tokens, err := jwt.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		return err
	}

	authUC := auth.NewAuthService(users, auth.NewBcryptHasher(cfg.BcryptCost), tokens, auth.WithLogger(log))
	if cfg.SeedDemoUsers {
		if err := authUC.Seed(ctx, auth.DemoAccounts...); err != nil {
			return err
		}
		log.Warn("demo accounts seeded", "count", len(auth.DemoAccounts))
	}

	gate := jwt.NewGate(tokens, cfg.AuthScheme, jwt.WithGateLogger(log))

	app := fiber.New(fiber.Config{
		ErrorHandler:          presenter.ErrorHandler(log),
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))

	http.Register(app,
		handlers.NewAuthHandler(authUC, sessions, log),
		handlers.NewHealthHandler(health.NewService(readiness...), log),
		handlers.NewDesignHandler(design.NewService()),
		gate.Middleware(sessions),
	)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "port", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
