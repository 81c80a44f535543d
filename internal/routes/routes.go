package routes

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/passgate/passgate/internal/account"
	"github.com/passgate/passgate/internal/config"
	"github.com/passgate/passgate/internal/middleware"
	"github.com/passgate/passgate/internal/recovery"
	"github.com/passgate/passgate/internal/security"
	"github.com/passgate/passgate/internal/session"
	"github.com/passgate/passgate/internal/tasks"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Exec   tasks.Executor
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !isDev(d.Cfg.AppEnv) {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Health
	RegisterHealthRoutes(app, d)

	// Services and handlers
	var accountRepo account.Repository
	if d.DB != nil {
		accountRepo = account.NewPostgresRepository(d.DB)
	} else {
		accountRepo = account.NewMemoryRepository()
	}

	var sessions session.Registry
	if d.Cache != nil {
		sessions = session.NewRedisRegistry(d.Cache, d.Cfg.SessionTTL, d.Cfg.RecoveryGuard)
	} else {
		sessions = session.NewMemoryRegistry()
	}

	hasher := security.NewBcryptHasher()

	accountSvc := account.NewService(accountRepo, hasher, sessions)
	accountHandler := account.NewHandler(accountSvc)

	recoverySvc := recovery.NewService(accountRepo, sessions, hasher, d.Exec, recovery.NewMailTransport, d.Cfg, d.Logger)
	recoveryHandler := recovery.NewHandler(recoverySvc)

	// API routes
	api := app.Group("/api/v1")

	RegisterAccountRoutes(api, accountHandler)

	rateLimiter := middleware.RecoveryRateLimit(d.Cache, 3)
	RegisterRecoveryRoutes(api, recoveryHandler, rateLimiter)

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
