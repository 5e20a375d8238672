package routes

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/corebank/corebank/internal/account"
	"github.com/corebank/corebank/internal/config"
	"github.com/corebank/corebank/internal/logging"
	"github.com/corebank/corebank/internal/middleware"
	"github.com/corebank/corebank/internal/notification"
	"github.com/corebank/corebank/internal/session"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
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
	app.Use(middleware.Audit(logging.Component(d.Logger, "http")))
	app.Use(middleware.Metrics())
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health and metrics
	RegisterHealthRoutes(app, d)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Stores and services
	var store account.Store
	if d.DB != nil {
		store = account.NewPostgresStore(d.DB)
	} else {
		store = account.NewMemoryStore()
	}

	var sessions session.Store
	if d.Cache != nil {
		sessions = session.NewRedisStore(d.Cache, d.Cfg.SessionTTL)
	} else {
		sessions = session.NewMemoryStore(d.Cfg.SessionTTL)
	}

	notifier := notification.NewLoggerNotifier(logging.Component(d.Logger, "notification"))
	accounts := account.NewService(store, notifier)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	RegisterAuthRoutes(api, accounts, sessions, middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRateLimit))

	// Session-protected account routes
	protected := api.Group("", middleware.SessionAuth(sessions))
	RegisterAccountRoutes(protected, accounts, sessions)

	return nil
}

// statusForError maps ledger core error kinds onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, account.ErrInvalidUsername),
		errors.Is(err, account.ErrInvalidPIN),
		errors.Is(err, account.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, account.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, account.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, account.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, account.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func domainError(err error) *fiber.Error {
	return fiber.NewError(statusForError(err), err.Error())
}
