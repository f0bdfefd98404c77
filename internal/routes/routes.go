package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/octovision/auth-service/internal/auth"
	"github.com/octovision/auth-service/internal/config"
	"github.com/octovision/auth-service/internal/middleware"
	"github.com/octovision/auth-service/internal/user"
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
	// Enforce DB/Redis presence outside of dev, even though config also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	// Credential store: Postgres when configured, in-memory in dev.
	var repo user.Repository
	if d.DB != nil {
		pgRepo := user.NewPostgresRepository(d.DB)
		if err := pgRepo.EnsureSchema(context.Background()); err != nil {
			return err
		}
		repo = pgRepo
	} else {
		repo = user.NewMemoryRepository()
	}

	hasher := auth.NewHasher(d.Cfg.BcryptCost)
	codec := auth.NewCodec([]byte(d.Cfg.JWTSecret), d.Cfg.TokenTTL)
	svc := auth.NewService(repo, hasher, codec)
	resolver := auth.NewResolver(codec, repo)
	authHandler := auth.NewHandler(svc)

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
	RegisterAuthRoutes(api, authHandler)

	// Protected routes
	bearer := middleware.BearerAuth(resolver)
	protected := api.Group("", bearer)
	RegisterCallerRoutes(protected, d.Logger)

	return nil
}
