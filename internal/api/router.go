package api

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/bioid/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/bioid/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/bioid/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/bioid/internal/config"
	"github.com/saturnino-fabrica-de-software/bioid/internal/provider"
	"github.com/saturnino-fabrica-de-software/bioid/internal/repository"
	"github.com/saturnino-fabrica-de-software/bioid/internal/service"
	"github.com/saturnino-fabrica-de-software/bioid/internal/storage"
)

type Dependencies struct {
	Config     *config.Config
	Extractors provider.ExtractorSet
	Images     storage.ImageStore
	DB         *pgxpool.Pool
}

type Router struct {
	app         *fiber.App
	logger      *slog.Logger
	deps        *Dependencies
	rateLimiter *middleware.RateLimiter
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "BioID API",
		BodyLimit:    20 * 1024 * 1024,
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,x-api-key",
	}))

	// Swagger documentation (no auth required)
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints (no auth required)
	var pinger handler.Pinger
	if r.deps != nil && r.deps.DB != nil {
		pinger = r.deps.DB
	}
	healthHandler := handler.NewHealthHandler(pinger)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// API v1 group with authentication
	v1 := r.app.Group("/v1")

	// Only configure authenticated routes if dependencies were provided
	if r.deps != nil {
		cfg := r.deps.Config

		v1.Use(middleware.Auth(cfg.APIKey))

		// Rate limiting (per client IP)
		rlConfig := middleware.DefaultRateLimiterConfig()
		if cfg.RateLimitMax > 0 {
			rlConfig.Max = cfg.RateLimitMax
			rlConfig.Window = time.Minute
		}
		r.rateLimiter = middleware.NewRateLimiter(rlConfig)
		v1.Use(r.rateLimiter.Handler())

		biometricRepo := repository.NewBiometricRepository(r.deps.DB)
		auditRepo := repository.NewIdentificationAuditRepository(r.deps.DB)

		biometricService := service.NewBiometricService(
			biometricRepo,
			auditRepo,
			r.deps.Extractors,
			r.deps.Images,
			service.Options{
				FaceThreshold:     cfg.FaceThreshold,
				PalmThreshold:     cfg.PalmThreshold,
				SearchWorkers:     cfg.SearchWorkers,
				MaxScanCandidates: cfg.MaxScanCandidates,
				RequireLiveness:   cfg.RequireLiveness,
				LivenessThreshold: cfg.LivenessThreshold,
			},
			r.logger,
		)

		biometricHandler := handler.NewBiometricHandler(biometricService, cfg.LivenessThreshold, r.logger)

		v1.Post("/biometrics/compare", biometricHandler.Compare)
		v1.Post("/biometrics/liveness", biometricHandler.CheckLiveness)
		v1.Post("/biometrics", biometricHandler.Register)
		v1.Get("/biometrics", biometricHandler.List)
		v1.Get("/biometrics/:id", biometricHandler.Get)
		v1.Delete("/biometrics/:id", biometricHandler.Delete)
	}
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

// shutdownTimeout bounds how long in-flight requests may run during
// graceful shutdown.
const shutdownTimeout = 10 * time.Second

func (r *Router) Shutdown() error {
	// Stop rate limiter cleanup goroutine
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}

	return r.app.ShutdownWithTimeout(shutdownTimeout)
}
