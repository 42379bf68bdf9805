package api

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/aivi/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/aivi/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/aivi/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/aivi/internal/metrics"
)

// Frames arrive base64-encoded inside JSON, and /register takes several
const bodyLimit = 64 * 1024 * 1024

type Dependencies struct {
	Recognition handler.RecognitionService
	Enrollment  handler.EnrollmentService
	Index       handler.IdentityLister
	Storage     handler.Pinger
	Metrics     *metrics.Metrics

	// RateLimitMax is requests per minute per client IP; 0 uses the default
	RateLimitMax int
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
		AppName:      "AIVI API",
		BodyLimit:    bodyLimit,
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints, never rate limited
	healthHandler := handler.NewHealthHandler(r.deps.Storage)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	if r.deps.Metrics != nil {
		r.app.Get("/metrics", adaptor.HTTPHandler(
			promhttp.HandlerFor(r.deps.Metrics.Registry, promhttp.HandlerOpts{}),
		))
	}

	// Rate limiting (per client IP)
	r.rateLimiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Max:    r.deps.RateLimitMax,
		Window: time.Minute,
		PerEndpoint: map[string]middleware.EndpointRateLimit{
			// each enrollment runs the embedding model once per sample
			"/register": {Requests: 10, Window: time.Minute},
		},
	})
	limit := r.rateLimiter.Handler()

	visionHandler := handler.NewVisionHandler(r.deps.Recognition, r.logger)
	registerHandler := handler.NewRegisterHandler(r.deps.Enrollment, r.logger)
	identitiesHandler := handler.NewIdentitiesHandler(r.deps.Index)

	r.app.Post("/analyze_vision", limit, visionHandler.Analyze)
	r.app.Post("/register", limit, registerHandler.Register)
	r.app.Get("/identities", limit, identitiesHandler.List)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	// Stop rate limiter cleanup goroutine
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}

	return r.app.ShutdownWithTimeout(10 * time.Second)
}
