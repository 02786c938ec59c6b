package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/odc-estimate/internal/config"
	"github.com/odc-estimate/internal/delivery/http/handler"
	"github.com/odc-estimate/internal/delivery/http/middleware"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// два отчёта по 10 МБ плюс поля формы
const bodyLimit = 24 * 1024 * 1024

// HealthCheck - проверка зависимости для /health
type HealthCheck func(ctx context.Context) error

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	estimateHandler *handler.EstimateHandler
	enquiryHandler  *handler.EnquiryHandler
	routeHandler    *handler.RouteHandler
	authHandler     *handler.AuthHandler

	tokens middleware.TokenParser
	checks map[string]HealthCheck
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	estimateHandler *handler.EstimateHandler,
	enquiryHandler *handler.EnquiryHandler,
	routeHandler *handler.RouteHandler,
	authHandler *handler.AuthHandler,
	tokens middleware.TokenParser,
	checks map[string]HealthCheck,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "ODC Estimate",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    bodyLimit,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		estimateHandler: estimateHandler,
		enquiryHandler:  enquiryHandler,
		routeHandler:    routeHandler,
		authHandler:     authHandler,
		tokens:          tokens,
		checks:          checks,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.health)

	// Public
	api.Get("/estimate", s.estimateHandler.Estimate)
	api.Get("/bands", s.estimateHandler.Bands)
	api.Post("/enquiries", s.enquiryHandler.Submit)

	// Admin
	api.Post("/admin/login", s.authHandler.Login)

	admin := api.Group("/admin", middleware.AdminAuth(s.tokens))
	admin.Get("/routes", s.routeHandler.List)
	admin.Post("/routes", s.routeHandler.Create)
	admin.Get("/routes/:id", s.routeHandler.Get)
	admin.Put("/routes/:id", s.routeHandler.Update)
	admin.Delete("/routes/:id", s.routeHandler.Delete)

	admin.Get("/enquiries", s.enquiryHandler.List)
	admin.Get("/enquiries/export", s.enquiryHandler.Export)
}

// health godoc
// @Summary Проверка состояния сервиса
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "healthy"
	deps := make(fiber.Map, len(s.checks))
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			s.logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			deps[name] = err.Error()
			status = "degraded"
			continue
		}
		deps[name] = "ok"
	}

	code := fiber.StatusOK
	if status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":       status,
		"dependencies": deps,
		"time":         time.Now(),
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_SERVER_ERROR"
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
			if code < fiber.StatusInternalServerError {
				errCode = "REQUEST_ERROR"
			}
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errCode,
				"message": message,
			},
		})
	}
}
