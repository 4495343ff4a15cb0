package server

import (
	"context"
	"time"

	"pdf-summarizer-be/internal/bootstrap"
	"pdf-summarizer-be/internal/config"
	"pdf-summarizer-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// maxFilesPerRequest bounds the multipart body; single files are checked against
// MAX_FILE_SIZE_MB by the ingestion service.
const maxFilesPerRequest = 10

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Initialize Fiber App
	app := fiber.New(fiber.Config{
		AppName:               "pdf-summarizer",
		BodyLimit:             int(cfg.MaxFileSizeBytes())*maxFilesPerRequest + 1024*1024,
		ReadTimeout:           2 * time.Minute,
		WriteTimeout:          5 * time.Minute,
		ErrorHandler:          serverutils.FiberErrorHandler(container.Logger),
		DisableStartupMessage: !cfg.App.Debug,
	})

	// Middleware
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.App.Debug}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: cfg.App.CorsAllowedOrigins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Content-Disposition, Location",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	if cfg.Tracing.Enabled {
		app.Use(otelfiber.Middleware())
	}

	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	app.Use(container.Limiters.Default)

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(serverutils.SuccessResponse("ok", fiber.Map{"status": "healthy"}))
	})

	app.Use(container.Sessions.Middleware())

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info("SERVER", "Server is running", map[string]interface{}{"addr": "http://" + s.cfg.ListenAddr()})
	return s.app.Listen(s.cfg.ListenAddr())
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	c.UploadController.RegisterRoutes(app, c.Limiters.Upload)
	c.SummaryController.RegisterRoutes(app)
	c.PromptController.RegisterRoutes(app)
}
