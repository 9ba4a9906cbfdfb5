package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/dshills/scribe/internal/config"
	"github.com/dshills/scribe/internal/event"
	"github.com/dshills/scribe/internal/store"
)

// Server is the document HTTP service.
type Server struct {
	app    *fiber.App
	cfg    config.ServerConfig
	logger *zap.Logger
}

// Option configures a Server.
type Option func(*options)

type options struct {
	logger *zap.Logger
	bus    *event.Bus
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithBus publishes document.saved and document.save_failed on b.
func WithBus(b *event.Bus) Option {
	return func(o *options) { o.bus = b }
}

// New builds the service over st.
func New(cfg config.ServerConfig, st store.Store, opts ...Option) *Server {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "scribed",
		BodyLimit:             cfg.BodyLimitKB * 1024,
		ReadTimeout:           time.Duration(cfg.ReadTimeoutSec) * time.Second,
		ErrorHandler:          errorHandler(o.logger),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CorsOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(requestLogger(o.logger))

	api := app.Group("/api")
	newDocumentController(st, o.bus, o.logger).RegisterRoutes(api)

	return &Server{app: app, cfg: cfg, logger: o.logger}
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens on the configured address until Shutdown.
func (s *Server) Run() error {
	s.logger.Info("server listening", zap.String("addr", s.cfg.Addr))
	return s.app.Listen(s.cfg.Addr)
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
