package httpserver

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cristianortiz/proxyBidding/internal/shared/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// readyTimeout bounds the store ping of /ready
const readyTimeout = 2 * time.Second

// Pinger is what /ready checks, store.Store satisfies it
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	app             *fiber.App
	shutdownTimeout time.Duration
}

var log = logger.GetLogger()

func NewServer(store Pinger, shutdownTimeout time.Duration) *Server {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	// request logging
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info("HTTP request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("remote_addr", c.IP()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		)
		return err
	})

	// liveness, the process answers
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	// readiness, the store answers too
	app.Get("/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), readyTimeout)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			log.Warn("Readiness check failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	return &Server{app: app, shutdownTimeout: shutdownTimeout}
}

// Start listens on addr until SIGINT or SIGTERM, then drains within the shutdown timeout
func (s *Server) Start(addr string) error {
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Info("Shutting down HTTP server...")
		if err := s.Shutdown(context.Background()); err != nil {
			log.Error("HTTP server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("HTTP server started", zap.String("addr", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the fiber app, used by tests through app.Test
func (s *Server) App() *fiber.App {
	return s.app
}
