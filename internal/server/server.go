package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/cuzdan-pay/cuzdan_pay/internal/config"
	"github.com/cuzdan-pay/cuzdan_pay/internal/routes"
	"github.com/cuzdan-pay/cuzdan_pay/internal/wallet"
)

// Server wraps the Fiber application and the wallet store whose lifecycle
// it owns.
type Server struct {
	app   *fiber.App
	cfg   config.Config
	store *wallet.Store
}

// New instantiates the HTTP server and delegates route wiring to routes.Setup.
func New(cfg config.Config, db *pgxpool.Pool, cache *redis.Client, logger *slog.Logger) (*Server, error) {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	store, err := routes.Setup(app, routes.Deps{Cfg: cfg, DB: db, Cache: cache, Logger: logger})
	if err != nil {
		return nil, err
	}

	return &Server{app: app, cfg: cfg, store: store}, nil
}

// Listen starts the HTTP server.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.Address())
}

// Shutdown gracefully stops the HTTP server, then flushes the wallet state
// one final time so a crash-free exit never loses a transition.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return err
	}
	s.store.Close()
	return s.store.Flush(ctx)
}
