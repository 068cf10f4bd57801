package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/cuzdan-pay/cuzdan_pay/internal/config"
	"github.com/cuzdan-pay/cuzdan_pay/internal/contact"
	"github.com/cuzdan-pay/cuzdan_pay/internal/middleware"
	"github.com/cuzdan-pay/cuzdan_pay/internal/notification"
	"github.com/cuzdan-pay/cuzdan_pay/internal/qrpay"
	"github.com/cuzdan-pay/cuzdan_pay/internal/storage"
	"github.com/cuzdan-pay/cuzdan_pay/internal/validation"
	"github.com/cuzdan-pay/cuzdan_pay/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes, and returns the
// wallet store so the server can flush it on shutdown.
func Setup(app *fiber.App, d Deps) (*wallet.Store, error) {
	if !d.Cfg.IsDev() && d.DB == nil && d.Cache == nil {
		return nil, fmt.Errorf("a backing store is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	// Persistence: Postgres when configured, otherwise Redis, otherwise
	// in-memory (dev only).
	ctx := context.Background()
	var kv storage.KV
	switch {
	case d.DB != nil:
		pg := storage.NewPostgresKV(d.DB)
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		kv = pg
	case d.Cache != nil:
		kv = storage.NewRedisKV(d.Cache)
	default:
		kv = storage.NewMemoryKV()
	}

	var pinHash []byte
	if d.Cfg.WalletPIN != "" {
		var err error
		pinHash, err = middleware.HashPIN(d.Cfg.WalletPIN)
		if err != nil {
			return nil, fmt.Errorf("hash wallet pin: %w", err)
		}
	}

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)
	bridge := wallet.NewBridge(kv, d.Cfg.WalletSlot)
	store := wallet.NewStore(bridge, d.Cfg.InitialBalance, notifier, d.Logger)
	store.Load(ctx)

	var contactRepo contact.Repository
	if d.DB != nil {
		pgRepo := contact.NewPostgresRepository(d.DB)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		contactRepo = pgRepo
	} else {
		contactRepo = contact.NewMemoryRepository()
	}
	contactSvc := contact.NewService(contactRepo)

	validate := validation.New()
	walletHandler := wallet.NewHandler(store, validate)
	contactHandler := contact.NewHandler(contactSvc, validate)
	qrHandler := qrpay.NewHandler()

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

	// The QR codec is pure; scanning happens on the device, so these
	// endpoints stay outside the PIN gate.
	RegisterQRRoutes(api, qrHandler)

	// Protected routes
	protected := api.Group("", middleware.PINGate(pinHash))
	protected.Use(middleware.TransferRateLimit(d.Cache, d.Cfg.RateLimit))
	RegisterWalletRoutes(protected, walletHandler)
	RegisterContactRoutes(protected, contactHandler)

	return store, nil
}
