package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cuzdan-pay/cuzdan_pay/internal/wallet"
)

// RegisterWalletRoutes wires the wallet ledger endpoints.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler) {
	r.Get("/wallet", h.Get)
	r.Post("/wallet/transactions", h.Transfer)
	r.Put("/wallet/balance", h.SetBalance)
	r.Post("/wallet/reset", h.Reset)
}
