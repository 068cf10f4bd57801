package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cuzdan-pay/cuzdan_pay/internal/qrpay"
)

// RegisterQRRoutes wires the QR payment codec endpoints.
func RegisterQRRoutes(r fiber.Router, h *qrpay.Handler) {
	r.Post("/qr/parse", h.ParseCode)
	r.Get("/qr/generate", h.GenerateCode)
}
