package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cuzdan-pay/cuzdan_pay/internal/contact"
)

// RegisterContactRoutes wires the contact book endpoints.
func RegisterContactRoutes(r fiber.Router, h *contact.Handler) {
	r.Get("/contacts", h.List)
	r.Post("/contacts", h.Create)
	r.Post("/contacts/import", h.Import)
}
