package qrpay

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cuzdan-pay/cuzdan_pay/internal/validation"
)

// Handler exposes QR codec endpoints.
type Handler struct{}

// NewHandler constructs a QR handler.
func NewHandler() *Handler {
	return &Handler{}
}

type parseRequest struct {
	Data string `json:"data"`
}

// ParseCode decodes raw scanned text into a payment intent.
func (h *Handler) ParseCode(c *fiber.Ctx) error {
	var req parseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	intent := Parse(req.Data)
	if intent == nil {
		return fiber.NewError(http.StatusUnprocessableEntity, "unrecognized code")
	}
	return c.Status(http.StatusOK).JSON(intent)
}

// GenerateCode produces the URI wire form for a payment request.
func (h *Handler) GenerateCode(c *fiber.Ctx) error {
	phone := c.Query("phone")
	if !validation.Phone(phone) {
		return fiber.NewError(http.StatusBadRequest, "enter a valid phone number")
	}

	var amount *float64
	if raw := c.Query("amount"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid amount")
		}
		amount = &parsed
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"data": Generate(phone, amount, c.Query("desc")),
	})
}
