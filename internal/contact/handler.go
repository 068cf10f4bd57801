package contact

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/cuzdan-pay/cuzdan_pay/internal/qrpay"
	"github.com/cuzdan-pay/cuzdan_pay/internal/validation"
)

// Handler exposes contact book endpoints.
type Handler struct {
	service  *Service
	validate *validation.Validator
}

// NewHandler builds a contact HTTP handler.
func NewHandler(service *Service, validate *validation.Validator) *Handler {
	return &Handler{service: service, validate: validate}
}

type createRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,phone"`
}

type importRequest struct {
	Data string `json:"data" validate:"required"`
}

// Create saves a contact.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	contact, err := h.service.Create(c.UserContext(), CreateInput{Name: req.Name, Phone: req.Phone})
	if err != nil {
		if errors.Is(err, ErrExists) {
			return fiber.NewError(http.StatusConflict, "contact already saved")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(contact)
}

// Import saves the counterparty of a scanned contact QR code.
func (h *Handler) Import(c *fiber.Ctx) error {
	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	intent := qrpay.Parse(req.Data)
	if intent == nil || intent.Type != qrpay.TypeContact {
		return fiber.NewError(http.StatusUnprocessableEntity, "not a contact code")
	}

	contact, err := h.service.ImportIntent(c.UserContext(), intent)
	if err != nil {
		if errors.Is(err, ErrExists) {
			return fiber.NewError(http.StatusConflict, "contact already saved")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(contact)
}

// List returns the saved contact book.
func (h *Handler) List(c *fiber.Ctx) error {
	contacts, err := h.service.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"contacts": contacts})
}
