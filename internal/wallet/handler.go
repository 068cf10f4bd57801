package wallet

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/cuzdan-pay/cuzdan_pay/internal/currency"
	"github.com/cuzdan-pay/cuzdan_pay/internal/ledger"
	"github.com/cuzdan-pay/cuzdan_pay/internal/validation"
)

// Handler exposes wallet HTTP endpoints. It owns the user-facing business
// checks (receiver format, sufficient balance) that the ledger deliberately
// trusts its caller with.
type Handler struct {
	store    *Store
	validate *validation.Validator
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(store *Store, validate *validation.Validator) *Handler {
	return &Handler{store: store, validate: validate}
}

type transferRequest struct {
	Receiver string        `json:"receiver" validate:"required,phone"`
	Amount   ledger.Amount `json:"amount"`
}

type setBalanceRequest struct {
	Balance float64 `json:"balance"`
}

// Get returns the current wallet state.
func (h *Handler) Get(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(stateResponse(h.store.State()))
}

// Transfer records an outgoing transfer.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	amount := float64(req.Amount)
	if amount > h.store.State().Balance {
		return fiber.NewError(http.StatusBadRequest, "insufficient balance")
	}

	state, err := h.store.AddTransaction(c.UserContext(), req.Receiver, amount)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidAmount) {
			return fiber.NewError(http.StatusBadRequest, "invalid amount")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	response := stateResponse(state)
	response["transaction"] = state.Transactions[len(state.Transactions)-1]
	return c.Status(http.StatusCreated).JSON(response)
}

// SetBalance replaces the wallet balance.
func (h *Handler) SetBalance(c *fiber.Ctx) error {
	var req setBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	state, err := h.store.SetBalance(c.UserContext(), req.Balance)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid amount")
	}
	return c.Status(http.StatusOK).JSON(stateResponse(state))
}

// Reset restores the baseline balance and clears the transfer log.
func (h *Handler) Reset(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(stateResponse(h.store.Reset(c.UserContext())))
}

func stateResponse(state ledger.State) fiber.Map {
	return fiber.Map{
		"balance":           state.Balance,
		"balance_formatted": currency.FormatCurrency(state.Balance),
		"balance_compact":   currency.FormatCompactCurrency(state.Balance),
		"transactions":      state.Transactions,
	}
}
