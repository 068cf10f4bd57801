package wallet

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/cuzdan-pay/cuzdan_pay/internal/storage"
	"github.com/cuzdan-pay/cuzdan_pay/internal/validation"
)

func setupHandlerApp(t *testing.T) (*fiber.App, *Store) {
	t.Helper()
	store := newTestStore(storage.NewMemoryKV())
	handler := NewHandler(store, validation.New())

	app := fiber.New()
	app.Get("/wallet", handler.Get)
	app.Post("/wallet/transactions", handler.Transfer)
	app.Put("/wallet/balance", handler.SetBalance)
	app.Post("/wallet/reset", handler.Reset)
	return app, store
}

func decodeBody(t *testing.T, resp io.Reader) map[string]any {
	t.Helper()
	payload, err := io.ReadAll(resp)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode body %s: %v", payload, err)
	}
	return decoded
}

func TestHandlerTransfer(t *testing.T) {
	app, store := setupHandlerApp(t)
	defer store.Close()

	req := httptest.NewRequest(fiber.MethodPost, "/wallet/transactions",
		strings.NewReader(`{"receiver":"05551234567","amount":150}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp.Body)
	resp.Body.Close()

	if body["balance"].(float64) != 850 {
		t.Fatalf("expected balance 850, got %v", body["balance"])
	}
	if body["balance_formatted"] != "850,00" {
		t.Fatalf("expected formatted balance 850,00, got %v", body["balance_formatted"])
	}
	tx, ok := body["transaction"].(map[string]any)
	if !ok {
		t.Fatalf("expected transaction object, got %v", body["transaction"])
	}
	if tx["amount"] != "150.00" {
		t.Fatalf("expected wire amount \"150.00\", got %v", tx["amount"])
	}
}

func TestHandlerTransferStringAmount(t *testing.T) {
	app, store := setupHandlerApp(t)
	defer store.Close()

	req := httptest.NewRequest(fiber.MethodPost, "/wallet/transactions",
		strings.NewReader(`{"receiver":"05551234567","amount":"42.50"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	if got := store.State().Balance; got != 957.5 {
		t.Fatalf("expected balance 957.5, got %v", got)
	}
}

func TestHandlerTransferRejectsBadReceiver(t *testing.T) {
	app, store := setupHandlerApp(t)
	defer store.Close()

	req := httptest.NewRequest(fiber.MethodPost, "/wallet/transactions",
		strings.NewReader(`{"receiver":"not-a-phone","amount":150}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if len(store.State().Transactions) != 0 {
		t.Fatal("transition dispatched despite invalid receiver")
	}
}

func TestHandlerTransferRejectsInsufficientBalance(t *testing.T) {
	app, store := setupHandlerApp(t)
	defer store.Close()

	req := httptest.NewRequest(fiber.MethodPost, "/wallet/transactions",
		strings.NewReader(`{"receiver":"05551234567","amount":5000}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if got := store.State().Balance; got != 1000 {
		t.Fatalf("balance changed to %v", got)
	}
}

func TestHandlerGetAndReset(t *testing.T) {
	app, store := setupHandlerApp(t)
	defer store.Close()

	if _, err := store.AddTransaction(context.Background(), "05551234567", 100); err != nil {
		t.Fatalf("seed transaction: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/wallet", nil))
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	body := decodeBody(t, resp.Body)
	resp.Body.Close()
	if body["balance"].(float64) != 900 {
		t.Fatalf("expected balance 900, got %v", body["balance"])
	}
	if len(body["transactions"].([]any)) != 1 {
		t.Fatalf("expected 1 transaction, got %v", body["transactions"])
	}

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/wallet/reset", nil))
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	body = decodeBody(t, resp.Body)
	resp.Body.Close()
	if body["balance"].(float64) != 1000 {
		t.Fatalf("expected baseline 1000, got %v", body["balance"])
	}
	if len(body["transactions"].([]any)) != 0 {
		t.Fatalf("expected empty log, got %v", body["transactions"])
	}
}

func TestHandlerSetBalance(t *testing.T) {
	app, store := setupHandlerApp(t)
	defer store.Close()

	req := httptest.NewRequest(fiber.MethodPut, "/wallet/balance", strings.NewReader(`{"balance":250.505}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := store.State().Balance; got != 250.51 {
		t.Fatalf("expected rounded balance 250.51, got %v", got)
	}
}
