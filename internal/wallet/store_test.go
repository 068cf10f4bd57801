package wallet

import (
	"context"
	"errors"
	"reflect"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/cuzdan-pay/cuzdan_pay/internal/ledger"
	"github.com/cuzdan-pay/cuzdan_pay/internal/logging"
	"github.com/cuzdan-pay/cuzdan_pay/internal/storage"
)

func newTestStore(kv storage.KV) *Store {
	return NewStore(NewBridge(kv, ""), 1000, nil, logging.Discard())
}

func TestStoreTransferScenario(t *testing.T) {
	kv := storage.NewMemoryKV()
	store := newTestStore(kv)
	ctx := context.Background()

	state, err := store.AddTransaction(ctx, "05551234567", 150)
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}

	if state.Balance != 850 {
		t.Fatalf("expected balance 850, got %v", state.Balance)
	}
	if len(state.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(state.Transactions))
	}
	tx := state.Transactions[0]
	if tx.Amount.String() != "150.00" {
		t.Fatalf("expected amount 150.00, got %s", tx.Amount.String())
	}
	if tx.Receiver != "05551234567" {
		t.Fatalf("unexpected receiver %s", tx.Receiver)
	}
	if tx.ID == "" || tx.Date == "" {
		t.Fatalf("expected generated id and date, got %+v", tx)
	}

	// The mutation persisted asynchronously; drain and check the slot.
	store.Close()
	blob, err := kv.Get(ctx, DefaultSlot)
	if err != nil {
		t.Fatalf("read slot: %v", err)
	}
	if blob == "" {
		t.Fatal("expected persisted blob")
	}
}

func TestStorePersistenceRoundTrip(t *testing.T) {
	kv := storage.NewMemoryKV()
	store := newTestStore(kv)
	ctx := context.Background()

	if _, err := store.AddTransaction(ctx, "05551234567", 150); err != nil {
		t.Fatalf("first transfer: %v", err)
	}
	if _, err := store.AddTransaction(ctx, "05559876543", 42.35); err != nil {
		t.Fatalf("second transfer: %v", err)
	}
	if err := store.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	store.Close()

	reloaded := newTestStore(kv)
	state := reloaded.Load(ctx)

	if !reflect.DeepEqual(state, store.State()) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", state, store.State())
	}
	if state.Balance != 807.65 {
		t.Fatalf("expected balance 807.65, got %v", state.Balance)
	}
}

func TestStoreLoadMissingSlotDefaults(t *testing.T) {
	store := newTestStore(storage.NewMemoryKV())

	state := store.Load(context.Background())
	if state.Balance != 1000 {
		t.Fatalf("expected default balance 1000, got %v", state.Balance)
	}
	if len(state.Transactions) != 0 {
		t.Fatalf("expected empty log, got %d", len(state.Transactions))
	}
}

func TestStoreLoadCorruptBlobDefaults(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()
	if err := kv.Set(ctx, DefaultSlot, "{not json"); err != nil {
		t.Fatalf("seed corrupt blob: %v", err)
	}

	store := newTestStore(kv)
	state := store.Load(ctx)
	if state.Balance != 1000 || len(state.Transactions) != 0 {
		t.Fatalf("expected defaults on corrupt blob, got %+v", state)
	}
}

func TestStoreInvalidAmountIsNoOp(t *testing.T) {
	store := newTestStore(storage.NewMemoryKV())
	ctx := context.Background()

	if _, err := store.AddTransaction(ctx, "05551234567", -5); !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	state := store.State()
	if state.Balance != 1000 || len(state.Transactions) != 0 {
		t.Fatalf("state changed on invalid amount: %+v", state)
	}
}

func TestStoreResetRestoresBaseline(t *testing.T) {
	store := newTestStore(storage.NewMemoryKV())
	ctx := context.Background()

	if _, err := store.AddTransaction(ctx, "05551234567", 400); err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	if _, err := store.SetBalance(ctx, 77); err != nil {
		t.Fatalf("set balance: %v", err)
	}

	state := store.Reset(ctx)
	if state.Balance != 1000 {
		t.Fatalf("expected baseline 1000, got %v", state.Balance)
	}
	if len(state.Transactions) != 0 {
		t.Fatalf("expected empty log, got %d", len(state.Transactions))
	}
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, error) {
	return "", storage.ErrNotFound
}

func (failingKV) Set(context.Context, string, string) error {
	return errors.New("storage unavailable")
}

func TestStoreKeepsStateWhenPersistFails(t *testing.T) {
	store := newTestStore(failingKV{})
	ctx := context.Background()

	state, err := store.AddTransaction(ctx, "05551234567", 150)
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	store.Close()

	if state.Balance != 850 {
		t.Fatalf("expected in-memory debit despite write failure, got %v", state.Balance)
	}
}

func TestStoreRedisRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	kv := storage.NewRedisKV(client)
	ctx := context.Background()

	store := newTestStore(kv)
	if _, err := store.AddTransaction(ctx, "05551234567", 150); err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	store.Close()

	reloaded := newTestStore(kv)
	state := reloaded.Load(ctx)
	if state.Balance != 850 {
		t.Fatalf("expected balance 850 after reload, got %v", state.Balance)
	}
	if len(state.Transactions) != 1 {
		t.Fatalf("expected 1 transaction after reload, got %d", len(state.Transactions))
	}
}
