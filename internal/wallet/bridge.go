package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cuzdan-pay/cuzdan_pay/internal/ledger"
	"github.com/cuzdan-pay/cuzdan_pay/internal/storage"
)

// DefaultSlot is the durable slot the wallet blob lives in.
const DefaultSlot = "walletData"

// persistedState is the JSON blob written to the slot. Exactly the
// {balance, transactions} shape the mobile clients persist locally.
type persistedState struct {
	Balance      float64              `json:"balance"`
	Transactions []ledger.Transaction `json:"transactions"`
}

// Bridge translates ledger state to and from a durable key-value slot.
// Every save fully overwrites the previous blob.
type Bridge struct {
	kv   storage.KV
	slot string
}

// NewBridge builds a bridge over the given store. An empty slot name means
// DefaultSlot.
func NewBridge(kv storage.KV, slot string) *Bridge {
	if slot == "" {
		slot = DefaultSlot
	}
	return &Bridge{kv: kv, slot: slot}
}

// Save serializes the state into the slot.
func (b *Bridge) Save(ctx context.Context, state ledger.State) error {
	payload, err := json.Marshal(persistedState{
		Balance:      state.Balance,
		Transactions: state.Transactions,
	})
	if err != nil {
		return fmt.Errorf("encode wallet state: %w", err)
	}
	return b.kv.Set(ctx, b.slot, string(payload))
}

// Load reads the slot. A never-written slot yields (nil, nil); a blob that
// does not decode yields an error the caller recovers from by defaulting.
func (b *Bridge) Load(ctx context.Context) (*ledger.Snapshot, error) {
	raw, err := b.kv.Get(ctx, b.slot)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stored persistedState
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("decode wallet state: %w", err)
	}
	return &ledger.Snapshot{
		Balance:      &stored.Balance,
		Transactions: stored.Transactions,
	}, nil
}
