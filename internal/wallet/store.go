// Package wallet orchestrates the ledger transitions with persistence and
// notifications. The Store applies pure ledger transitions sequentially and
// writes the result through the Bridge after every mutation.
package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cuzdan-pay/cuzdan_pay/internal/currency"
	"github.com/cuzdan-pay/cuzdan_pay/internal/ledger"
	"github.com/cuzdan-pay/cuzdan_pay/internal/notification"
)

const persistTimeout = 5 * time.Second

// Store holds the current wallet state and serializes all transitions.
// Persistence is asynchronous: a failed write is logged and the in-memory
// state keeps going until the next successful write. Callers that need
// durability confirmation use Flush.
type Store struct {
	mu       sync.Mutex
	state    ledger.State
	seq      uint64
	bridge   *Bridge
	baseline float64
	notifier notification.Notifier
	logger   *slog.Logger

	writes sync.WaitGroup
	// persistMu serializes slot writes; persistedSeq tracks the newest
	// state already written so a slow goroutine cannot clobber the slot
	// with a stale snapshot.
	persistMu    sync.Mutex
	persistedSeq uint64
}

// NewStore builds a store starting from the baseline balance with an empty
// transfer log. The notifier may be nil.
func NewStore(bridge *Bridge, baseline float64, notifier notification.Notifier, logger *slog.Logger) *Store {
	return &Store{
		state:    ledger.NewState(baseline),
		bridge:   bridge,
		baseline: baseline,
		notifier: notifier,
		logger:   logger,
	}
}

// Load seeds the store from the persisted slot, once at startup. An absent
// or undecodable blob keeps the built-in default state; this never fails.
func (s *Store) Load(ctx context.Context) ledger.State {
	snap, err := s.bridge.Load(ctx)
	if err != nil {
		s.logger.Warn("load wallet state, using defaults", "error", err)
		return s.State()
	}
	if snap == nil {
		return s.State()
	}

	s.mu.Lock()
	s.state = ledger.SetInitialData(s.state, *snap)
	state := s.state
	s.mu.Unlock()
	return state
}

// State returns a copy of the current wallet state.
func (s *Store) State() ledger.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ledger.State{
		Balance:      s.state.Balance,
		Transactions: append([]ledger.Transaction{}, s.state.Transactions...),
	}
}

// AddTransaction records an outgoing transfer and debits the balance. An
// invalid amount leaves the state untouched and returns
// ledger.ErrInvalidAmount.
func (s *Store) AddTransaction(ctx context.Context, receiver string, amount float64) (ledger.State, error) {
	s.mu.Lock()
	next, err := ledger.AddTransaction(s.state, receiver, amount, time.Now().UTC(), uuid.NewString())
	if err != nil {
		s.mu.Unlock()
		return next, err
	}
	s.state = next
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	s.persist(next, seq)

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindTransferSent,
			Destination: receiver,
			Body:        fmt.Sprintf("Sent %s to %s", currency.FormatCurrency(amount), receiver),
		})
	}

	return next, nil
}

// SetBalance replaces the balance. Non-finite input is rejected with
// ledger.ErrInvalidAmount and nothing changes.
func (s *Store) SetBalance(_ context.Context, value float64) (ledger.State, error) {
	s.mu.Lock()
	next, err := ledger.SetBalance(s.state, value)
	if err != nil {
		s.mu.Unlock()
		return next, err
	}
	s.state = next
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	s.persist(next, seq)
	return next, nil
}

// Reset restores the baseline balance and clears the transfer log.
func (s *Store) Reset(ctx context.Context) ledger.State {
	s.mu.Lock()
	next := ledger.Reset(s.state, s.baseline)
	s.state = next
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	s.persist(next, seq)

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind: notification.KindWalletReset,
			Body: fmt.Sprintf("Wallet reset to %s", currency.FormatCurrency(s.baseline)),
		})
	}

	return next
}

// Flush synchronously writes the current state to the slot.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	state := s.state
	seq := s.seq
	s.mu.Unlock()

	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if err := s.bridge.Save(ctx, state); err != nil {
		return err
	}
	if seq > s.persistedSeq {
		s.persistedSeq = seq
	}
	return nil
}

// Close waits for in-flight persistence writes to finish.
func (s *Store) Close() {
	s.writes.Wait()
}

// persist writes the state in the background. Failures are logged and
// swallowed; in-memory and persisted state may diverge until the next
// successful write.
func (s *Store) persist(state ledger.State, seq uint64) {
	s.writes.Add(1)
	go func() {
		defer s.writes.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		s.persistMu.Lock()
		defer s.persistMu.Unlock()
		if seq <= s.persistedSeq {
			return // a newer snapshot is already durable
		}
		if err := s.bridge.Save(ctx, state); err != nil {
			s.logger.Warn("persist wallet state", "error", err)
			return
		}
		s.persistedSeq = seq
	}()
}
