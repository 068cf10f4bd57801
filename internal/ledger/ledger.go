// Package ledger holds the wallet's balance and outgoing transfer log as an
// immutable value type, with pure transition functions over it. Persistence
// and notification side effects live in the wallet package; everything here
// is deterministic and I/O free.
package ledger

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidAmount occurs when a transition receives an amount that is not a
// finite positive number. The caller decides whether to surface it or treat
// the transition as a no-op.
var ErrInvalidAmount = errors.New("invalid amount")

// Transaction is an outgoing transfer record. Immutable once created; the
// log is only ever appended to or cleared wholesale by Reset.
type Transaction struct {
	ID       string `json:"id"`
	Receiver string `json:"receiver"`
	Amount   Amount `json:"amount"`
	Date     string `json:"date"`
}

// State is the ledger aggregate: current balance plus the transfer log in
// insertion order, most recent last. Balance always equals the initial
// balance minus the sum of recorded transaction amounts, rounded to two
// decimals.
type State struct {
	Balance      float64       `json:"balance"`
	Transactions []Transaction `json:"transactions"`
}

// Snapshot carries persisted or externally supplied state into
// SetInitialData. Nil fields mean "not present" and fall back to defaults.
type Snapshot struct {
	Balance      *float64
	Transactions []Transaction
}

// NewState returns a fresh ledger with the given starting balance and an
// empty transfer log.
func NewState(balance float64) State {
	return State{Balance: Round2(balance), Transactions: []Transaction{}}
}

// SetInitialData seeds the ledger from a snapshot. A missing balance keeps
// the current one; missing transactions reset the log to empty.
func SetInitialData(s State, snap Snapshot) State {
	next := State{Balance: s.Balance, Transactions: []Transaction{}}
	if snap.Balance != nil {
		next.Balance = Round2(*snap.Balance)
	}
	if snap.Transactions != nil {
		next.Transactions = append([]Transaction{}, snap.Transactions...)
	}
	return next
}

// AddTransaction appends an outgoing transfer and debits the balance. The
// amount must be a finite positive number; otherwise the input state is
// returned unchanged with ErrInvalidAmount.
func AddTransaction(s State, receiver string, amount float64, at time.Time, id string) (State, error) {
	if !isFinite(amount) || amount <= 0 {
		return s, ErrInvalidAmount
	}
	amount = Round2(amount)

	tx := Transaction{
		ID:       id,
		Receiver: receiver,
		Amount:   Amount(amount),
		Date:     at.UTC().Format(time.RFC3339),
	}

	// Copy before append so the caller's slice is never aliased.
	transactions := make([]Transaction, len(s.Transactions), len(s.Transactions)+1)
	copy(transactions, s.Transactions)
	transactions = append(transactions, tx)

	return State{
		Balance:      Round2(s.Balance - amount),
		Transactions: transactions,
	}, nil
}

// SetBalance replaces the balance. Non-finite input leaves the state
// unchanged with ErrInvalidAmount.
func SetBalance(s State, value float64) (State, error) {
	if !isFinite(value) {
		return s, ErrInvalidAmount
	}
	return State{Balance: Round2(value), Transactions: s.Transactions}, nil
}

// Reset restores the baseline balance and clears the transfer log.
func Reset(_ State, baseline float64) State {
	return NewState(baseline)
}

// Round2 rounds to two decimal places. Every assignment to a balance goes
// through this so persisted values compare stably across save/load cycles.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
