package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/debuggershut/booking/internal/logger"
)

// Ledger maps guest names (case-sensitive) to loyalty-point balances.
// Balances never go negative: a spend exceeding the balance is rejected.
type Ledger struct {
	mu     sync.Mutex
	l      *logger.Logger
	points map[string]int
}

func NewLedger(conf Config) *Ledger {
	return &Ledger{
		l:      conf.L,
		points: make(map[string]int),
	}
}

// Points returns the guest's current balance, 0 for an unknown guest. A
// read never creates an entry.
func (lg *Ledger) Points(name string) int {
	lg.mu.Lock()
	defer lg.mu.Unlock()

	return lg.points[name]
}

// Guests returns a snapshot of every guest and balance.
func (lg *Ledger) Guests() map[string]int {
	lg.mu.Lock()
	defer lg.mu.Unlock()

	out := make(map[string]int, len(lg.points))
	for name, pts := range lg.points {
		out[name] = pts
	}

	return out
}

// AddPoints credits earned points, creating the guest on first award, and
// returns the new balance.
func (lg *Ledger) AddPoints(name string, earned int) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, ErrEmptyGuestName
	}

	if earned < 0 {
		return 0, fmt.Errorf("earned %d: %w", earned, ErrNegativePoints)
	}

	lg.mu.Lock()
	defer lg.mu.Unlock()

	newTotal := lg.points[name] + earned
	lg.points[name] = newTotal

	lg.l.LogInfo("Added %d points to %q. New total: %d", earned, name, newTotal)

	return newTotal, nil
}

// SpendPoints debits redeemed points and returns the new balance. The debit
// is checked against the balance under the lock, so the non-negative
// invariant holds even with concurrent readers.
func (lg *Ledger) SpendPoints(name string, amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("amount %d: %w", amount, ErrNegativePoints)
	}

	lg.mu.Lock()
	defer lg.mu.Unlock()

	balance := lg.points[name]
	if amount > balance {
		return 0, fmt.Errorf("guest %q has %d points, wants to spend %d: %w",
			name, balance, amount, ErrInsufficientPoints)
	}

	newTotal := balance - amount
	lg.points[name] = newTotal

	lg.l.LogInfo("Deducted %d points from %q. New total: %d", amount, name, newTotal)

	return newTotal, nil
}
