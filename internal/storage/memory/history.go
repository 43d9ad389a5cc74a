package memory

import (
	"sync"

	"github.com/debuggershut/booking/internal/booking"
	"github.com/debuggershut/booking/internal/logger"
)

// History is the append-only per-guest log of completed orders.
type History struct {
	mu     sync.Mutex
	l      *logger.Logger
	orders map[string][]booking.OrderSummary
}

func NewHistory(conf Config) *History {
	return &History{
		l:      conf.L,
		orders: make(map[string][]booking.OrderSummary),
	}
}

// Record appends a completed order to the guest's history. The item map is
// copied so later caller mutation cannot rewrite history.
func (h *History) Record(guest string, summary booking.OrderSummary) {
	items := make(map[string]int, len(summary.Items))
	for id, qty := range summary.Items {
		items[id] = qty
	}

	summary.Items = items

	h.mu.Lock()
	defer h.mu.Unlock()

	h.orders[guest] = append(h.orders[guest], summary)
}

// Orders returns the guest's orders in insertion order, empty for a guest
// with no history. The slice is a copy.
func (h *History) Orders(guest string) []booking.OrderSummary {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]booking.OrderSummary, len(h.orders[guest]))
	copy(out, h.orders[guest])

	return out
}
