// Package memory provides the process-lifetime stores backing the booking
// tool: the apartment/item catalog, the guest loyalty ledger and the
// per-guest order history. Each store guards its maps with its own mutex so
// the admin HTTP server can read them while the terminal flow runs.
package memory

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/debuggershut/booking/internal/booking"
	"github.com/debuggershut/booking/internal/logger"
)

type Config struct {
	L *logger.Logger
}

// Apartment ids look like U12swan: a literal U, the unit number, then a
// name starting with a letter.
var apartmentIDPattern = regexp.MustCompile(`^U[0-9]+[A-Za-z][A-Za-z0-9]*$`)

// Catalog holds apartments keyed by id and supplementary items keyed by
// item id. Apartment lookup is case-insensitive; item ids are exact.
type Catalog struct {
	mu         sync.Mutex
	l          *logger.Logger
	apartments map[string]booking.Apartment
	items      map[string]float64
}

func NewCatalog(conf Config) *Catalog {
	return &Catalog{
		l:          conf.L,
		apartments: make(map[string]booking.Apartment),
		items:      make(map[string]float64),
	}
}

// Apartments returns a copy of the catalog, original-case ids preserved.
func (c *Catalog) Apartments() map[string]booking.Apartment {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]booking.Apartment, len(c.apartments))
	for id, apt := range c.apartments {
		out[id] = apt
	}

	return out
}

// Rate returns the nightly rate for id, matching case-insensitively, or 0
// when the apartment is unknown. Callers must treat 0 as "not found".
func (c *Catalog) Rate(id string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if apt, ok := c.lookup(id); ok {
		return apt.Rate
	}

	c.l.LogWarnf("Unknown apartment id: %q", id)

	return 0
}

// Capacity returns the bed capacity for id, or 0 when unknown.
func (c *Catalog) Capacity(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if apt, ok := c.lookup(id); ok {
		return apt.Capacity
	}

	return 0
}

func (c *Catalog) lookup(id string) (booking.Apartment, bool) {
	want := strings.ToLower(id)

	for key, apt := range c.apartments {
		if strings.ToLower(key) == want {
			return apt, true
		}
	}

	return booking.Apartment{}, false
}

// UpsertApartment inserts or fully replaces an apartment record.
func (c *Catalog) UpsertApartment(id string, rate float64, capacity int) error {
	if !apartmentIDPattern.MatchString(id) {
		return fmt.Errorf("apartment id %q: %w", id, ErrInvalidApartmentID)
	}

	if rate <= 0 {
		return fmt.Errorf("apartment %q rate %v: %w", id, rate, ErrNonPositiveRate)
	}

	if capacity <= 0 {
		return fmt.Errorf("apartment %q capacity %v: %w", id, capacity, ErrNonPositiveCapacity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.apartments[id] = booking.Apartment{ID: id, Rate: rate, Capacity: capacity}

	c.l.LogInfo("Apartment saved: %s (rate=%.2f, capacity=%d)", id, rate, capacity)

	return nil
}

// Items returns a copy of the supplementary-item price list.
func (c *Catalog) Items() map[string]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]float64, len(c.items))
	for id, price := range c.items {
		out[id] = price
	}

	return out
}

// UpsertItem inserts or replaces a single supplementary item.
func (c *Catalog) UpsertItem(id string, price float64) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("item id: %w", ErrMalformedItemPair)
	}

	if price <= 0 {
		return fmt.Errorf("item %q price %v: %w", id, price, ErrNonPositivePrice)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[id] = price

	return nil
}

// UpsertItemsBulk parses a comma-separated line of "id price" pairs, e.g.
// "toothpaste 5.2, shampoo 8.2", and applies them all or none: every pair
// is parsed and validated before the first one is stored, so a malformed
// pair late in the line leaves the catalog untouched.
func (c *Catalog) UpsertItemsBulk(line string) error {
	if strings.TrimSpace(line) == "" {
		return ErrEmptyItemLine
	}

	changes := make(map[string]float64)

	for _, pair := range strings.Split(line, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		parts := strings.Fields(pair)
		if len(parts) != 2 {
			return fmt.Errorf("entry %q: %w", pair, ErrMalformedItemPair)
		}

		id, priceStr := parts[0], parts[1]

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			return fmt.Errorf("price %q for item %q: %w", priceStr, id, ErrNonPositivePrice)
		}

		if price <= 0 {
			return fmt.Errorf("price %v for item %q: %w", price, id, ErrNonPositivePrice)
		}

		changes[id] = price
	}

	if len(changes) == 0 {
		return ErrEmptyItemLine
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]string, 0, len(changes))

	for id, price := range changes {
		c.items[id] = price
		ids = append(ids, id)
	}

	c.l.LogInfo("Supplementary items upserted: %v", ids)

	return nil
}
