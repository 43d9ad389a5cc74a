// Package migration seeds the in-memory stores with the configured
// apartments, item catalog and returning guests' point balances.
package migration

import (
	"fmt"

	"github.com/debuggershut/booking/internal/config"
	"github.com/debuggershut/booking/internal/logger"
)

type catalog interface {
	UpsertApartment(id string, rate float64, capacity int) error
	UpsertItem(id string, price float64) error
}

type ledger interface {
	AddPoints(name string, earned int) (int, error)
}

func Up(l *logger.Logger, cfg *config.Config, catalog catalog, ledger ledger) error {
	for id, apt := range cfg.Apartments {
		if err := catalog.UpsertApartment(id, apt.Rate, apt.Capacity); err != nil {
			return fmt.Errorf("seed apartment %q: %w", id, err)
		}
	}

	for id, price := range cfg.Items {
		if err := catalog.UpsertItem(id, price); err != nil {
			return fmt.Errorf("seed item %q: %w", id, err)
		}
	}

	for name, points := range cfg.GuestPoints {
		if _, err := ledger.AddPoints(name, points); err != nil {
			return fmt.Errorf("seed guest %q: %w", name, err)
		}
	}

	l.LogInfo("Seeded %d apartments, %d items, %d guests",
		len(cfg.Apartments), len(cfg.Items), len(cfg.GuestPoints))

	return nil
}
