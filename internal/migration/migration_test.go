package migration

import (
	"io"
	"log"
	"testing"

	"github.com/debuggershut/booking/internal/config"
	"github.com/debuggershut/booking/internal/logger"
	"github.com/debuggershut/booking/internal/storage/memory"
)

func TestUpSeedsDefaults(t *testing.T) {
	l := logger.New(log.New(io.Discard, "", 0))

	catalog := memory.NewCatalog(memory.Config{L: l})
	ledger := memory.NewLedger(memory.Config{L: l})

	if err := Up(l, config.Default(), catalog, ledger); err != nil {
		t.Fatalf("Up() error = %v", err)
	}

	if got := catalog.Rate("U12swan"); got != 95.0 {
		t.Errorf("Rate(U12swan) = %v, want 95", got)
	}

	if got := len(catalog.Apartments()); got != 3 {
		t.Errorf("seeded apartments = %d, want 3", got)
	}

	if got := catalog.Items()["extra_bed"]; got != 30.0 {
		t.Errorf("extra_bed price = %v, want 30", got)
	}

	if got := ledger.Points("Alyssa"); got != 20 {
		t.Errorf("Points(Alyssa) = %d, want 20", got)
	}

	if got := ledger.Points("Luigi"); got != 32 {
		t.Errorf("Points(Luigi) = %d, want 32", got)
	}
}

func TestUpRejectsBadSeed(t *testing.T) {
	l := logger.New(log.New(io.Discard, "", 0))

	catalog := memory.NewCatalog(memory.Config{L: l})
	ledger := memory.NewLedger(memory.Config{L: l})

	cfg := config.Default()
	cfg.Apartments["badid"] = config.Apartment{Rate: 10, Capacity: 1}

	if err := Up(l, cfg, catalog, ledger); err == nil {
		t.Fatal("Up() accepted an invalid apartment id")
	}
}
