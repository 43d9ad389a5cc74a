package memory

import (
	"errors"
	"testing"
)

func TestPointsUnknownGuest(t *testing.T) {
	lg := NewLedger(Config{L: testLogger()})

	if got := lg.Points("Nobody"); got != 0 {
		t.Errorf("Points(unknown) = %d, want 0", got)
	}

	// A read must not create an entry.
	if len(lg.Guests()) != 0 {
		t.Error("read created a ledger entry")
	}
}

func TestAddAndSpendPoints(t *testing.T) {
	lg := NewLedger(Config{L: testLogger()})

	if got, err := lg.AddPoints("Alyssa", 20); err != nil || got != 20 {
		t.Fatalf("AddPoints() = %d, %v, want 20, nil", got, err)
	}

	if got, err := lg.AddPoints("Alyssa", 285); err != nil || got != 305 {
		t.Fatalf("AddPoints() = %d, %v, want 305, nil", got, err)
	}

	if got, err := lg.SpendPoints("Alyssa", 200); err != nil || got != 105 {
		t.Fatalf("SpendPoints() = %d, %v, want 105, nil", got, err)
	}

	if got := lg.Points("Alyssa"); got != 105 {
		t.Errorf("Points() = %d, want 105", got)
	}
}

func TestSpendPointsInsufficient(t *testing.T) {
	lg := NewLedger(Config{L: testLogger()})

	if _, err := lg.AddPoints("Luigi", 32); err != nil {
		t.Fatal(err)
	}

	if _, err := lg.SpendPoints("Luigi", 33); !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("SpendPoints() error = %v, want %v", err, ErrInsufficientPoints)
	}

	// Rejected spend must not touch the balance.
	if got := lg.Points("Luigi"); got != 32 {
		t.Errorf("Points() = %d after rejected spend, want 32", got)
	}
}

func TestLedgerValidation(t *testing.T) {
	lg := NewLedger(Config{L: testLogger()})

	if _, err := lg.AddPoints("  ", 10); !errors.Is(err, ErrEmptyGuestName) {
		t.Errorf("AddPoints(blank name) error = %v, want %v", err, ErrEmptyGuestName)
	}

	if _, err := lg.AddPoints("Luigi", -1); !errors.Is(err, ErrNegativePoints) {
		t.Errorf("AddPoints(negative) error = %v, want %v", err, ErrNegativePoints)
	}

	if _, err := lg.SpendPoints("Luigi", -1); !errors.Is(err, ErrNegativePoints) {
		t.Errorf("SpendPoints(negative) error = %v, want %v", err, ErrNegativePoints)
	}
}

func TestGuestsReturnsSnapshot(t *testing.T) {
	lg := NewLedger(Config{L: testLogger()})

	if _, err := lg.AddPoints("Alyssa", 20); err != nil {
		t.Fatal(err)
	}

	snapshot := lg.Guests()
	snapshot["Alyssa"] = 9999

	if got := lg.Points("Alyssa"); got != 20 {
		t.Errorf("mutating the snapshot changed the ledger: %d", got)
	}
}
