package cli

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/debuggershut/booking/internal/booking"
	"github.com/debuggershut/booking/internal/config"
	"github.com/debuggershut/booking/internal/logger"
	"github.com/debuggershut/booking/internal/migration"
	"github.com/debuggershut/booking/internal/storage/memory"
)

func testLogger() *logger.Logger {
	return logger.New(log.New(io.Discard, "", 0))
}

// newTerminal builds a Terminal over freshly seeded stores, reading the
// scripted session from input.
func newTerminal(t *testing.T, input string) (*Terminal, *strings.Builder, *memory.Ledger, *memory.History) {
	t.Helper()

	l := testLogger()
	catalog := memory.NewCatalog(memory.Config{L: l})
	ledger := memory.NewLedger(memory.Config{L: l})
	history := memory.NewHistory(memory.Config{L: l})

	if err := migration.Up(l, config.Default(), catalog, ledger); err != nil {
		t.Fatal(err)
	}

	manager := booking.New(l, catalog, ledger, history)

	var out strings.Builder

	term := New(Conf{
		L:         l,
		In:        strings.NewReader(input),
		Out:       &out,
		HotelName: "Debuggers Hut Serviced Apartments",
		Currency:  "AUD",
	}, manager, catalog, ledger, history)

	return term, &out, ledger, history
}

func TestRunScriptedBooking(t *testing.T) {
	// Menu 1, stay details, no items, exit. Casey is a new guest with no
	// points, so the redemption step never prompts.
	input := strings.Join([]string{
		"1",
		"Casey",
		"2",
		"U12swan",
		"1/3/2026",
		"4/3/2026",
		"3",
		"28/2/2026",
		"n",
		"7",
	}, "\n") + "\n"

	term, out, ledger, history := newTerminal(t, input)

	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	output := out.String()

	for _, want := range []string{
		"Booking Receipt",
		"Total cost:      $285.00 (AUD)",
		"Earned rewards:   285 (points)",
		`Guest "Casey" now has 285 reward points.`,
		"Goodbye!",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\n---\n%s", want, output)
		}
	}

	if got := ledger.Points("Casey"); got != 285 {
		t.Errorf("ledger balance = %d, want 285", got)
	}

	if got := len(history.Orders("Casey")); got != 1 {
		t.Errorf("recorded orders = %d, want 1", got)
	}
}

func TestRunScriptedBookingWithItems(t *testing.T) {
	input := strings.Join([]string{
		"1",
		"Luigi", // seeded with 32 points, below the redemption threshold
		"2",
		"u209DUCK", // case-insensitive apartment id
		"1/3/2026",
		"2/3/2026",
		"1",
		"28/2/2026",
		"y", // order an item
		"toothpaste",
		"2",
		"y", // confirm it
		"n", // no more items
		"7",
	}, "\n") + "\n"

	term, out, ledger, _ := newTerminal(t, input)

	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	output := out.String()

	// 106.7 + 2*5.2 = 117.1, earned 117, balance 32 + 117.
	for _, want := range []string{
		"Total cost:      $117.10 (AUD)",
		"Item id:   toothpaste",
		`Guest "Luigi" now has 149 reward points.`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\n---\n%s", want, output)
		}
	}

	if got := ledger.Points("Luigi"); got != 149 {
		t.Errorf("ledger balance = %d, want 149", got)
	}
}

func TestRunScriptedRedemptionFlow(t *testing.T) {
	input := strings.Join([]string{
		"1",
		"Vera",
		"2",
		"U12swan",
		"1/3/2026",
		"2/3/2026",
		"1", // one night at 95.0
		"28/2/2026",
		"n", // no items
		"y", // redeem
		"2", // two blocks
		"7",
	}, "\n") + "\n"

	term, out, ledger, _ := newTerminal(t, input)

	if _, err := ledger.AddPoints("Vera", 250); err != nil {
		t.Fatal(err)
	}

	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	output := out.String()

	// Final 95 - 20 = 75; earned from pre-total: 95; balance 250-200+95.
	for _, want := range []string{
		"Redeem now?",
		"Discount:       -$20.00 (AUD)",
		"Total cost:      $75.00 (AUD)",
		`Guest "Vera" now has 145 reward points.`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\n---\n%s", want, output)
		}
	}
}

func TestRunScriptedCapacityAbort(t *testing.T) {
	input := strings.Join([]string{
		"1",
		"Casey",
		"5", // five guests, capacity 2
		"U12swan",
		"1/3/2026",
		"4/3/2026",
		"3",
		"28/2/2026",
		"n", // decline extra beds
		"7",
	}, "\n") + "\n"

	term, out, ledger, history := newTerminal(t, input)

	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	output := out.String()

	if !strings.Contains(output, "Booking cannot proceed") {
		t.Errorf("missing abort message\n---\n%s", output)
	}

	if strings.Contains(output, "Booking Receipt") {
		t.Error("aborted booking printed a receipt")
	}

	if ledger.Points("Casey") != 0 || len(history.Orders("Casey")) != 0 {
		t.Error("aborted booking mutated stores")
	}
}

func TestRunMenuUpsertsAndListings(t *testing.T) {
	input := strings.Join([]string{
		"2",
		"U7crane 55.0 2",
		"3",
		"shampoo 8.2, soap 3.1",
		"5",
		"4",
		"7",
	}, "\n") + "\n"

	term, out, _, _ := newTerminal(t, input)

	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	output := out.String()

	for _, want := range []string{
		"Apartment saved.",
		"Items saved.",
		"U7crane: $55.00 per night, capacity=2",
		"shampoo: $8.20",
		"Alyssa: 20 pts",
		"Luigi: 32 pts",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\n---\n%s", want, output)
		}
	}
}

func TestRunMenuRejectsBadBulkLine(t *testing.T) {
	input := strings.Join([]string{
		"3",
		"toothpaste 5.2, badrow",
		"5",
		"7",
	}, "\n") + "\n"

	term, out, _, _ := newTerminal(t, input)

	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	output := out.String()

	if !strings.Contains(output, "Error:") {
		t.Errorf("missing bulk upsert error\n---\n%s", output)
	}

	// The default toothpaste price must survive the rejected line.
	if !strings.Contains(output, "toothpaste: $5.20") {
		t.Errorf("catalog changed by rejected bulk line\n---\n%s", output)
	}
}

func TestWriteReceiptLayout(t *testing.T) {
	var out strings.Builder

	WriteReceipt(&out, "Debuggers Hut Serviced Apartments", "AUD", &booking.Result{
		GuestName:      "Alyssa",
		NumGuests:      2,
		ApartmentID:    "U12swan",
		Rate:           95.0,
		CheckIn:        "1/3/2026",
		CheckOut:       "4/3/2026",
		BookingDate:    "28/2/2026",
		Nights:         3,
		Items:          []booking.ItemLine{{ID: "breakfast", Quantity: 2, UnitPrice: 18.0}},
		ItemsSubtotal:  36.0,
		PreTotal:       321.0,
		Discount:       20.0,
		RedeemedPoints: 200,
		FinalTotal:     301.0,
		EarnedPoints:   321,
	})

	output := out.String()

	for _, want := range []string{
		"Debuggers Hut Serviced Apartments - Booking Receipt",
		"Guest name:       Alyssa",
		"Apartment rate:   $95.00 (AUD)",
		"Item id:   breakfast",
		"Sub-total: $36.00",
		"Subtotal:        $321.00 (AUD)",
		"Discount:       -$20.00 (AUD)",
		"Total cost:      $301.00 (AUD)",
		"Earned rewards:   321 (points)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("receipt missing %q\n---\n%s", want, output)
		}
	}
}
