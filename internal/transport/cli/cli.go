// Package cli is the interactive front end: the menu loop, the prompting
// and re-prompting of guest input, and receipt rendering. It owns all
// terminal I/O; decisions about pricing and state live in the booking
// Manager and the stores.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/debuggershut/booking/internal/booking"
	"github.com/debuggershut/booking/internal/logger"
)

type catalog interface {
	Apartments() map[string]booking.Apartment
	Items() map[string]float64
	UpsertApartment(id string, rate float64, capacity int) error
	UpsertItemsBulk(line string) error
}

type ledger interface {
	Guests() map[string]int
	Points(name string) int
}

type history interface {
	Orders(guest string) []booking.OrderSummary
}

type Conf struct {
	L         *logger.Logger
	In        io.Reader
	Out       io.Writer
	HotelName string
	Currency  string
}

type Terminal struct {
	l         *logger.Logger
	scanner   *bufio.Scanner
	out       io.Writer
	hotelName string
	currency  string
	manager   *booking.Manager
	catalog   catalog
	ledger    ledger
	history   history

	orderedItemBefore bool
}

func New(conf Conf, manager *booking.Manager, catalog catalog, ledger ledger, history history) *Terminal {
	return &Terminal{
		l:         conf.L,
		scanner:   bufio.NewScanner(conf.In),
		out:       conf.Out,
		hotelName: conf.HotelName,
		currency:  conf.Currency,
		manager:   manager,
		catalog:   catalog,
		ledger:    ledger,
		history:   history,
	}
}

// Run drives the main menu until the operator exits or input closes.
func (t *Terminal) Run(ctx context.Context) error {
	t.printf("Welcome to the %s booking system!\n", t.hotelName)
	t.printf("%s\n", strings.Repeat("=", 50))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		t.printf("\nMenu:\n")
		t.printf("1) Make a booking\n")
		t.printf("2) Add/update apartment\n")
		t.printf("3) Add/update supplementary items (bulk)\n")
		t.printf("4) Display existing guests\n")
		t.printf("5) Display apartments and items\n")
		t.printf("6) Display a guest's booking history\n")
		t.printf("7) Exit\n")

		choice, err := t.readLine("Select (1-7): ")
		if err != nil {
			if errors.Is(err, errInputClosed) {
				t.printf("\nGoodbye!\n")

				return nil
			}

			return err
		}

		switch choice {
		case "1":
			err = t.makeBooking(ctx)
		case "2":
			err = t.upsertApartment()
		case "3":
			err = t.upsertItems()
		case "4":
			t.showGuests()
		case "5":
			t.showProducts()
		case "6":
			err = t.showHistory()
		case "7":
			t.printf("Goodbye!\n")
			t.l.LogInfo("Application terminated by user")

			return nil
		default:
			t.printf("Please choose 1-7.\n")
		}

		if err != nil {
			if errors.Is(err, errInputClosed) {
				t.printf("\nGoodbye!\n")

				return nil
			}

			return err
		}
	}
}

func (t *Terminal) makeBooking(ctx context.Context) error {
	t.l.LogInfo("Starting booking")

	res, err := t.manager.RunBooking(ctx, t)

	switch {
	case err == nil:
		t.writeReceipt(res)
		t.printf("\n[Info] Guest %q now has %d reward points.\n", res.GuestName, res.NewBalance)
	case errors.Is(err, booking.ErrAborted):
		t.printf("Booking cannot proceed: %v\n", err)
	case errors.Is(err, errInputClosed):
		return err
	case booking.IsInputError(err) != nil:
		for field, msgs := range booking.IsInputError(err).Fields() {
			t.printf("Error (%s): %s\n", field, strings.Join(msgs, "; "))
		}
	default:
		t.l.LogErrorf("Booking error: %v", err.Error())
		t.printf("Booking failed: %v\n", err)
	}

	return nil
}

func (t *Terminal) upsertApartment() error {
	line, err := t.readLine("Enter apartment as \"id rate capacity\" (e.g. U12swan 95.0 2): ")
	if err != nil {
		return err
	}

	parts := strings.Fields(line)
	if len(parts) != 3 {
		t.printf("Error: provide exactly \"id rate capacity\".\n")

		return nil
	}

	rate, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		t.printf("Error: rate must be a number.\n")

		return nil
	}

	capacity, err := strconv.Atoi(parts[2])
	if err != nil {
		t.printf("Error: capacity must be a whole number.\n")

		return nil
	}

	if err := t.catalog.UpsertApartment(parts[0], rate, capacity); err != nil {
		t.printf("Error: %v\n", err)

		return nil
	}

	t.printf("Apartment saved.\n")

	return nil
}

func (t *Terminal) upsertItems() error {
	line, err := t.readLine("Enter items as \"id price, id price\" (e.g. toothpaste 5.2, shampoo 8.2): ")
	if err != nil {
		return err
	}

	if err := t.catalog.UpsertItemsBulk(line); err != nil {
		t.printf("Error: %v\n", err)

		return nil
	}

	t.printf("Items saved.\n")

	return nil
}

func (t *Terminal) showGuests() {
	guests := t.ledger.Guests()

	names := make([]string, 0, len(guests))
	for name := range guests {
		names = append(names, name)
	}

	sort.Strings(names)

	t.printf("Guests and points:\n")

	for _, name := range names {
		t.printf("  %s: %d pts\n", name, guests[name])
	}
}

func (t *Terminal) showProducts() {
	apartments := t.catalog.Apartments()

	ids := make([]string, 0, len(apartments))
	for id := range apartments {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	t.printf("Apartments:\n")

	for _, id := range ids {
		apt := apartments[id]
		t.printf("  %s: $%.2f per night, capacity=%d\n", id, apt.Rate, apt.Capacity)
	}

	items := t.catalog.Items()

	itemIDs := make([]string, 0, len(items))
	for id := range items {
		itemIDs = append(itemIDs, id)
	}

	sort.Strings(itemIDs)

	t.printf("\nSupplementary items:\n")

	for _, id := range itemIDs {
		t.printf("  %s: $%.2f\n", id, items[id])
	}
}

func (t *Terminal) showHistory() error {
	name, err := t.promptGuestName()
	if err != nil {
		return err
	}

	orders := t.history.Orders(name)
	if len(orders) == 0 {
		t.printf("No history for this guest (or invalid name).\n")

		return nil
	}

	t.printf("\nBooking and order history for %s:\n", name)

	for i, o := range orders {
		t.printf("%d. Apt %s x%d nights; Items: %s | Pre: $%.2f | Redeemed: %d pts | Final: $%.2f | Earned: %d pts\n",
			i+1, o.ApartmentID, o.Nights, formatItems(o.Items), o.PreTotal, o.RedeemedPoints, o.FinalTotal, o.EarnedPoints)
	}

	return nil
}

func formatItems(items map[string]int) string {
	if len(items) == 0 {
		return "none"
	}

	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s x%d", id, items[id]))
	}

	return strings.Join(parts, ", ")
}

func (t *Terminal) printf(format string, v ...any) {
	fmt.Fprintf(t.out, format, v...)
}
