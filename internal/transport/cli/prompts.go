package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/debuggershut/booking/internal/booking"
	"github.com/debuggershut/booking/internal/pricing"
)

var errInputClosed = errors.New("input closed")

const (
	maxGuestNameLen = 100
	maxNumGuests    = 20
)

func (t *Terminal) readLine(label string) (string, error) {
	t.printf("%s", label)

	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}

		return "", errInputClosed
	}

	return strings.TrimSpace(t.scanner.Text()), nil
}

func (t *Terminal) promptYesNo(label string) (bool, error) {
	for {
		answer, err := t.readLine(label + " (y/n): ")
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		t.printf("Error: please answer y or n.\n")
	}
}

func (t *Terminal) promptIntRange(label string, min, max int) (int, error) {
	for {
		answer, err := t.readLine(label)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(answer)
		if err != nil {
			t.printf("Error: please enter a whole number.\n")

			continue
		}

		if n < min || (max > 0 && n > max) {
			if max > 0 {
				t.printf("Error: enter a number between %d and %d.\n", min, max)
			} else {
				t.printf("Error: enter a number of at least %d.\n", min)
			}

			continue
		}

		return n, nil
	}
}

func (t *Terminal) promptGuestName() (string, error) {
	for {
		name, err := t.readLine("Enter the guest's name: ")
		if err != nil {
			return "", err
		}

		if name == "" {
			t.printf("Error: guest name cannot be empty.\n")

			continue
		}

		if len(name) > maxGuestNameLen {
			t.printf("Error: guest name is too long.\n")

			continue
		}

		return name, nil
	}
}

func (t *Terminal) promptExistingApartmentID() (string, error) {
	apartments := t.catalog.Apartments()

	byLower := make(map[string]string, len(apartments))

	ids := make([]string, 0, len(apartments))

	for id := range apartments {
		byLower[strings.ToLower(id)] = id
		ids = append(ids, id)
	}

	sort.Strings(ids)

	for {
		id, err := t.readLine(fmt.Sprintf("Enter apartment ID (%s): ", strings.Join(ids, ", ")))
		if err != nil {
			return "", err
		}

		if original, ok := byLower[strings.ToLower(id)]; ok {
			return original, nil
		}

		t.printf("Error: unknown apartment ID.\n")
	}
}

func (t *Terminal) promptDate(label string) (string, error) {
	for {
		date, err := t.readLine(fmt.Sprintf("Enter %s (d/m/yyyy): ", label))
		if err != nil {
			return "", err
		}

		if !booking.ValidDate(date) {
			t.printf("Error: invalid date. Use d/m/yyyy.\n")

			continue
		}

		return date, nil
	}
}

func (t *Terminal) promptExistingItemID() (string, error) {
	items := t.catalog.Items()

	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	for {
		id, err := t.readLine(fmt.Sprintf("Enter item ID (%s): ", strings.Join(ids, ", ")))
		if err != nil {
			return "", err
		}

		if _, ok := items[id]; ok {
			return id, nil
		}

		t.printf("Error: unknown item ID.\n")
	}
}

// StayDetails implements booking.InputProvider.
func (t *Terminal) StayDetails(ctx context.Context) (*booking.StayDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.orderedItemBefore = false

	name, err := t.promptGuestName()
	if err != nil {
		return nil, err
	}

	numGuests, err := t.promptIntRange("Enter number of guests: ", 1, maxNumGuests)
	if err != nil {
		return nil, err
	}

	apartmentID, err := t.promptExistingApartmentID()
	if err != nil {
		return nil, err
	}

	checkIn, err := t.promptDate("check-in date")
	if err != nil {
		return nil, err
	}

	checkOut, err := t.promptDate("check-out date")
	if err != nil {
		return nil, err
	}

	nights, err := t.promptIntRange("Enter length of stay in nights (1-7): ", 1, 7)
	if err != nil {
		return nil, err
	}

	bookingDate, err := t.promptDate("booking date")
	if err != nil {
		return nil, err
	}

	return &booking.StayDetails{
		GuestName:   name,
		NumGuests:   numGuests,
		ApartmentID: apartmentID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		BookingDate: bookingDate,
		Nights:      nights,
	}, nil
}

// ExtraBeds implements booking.InputProvider.
func (t *Terminal) ExtraBeds(ctx context.Context, needed, max int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	t.printf("Warning: the number of guests exceeds the unit capacity.\n")

	add, err := t.promptYesNo(fmt.Sprintf(
		"Add extra bed(s)? (recommended %d; max %d; each adds capacity +%d)",
		needed, max, pricing.CapacityPerBed))
	if err != nil {
		return 0, err
	}

	if !add {
		return 0, nil
	}

	return t.promptIntRange("Enter number of extra beds: ", 1, max)
}

// NextItem implements booking.InputProvider.
func (t *Terminal) NextItem(ctx context.Context) (string, int, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, false, err
	}

	label := "Do you want to order a supplementary item?"
	if t.orderedItemBefore {
		label = "Do you want to order another supplementary item?"
	}

	more, err := t.promptYesNo(label)
	if err != nil {
		return "", 0, false, err
	}

	if !more {
		return "", 0, false, nil
	}

	t.orderedItemBefore = true

	itemID, err := t.promptExistingItemID()
	if err != nil {
		return "", 0, false, err
	}

	qty, err := t.promptIntRange("Enter quantity: ", 1, 0)
	if err != nil {
		return "", 0, false, err
	}

	return itemID, qty, true, nil
}

// ConfirmItem implements booking.InputProvider.
func (t *Terminal) ConfirmItem(ctx context.Context, itemID string, qty int, tentativeSubtotal float64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	t.printf("Item: %s\nQuantity: %d\nItems cost (if added): $%.2f\n", itemID, qty, tentativeSubtotal)

	confirmed, err := t.promptYesNo("Confirm this item?")
	if err != nil {
		return false, err
	}

	if confirmed {
		t.printf("Saved. Items cost so far: $%.2f\n", tentativeSubtotal)
	} else {
		t.printf("Item cancelled.\n")
	}

	return confirmed, nil
}

// RedeemBlocks implements booking.InputProvider.
func (t *Terminal) RedeemBlocks(ctx context.Context, balance, maxBlocks int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	redeem, err := t.promptYesNo(fmt.Sprintf(
		"You have %d points. Redeem now? (%d pts = $%.0f)",
		balance, pricing.PointsPerBlock, pricing.BlockDiscount))
	if err != nil {
		return 0, err
	}

	if !redeem {
		return 0, nil
	}

	return t.promptIntRange(
		fmt.Sprintf("Enter how many %d-point blocks to redeem (max %d): ", pricing.PointsPerBlock, maxBlocks),
		0, maxBlocks)
}
