// Package booking drives one booking transaction from collected inputs to a
// recorded order: price the stay, offer extra beds, take supplementary-item
// orders, apply point redemption and commit the result to the ledger and
// order history. Stores are only mutated once the whole transaction has
// priced successfully, so an abort at any earlier step leaves all state
// untouched.
package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/debuggershut/booking/internal/logger"
	"github.com/debuggershut/booking/internal/pricing"
)

// ExtraBedItemID is the catalog id extra beds are billed under, per bed per
// night.
const ExtraBedItemID = "extra_bed"

const (
	maxGuestNameLen = 100
	maxNumGuests    = 20
	minNights       = 1
	maxNights       = 7
)

type catalog interface {
	Rate(id string) float64
	Capacity(id string) int
	Items() map[string]float64
}

type ledger interface {
	Points(name string) int
	AddPoints(name string, earned int) (int, error)
	SpendPoints(name string, amount int) (int, error)
}

type history interface {
	Record(guest string, summary OrderSummary)
}

// InputProvider supplies guest decisions to a running booking. Implementors
// hand back already-validated primitive values; re-prompting on bad input is
// their concern, not the Manager's.
type InputProvider interface {
	// StayDetails collects the guest, party size, apartment and dates.
	StayDetails(ctx context.Context) (*StayDetails, error)

	// ExtraBeds offers extra beds after a capacity shortfall. It returns how
	// many beds the guest takes; zero means the guest declined.
	ExtraBeds(ctx context.Context, needed, max int) (int, error)

	// NextItem asks for the next supplementary item to order. more is false
	// once the guest is done ordering.
	NextItem(ctx context.Context) (itemID string, qty int, more bool, err error)

	// ConfirmItem shows the subtotal the order would reach with the candidate
	// item included and asks the guest to commit it.
	ConfirmItem(ctx context.Context, itemID string, qty int, tentativeSubtotal float64) (bool, error)

	// RedeemBlocks asks how many 100-point blocks to redeem, zero to skip.
	// maxBlocks is the largest spend the balance and order value allow.
	RedeemBlocks(ctx context.Context, balance, maxBlocks int) (int, error)
}

type Manager struct {
	l       *logger.Logger
	catalog catalog
	ledger  ledger
	history history
}

func New(l *logger.Logger, catalog catalog, ledger ledger, history history) *Manager {
	return &Manager{
		l:       l,
		catalog: catalog,
		ledger:  ledger,
		history: history,
	}
}

func (m *Manager) validate(details *StayDetails) error {
	inputErr := newInputError()

	name := strings.TrimSpace(details.GuestName)
	if name == "" {
		inputErr.addError("guestName", "provide a guest name")
	}

	if len(details.GuestName) > maxGuestNameLen {
		inputErr.addError("guestName", "guest name is too long")
	}

	if details.NumGuests < 1 || details.NumGuests > maxNumGuests {
		inputErr.addError("numGuests", fmt.Sprintf("number of guests must be between 1 and %d", maxNumGuests))
	}

	// A valid catalog entry always has a positive rate and capacity, so a
	// double zero means the id is unknown. Checking here closes the hole
	// where an unknown apartment would silently price the stay at $0.
	if m.catalog.Rate(details.ApartmentID) == 0 && m.catalog.Capacity(details.ApartmentID) == 0 {
		inputErr.addError("apartmentID", fmt.Sprintf("apartment %q is not in the catalog", details.ApartmentID))
	}

	if details.Nights < minNights || details.Nights > maxNights {
		inputErr.addError("nights", fmt.Sprintf("nights must be between %d and %d", minNights, maxNights))
	}

	for field, date := range map[string]string{
		"checkIn":     details.CheckIn,
		"checkOut":    details.CheckOut,
		"bookingDate": details.BookingDate,
	} {
		if !ValidDate(date) {
			inputErr.addError(field, "provide a d/m/yyyy date")
		}
	}

	if inputErr.fieldsCount() > 0 {
		return inputErr
	}

	return nil
}

// checkCapacity offers extra beds when the party exceeds the apartment's
// capacity. It returns the number of beds added, or an ErrAborted-wrapped
// error when the guest declines or the stay remains infeasible.
func (m *Manager) checkCapacity(ctx context.Context, in InputProvider, details *StayDetails) (int, error) {
	capacity := m.catalog.Capacity(details.ApartmentID)

	bedsNeeded := pricing.RequiredExtraBeds(details.NumGuests, capacity)
	if bedsNeeded == 0 {
		return 0, nil
	}

	bedsAdded, err := in.ExtraBeds(ctx, bedsNeeded, pricing.MaxExtraBeds)
	if err != nil {
		return 0, fmt.Errorf("offer extra beds: %w", err)
	}

	if bedsAdded <= 0 {
		return 0, fmt.Errorf("guest declined extra beds for a party of %d (capacity %d): %w",
			details.NumGuests, capacity, ErrAborted)
	}

	if bedsAdded > pricing.MaxExtraBeds {
		bedsAdded = pricing.MaxExtraBeds
	}

	if capacity+bedsAdded*pricing.CapacityPerBed < details.NumGuests {
		return 0, fmt.Errorf("capacity %d with %d extra bed(s) still cannot sleep %d guests: %w",
			capacity, bedsAdded, details.NumGuests, ErrAborted)
	}

	return bedsAdded, nil
}

// orderItems runs the supplementary-item loop: candidate item, tentative
// subtotal, explicit confirmation, merge. Confirmed quantities accumulate
// into the returned map, which is pre-seeded with extra-bed charges.
func (m *Manager) orderItems(
	ctx context.Context,
	in InputProvider,
	prices map[string]float64,
	bedsAdded, nights int,
) (map[string]int, error) {
	ordered := make(map[string]int)

	if bedsAdded > 0 {
		if _, ok := prices[ExtraBedItemID]; !ok {
			inputErr := newInputError()
			inputErr.addError("items", fmt.Sprintf("catalog has no %q item to bill extra beds", ExtraBedItemID))

			return nil, inputErr
		}

		ordered[ExtraBedItemID] = bedsAdded * nights
	}

	for {
		itemID, qty, more, err := in.NextItem(ctx)
		if err != nil {
			return nil, fmt.Errorf("collect next item: %w", err)
		}

		if !more {
			break
		}

		if _, ok := prices[itemID]; !ok || qty <= 0 {
			m.l.LogWarnf("Skipping invalid item order: id=%q qty=%d", itemID, qty)

			continue
		}

		tentative := make(map[string]int, len(ordered)+1)
		for id, q := range ordered {
			tentative[id] = q
		}

		tentative[itemID] += qty

		subtotal, err := pricing.ItemsSubtotal(tentative, prices)
		if err != nil {
			return nil, fmt.Errorf("price tentative order: %w", err)
		}

		confirmed, err := in.ConfirmItem(ctx, itemID, qty, subtotal)
		if err != nil {
			return nil, fmt.Errorf("confirm item: %w", err)
		}

		if confirmed {
			ordered[itemID] += qty
		}
	}

	return ordered, nil
}

// redeem runs the redemption step. It is skipped entirely unless the guest
// holds at least one block of points and the order is worth at least one
// block's discount.
func (m *Manager) redeem(
	ctx context.Context,
	in InputProvider,
	guest string,
	preTotal float64,
) (finalTotal float64, pointsSpent int, err error) {
	balance := m.ledger.Points(guest)

	if balance < pricing.PointsPerBlock || preTotal < pricing.BlockDiscount {
		return preTotal, 0, nil
	}

	maxBlocks := balance / pricing.PointsPerBlock
	if maxByTotal := int(preTotal / pricing.BlockDiscount); maxByTotal < maxBlocks {
		maxBlocks = maxByTotal
	}

	blocks, err := in.RedeemBlocks(ctx, balance, maxBlocks)
	if err != nil {
		return 0, 0, fmt.Errorf("collect redemption request: %w", err)
	}

	if blocks <= 0 {
		return preTotal, 0, nil
	}

	finalTotal, pointsSpent, err = pricing.ApplyRedemption(preTotal, balance, blocks)
	if err != nil {
		return 0, 0, fmt.Errorf("apply redemption: %w", err)
	}

	return finalTotal, pointsSpent, nil
}

// RunBooking walks one booking through input collection, capacity checks,
// item ordering, redemption and commit. Stores are untouched until the
// commit step, so any error before it aborts the transaction cleanly.
func (m *Manager) RunBooking(ctx context.Context, in InputProvider) (*Result, error) {
	details, err := in.StayDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect stay details: %w", err)
	}

	if err := m.validate(details); err != nil {
		return nil, err
	}

	bedsAdded, err := m.checkCapacity(ctx, in, details)
	if err != nil {
		return nil, err
	}

	rate := m.catalog.Rate(details.ApartmentID)

	lodging, err := pricing.LodgingCost(rate, details.Nights)
	if err != nil {
		return nil, fmt.Errorf("price lodging: %w", err)
	}

	prices := m.catalog.Items()

	ordered, err := m.orderItems(ctx, in, prices, bedsAdded, details.Nights)
	if err != nil {
		return nil, err
	}

	subtotal, err := pricing.ItemsSubtotal(ordered, prices)
	if err != nil {
		return nil, fmt.Errorf("price ordered items: %w", err)
	}

	preTotal := lodging + subtotal

	finalTotal, pointsSpent, err := m.redeem(ctx, in, details.GuestName, preTotal)
	if err != nil {
		return nil, err
	}

	// Accrual always comes from the pre-redemption total: redeeming points
	// discounts the bill, not the reward earned on the stay.
	earned, err := pricing.PointsFromAmount(preTotal)
	if err != nil {
		return nil, fmt.Errorf("compute earned points: %w", err)
	}

	newBalance, err := m.commit(details, ordered, preTotal, finalTotal, pointsSpent, earned)
	if err != nil {
		return nil, err
	}

	m.l.LogInfo("Booking recorded: guest=%q apartment=%s nights=%d final=%.2f earned=%d redeemed=%d",
		details.GuestName, details.ApartmentID, details.Nights, finalTotal, earned, pointsSpent)

	return &Result{
		GuestName:      details.GuestName,
		NumGuests:      details.NumGuests,
		ApartmentID:    details.ApartmentID,
		Rate:           rate,
		CheckIn:        details.CheckIn,
		CheckOut:       details.CheckOut,
		BookingDate:    details.BookingDate,
		Nights:         details.Nights,
		Items:          itemLines(ordered, prices),
		LodgingCost:    lodging,
		ItemsSubtotal:  subtotal,
		PreTotal:       preTotal,
		Discount:       preTotal - finalTotal,
		RedeemedPoints: pointsSpent,
		FinalTotal:     finalTotal,
		EarnedPoints:   earned,
		NewBalance:     newBalance,
	}, nil
}

// commit is the only place a booking mutates shared state: record the
// order, debit the redeemed points, credit the earned ones, in that order.
func (m *Manager) commit(
	details *StayDetails,
	ordered map[string]int,
	preTotal, finalTotal float64,
	pointsSpent, earned int,
) (int, error) {
	m.history.Record(details.GuestName, OrderSummary{
		ID:             uuid.NewString(),
		ApartmentID:    details.ApartmentID,
		Nights:         details.Nights,
		Items:          ordered,
		PreTotal:       preTotal,
		RedeemedPoints: pointsSpent,
		FinalTotal:     finalTotal,
		EarnedPoints:   earned,
		CreatedAt:      time.Now().UTC(),
	})

	if pointsSpent > 0 {
		if _, err := m.ledger.SpendPoints(details.GuestName, pointsSpent); err != nil {
			return 0, fmt.Errorf("debit redeemed points: %w", err)
		}
	}

	newBalance, err := m.ledger.AddPoints(details.GuestName, earned)
	if err != nil {
		return 0, fmt.Errorf("credit earned points: %w", err)
	}

	return newBalance, nil
}

func itemLines(ordered map[string]int, prices map[string]float64) []ItemLine {
	if len(ordered) == 0 {
		return nil
	}

	lines := make([]ItemLine, 0, len(ordered))

	for id, qty := range ordered {
		lines = append(lines, ItemLine{ID: id, Quantity: qty, UnitPrice: prices[id]})
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })

	return lines
}
