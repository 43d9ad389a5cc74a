// Package pricing holds the pure booking arithmetic: lodging cost,
// supplementary-item subtotals, extra-bed demand, reward accrual and
// point redemption. Nothing here reads or writes shared state.
package pricing

import (
	"fmt"
	"math"
)

const (
	// PointsPerBlock is the number of loyalty points in one redemption block.
	PointsPerBlock = 100

	// BlockDiscount is the dollar discount one redemption block buys.
	BlockDiscount = 10.0

	// MaxExtraBeds caps how many extra beds a single stay may add.
	MaxExtraBeds = 2

	// CapacityPerBed is the extra occupancy each added bed provides.
	CapacityPerBed = 2
)

// LodgingCost returns rate * nights.
func LodgingCost(rate float64, nights int) (float64, error) {
	if rate < 0 {
		return 0, fmt.Errorf("rate %v: %w", rate, ErrNegativeRate)
	}

	if nights < 0 {
		return 0, fmt.Errorf("nights %v: %w", nights, ErrNegativeNights)
	}

	return rate * float64(nights), nil
}

// PointsFromAmount converts a dollar amount into reward points, one point
// per dollar rounded half-up: 599.50 earns 600, 350.4 earns 350.
func PointsFromAmount(amount float64) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("amount %v: %w", amount, ErrNegativeAmount)
	}

	return int(math.Floor(amount + 0.5)), nil
}

// ItemsSubtotal sums quantity * unit price over the ordered items. Every
// ordered id must be present in prices; callers look prices up before
// adding an item to the order.
func ItemsSubtotal(items map[string]int, prices map[string]float64) (float64, error) {
	var subtotal float64

	for id, qty := range items {
		price, ok := prices[id]
		if !ok {
			return 0, fmt.Errorf("item %q: %w", id, ErrUnpricedItem)
		}

		if qty < 0 {
			return 0, fmt.Errorf("item %q quantity %v: %w", id, qty, ErrNegativeQuantity)
		}

		subtotal += float64(qty) * price
	}

	return subtotal, nil
}

// RequiredExtraBeds returns how many extra beds a party needs on top of an
// apartment's capacity, capped at MaxExtraBeds. Each bed sleeps
// CapacityPerBed more guests. The result is a recommendation only; whether
// the beds actually added make the stay feasible is re-checked separately.
func RequiredExtraBeds(numGuests, capacity int) int {
	deficit := numGuests - capacity
	if deficit <= 0 {
		return 0
	}

	beds := (deficit + CapacityPerBed - 1) / CapacityPerBed
	if beds > MaxExtraBeds {
		beds = MaxExtraBeds
	}

	return beds
}

// ApplyRedemption converts requested redemption blocks into a discount.
// A block is PointsPerBlock points worth BlockDiscount dollars. The spend
// is clamped to what the guest holds and to the order's value; a negative
// request redeems nothing. Reward accrual is always computed from the
// pre-redemption total, never from the discounted one.
func ApplyRedemption(preTotal float64, guestPoints, requestedBlocks int) (finalTotal float64, pointsSpent int, err error) {
	if preTotal < 0 {
		return 0, 0, fmt.Errorf("pre-redemption total %v: %w", preTotal, ErrNegativeAmount)
	}

	if guestPoints < 0 {
		return 0, 0, fmt.Errorf("guest points %v: %w", guestPoints, ErrNegativePoints)
	}

	if requestedBlocks < 0 {
		requestedBlocks = 0
	}

	blocks := requestedBlocks

	if maxByPoints := guestPoints / PointsPerBlock; blocks > maxByPoints {
		blocks = maxByPoints
	}

	if maxByTotal := int(math.Floor(preTotal / BlockDiscount)); blocks > maxByTotal {
		blocks = maxByTotal
	}

	finalTotal = preTotal - float64(blocks)*BlockDiscount
	if finalTotal < 0 {
		finalTotal = 0
	}

	return finalTotal, blocks * PointsPerBlock, nil
}
