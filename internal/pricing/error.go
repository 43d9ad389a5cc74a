package pricing

import "errors"

var (
	ErrNegativeRate     = errors.New("rate cannot be negative")
	ErrNegativeNights   = errors.New("nights cannot be negative")
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrNegativePoints   = errors.New("points cannot be negative")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
	ErrUnpricedItem     = errors.New("item has no catalog price")
)
