package memory

import "errors"

var (
	ErrInvalidApartmentID  = errors.New("invalid apartment id format (e.g. U12swan)")
	ErrNonPositiveRate     = errors.New("rate must be positive")
	ErrNonPositiveCapacity = errors.New("capacity must be positive")

	ErrEmptyItemLine     = errors.New("empty item line")
	ErrMalformedItemPair = errors.New(`each entry must be "item price"`)
	ErrNonPositivePrice  = errors.New("item price must be positive")

	ErrEmptyGuestName     = errors.New("guest name cannot be empty")
	ErrNegativePoints     = errors.New("points cannot be negative")
	ErrInsufficientPoints = errors.New("insufficient points")
)
