package booking

import "time"

// Apartment is a bookable unit: nightly rate and how many guests it sleeps.
type Apartment struct {
	ID       string  `json:"id"`
	Rate     float64 `json:"rate"`
	Capacity int     `json:"capacity"`
}

// StayDetails are the validated inputs collected up front for one booking.
type StayDetails struct {
	GuestName   string
	NumGuests   int
	ApartmentID string
	CheckIn     string
	CheckOut    string
	BookingDate string
	Nights      int
}

// ItemLine is one priced row of a booking's supplementary items.
type ItemLine struct {
	ID        string  `json:"id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderSummary is the immutable record appended to a guest's history when a
// booking completes.
type OrderSummary struct {
	ID             string         `json:"id"`
	ApartmentID    string         `json:"apartment_id"`
	Nights         int            `json:"nights"`
	Items          map[string]int `json:"items"`
	PreTotal       float64        `json:"pre_total"`
	RedeemedPoints int            `json:"redeemed_points"`
	FinalTotal     float64        `json:"final_total"`
	EarnedPoints   int            `json:"earned_points"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Result is everything the presentation layer needs to render a receipt for
// a completed booking.
type Result struct {
	GuestName      string
	NumGuests      int
	ApartmentID    string
	Rate           float64
	CheckIn        string
	CheckOut       string
	BookingDate    string
	Nights         int
	Items          []ItemLine
	LodgingCost    float64
	ItemsSubtotal  float64
	PreTotal       float64
	Discount       float64
	RedeemedPoints int
	FinalTotal     float64
	EarnedPoints   int
	NewBalance     int
}
