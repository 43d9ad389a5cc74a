package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/debuggershut/booking/internal/booking"
)

const receiptWidth = 57

// WriteReceipt renders a completed booking as the printed guest receipt.
func WriteReceipt(w io.Writer, hotelName, currency string, res *booking.Result) {
	line := strings.Repeat("=", receiptWidth)
	rule := strings.Repeat("-", receiptWidth)

	fmt.Fprintf(w, "%s\n", line)
	fmt.Fprintf(w, "    %s - Booking Receipt\n", hotelName)
	fmt.Fprintf(w, "%s\n", line)

	fmt.Fprintf(w, "\nGuest name:       %s\n", res.GuestName)
	fmt.Fprintf(w, "Number of guests: %d\n", res.NumGuests)
	fmt.Fprintf(w, "Apartment name:   %s\n", res.ApartmentID)
	fmt.Fprintf(w, "Apartment rate:   $%.2f (%s)\n", res.Rate, currency)
	fmt.Fprintf(w, "Check-in date:    %s\n", res.CheckIn)
	fmt.Fprintf(w, "Check-out date:   %s\n", res.CheckOut)
	fmt.Fprintf(w, "Length of stay:   %d (nights)\n", res.Nights)
	fmt.Fprintf(w, "Booking date:     %s\n", res.BookingDate)
	fmt.Fprintf(w, "%s\n", rule)

	if len(res.Items) > 0 {
		fmt.Fprintf(w, "Supplementary items\n")

		for _, item := range res.Items {
			fmt.Fprintf(w, "Item id:   %s\n", item.ID)
			fmt.Fprintf(w, "Quantity:  %d\n", item.Quantity)
			fmt.Fprintf(w, "Price:     $%.2f\n", item.UnitPrice)
			fmt.Fprintf(w, "Cost:      $%.2f\n\n", item.UnitPrice*float64(item.Quantity))
		}

		fmt.Fprintf(w, "Sub-total: $%.2f\n", res.ItemsSubtotal)
		fmt.Fprintf(w, "%s\n", rule)
	}

	if res.Discount > 0 {
		fmt.Fprintf(w, "Subtotal:        $%.2f (%s)\n", res.PreTotal, currency)
		fmt.Fprintf(w, "Discount:       -$%.2f (%s)\n", res.Discount, currency)
	}

	fmt.Fprintf(w, "Total cost:      $%.2f (%s)\n", res.FinalTotal, currency)
	fmt.Fprintf(w, "Earned rewards:   %d (points)\n\n", res.EarnedPoints)
	fmt.Fprintf(w, "Thank you for your booking! We hope you will have an enjoyable stay.\n")
	fmt.Fprintf(w, "%s\n", line)
}

func (t *Terminal) writeReceipt(res *booking.Result) {
	WriteReceipt(t.out, t.hotelName, t.currency, res)
	t.l.LogInfo("Receipt printed for %q - Total: $%.2f", res.GuestName, res.FinalTotal)
}
