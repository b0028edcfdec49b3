package templates

import (
	"fmt"
	"strings"

	"guestgate-service/internal/domain/entity"
)

// Confirmation renders the plain-text summary shown on the done page
// after a successful flight-info submission
func Confirmation(reservation *entity.Reservation, draft *entity.FlightDraft) string {
	var b strings.Builder

	b.WriteString("Thank you! Your arrival details have been received.\n\n")

	if reservation != nil {
		if name := reservation.GuestName(); name != "" {
			fmt.Fprintf(&b, "Guest: %s\n", name)
		}
		if reservation.Destination != "" {
			fmt.Fprintf(&b, "Destination: %s\n", reservation.Destination)
		}
		if !reservation.TripStart.IsZero() && !reservation.TripEnd.IsZero() {
			fmt.Fprintf(&b, "Trip: %s to %s\n",
				reservation.TripStart.Format("Jan 2, 2006"),
				reservation.TripEnd.Format("Jan 2, 2006"))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Flight: %s %s\n", draft.Airline, draft.FlightNumber)
	fmt.Fprintf(&b, "Arriving: %s at %s\n", draft.ArrivalDate, draft.ArrivalTime)
	fmt.Fprintf(&b, "Guests: %d\n", draft.NumOfGuests)
	if draft.Comments != "" {
		fmt.Fprintf(&b, "Comments: %s\n", draft.Comments)
	}

	return b.String()
}
