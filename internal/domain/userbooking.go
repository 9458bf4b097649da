package domain

import "time"

// UserBooking is one entry of the authenticated user's booking history
// as returned by the backend. Display-only; the payment integration is
// a bare receipt URL.
type UserBooking struct {
	ID          string
	Date        time.Time
	Status      string
	ServiceName string
	BarberName  string
	PaymentURL  *string
}
