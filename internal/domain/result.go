package domain

import (
	"time"

	"github.com/m04kA/HBS-BookingFlow/pkg/types"
)

// BookingResult is the confirmed outcome of a submission: a human-readable
// reference plus the echoed selection details for the confirmation screen.
type BookingResult struct {
	Reference  string
	BookingID  string
	BarberID   string
	BarberName string
	Date       time.Time
	StartTime  types.TimeString
	Service    Service
	CreatedAt  time.Time
}
