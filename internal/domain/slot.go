package domain

import "github.com/m04kA/HBS-BookingFlow/pkg/types"

// TimeSlot represents a bookable time interval on a given date,
// as produced by the scheduling backend. The client never computes
// slots itself, it only renders and selects among them.
type TimeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// SameStart reports whether two slots refer to the same interval.
// The backend does not guarantee unique or non-overlapping slots,
// so identity is structural equality on StartTime, matching how the
// slot picker highlights the selected entry.
func (s TimeSlot) SameStart(other TimeSlot) bool {
	return s.StartTime == other.StartTime
}

// Validate checks both endpoints are well-formed wall-clock times.
func (s TimeSlot) Validate() error {
	if err := s.StartTime.Validate(); err != nil {
		return err
	}
	return s.EndTime.Validate()
}
