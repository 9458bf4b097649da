package domain

import "time"

// BookingDraft is the accumulating record of an in-progress booking.
// Created when a slot is first chosen, extended as later steps add fields
// (note entry), discarded on cancel or after successful submission.
//
// The draft is the one piece of state that must survive the asynchronous
// authentication interruption: service/slot/barber fields captured before
// auth must come out of it unchanged afterwards. Service and barber data
// are snapshot copies, so catalog changes elsewhere cannot corrupt an
// in-flight draft.
type BookingDraft struct {
	BarberID     string
	BarberName   string
	Date         time.Time // date-only, local
	Service      Service
	Slot         *TimeSlot
	CustomerNote *string
}

// HasSlot reports whether a slot has been selected for this draft.
func (d *BookingDraft) HasSlot() bool {
	return d != nil && d.Slot != nil
}

// Clone returns a deep copy of the draft.
func (d *BookingDraft) Clone() *BookingDraft {
	if d == nil {
		return nil
	}
	out := *d
	if d.Slot != nil {
		slot := *d.Slot
		out.Slot = &slot
	}
	if d.CustomerNote != nil {
		note := *d.CustomerNote
		out.CustomerNote = &note
	}
	return &out
}

// SameSelection reports whether two drafts hold the same barber, service,
// date and slot. Used to verify the draft survived the auth interruption
// without re-derivation.
func (d *BookingDraft) SameSelection(other *BookingDraft) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.BarberID != other.BarberID || d.Service.ID != other.Service.ID {
		return false
	}
	if !d.Date.Equal(other.Date) {
		return false
	}
	if (d.Slot == nil) != (other.Slot == nil) {
		return false
	}
	return d.Slot == nil || d.Slot.SameStart(*other.Slot)
}
