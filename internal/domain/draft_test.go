package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HBS-BookingFlow/pkg/ptr"
	"github.com/m04kA/HBS-BookingFlow/pkg/types"
)

func sampleDraft() *BookingDraft {
	return &BookingDraft{
		BarberID:   "b1",
		BarberName: "Abel",
		Date:       time.Date(2026, 9, 4, 0, 0, 0, 0, time.Local),
		Service:    Service{ID: "s1", Name: "Haircut", DurationMinutes: 30, Price: 250},
		Slot: &TimeSlot{
			StartTime: types.TimeString("10:00"),
			EndTime:   types.TimeString("10:30"),
		},
		CustomerNote: ptr.Ptr("note"),
	}
}

func TestBookingDraft_Clone_IsDeep(t *testing.T) {
	original := sampleDraft()
	clone := original.Clone()

	clone.Slot.StartTime = types.TimeString("18:00")
	*clone.CustomerNote = "tampered"

	assert.Equal(t, types.TimeString("10:00"), original.Slot.StartTime)
	assert.Equal(t, "note", *original.CustomerNote)

	var nilDraft *BookingDraft
	assert.Nil(t, nilDraft.Clone())
}

func TestBookingDraft_HasSlot(t *testing.T) {
	draft := sampleDraft()
	assert.True(t, draft.HasSlot())

	draft.Slot = nil
	assert.False(t, draft.HasSlot())

	var nilDraft *BookingDraft
	assert.False(t, nilDraft.HasSlot())
}

func TestBookingDraft_SameSelection(t *testing.T) {
	a := sampleDraft()
	b := sampleDraft()
	require.True(t, a.SameSelection(b))

	// Заметка не входит в выбор
	b.CustomerNote = nil
	assert.True(t, a.SameSelection(b))

	b = sampleDraft()
	b.Slot.StartTime = types.TimeString("11:00")
	assert.False(t, a.SameSelection(b))

	b = sampleDraft()
	b.Date = b.Date.AddDate(0, 0, 1)
	assert.False(t, a.SameSelection(b))

	b = sampleDraft()
	b.Slot = nil
	assert.False(t, a.SameSelection(b))
}

func TestTimeSlot_SameStart(t *testing.T) {
	a := TimeSlot{StartTime: "10:00", EndTime: "10:30"}
	b := TimeSlot{StartTime: "10:00", EndTime: "10:45"}
	c := TimeSlot{StartTime: "11:00", EndTime: "11:30"}

	// Идентичность слота - структурное равенство по началу интервала
	assert.True(t, a.SameStart(b))
	assert.False(t, a.SameStart(c))
}

func TestService_Validate(t *testing.T) {
	valid := Service{ID: "s1", Name: "Haircut", DurationMinutes: 30, Price: 0}
	assert.NoError(t, valid.Validate())

	assert.ErrorIs(t, Service{DurationMinutes: 0, Price: 10}.Validate(), ErrInvalidServiceDuration)
	assert.ErrorIs(t, Service{DurationMinutes: 30, Price: -1}.Validate(), ErrInvalidServicePrice)
}

func TestFlowState_Predicates(t *testing.T) {
	assert.False(t, StateIdle.HasDraft())
	assert.True(t, StateSlotChosen.HasDraft())

	assert.True(t, StateSlotChosen.CanRequestBooking())
	assert.True(t, StateFailed.CanRequestBooking())
	assert.False(t, StateSubmitting.CanRequestBooking())

	assert.True(t, StateConfirmed.IsTerminal())
	assert.False(t, StateFailed.IsTerminal())
}
