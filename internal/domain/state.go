package domain

// FlowState represents the state of the booking session controller.
// One enum plus its payload (the draft) replaces the scattered
// modal/pending-data flags, so illegal combinations such as
// "submitting with no draft" are unrepresentable.
type FlowState string

const (
	StateIdle          FlowState = "idle"
	StateSlotChosen    FlowState = "slot_chosen"
	StateAwaitingAuth  FlowState = "awaiting_auth"
	StateReadyToSubmit FlowState = "ready_to_submit"
	StateSubmitting    FlowState = "submitting"
	StateConfirmed     FlowState = "confirmed"
	StateFailed        FlowState = "failed"
)

// HasDraft returns true for states that carry a booking draft.
func (s FlowState) HasDraft() bool {
	return s != StateIdle
}

// CanRequestBooking returns true if RequestBooking is a legal call.
func (s FlowState) CanRequestBooking() bool {
	return s == StateSlotChosen || s == StateFailed
}

// IsTerminal returns true for states that end the flow.
func (s FlowState) IsTerminal() bool {
	return s == StateConfirmed
}
