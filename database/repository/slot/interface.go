package slotRepo

import "festa/models"

// SlotRepository defines persistence for availability slots. A missing
// record is equivalent to a free slot. Transition is the atomicity anchor
// of the whole booking engine: implementations must guarantee that two
// concurrent transitions for the same (provider, date) key never both
// succeed from the same state.
type SlotRepository interface {
	// Get returns the slot record, or (nil, nil) when the date is free.
	Get(providerID, date string) (*models.AvailabilitySlot, error)
	// Transition atomically moves the slot from one state to another,
	// returning Conflict if the current state is not `from`. Transitioning
	// from SlotFree succeeds only when no record exists or the record is
	// explicitly free.
	Transition(providerID, date string, from, to models.SlotState) error
	// Free unconditionally returns the slot to the free state. Idempotent.
	Free(providerID, date string) error
	// ListByProvider returns non-free slots in the inclusive date range.
	ListByProvider(providerID, fromDate, toDate string) ([]models.AvailabilitySlot, error)
}
