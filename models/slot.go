package models

import "time"

// SlotState is the availability of one provider on one date. A date with no
// slot record is free.
type SlotState string

const (
	SlotFree   SlotState = "free"
	SlotHeld   SlotState = "held"
	SlotBooked SlotState = "booked"
)

// AvailabilitySlot tracks the state of a (provider, date) pair. The
// availability ledger is its sole writer; exactly one state exists per pair
// at any time.
type AvailabilitySlot struct {
	ProviderID string    `bson:"providerId" json:"providerId"`
	Date       string    `bson:"date" json:"date"` // YYYY-MM-DD
	State      SlotState `bson:"state" json:"state"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}
