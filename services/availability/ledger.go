// Package availability owns the per-provider calendar of date states. It is
// the single source of truth for conflict detection: no other component
// writes slot state, and the booking engine never scans bookings to decide
// whether a date is taken.
package availability

import (
	"festa/errs"
	"festa/models"

	slotRepo "festa/database/repository/slot"
)

// Ledger tracks the free/held/booked state of every (provider, date) pair.
type Ledger interface {
	// Hold provisionally reserves a free date, returning Conflict when it
	// is held or booked. This is the single enforcement point for "no
	// double booking".
	Hold(providerID, date string) error
	// Confirm upgrades a held date to booked, returning InvalidState when
	// the date was not held.
	Confirm(providerID, date string) error
	// Release returns a date to free. Idempotent: releasing an already
	// free date is a no-op so retried cancellations stay harmless.
	Release(providerID, date string) error
	// IsFree reports whether the date can currently be held.
	IsFree(providerID, date string) (bool, error)
	// Calendar lists the provider's held and booked dates in the range.
	Calendar(providerID, fromDate, toDate string) ([]models.AvailabilitySlot, error)
}

// DefaultLedger implements Ledger on top of a SlotRepository; the
// repository's conditional transition supplies the per-key atomicity.
type DefaultLedger struct {
	Repo slotRepo.SlotRepository
}

var _ Ledger = (*DefaultLedger)(nil)

func (l *DefaultLedger) Hold(providerID, date string) error {
	return l.Repo.Transition(providerID, date, models.SlotFree, models.SlotHeld)
}

func (l *DefaultLedger) Confirm(providerID, date string) error {
	err := l.Repo.Transition(providerID, date, models.SlotHeld, models.SlotBooked)
	if errs.IsConflict(err) {
		return errs.InvalidState("slot %s/%s is not held", providerID, date)
	}
	return err
}

func (l *DefaultLedger) Release(providerID, date string) error {
	return l.Repo.Free(providerID, date)
}

func (l *DefaultLedger) IsFree(providerID, date string) (bool, error) {
	slot, err := l.Repo.Get(providerID, date)
	if err != nil {
		return false, err
	}
	return slot == nil || slot.State == models.SlotFree, nil
}

func (l *DefaultLedger) Calendar(providerID, fromDate, toDate string) ([]models.AvailabilitySlot, error) {
	return l.Repo.ListByProvider(providerID, fromDate, toDate)
}
