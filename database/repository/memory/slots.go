package memory

import (
	"sort"
	"time"

	slotRepo "festa/database/repository/slot"
	"festa/errs"
	"festa/models"
)

// SlotRepo is an in-memory SlotRepository. The store mutex serializes
// transitions, which is exactly the per-key atomicity the ledger contract
// demands: of N concurrent transitions from the same state, one wins.
type SlotRepo struct {
	store
	slots map[slotKey]models.AvailabilitySlot
}

type slotKey struct {
	providerID string
	date       string
}

// NewSlotRepo creates an empty in-memory slot repository.
func NewSlotRepo() *SlotRepo {
	return &SlotRepo{slots: make(map[slotKey]models.AvailabilitySlot)}
}

var _ slotRepo.SlotRepository = (*SlotRepo)(nil)

func (r *SlotRepo) Get(providerID, date string) (*models.AvailabilitySlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slot, ok := r.slots[slotKey{providerID, date}]
	if !ok {
		return nil, nil
	}
	return &slot, nil
}

func (r *SlotRepo) Transition(providerID, date string, from, to models.SlotState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := slotKey{providerID, date}
	current := models.SlotFree
	if slot, ok := r.slots[key]; ok {
		current = slot.State
	}
	if current != from {
		return errs.Conflict("slot %s/%s is not %s", providerID, date, from)
	}
	r.slots[key] = models.AvailabilitySlot{
		ProviderID: providerID,
		Date:       date,
		State:      to,
		UpdatedAt:  time.Now(),
	}
	return nil
}

func (r *SlotRepo) Free(providerID, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.slots, slotKey{providerID, date})
	return nil
}

func (r *SlotRepo) ListByProvider(providerID, fromDate, toDate string) ([]models.AvailabilitySlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var slots []models.AvailabilitySlot
	for key, slot := range r.slots {
		if key.providerID != providerID {
			continue
		}
		if key.date < fromDate || key.date > toDate {
			continue
		}
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Date < slots[j].Date })
	return slots, nil
}
