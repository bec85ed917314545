package memory

import (
	"sort"
	"time"

	bookingRepo "festa/database/repository/booking"
	"festa/errs"
	"festa/models"
)

// BookingRepo is an in-memory BookingRepository.
type BookingRepo struct {
	store
	byID map[string]models.Booking
}

// NewBookingRepo creates an empty in-memory booking repository.
func NewBookingRepo() *BookingRepo {
	return &BookingRepo{byID: make(map[string]models.Booking)}
}

var _ bookingRepo.BookingRepository = (*BookingRepo)(nil)

func (r *BookingRepo) Create(booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[booking.ID] = *booking
	return nil
}

func (r *BookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &booking, nil
}

func (r *BookingRepo) CompareAndSet(booking *models.Booking, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[booking.ID]
	if !ok {
		return errs.NotFound("booking", booking.ID)
	}
	if stored.Version != expectedVersion {
		return errs.ConcurrentModification("booking %s was modified concurrently", booking.ID)
	}
	booking.UpdatedAt = time.Now()
	r.byID[booking.ID] = *booking
	return nil
}

func (r *BookingRepo) ListByClient(clientID string) ([]models.Booking, error) {
	return r.list(func(b models.Booking) bool { return b.ClientID == clientID })
}

func (r *BookingRepo) ListByProvider(providerID string) ([]models.Booking, error) {
	return r.list(func(b models.Booking) bool { return b.ProviderID == providerID })
}

func (r *BookingRepo) CountActiveByPackage(packageID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, b := range r.byID {
		if b.PackageID == packageID && b.Status != models.BookingCancelled {
			count++
		}
	}
	return count, nil
}

func (r *BookingRepo) list(match func(models.Booking) bool) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bookings []models.Booking
	for _, b := range r.byID {
		if match(b) {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}
