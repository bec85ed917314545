package bookingRepo

import "festa/models"

// BookingRepository defines persistence for bookings. Bookings are never
// deleted; cancellation is a status, not a removal.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	// CompareAndSet persists the booking only if the stored version still
	// equals expectedVersion, returning ConcurrentModification otherwise.
	CompareAndSet(booking *models.Booking, expectedVersion int) error
	ListByClient(clientID string) ([]models.Booking, error)
	ListByProvider(providerID string) ([]models.Booking, error)
	// CountActiveByPackage counts non-cancelled bookings referencing the
	// package; used to decide whether a package is still editable.
	CountActiveByPackage(packageID string) (int64, error)
}
