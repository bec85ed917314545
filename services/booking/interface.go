// Package booking drives booking requests through their lifecycle,
// consulting and updating the availability ledger on every transition.
package booking

import (
	"context"
	"time"

	"festa/models"
	"festa/services/auth"
	"festa/services/availability"
	"festa/services/notification"

	bookingRepo "festa/database/repository/booking"
	providerRepo "festa/database/repository/provider"
)

// RequestInput describes a client's booking request.
type RequestInput struct {
	ProviderID string `json:"providerId"`
	PackageID  string `json:"packageId"`
	EventDate  string `json:"eventDate"` // YYYY-MM-DD
	Message    string `json:"message"`
}

// BookingService is the booking state machine contract. Provider-side
// transitions carry the version the caller last read; a mismatch returns
// ConcurrentModification and changes nothing.
type BookingService interface {
	Request(ctx context.Context, sess auth.ClientSession, input RequestInput) (*models.Booking, error)
	Accept(ctx context.Context, sess auth.ProviderSession, bookingID string, version int) (*models.Booking, error)
	Reject(ctx context.Context, sess auth.ProviderSession, bookingID string, version int) (*models.Booking, error)
	Cancel(ctx context.Context, sess auth.ClientSession, bookingID string, version int) (*models.Booking, error)
	// CompleteEvent is system-triggered once the event date has passed.
	// The slot stays consumed; a past date is not re-offered.
	CompleteEvent(ctx context.Context, bookingID string) (*models.Booking, error)

	GetBooking(sess auth.Session, bookingID string) (*models.Booking, error)
	ListForClient(sess auth.ClientSession) ([]models.Booking, error)
	ListForProvider(sess auth.ProviderSession) ([]models.Booking, error)
}

// CompletionScheduler arranges for CompleteEvent to fire after a booking's
// event date. Implemented by the asynq-backed worker in package cron.
type CompletionScheduler interface {
	ScheduleCompletion(bookingID, eventDate string) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	ProviderRepo providerRepo.ProviderRepository
	Ledger       availability.Ledger
	Publisher    notification.Publisher
	Scheduler    CompletionScheduler // optional

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}
