package booking

import (
	"context"
	"time"

	"festa/errs"
	"festa/models"
	"festa/services/auth"
	"festa/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

var _ BookingService = (*DefaultBookingService)(nil)

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Request validates the package, holds the date and creates a pending
// booking. The ledger hold is taken before the booking is written, so a
// Conflict here guarantees no booking record was created.
func (s *DefaultBookingService) Request(ctx context.Context, sess auth.ClientSession, input RequestInput) (*models.Booking, error) {
	eventDate, err := time.Parse(dateLayout, input.EventDate)
	if err != nil {
		return nil, errs.Validation("event date must be formatted YYYY-MM-DD")
	}
	today := s.now().Truncate(24 * time.Hour)
	if eventDate.Before(today) {
		return nil, errs.Validation("event date %s is in the past", input.EventDate)
	}

	provider, err := s.ProviderRepo.GetByID(input.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, errs.NotFound("provider", input.ProviderID)
	}
	pkg := provider.PackageByID(input.PackageID)
	if pkg == nil {
		return nil, errs.Validation("package %s does not belong to provider %s", input.PackageID, input.ProviderID)
	}
	if pkg.Retired {
		return nil, errs.Validation("package %s is no longer offered", input.PackageID)
	}

	if err := s.Ledger.Hold(provider.ID, input.EventDate); err != nil {
		return nil, err
	}

	now := s.now()
	booking := models.Booking{
		ID:         uuid.New().String(),
		ClientID:   sess.UserID(),
		ProviderID: provider.ID,
		PackageID:  pkg.ID,
		EventDate:  input.EventDate,
		Status:     models.BookingPending,
		Message:    input.Message,
		TotalPrice: pkg.Price,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Create(&booking); err != nil {
		// Undo the hold so the failed request does not block the date.
		if relErr := s.Ledger.Release(provider.ID, input.EventDate); relErr != nil {
			utils.GetLogger().Error("Request: failed to release hold after create failure",
				zap.String("providerId", provider.ID), zap.Error(relErr))
		}
		return nil, err
	}

	s.publish(ctx, models.EventBookingRequested, &booking)
	return &booking, nil
}

// Accept confirms a pending booking and upgrades the ledger hold.
func (s *DefaultBookingService) Accept(ctx context.Context, sess auth.ProviderSession, bookingID string, version int) (*models.Booking, error) {
	booking, err := s.ownedByProvider(sess, bookingID)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(booking, version, models.BookingPending, "accept"); err != nil {
		return nil, err
	}

	if err := s.Ledger.Confirm(booking.ProviderID, booking.EventDate); err != nil {
		return nil, err
	}
	if err := s.advance(booking, models.BookingConfirmed); err != nil {
		return nil, err
	}

	if s.Scheduler != nil {
		if err := s.Scheduler.ScheduleCompletion(booking.ID, booking.EventDate); err != nil {
			utils.GetLogger().Warn("Accept: failed to schedule completion",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}

	s.publish(ctx, models.EventBookingAccepted, booking)
	return booking, nil
}

// Reject declines a pending booking and releases the hold.
func (s *DefaultBookingService) Reject(ctx context.Context, sess auth.ProviderSession, bookingID string, version int) (*models.Booking, error) {
	booking, err := s.ownedByProvider(sess, bookingID)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(booking, version, models.BookingPending, "reject"); err != nil {
		return nil, err
	}

	if err := s.advance(booking, models.BookingCancelled); err != nil {
		return nil, err
	}
	if err := s.Ledger.Release(booking.ProviderID, booking.EventDate); err != nil {
		utils.GetLogger().Error("Reject: failed to release slot",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}

	s.publish(ctx, models.EventBookingRejected, booking)
	return booking, nil
}

// Cancel is the client-side exit, allowed from pending or confirmed.
// Cancelling a confirmed booking frees the date for re-booking.
func (s *DefaultBookingService) Cancel(ctx context.Context, sess auth.ClientSession, bookingID string, version int) (*models.Booking, error) {
	booking, err := s.get(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.ClientID != sess.UserID() {
		return nil, errs.Authorization("booking %s was not requested by the caller", bookingID)
	}
	if booking.Status != models.BookingPending && booking.Status != models.BookingConfirmed {
		return nil, errs.InvalidState("cannot cancel a booking in status %q", booking.Status)
	}
	if booking.Version != version {
		return nil, errs.ConcurrentModification("booking %s version is stale", bookingID)
	}

	if err := s.advance(booking, models.BookingCancelled); err != nil {
		return nil, err
	}
	if err := s.Ledger.Release(booking.ProviderID, booking.EventDate); err != nil {
		utils.GetLogger().Error("Cancel: failed to release slot",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}

	s.publish(ctx, models.EventBookingCancelled, booking)
	return booking, nil
}

// CompleteEvent moves a confirmed booking to completed. The ledger is left
// untouched.
func (s *DefaultBookingService) CompleteEvent(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.get(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingConfirmed {
		return nil, errs.InvalidState("cannot complete a booking in status %q", booking.Status)
	}

	if err := s.advance(booking, models.BookingCompleted); err != nil {
		return nil, err
	}

	s.publish(ctx, models.EventBookingCompleted, booking)
	return booking, nil
}

// GetBooking returns a booking to its client or its provider, nobody else.
func (s *DefaultBookingService) GetBooking(sess auth.Session, bookingID string) (*models.Booking, error) {
	booking, err := s.get(bookingID)
	if err != nil {
		return nil, err
	}
	switch v := sess.(type) {
	case auth.ClientSession:
		if booking.ClientID != v.UserID() {
			return nil, errs.Authorization("booking %s does not involve the caller", bookingID)
		}
	case auth.ProviderSession:
		provider, err := s.ProviderRepo.GetByUserID(v.UserID())
		if err != nil {
			return nil, err
		}
		if provider == nil || booking.ProviderID != provider.ID {
			return nil, errs.Authorization("booking %s does not involve the caller", bookingID)
		}
	}
	return booking, nil
}

// ListForClient returns the caller's requested bookings, newest first.
func (s *DefaultBookingService) ListForClient(sess auth.ClientSession) ([]models.Booking, error) {
	return s.Repo.ListByClient(sess.UserID())
}

// ListForProvider returns the bookings addressed to the caller's provider.
func (s *DefaultBookingService) ListForProvider(sess auth.ProviderSession) ([]models.Booking, error) {
	provider, err := s.ProviderRepo.GetByUserID(sess.UserID())
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, errs.NotFound("provider profile for user", sess.UserID())
	}
	return s.Repo.ListByProvider(provider.ID)
}

func (s *DefaultBookingService) get(bookingID string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errs.NotFound("booking", bookingID)
	}
	return booking, nil
}

func (s *DefaultBookingService) ownedByProvider(sess auth.ProviderSession, bookingID string) (*models.Booking, error) {
	booking, err := s.get(bookingID)
	if err != nil {
		return nil, err
	}
	provider, err := s.ProviderRepo.GetByID(booking.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil || provider.UserID != sess.UserID() {
		return nil, errs.Authorization("booking %s is not addressed to the caller's provider", bookingID)
	}
	return booking, nil
}

// advance bumps the status and version under the repository's CAS, so two
// racing transitions on one booking resolve to a single winner.
func (s *DefaultBookingService) advance(booking *models.Booking, next models.BookingStatus) error {
	expected := booking.Version
	booking.Status = next
	booking.Version++
	return s.Repo.CompareAndSet(booking, expected)
}

func checkTransition(booking *models.Booking, version int, required models.BookingStatus, action string) error {
	if booking.Status != required {
		return errs.InvalidState("cannot %s a booking in status %q", action, booking.Status)
	}
	if booking.Version != version {
		return errs.ConcurrentModification("booking %s version is stale", booking.ID)
	}
	return nil
}

func (s *DefaultBookingService) publish(ctx context.Context, eventType models.BookingEventType, booking *models.Booking) {
	if s.Publisher == nil {
		return
	}
	event := models.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		ProviderID: booking.ProviderID,
		ClientID:   booking.ClientID,
		EventDate:  booking.EventDate,
		OccurredAt: s.now(),
	}
	if err := s.Publisher.Publish(ctx, event); err != nil {
		utils.GetLogger().Warn("failed to publish booking event",
			zap.String("type", string(eventType)), zap.String("bookingId", booking.ID), zap.Error(err))
	}
}
