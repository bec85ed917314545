package models

import "time"

// BookingEventType names the domain events emitted by the booking engine.
type BookingEventType string

const (
	EventBookingRequested BookingEventType = "booking.requested"
	EventBookingAccepted  BookingEventType = "booking.accepted"
	EventBookingRejected  BookingEventType = "booking.rejected"
	EventBookingCancelled BookingEventType = "booking.cancelled"
	EventBookingCompleted BookingEventType = "booking.completed"
)

// BookingEvent is published on every booking transition. The notification
// subsystem consumes these; the core never sends notifications itself.
type BookingEvent struct {
	Type       BookingEventType `json:"type"`
	BookingID  string           `json:"bookingId"`
	ProviderID string           `json:"providerId"`
	ClientID   string           `json:"clientId"`
	EventDate  string           `json:"eventDate"`
	OccurredAt time.Time        `json:"occurredAt"`
}
