package models

import "time"

// BookingStatus is the lifecycle state of a booking.
//
//	pending ──accept──► confirmed ──complete──► completed
//	   │                    │
//	 reject/cancel        cancel
//	   ▼                    ▼
//	cancelled            cancelled
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Terminal reports whether no further transitions are possible.
func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

// Booking is a client's request to purchase a package for a specific event
// date. TotalPrice snapshots the package price at request time and never
// changes afterwards. Version increments on every transition and backs
// optimistic concurrency control; bookings are never deleted.
type Booking struct {
	ID         string        `bson:"id" json:"id"`
	ClientID   string        `bson:"clientId" json:"clientId"`
	ProviderID string        `bson:"providerId" json:"providerId"`
	PackageID  string        `bson:"packageId" json:"packageId"`
	EventDate  string        `bson:"eventDate" json:"eventDate"` // YYYY-MM-DD
	Status     BookingStatus `bson:"status" json:"status"`
	Message    string        `bson:"message" json:"message"`
	TotalPrice int           `bson:"totalPrice" json:"totalPrice"`
	Version    int           `bson:"version" json:"version"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt"`
}
