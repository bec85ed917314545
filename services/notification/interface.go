// Package notification carries booking domain events out of the core. The
// messaging subsystem that turns them into user-facing notifications lives
// elsewhere; the core only publishes.
package notification

import (
	"context"

	"festa/models"
)

// Publisher emits booking domain events.
type Publisher interface {
	Publish(ctx context.Context, event models.BookingEvent) error
}
