package notification

import (
	"context"
	"sync"

	"festa/models"
)

// Recorder collects published events in memory. Tests assert against it;
// local runs without Redis can use it as a sink.
type Recorder struct {
	mu     sync.Mutex
	events []models.BookingEvent
}

var _ Publisher = (*Recorder)(nil)

func (r *Recorder) Publish(_ context.Context, event models.BookingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []models.BookingEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.BookingEvent(nil), r.events...)
}
