// Package events publishes booking lifecycle events for downstream
// consumers (reminder jobs, reporting). Publishing is best-effort: a failed
// publish is logged and never blocks or rolls back the booking write.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"photobox/pkg/logger"
	"photobox/pkg/model"
)

const (
	TypeBookingCreated       = "booking.created"
	TypeBookingUpdated       = "booking.updated"
	TypeBookingStatusChanged = "booking.status_changed"
	TypeBookingDeleted       = "booking.deleted"
)

type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	BookingID  string         `json:"booking_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Booking    *model.Booking `json:"booking,omitempty"`
	FromStatus string         `json:"from_status,omitempty"`
	ToStatus   string         `json:"to_status,omitempty"`
}

func New(eventType, bookingID string) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		BookingID:  bookingID,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// LogPublisher is the default sink when no brokers are configured: events
// land in the structured log and nowhere else.
type LogPublisher struct {
	log *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log.WithComponent("events")}
}

func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	p.log.Info("Booking event",
		"event_id", event.ID,
		"type", event.Type,
		"booking_id", event.BookingID,
		"from_status", event.FromStatus,
		"to_status", event.ToStatus,
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
