package history

import (
	"context"
	"fmt"
	"time"

	"smartgym/pkg/kafka"
)

const (
	EventBookingCreated = "booking.created"
	eventSchemaVersion  = "1"
	eventSource         = "smartgym-bookings"
)

// BookingCreatedEvent is the payload published for every new booking.
type BookingCreatedEvent struct {
	CustomerID string    `json:"customer_id"`
	TrainerID  string    `json:"trainer_id"`
	Schedule   string    `json:"schedule"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaSink turns history notifications into booking.created events keyed
// by customer, so one customer's events stay ordered on one partition.
type KafkaSink struct {
	publisher Publisher
}

func NewKafkaSink(publisher Publisher) *KafkaSink {
	return &KafkaSink{publisher: publisher}
}

func (s *KafkaSink) Record(ctx context.Context, customerID, trainerID, schedule string) error {
	msg, err := kafka.NewMessage().
		WithKey(customerID).
		WithValue(BookingCreatedEvent{
			CustomerID: customerID,
			TrainerID:  trainerID,
			Schedule:   schedule,
			OccurredAt: time.Now().UTC(),
		}).
		WithEventID("").
		WithEventType(EventBookingCreated).
		WithSchemaVersion(eventSchemaVersion).
		WithSource(eventSource).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build history event: %w", err)
	}
	return s.publisher.Publish(ctx, msg)
}

// Projector consumes booking.created events and appends them to a Sink.
type Projector struct {
	sink Sink
}

func NewProjector(sink Sink) *Projector {
	return &Projector{sink: sink}
}

// Handle is a kafka.MessageHandler. Other event types are skipped.
func (p *Projector) Handle(ctx context.Context, msg kafka.Message) error {
	if msg.GetEventType() != EventBookingCreated {
		return nil
	}

	var event BookingCreatedEvent
	if err := msg.DecodeValue(&event); err != nil {
		return err
	}
	if event.CustomerID == "" || event.TrainerID == "" || event.Schedule == "" {
		return kafka.NewPermanentError("incomplete booking.created event", nil)
	}

	if err := p.sink.Record(ctx, event.CustomerID, event.TrainerID, event.Schedule); err != nil {
		return kafka.NewTransientError("failed to project history entry", err)
	}
	return nil
}
