package history

import (
	"context"
	"errors"
	"fmt"

	"smartgym/pkg/model"
)

// Sink receives one notification per successful booking.
type Sink interface {
	Record(ctx context.Context, customerID, trainerID, schedule string) error
}

// Reader exposes a customer's accumulated history.
type Reader interface {
	CustomerHistory(ctx context.Context, customerID string) ([]model.HistoryEntry, error)
}

// NoteFor renders the history line stored for a booking.
func NoteFor(trainerID, schedule string) string {
	return fmt.Sprintf("Booked with %s at %s", trainerID, schedule)
}

// FanOut records to every sink and joins their errors. A failing sink does
// not stop the others.
type FanOut []Sink

func (f FanOut) Record(ctx context.Context, customerID, trainerID, schedule string) error {
	var errs []error
	for _, s := range f {
		if err := s.Record(ctx, customerID, trainerID, schedule); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every record.
type Discard struct{}

func (Discard) Record(context.Context, string, string, string) error { return nil }
