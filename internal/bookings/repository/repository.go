package repository

import (
	"context"

	"smartgym/pkg/model"
)

// BookingRepository owns the set of live bookings.
//
// Insert is the only place conflicts are decided: the check for an existing
// (trainer, schedule) or (customer, trainer, schedule) booking and the
// insertion itself happen as one indivisible step, and the id is assigned
// inside that same step. Implementations return ErrDuplicateBooking or
// ErrTrainerBusy from internal/bookings/errors on conflict and ErrNotFound
// from Delete when the id is not live.
type BookingRepository interface {
	Insert(ctx context.Context, booking *model.Booking) error
	Delete(ctx context.Context, id int64) error
	FindAll(ctx context.Context) ([]*model.Booking, error)
	FindByTrainerAndDate(ctx context.Context, trainerID string, date string) ([]*model.Booking, error)
	Count(ctx context.Context) (int64, error)
}
