package repository

import (
	"context"
	"sort"
	"sync"

	bookingserrors "smartgym/internal/bookings/errors"
	"smartgym/pkg/model"
)

type slotKey struct {
	trainerID string
	schedule  model.Schedule
}

// memoryBookingRepository keeps live bookings in process memory. A single
// RWMutex guards the id counter, the insertion-ordered list and the slot
// index, so every writer sees the others' completed inserts and removals.
type memoryBookingRepository struct {
	mu       sync.RWMutex
	lastID   int64
	bookings []*model.Booking
	bySlot   map[slotKey]*model.Booking
}

func NewMemoryBookingRepository() BookingRepository {
	return &memoryBookingRepository{
		bySlot: make(map[slotKey]*model.Booking),
	}
}

func (r *memoryBookingRepository) Insert(ctx context.Context, booking *model.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := slotKey{trainerID: booking.TrainerID, schedule: booking.Schedule}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, taken := r.bySlot[key]; taken {
		if existing.CustomerID == booking.CustomerID {
			return bookingserrors.ErrDuplicateBooking
		}
		return bookingserrors.ErrTrainerBusy
	}

	r.lastID++
	booking.ID = r.lastID

	stored := *booking
	r.bookings = append(r.bookings, &stored)
	r.bySlot[key] = &stored
	return nil
}

func (r *memoryBookingRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.bookings {
		if b.ID != id {
			continue
		}
		r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
		delete(r.bySlot, slotKey{trainerID: b.TrainerID, schedule: b.Schedule})
		return nil
	}
	return bookingserrors.ErrNotFound
}

func (r *memoryBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		c := *b
		result = append(result, &c)
	}
	return result, nil
}

func (r *memoryBookingRepository) FindByTrainerAndDate(ctx context.Context, trainerID string, date string) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	result := make([]*model.Booking, 0)
	for _, b := range r.bookings {
		if b.TrainerID == trainerID && b.Date == date {
			c := *b
			result = append(result, &c)
		}
	}
	r.mu.RUnlock()

	// Stable keeps insertion order for equal times.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Time < result[j].Time
	})
	return result, nil
}

func (r *memoryBookingRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.bookings)), nil
}
