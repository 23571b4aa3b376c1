package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	bookingserrors "smartgym/internal/bookings/errors"
	"smartgym/pkg/model"
)

func newBooking(customer, trainer, date, clock string) *model.Booking {
	return &model.Booking{
		CustomerID: customer,
		TrainerID:  trainer,
		Schedule:   model.Schedule{Date: date, Time: clock},
	}
}

func TestMemoryInsert_AssignsSequentialIDs(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	for i, clock := range []string{"09:00", "10:00", "11:00"} {
		b := newBooking("alice", "mike", "2099-01-10", clock)
		if err := repo.Insert(ctx, b); err != nil {
			t.Fatalf("insert %d: unexpected error: %v", i, err)
		}
		if b.ID != int64(i+1) {
			t.Errorf("insert %d: expected id %d, got %d", i, i+1, b.ID)
		}
	}
}

func TestMemoryInsert_Conflicts(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	if err := repo.Insert(ctx, newBooking("alice", "mike", "2099-01-10", "10:00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		booking *model.Booking
		wantErr error
	}{
		{"same customer same slot", newBooking("alice", "mike", "2099-01-10", "10:00"), bookingserrors.ErrDuplicateBooking},
		{"other customer same slot", newBooking("bob", "mike", "2099-01-10", "10:00"), bookingserrors.ErrTrainerBusy},
		{"other trainer same slot", newBooking("bob", "sara", "2099-01-10", "10:00"), nil},
		{"same trainer other time", newBooking("bob", "mike", "2099-01-10", "10:30"), nil},
		{"same trainer other date", newBooking("alice", "mike", "2099-01-11", "10:00"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Insert(ctx, tt.booking)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Insert() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMemoryInsert_FailedInsertDoesNotConsumeID(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	_ = repo.Insert(ctx, newBooking("alice", "mike", "2099-01-10", "10:00"))
	_ = repo.Insert(ctx, newBooking("bob", "mike", "2099-01-10", "10:00"))

	b := newBooking("bob", "mike", "2099-01-10", "11:00")
	if err := repo.Insert(ctx, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID != 2 {
		t.Errorf("expected id 2, got %d", b.ID)
	}
}

func TestMemoryDelete(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	b := newBooking("alice", "mike", "2099-01-10", "10:00")
	_ = repo.Insert(ctx, b)

	if err := repo.Delete(ctx, b.ID); err != nil {
		t.Fatalf("first delete: unexpected error: %v", err)
	}
	if err := repo.Delete(ctx, b.ID); !errors.Is(err, bookingserrors.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}

	// The slot is free again and the id is not reused.
	again := newBooking("bob", "mike", "2099-01-10", "10:00")
	if err := repo.Insert(ctx, again); err != nil {
		t.Fatalf("re-insert: unexpected error: %v", err)
	}
	if again.ID == b.ID {
		t.Errorf("id %d was reused", again.ID)
	}
}

func TestMemoryFindAll_InsertionOrderAndCopies(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	_ = repo.Insert(ctx, newBooking("alice", "mike", "2099-01-10", "14:00"))
	_ = repo.Insert(ctx, newBooking("alice", "mike", "2099-01-10", "09:30"))
	_ = repo.Insert(ctx, newBooking("alice", "mike", "2099-01-10", "11:00"))

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"14:00", "09:30", "11:00"}
	for i, b := range all {
		if b.Time != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], b.Time)
		}
	}

	all[0].CustomerID = "mallory"
	fresh, _ := repo.FindAll(ctx)
	if fresh[0].CustomerID != "alice" {
		t.Errorf("FindAll exposed internal storage: got %s", fresh[0].CustomerID)
	}
}

func TestMemoryFindByTrainerAndDate_SortedByTime(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	_ = repo.Insert(ctx, newBooking("alice", "mike", "2099-01-10", "14:00"))
	_ = repo.Insert(ctx, newBooking("bob", "mike", "2099-01-10", "09:30"))
	_ = repo.Insert(ctx, newBooking("carol", "mike", "2099-01-10", "11:00"))
	_ = repo.Insert(ctx, newBooking("alice", "mike", "2099-01-11", "08:00"))
	_ = repo.Insert(ctx, newBooking("alice", "sara", "2099-01-10", "07:00"))

	got, err := repo.FindByTrainerAndDate(ctx, "mike", "2099-01-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"09:30", "11:00", "14:00"}
	if len(got) != len(want) {
		t.Fatalf("expected %d bookings, got %d", len(want), len(got))
	}
	for i, b := range got {
		if b.Time != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], b.Time)
		}
	}
}

func TestMemoryInsert_ConcurrentSameSlot(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	const workers = 64
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			customer := "alice"
			if i%2 == 0 {
				customer = "bob"
			}
			err := repo.Insert(ctx, newBooking(customer, "mike", "2099-01-10", "10:00"))
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			if !errors.Is(err, bookingserrors.ErrTrainerBusy) && !errors.Is(err, bookingserrors.ErrDuplicateBooking) {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("expected exactly 1 success, got %d", successes)
	}
	if count, _ := repo.Count(ctx); count != 1 {
		t.Errorf("expected 1 live booking, got %d", count)
	}
}

func TestMemory_CancelledContext(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.Insert(ctx, newBooking("alice", "mike", "2099-01-10", "10:00")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
