package repository

import (
	"context"
	"errors"
	"testing"

	"smartgym/pkg/model"
)

func TestMemoryProgressRepository(t *testing.T) {
	repo := NewMemoryProgressRepository()
	ctx := context.Background()

	records := []*model.ProgressRecord{
		{ID: "p2", CustomerID: "alice@gym.io", Date: "2030-01-11", WeightKg: 79},
		{ID: "p1", CustomerID: "alice@gym.io", Date: "2030-01-10", WeightKg: 80},
		{ID: "p3", CustomerID: "bob@gym.io", Date: "2030-01-10", WeightKg: 90},
	}
	for _, rec := range records {
		if err := repo.Insert(ctx, rec); err != nil {
			t.Fatalf("Insert(%s) error: %v", rec.ID, err)
		}
	}

	dup := &model.ProgressRecord{ID: "p4", CustomerID: "alice@gym.io", Date: "2030-01-10", WeightKg: 81}
	if err := repo.Insert(ctx, dup); !errors.Is(err, ErrAlreadyRecorded) {
		t.Fatalf("expected ErrAlreadyRecorded, got %v", err)
	}

	got, err := repo.ListByCustomer(ctx, "alice@gym.io")
	if err != nil {
		t.Fatalf("ListByCustomer() error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p2" {
		t.Fatalf("expected p1, p2 by date, got %+v", got)
	}
	if got[0].WeightKg != 80 {
		t.Errorf("duplicate insert must not overwrite, got weight %v", got[0].WeightKg)
	}
}
