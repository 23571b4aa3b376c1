package history

import (
	"context"
	"sync"
	"time"

	"smartgym/pkg/model"
)

// Store keeps per-customer history in memory, in append order.
type Store struct {
	mu      sync.RWMutex
	entries map[string][]model.HistoryEntry
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string][]model.HistoryEntry),
		now:     time.Now,
	}
}

func (s *Store) Record(ctx context.Context, customerID, trainerID, schedule string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entry := model.HistoryEntry{
		CustomerID: customerID,
		TrainerID:  trainerID,
		Schedule:   schedule,
		Note:       NoteFor(trainerID, schedule),
		RecordedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.entries[customerID] = append(s.entries[customerID], entry)
	s.mu.Unlock()
	return nil
}

func (s *Store) CustomerHistory(ctx context.Context, customerID string) ([]model.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.HistoryEntry, len(s.entries[customerID]))
	copy(out, s.entries[customerID])
	return out, nil
}
