package repository

import (
	"context"
	"sort"
	"sync"

	"smartgym/pkg/model"
)

type memoryProgressRepository struct {
	mu         sync.RWMutex
	byCustomer map[string]map[string]model.ProgressRecord
}

func NewMemoryProgressRepository() ProgressRepository {
	return &memoryProgressRepository{
		byCustomer: make(map[string]map[string]model.ProgressRecord),
	}
}

func (r *memoryProgressRepository) Insert(ctx context.Context, record *model.ProgressRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	byDate, ok := r.byCustomer[record.CustomerID]
	if !ok {
		byDate = make(map[string]model.ProgressRecord)
		r.byCustomer[record.CustomerID] = byDate
	}
	if _, exists := byDate[record.Date]; exists {
		return ErrAlreadyRecorded
	}
	byDate[record.Date] = *record
	return nil
}

func (r *memoryProgressRepository) ListByCustomer(ctx context.Context, customerID string) ([]*model.ProgressRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	byDate := r.byCustomer[customerID]
	result := make([]*model.ProgressRecord, 0, len(byDate))
	for _, rec := range byDate {
		rec := rec
		result = append(result, &rec)
	}
	r.mu.RUnlock()

	// YYYY-MM-DD sorts chronologically as a string.
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}
