package repository

import (
	"context"
	"sort"
	"sync"

	"smartgym/pkg/model"
)

type memoryAttendanceRepository struct {
	mu      sync.RWMutex
	byEmail map[string][]model.AttendanceRecord
}

func NewMemoryAttendanceRepository() AttendanceRepository {
	return &memoryAttendanceRepository{
		byEmail: make(map[string][]model.AttendanceRecord),
	}
}

func (r *memoryAttendanceRepository) Insert(ctx context.Context, record *model.AttendanceRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byEmail[record.Email] = append(r.byEmail[record.Email], *record)
	return nil
}

func (r *memoryAttendanceRepository) ListByEmail(ctx context.Context, email string) ([]*model.AttendanceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	records := r.byEmail[email]
	result := make([]*model.AttendanceRecord, 0, len(records))
	for _, rec := range records {
		rec := rec
		result = append(result, &rec)
	}
	r.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool { return result[i].Timestamp.Before(result[j].Timestamp) })
	return result, nil
}
