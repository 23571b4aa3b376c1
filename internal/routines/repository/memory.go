package repository

import (
	"context"
	"maps"
	"sort"
	"sync"

	"smartgym/pkg/model"
)

type memoryRoutineRepository struct {
	mu         sync.RWMutex
	byCustomer map[string][]model.Routine
}

func NewMemoryRoutineRepository() RoutineRepository {
	return &memoryRoutineRepository{
		byCustomer: make(map[string][]model.Routine),
	}
}

func (r *memoryRoutineRepository) Insert(ctx context.Context, routine *model.Routine) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *routine
	stored.Plan = maps.Clone(routine.Plan)
	r.byCustomer[routine.CustomerID] = append(r.byCustomer[routine.CustomerID], stored)
	return nil
}

func (r *memoryRoutineRepository) ListByCustomer(ctx context.Context, customerID string) ([]*model.Routine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	routines := r.byCustomer[customerID]
	result := make([]*model.Routine, 0, len(routines))
	for _, routine := range routines {
		routine := routine
		routine.Plan = maps.Clone(routine.Plan)
		result = append(result, &routine)
	}
	r.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *memoryRoutineRepository) Latest(ctx context.Context, customerID string) (*model.Routine, error) {
	routines, err := r.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(routines) == 0 {
		return nil, ErrNotFound
	}
	return routines[len(routines)-1], nil
}
