package repository

import (
	"context"
	"sort"
	"sync"

	"smartgym/pkg/model"
)

type memoryPartyRepository struct {
	mu        sync.RWMutex
	customers map[string]model.Customer
	trainers  map[string]model.Trainer
}

func NewMemoryPartyRepository() PartyRepository {
	return &memoryPartyRepository{
		customers: make(map[string]model.Customer),
		trainers:  make(map[string]model.Trainer),
	}
}

func (r *memoryPartyRepository) CreateCustomer(ctx context.Context, customer *model.Customer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[customer.ID]; ok {
		return ErrAlreadyExists
	}
	r.customers[customer.ID] = *customer
	return nil
}

func (r *memoryPartyRepository) CreateTrainer(ctx context.Context, trainer *model.Trainer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.trainers[trainer.ID]; ok {
		return ErrAlreadyExists
	}
	r.trainers[trainer.ID] = *trainer
	return nil
}

func (r *memoryPartyRepository) FindCustomer(ctx context.Context, id string) (*model.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *memoryPartyRepository) FindTrainer(ctx context.Context, id string) (*model.Trainer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.trainers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (r *memoryPartyRepository) ListCustomers(ctx context.Context) ([]*model.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	result := make([]*model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		c := c
		result = append(result, &c)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memoryPartyRepository) ListTrainers(ctx context.Context) ([]*model.Trainer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	result := make([]*model.Trainer, 0, len(r.trainers))
	for _, t := range r.trainers {
		t := t
		result = append(result, &t)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
