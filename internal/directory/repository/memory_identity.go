package repository

import (
	"context"
	"sync"

	"smartgym/pkg/model"
)

type memoryIdentityRepository struct {
	mu    sync.RWMutex
	links map[string]model.IdentityLink
}

func NewMemoryIdentityRepository() IdentityRepository {
	return &memoryIdentityRepository{
		links: make(map[string]model.IdentityLink),
	}
}

func (r *memoryIdentityRepository) UpsertIdentity(ctx context.Context, link *model.IdentityLink) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.links[link.DNI] = *link
	return nil
}

func (r *memoryIdentityRepository) FindIdentity(ctx context.Context, dni string) (*model.IdentityLink, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	link, ok := r.links[dni]
	if !ok {
		return nil, ErrNotLinked
	}
	return &link, nil
}
