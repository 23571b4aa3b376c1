package repository

import (
	"context"
	"errors"

	"smartgym/pkg/model"
)

var ErrNotFound = errors.New("routine not found")

type RoutineRepository interface {
	Insert(ctx context.Context, routine *model.Routine) error
	// ListByCustomer returns every routine ever assigned, oldest first.
	ListByCustomer(ctx context.Context, customerID string) ([]*model.Routine, error)
	// Latest returns the most recently assigned routine or ErrNotFound.
	Latest(ctx context.Context, customerID string) (*model.Routine, error)
}
