package repository

import (
	"context"
	"errors"

	"smartgym/pkg/model"
)

var (
	ErrNotFound = errors.New("party not found")

	ErrAlreadyExists = errors.New("party already registered")

	ErrNotLinked = errors.New("dni not linked")
)

// PartyRepository stores customers and trainers keyed by normalized id.
type PartyRepository interface {
	CreateCustomer(ctx context.Context, customer *model.Customer) error
	CreateTrainer(ctx context.Context, trainer *model.Trainer) error
	FindCustomer(ctx context.Context, id string) (*model.Customer, error)
	FindTrainer(ctx context.Context, id string) (*model.Trainer, error)
	ListCustomers(ctx context.Context) ([]*model.Customer, error)
	ListTrainers(ctx context.Context) ([]*model.Trainer, error)
}

// IdentityRepository stores DNI to email links keyed by normalized DNI.
type IdentityRepository interface {
	// UpsertIdentity creates the link or replaces the email and role of an
	// existing one.
	UpsertIdentity(ctx context.Context, link *model.IdentityLink) error
	FindIdentity(ctx context.Context, dni string) (*model.IdentityLink, error)
}
