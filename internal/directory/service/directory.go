package service

import (
	"context"
	"errors"
	"time"

	"smartgym/internal/directory/repository"
	"smartgym/internal/directory/validator"
	"smartgym/pkg/config"
	apperrors "smartgym/pkg/errors"
	"smartgym/pkg/model"
	"smartgym/pkg/sanitizer"
)

type DirectoryService interface {
	RegisterCustomer(ctx context.Context, customer *model.Customer) error
	RegisterTrainer(ctx context.Context, trainer *model.Trainer) error
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
	GetTrainer(ctx context.Context, id string) (*model.Trainer, error)
	ListCustomers(ctx context.Context) ([]*model.Customer, error)
	ListTrainers(ctx context.Context) ([]*model.Trainer, error)
	CustomerExists(ctx context.Context, id string) (bool, error)
	TrainerExists(ctx context.Context, id string) (bool, error)
}

var nowUTC = func() time.Time { return time.Now().UTC() }

type directoryService struct {
	repo      repository.PartyRepository
	validator *validator.PartyValidator
	cfg       *config.Config
}

func NewDirectoryService(repo repository.PartyRepository, validator *validator.PartyValidator, cfg *config.Config) DirectoryService {
	return &directoryService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *directoryService) RegisterCustomer(ctx context.Context, customer *model.Customer) error {
	if customer == nil {
		return apperrors.InvalidInput("Customer cannot be empty")
	}
	customer.ID = sanitizer.NormalizeID(customer.ID)
	customer.Name = sanitizer.NormalizeName(customer.Name)
	if customer.ID == "" {
		return apperrors.InvalidInput("Customer ID cannot be empty")
	}
	if err := s.validator.ValidateCustomer(customer); err != nil {
		s.cfg.Log.Warn("Customer validation failed", "id", customer.ID, "error", err)
		return validationError(err)
	}
	customer.CreatedAt = nowUTC()

	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return apperrors.Conflict("Customer already registered: " + customer.ID)
		}
		s.cfg.Log.Error("Failed to register customer", "id", customer.ID, "error", err)
		return apperrors.Internal("Failed to register customer", err)
	}

	s.cfg.Log.Info("Customer registered successfully", "id", customer.ID)
	return nil
}

func (s *directoryService) RegisterTrainer(ctx context.Context, trainer *model.Trainer) error {
	if trainer == nil {
		return apperrors.InvalidInput("Trainer cannot be empty")
	}
	trainer.ID = sanitizer.NormalizeID(trainer.ID)
	trainer.Name = sanitizer.NormalizeName(trainer.Name)
	trainer.Specialty = sanitizer.TrimAndNormalize(trainer.Specialty)
	if trainer.ID == "" {
		return apperrors.InvalidInput("Trainer ID cannot be empty")
	}
	if err := s.validator.ValidateTrainer(trainer); err != nil {
		s.cfg.Log.Warn("Trainer validation failed", "id", trainer.ID, "error", err)
		return validationError(err)
	}
	trainer.CreatedAt = nowUTC()

	if err := s.repo.CreateTrainer(ctx, trainer); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return apperrors.Conflict("Trainer already registered: " + trainer.ID)
		}
		s.cfg.Log.Error("Failed to register trainer", "id", trainer.ID, "error", err)
		return apperrors.Internal("Failed to register trainer", err)
	}

	s.cfg.Log.Info("Trainer registered successfully", "id", trainer.ID)
	return nil
}

func (s *directoryService) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	id = sanitizer.NormalizeID(id)
	if id == "" {
		return nil, apperrors.InvalidInput("Customer ID cannot be empty")
	}
	customer, err := s.repo.FindCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Customer", id)
		}
		return nil, apperrors.Internal("Failed to retrieve customer", err)
	}
	return customer, nil
}

func (s *directoryService) GetTrainer(ctx context.Context, id string) (*model.Trainer, error) {
	id = sanitizer.NormalizeID(id)
	if id == "" {
		return nil, apperrors.InvalidInput("Trainer ID cannot be empty")
	}
	trainer, err := s.repo.FindTrainer(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Trainer", id)
		}
		return nil, apperrors.Internal("Failed to retrieve trainer", err)
	}
	return trainer, nil
}

func (s *directoryService) ListCustomers(ctx context.Context) ([]*model.Customer, error) {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list customers", "error", err)
		return nil, apperrors.Internal("Failed to retrieve customers", err)
	}
	return customers, nil
}

func (s *directoryService) ListTrainers(ctx context.Context) ([]*model.Trainer, error) {
	trainers, err := s.repo.ListTrainers(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list trainers", "error", err)
		return nil, apperrors.Internal("Failed to retrieve trainers", err)
	}
	return trainers, nil
}

// CustomerExists reports a missing customer as (false, nil); only storage
// failures are errors.
func (s *directoryService) CustomerExists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.FindCustomer(ctx, sanitizer.NormalizeID(id))
	return exists(err)
}

func (s *directoryService) TrainerExists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.FindTrainer(ctx, sanitizer.NormalizeID(id))
	return exists(err)
}

func exists(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Invalid party input", verrs.Details())
	}
	return apperrors.Validation("Invalid party input", map[string]any{"error": err.Error()})
}
