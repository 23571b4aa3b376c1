package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"smartgym/internal/attendance/repository"
	"smartgym/pkg/config"
	apperrors "smartgym/pkg/errors"
	"smartgym/pkg/model"

	"github.com/google/uuid"
)

type AttendanceService interface {
	RecordAccess(ctx context.Context, dni string) (*model.AccessResult, error)
	ListByDNI(ctx context.Context, dni string) ([]*model.AttendanceRecord, error)
}

// Identities resolves a DNI to its linked email.
type Identities interface {
	Resolve(ctx context.Context, dni string) (*model.IdentityLink, error)
}

// Directory looks parties up by email. Missing parties are NOT_FOUND
// application errors.
type Directory interface {
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
	GetTrainer(ctx context.Context, id string) (*model.Trainer, error)
}

type Option func(*attendanceService)

func WithClock(now func() time.Time) Option {
	return func(s *attendanceService) {
		s.now = now
	}
}

type attendanceService struct {
	repo       repository.AttendanceRepository
	identities Identities
	directory  Directory
	cfg        *config.Config
	now        func() time.Time
	newID      func() string
}

func NewAttendanceService(
	repo repository.AttendanceRepository,
	identities Identities,
	directory Directory,
	cfg *config.Config,
	opts ...Option,
) AttendanceService {
	s := &attendanceService{
		repo:       repo,
		identities: identities,
		directory:  directory,
		cfg:        cfg,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordAccess logs an entry for the party linked to dni. An email that
// is both a customer and a trainer enters as a customer.
func (s *attendanceService) RecordAccess(ctx context.Context, dni string) (*model.AccessResult, error) {
	link, err := s.identities.Resolve(ctx, dni)
	if err != nil {
		return nil, err
	}

	role, name, err := s.recognize(ctx, link.Email)
	if err != nil {
		return nil, err
	}

	record := &model.AttendanceRecord{
		ID:        s.newID(),
		Email:     link.Email,
		Role:      role,
		Timestamp: s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		s.cfg.Log.Error("Failed to record access", "email", link.Email, "error", err)
		return nil, apperrors.Internal("Failed to record access", err)
	}

	s.cfg.Log.Info("Access recorded", "email", record.Email, "role", record.Role)
	return &model.AccessResult{
		Message: fmt.Sprintf("Welcome %s! Access recorded for %s.", name, link.Email),
		Record:  record,
	}, nil
}

func (s *attendanceService) recognize(ctx context.Context, email string) (role, name string, err error) {
	customer, err := s.directory.GetCustomer(ctx, email)
	if err == nil {
		return model.RoleCustomer, customer.Name, nil
	}
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		return "", "", err
	}

	trainer, err := s.directory.GetTrainer(ctx, email)
	if err == nil {
		return model.RoleTrainer, trainer.Name, nil
	}
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		return "", "", err
	}

	return "", "", apperrors.New(
		apperrors.CodeUnknownParty,
		"Identity not recognized for the linked email",
		http.StatusUnprocessableEntity,
	).WithDetails(map[string]any{"email": email})
}

func (s *attendanceService) ListByDNI(ctx context.Context, dni string) ([]*model.AttendanceRecord, error) {
	link, err := s.identities.Resolve(ctx, dni)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.ListByEmail(ctx, link.Email)
	if err != nil {
		s.cfg.Log.Error("Failed to list attendance", "email", link.Email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve attendance", err)
	}
	return records, nil
}
