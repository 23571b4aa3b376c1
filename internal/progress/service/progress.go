package service

import (
	"context"
	"errors"
	"time"

	"smartgym/internal/progress/repository"
	"smartgym/internal/progress/validator"
	"smartgym/pkg/config"
	apperrors "smartgym/pkg/errors"
	"smartgym/pkg/model"
	"smartgym/pkg/sanitizer"

	"github.com/google/uuid"
)

type ProgressService interface {
	Add(ctx context.Context, req *model.ProgressRequest) (*model.ProgressRecord, error)
	Summary(ctx context.Context, dni string) (*model.ProgressSummary, error)
}

// Customers resolves a DNI straight to the linked customer.
type Customers interface {
	CustomerByDNI(ctx context.Context, dni string) (*model.Customer, error)
}

type Option func(*progressService)

func WithClock(now func() time.Time) Option {
	return func(s *progressService) {
		s.now = now
	}
}

type progressService struct {
	repo      repository.ProgressRepository
	customers Customers
	validator *validator.ProgressValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewProgressService(
	repo repository.ProgressRepository,
	customers Customers,
	validator *validator.ProgressValidator,
	cfg *config.Config,
	opts ...Option,
) ProgressService {
	s := &progressService{
		repo:      repo,
		customers: customers,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add records today's measurements, where today is taken in the gym's
// timezone.
func (s *progressService) Add(ctx context.Context, req *model.ProgressRequest) (*model.ProgressRecord, error) {
	if req == nil {
		return nil, apperrors.InvalidInput("Progress request cannot be empty")
	}
	req.DNI = sanitizer.NormalizeID(req.DNI)
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Progress validation failed", "dni", req.DNI, "error", err)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, apperrors.Validation("Invalid progress measurements", verrs.Details())
		}
		return nil, apperrors.Validation("Invalid progress measurements", map[string]any{"error": err.Error()})
	}

	customer, err := s.customers.CustomerByDNI(ctx, req.DNI)
	if err != nil {
		return nil, err
	}

	record := &model.ProgressRecord{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		Date:       s.today(),
		WeightKg:   *req.WeightKg,
		BodyFatPct: *req.BodyFatPct,
		MusclePct:  *req.MusclePct,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		if errors.Is(err, repository.ErrAlreadyRecorded) {
			return nil, apperrors.Conflict("Progress already recorded for " + record.Date)
		}
		s.cfg.Log.Error("Failed to record progress", "customer_id", customer.ID, "error", err)
		return nil, apperrors.Internal("Failed to record progress", err)
	}

	s.cfg.Log.Info("Progress recorded", "customer_id", customer.ID, "date", record.Date)
	return record, nil
}

func (s *progressService) today() string {
	loc := s.cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return s.now().In(loc).Format(model.DateLayout)
}

// Summary lists every record with averages; an empty history averages to 0.
func (s *progressService) Summary(ctx context.Context, dni string) (*model.ProgressSummary, error) {
	customer, err := s.customers.CustomerByDNI(ctx, dni)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.ListByCustomer(ctx, customer.ID)
	if err != nil {
		s.cfg.Log.Error("Failed to list progress", "customer_id", customer.ID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve progress", err)
	}

	summary := &model.ProgressSummary{Items: records, Total: len(records)}
	if len(records) == 0 {
		return summary, nil
	}
	for _, rec := range records {
		summary.AvgWeightKg += rec.WeightKg
		summary.AvgBodyFatPct += rec.BodyFatPct
		summary.AvgMusclePct += rec.MusclePct
	}
	n := float64(len(records))
	summary.AvgWeightKg /= n
	summary.AvgBodyFatPct /= n
	summary.AvgMusclePct /= n
	return summary, nil
}
