package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	bookingserrors "smartgym/internal/bookings/errors"
	"smartgym/internal/bookings/repository"
	"smartgym/internal/bookings/validator"
	"smartgym/internal/history"
	"smartgym/pkg/config"
	apperrors "smartgym/pkg/errors"
	"smartgym/pkg/model"
	"smartgym/pkg/sanitizer"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	ListBookings(ctx context.Context) ([]*model.Booking, error)
	ListTrainerBookings(ctx context.Context, trainerID string, date string) ([]*model.Booking, error)
	CancelBooking(ctx context.Context, id int64) error
}

// Directory answers whether a customer or trainer is registered.
type Directory interface {
	CustomerExists(ctx context.Context, id string) (bool, error)
	TrainerExists(ctx context.Context, id string) (bool, error)
}

type Option func(*bookingService)

// WithClock replaces time.Now as the source of "now" for the past check.
func WithClock(now func() time.Time) Option {
	return func(s *bookingService) {
		s.now = now
	}
}

type bookingService struct {
	repo      repository.BookingRepository
	directory Directory
	history   history.Sink
	validator *validator.BookingValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	directory Directory,
	sink history.Sink,
	validator *validator.BookingValidator,
	cfg *config.Config,
	opts ...Option,
) BookingService {
	if sink == nil {
		sink = history.Discard{}
	}
	s := &bookingService{
		repo:      repo,
		directory: directory,
		history:   sink,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *bookingService) CreateBooking(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	if req == nil {
		return nil, apperrors.InvalidInput("Booking request cannot be empty")
	}
	s.sanitize(req)

	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed",
			"customer_id", req.CustomerID,
			"trainer_id", req.TrainerID,
			"error", err,
		)
		return nil, s.invalidInput(err)
	}

	schedule, err := model.NewSchedule(req.Date, req.Time)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	if schedule.At(s.cfg.Location).Before(s.now()) {
		return nil, apperrors.PastSchedule(schedule.String())
	}

	if err := s.verifyParties(ctx, req.CustomerID, req.TrainerID); err != nil {
		var unknown *bookingserrors.UnknownPartyError
		if errors.As(err, &unknown) {
			return nil, apperrors.UnknownParty(unknown.Role, unknown.ID)
		}
		return nil, err
	}

	booking := &model.Booking{
		CustomerID: req.CustomerID,
		TrainerID:  req.TrainerID,
		Schedule:   schedule,
		Note:       req.Note,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.repo.Insert(ctx, booking); err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrDuplicateBooking):
			return nil, apperrors.DuplicateBooking(schedule.String())
		case errors.Is(err, bookingserrors.ErrTrainerBusy):
			return nil, apperrors.TrainerBusy(booking.TrainerID, schedule.String())
		}
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.recordHistory(ctx, booking)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"customer_id", booking.CustomerID,
		"trainer_id", booking.TrainerID,
		"schedule", booking.Schedule.String(),
	)
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) ListTrainerBookings(ctx context.Context, trainerID string, date string) ([]*model.Booking, error) {
	trainerID = sanitizer.NormalizeID(trainerID)
	date = sanitizer.TrimAndNormalize(date)
	if trainerID == "" || date == "" {
		return nil, apperrors.InvalidInput("Trainer ID and date are required")
	}
	if _, err := model.NewSchedule(date, "00:00"); err != nil {
		return nil, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}

	bookings, err := s.repo.FindByTrainerAndDate(ctx, trainerID, date)
	if err != nil {
		s.cfg.Log.Error("Failed to list trainer bookings",
			"trainer_id", trainerID,
			"date", date,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve trainer bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.InvalidInput("Booking ID must be a positive integer")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", strconv.FormatInt(id, 10))
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return apperrors.Internal("Failed to cancel booking", err)
	}

	s.cfg.Log.Info("Booking cancelled successfully", "id", id)
	return nil
}

func (s *bookingService) sanitize(req *model.BookingRequest) {
	req.CustomerID = sanitizer.NormalizeID(req.CustomerID)
	req.TrainerID = sanitizer.NormalizeID(req.TrainerID)
	req.Date = sanitizer.TrimAndNormalize(req.Date)
	req.Time = sanitizer.TrimAndNormalize(req.Time)
	req.Note = strings.TrimSpace(req.Note)
}

func (s *bookingService) invalidInput(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.InvalidInput("Invalid booking input").WithDetails(verrs.Details())
	}
	return apperrors.InvalidInput("Invalid booking input")
}

// verifyParties runs the directory lookups outside any repository lock.
// The customer is checked first.
func (s *bookingService) verifyParties(ctx context.Context, customerID, trainerID string) error {
	ok, err := s.directory.CustomerExists(ctx, customerID)
	if err != nil {
		s.cfg.Log.Error("Failed to look up customer", "customer_id", customerID, "error", err)
		return apperrors.Internal("Failed to look up customer", err)
	}
	if !ok {
		return &bookingserrors.UnknownPartyError{Role: bookingserrors.RoleCustomer, ID: customerID}
	}

	ok, err = s.directory.TrainerExists(ctx, trainerID)
	if err != nil {
		s.cfg.Log.Error("Failed to look up trainer", "trainer_id", trainerID, "error", err)
		return apperrors.Internal("Failed to look up trainer", err)
	}
	if !ok {
		return &bookingserrors.UnknownPartyError{Role: bookingserrors.RoleTrainer, ID: trainerID}
	}
	return nil
}

// recordHistory never fails the booking: the slot is already committed.
func (s *bookingService) recordHistory(ctx context.Context, booking *model.Booking) {
	timeout := s.cfg.HistoryPublishTimeout
	if timeout <= 0 {
		timeout = config.DefaultHistoryPublishTimeout
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := s.history.Record(ctx, booking.CustomerID, booking.TrainerID, booking.Schedule.String()); err != nil {
		s.cfg.Log.Warn("Failed to record booking history",
			"id", booking.ID,
			"customer_id", booking.CustomerID,
			"error", err,
		)
	}
}
