package service

import (
	"context"
	"errors"
	"math/rand"
	"slices"
	"strings"
	"time"

	"smartgym/internal/routines/repository"
	"smartgym/pkg/config"
	apperrors "smartgym/pkg/errors"
	"smartgym/pkg/model"

	"github.com/google/uuid"
)

// Weekdays are the training days of a plan, in order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// Blocks are the muscle groups dealt out one per weekday.
var Blocks = []string{"Legs", "Chest", "Back", "Shoulders", "Arms", "Cardio"}

type RoutineService interface {
	Assign(ctx context.Context, dni string) (*model.Routine, error)
	History(ctx context.Context, dni string) ([]*model.Routine, error)
	ActiveBlock(ctx context.Context, dni, day string) (*model.RoutineBlock, error)
}

// Customers resolves a DNI straight to the linked customer.
type Customers interface {
	CustomerByDNI(ctx context.Context, dni string) (*model.Customer, error)
}

type Option func(*routineService)

func WithClock(now func() time.Time) Option {
	return func(s *routineService) {
		s.now = now
	}
}

// WithShuffle replaces the permutation used to deal blocks.
func WithShuffle(shuffle func(n int, swap func(i, j int))) Option {
	return func(s *routineService) {
		s.shuffle = shuffle
	}
}

type routineService struct {
	repo      repository.RoutineRepository
	customers Customers
	cfg       *config.Config
	now       func() time.Time
	shuffle   func(n int, swap func(i, j int))
}

func NewRoutineService(repo repository.RoutineRepository, customers Customers, cfg *config.Config, opts ...Option) RoutineService {
	s := &routineService{
		repo:      repo,
		customers: customers,
		cfg:       cfg,
		now:       time.Now,
		shuffle:   rand.Shuffle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Assign deals a fresh weekly plan; it becomes the active routine and the
// previous ones stay in the history.
func (s *routineService) Assign(ctx context.Context, dni string) (*model.Routine, error) {
	customer, err := s.customers.CustomerByDNI(ctx, dni)
	if err != nil {
		return nil, err
	}

	routine := &model.Routine{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		Plan:       s.weeklyPlan(),
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, routine); err != nil {
		s.cfg.Log.Error("Failed to assign routine", "customer_id", customer.ID, "error", err)
		return nil, apperrors.Internal("Failed to assign routine", err)
	}

	s.cfg.Log.Info("Routine assigned", "customer_id", customer.ID, "routine_id", routine.ID)
	return routine, nil
}

func (s *routineService) weeklyPlan() map[string]string {
	blocks := slices.Clone(Blocks)
	s.shuffle(len(blocks), func(i, j int) { blocks[i], blocks[j] = blocks[j], blocks[i] })

	plan := make(map[string]string, len(Weekdays))
	for i, day := range Weekdays {
		plan[day] = blocks[i]
	}
	return plan
}

func (s *routineService) History(ctx context.Context, dni string) ([]*model.Routine, error) {
	customer, err := s.customers.CustomerByDNI(ctx, dni)
	if err != nil {
		return nil, err
	}
	routines, err := s.repo.ListByCustomer(ctx, customer.ID)
	if err != nil {
		s.cfg.Log.Error("Failed to list routines", "customer_id", customer.ID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve routines", err)
	}
	return routines, nil
}

func (s *routineService) ActiveBlock(ctx context.Context, dni, day string) (*model.RoutineBlock, error) {
	day = strings.ToLower(strings.TrimSpace(day))
	if !slices.Contains(Weekdays, day) {
		return nil, apperrors.InvalidInput("Day must be one of " + strings.Join(Weekdays, ", ")).
			WithDetails(map[string]any{"day": day})
	}

	customer, err := s.customers.CustomerByDNI(ctx, dni)
	if err != nil {
		return nil, err
	}
	routine, err := s.repo.Latest(ctx, customer.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Active routine")
		}
		return nil, apperrors.Internal("Failed to retrieve active routine", err)
	}
	return &model.RoutineBlock{Day: day, Block: routine.Plan[day]}, nil
}
