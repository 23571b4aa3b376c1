package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartgym/internal/progress/repository"
	"smartgym/internal/progress/validator"
	"smartgym/pkg/config"
	apperrors "smartgym/pkg/errors"
	"smartgym/pkg/logger"
	"smartgym/pkg/model"
)

type stubCustomers struct{}

func (stubCustomers) CustomerByDNI(_ context.Context, dni string) (*model.Customer, error) {
	switch dni {
	case "12345678":
		return &model.Customer{ID: "alice@gym.io", Name: "Alice"}, nil
	case "87654321":
		return nil, apperrors.NotFoundWithID("Customer", "mike@gym.io")
	}
	return nil, apperrors.DNINotLinked(dni)
}

type failingRepository struct{}

func (failingRepository) Insert(context.Context, *model.ProgressRecord) error {
	return errors.New("write concern failed")
}

func (failingRepository) ListByCustomer(context.Context, string) ([]*model.ProgressRecord, error) {
	return nil, errors.New("connection reset")
}

func ptr(f float64) *float64 { return &f }

func measurement(dni string, weight, fat, muscle float64) *model.ProgressRequest {
	return &model.ProgressRequest{DNI: dni, WeightKg: ptr(weight), BodyFatPct: ptr(fat), MusclePct: ptr(muscle)}
}

type dayClock struct {
	now time.Time
}

func (c *dayClock) Now() time.Time { return c.now }

func newTestService(repo repository.ProgressRepository, clock *dayClock, loc *time.Location) ProgressService {
	cfg := &config.Config{Log: logger.Discard(), Location: loc}
	return NewProgressService(repo, stubCustomers{}, validator.NewProgressValidator(), cfg, WithClock(clock.Now))
}

func TestAdd_OnePerDay(t *testing.T) {
	clock := &dayClock{now: time.Date(2030, 1, 10, 9, 0, 0, 0, time.UTC)}
	svc := newTestService(repository.NewMemoryProgressRepository(), clock, time.UTC)
	ctx := context.Background()

	rec, err := svc.Add(ctx, measurement(" 12345678 ", 80, 20, 40))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.CustomerID != "alice@gym.io" || rec.Date != "2030-01-10" || rec.WeightKg != 80 {
		t.Errorf("unexpected record %+v", rec)
	}

	if _, err := svc.Add(ctx, measurement("12345678", 79, 19, 41)); !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected CONFLICT for a second record on the same day, got %v", err)
	}

	clock.now = clock.now.Add(24 * time.Hour)
	if _, err := svc.Add(ctx, measurement("12345678", 78, 18, 42)); err != nil {
		t.Fatalf("next day should be accepted, got %v", err)
	}
}

func TestAdd_DateFollowsGymTimezone(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	clock := &dayClock{now: time.Date(2030, 1, 10, 1, 0, 0, 0, time.UTC)}
	svc := newTestService(repository.NewMemoryProgressRepository(), clock, loc)

	rec, err := svc.Add(context.Background(), measurement("12345678", 80, 20, 40))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Date != "2030-01-09" {
		t.Errorf("expected local date 2030-01-09, got %s", rec.Date)
	}
}

func TestAdd_Errors(t *testing.T) {
	clock := &dayClock{now: time.Date(2030, 1, 10, 9, 0, 0, 0, time.UTC)}
	svc := newTestService(repository.NewMemoryProgressRepository(), clock, time.UTC)
	ctx := context.Background()

	tests := []struct {
		name     string
		req      *model.ProgressRequest
		wantCode string
	}{
		{"nil request", nil, apperrors.CodeInvalidInput},
		{"weight out of range", measurement("12345678", 401, 20, 40), apperrors.CodeValidation},
		{"missing muscle", &model.ProgressRequest{DNI: "12345678", WeightKg: ptr(80), BodyFatPct: ptr(20)}, apperrors.CodeValidation},
		{"unlinked dni", measurement("99999999", 80, 20, 40), apperrors.CodeNotFound},
		{"trainer dni", measurement("87654321", 80, 20, 40), apperrors.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tt.req)
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Errorf("expected %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestSummary_Averages(t *testing.T) {
	clock := &dayClock{now: time.Date(2030, 1, 10, 9, 0, 0, 0, time.UTC)}
	svc := newTestService(repository.NewMemoryProgressRepository(), clock, time.UTC)
	ctx := context.Background()

	empty, err := svc.Summary(ctx, "12345678")
	if err != nil {
		t.Fatalf("Summary() error: %v", err)
	}
	if empty.Total != 0 || empty.AvgWeightKg != 0 || empty.Items == nil {
		t.Errorf("expected empty summary with non-nil items, got %+v", empty)
	}

	for _, m := range []*model.ProgressRequest{
		measurement("12345678", 80, 20, 40),
		measurement("12345678", 78, 18, 42),
	} {
		if _, err := svc.Add(ctx, m); err != nil {
			t.Fatalf("Add() error: %v", err)
		}
		clock.now = clock.now.Add(24 * time.Hour)
	}

	summary, err := svc.Summary(ctx, "12345678")
	if err != nil {
		t.Fatalf("Summary() error: %v", err)
	}
	if summary.Total != 2 || summary.Items[0].Date != "2030-01-10" {
		t.Fatalf("unexpected items %+v", summary.Items)
	}
	if summary.AvgWeightKg != 79 || summary.AvgBodyFatPct != 19 || summary.AvgMusclePct != 41 {
		t.Errorf("unexpected averages %+v", summary)
	}

	if _, err := svc.Summary(ctx, "99999999"); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND for unlinked dni, got %v", err)
	}
}

func TestProgress_StorageFailures(t *testing.T) {
	clock := &dayClock{now: time.Date(2030, 1, 10, 9, 0, 0, 0, time.UTC)}
	svc := newTestService(failingRepository{}, clock, time.UTC)
	ctx := context.Background()

	if _, err := svc.Add(ctx, measurement("12345678", 80, 20, 40)); !apperrors.HasCode(err, apperrors.CodeInternal) {
		t.Errorf("expected INTERNAL_ERROR on insert failure, got %v", err)
	}
	if _, err := svc.Summary(ctx, "12345678"); !apperrors.HasCode(err, apperrors.CodeInternal) {
		t.Errorf("expected INTERNAL_ERROR on list failure, got %v", err)
	}
}
