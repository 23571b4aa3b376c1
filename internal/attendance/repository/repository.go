package repository

import (
	"context"

	"smartgym/pkg/model"
)

// AttendanceRepository is an append-only log of gym entries.
type AttendanceRepository interface {
	Insert(ctx context.Context, record *model.AttendanceRecord) error
	// ListByEmail returns the entries of one party, oldest first.
	ListByEmail(ctx context.Context, email string) ([]*model.AttendanceRecord, error)
}
