package repository

import (
	"context"
	"errors"

	"smartgym/pkg/model"
)

var ErrAlreadyRecorded = errors.New("progress already recorded for that date")

type ProgressRepository interface {
	// Insert fails with ErrAlreadyRecorded when the customer already has a
	// record on the same date.
	Insert(ctx context.Context, record *model.ProgressRecord) error
	// ListByCustomer returns records ordered by date, oldest first.
	ListByCustomer(ctx context.Context, customerID string) ([]*model.ProgressRecord, error)
}
