package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "smartgym/internal/bookings/errors"
	"smartgym/pkg/config"
	mongotx "smartgym/pkg/db/mongo"
	"smartgym/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Bookings"
	SequenceName   = "bookings"
)

// mongoBookingRepository relies on the unique indexes created by the
// migrations package (trainer_id+date+time and
// customer_id+trainer_id+date+time). The server rejects a conflicting insert
// atomically; the repository only translates the duplicate-key error.
type mongoBookingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// A SessionContext cannot be wrapped without breaking transaction semantics.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) Insert(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	candidate := *booking
	err := r.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		id, err := mongotx.NextSequence(sessCtx, r.db, SequenceName)
		if err != nil {
			return err
		}
		candidate.ID = id
		_, err = r.collection.InsertOne(sessCtx, &candidate)
		return err
	})
	if err != nil {
		if mongotx.IsDuplicateKey(err) {
			return r.classifyConflict(ctx, booking)
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	booking.ID = candidate.ID
	return nil
}

// classifyConflict decides which uniqueness rule an insert violated by
// looking at the current holder of the slot. If the holder was cancelled in
// the meantime the slot was still taken when the insert ran, so the result
// is TrainerBusy.
func (r *mongoBookingRepository) classifyConflict(ctx context.Context, booking *model.Booking) error {
	filter := bson.M{
		"trainer_id": booking.TrainerID,
		"date":       booking.Date,
		"time":       booking.Time,
	}

	var holder model.Booking
	err := r.collection.FindOne(ctx, filter).Decode(&holder)
	if err == nil && holder.CustomerID == booking.CustomerID {
		return bookingserrors.ErrDuplicateBooking
	}
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to inspect conflicting booking: %w", err)
	}
	return bookingserrors.ErrTrainerBusy
}

func (r *mongoBookingRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if result.DeletedCount == 0 {
		return bookingserrors.ErrNotFound
	}

	return nil
}

func (r *mongoBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	// Ids come from a monotonic sequence, so _id order is insertion order.
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *mongoBookingRepository) FindByTrainerAndDate(ctx context.Context, trainerID string, date string) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"trainer_id": trainerID,
		"date":       date,
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "time", Value: 1},
		{Key: "_id", Value: 1},
	})
	return r.find(ctx, filter, opts)
}

func (r *mongoBookingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Booking, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := make([]*model.Booking, 0)
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
