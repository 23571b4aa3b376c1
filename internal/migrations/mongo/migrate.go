package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"smartgym/internal/migrations/mongo/validators"
	"smartgym/pkg/logger"
)

const (
	BookingsCollection  = "Bookings"
	CustomersCollection = "Customers"
	TrainersCollection  = "Trainers"
	HistoryCollection   = "History"
	CountersCollection  = "Counters"

	IdentityLinksCollection = "IdentityLinks"
	AttendanceCollection    = "Attendance"
	RoutinesCollection      = "Routines"
	ProgressCollection      = "Progress"
)

var (
	// The two unique indexes are what keeps a trainer slot single-booked
	// across processes.
	BookingsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "trainer_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "time", Value: 1},
			},
			Options: options.Index().SetName("uk_trainer_schedule").SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "customer_id", Value: 1},
				{Key: "trainer_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "time", Value: 1},
			},
			Options: options.Index().SetName("uk_customer_trainer_schedule").SetUnique(true),
		},
	}

	HistoryIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "recorded_at", Value: 1}}},
	}

	IdentityLinksIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	AttendanceIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "timestamp", Value: 1}}},
	}

	RoutinesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	ProgressIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "customer_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("uk_progress_customer_date").SetUnique(true),
		},
	}
)

type collectionDef struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Collections lists everything RunMigration creates, in creation order.
var Collections = []collectionDef{
	{Name: CustomersCollection, Validator: validators.CustomerValidator},
	{Name: TrainersCollection, Validator: validators.TrainerValidator},
	{Name: BookingsCollection, Indexes: BookingsIndexes, Validator: validators.BookingValidator},
	{Name: HistoryCollection, Indexes: HistoryIndexes, Validator: validators.HistoryValidator},
	{Name: CountersCollection},
	{Name: IdentityLinksCollection, Indexes: IdentityLinksIndexes, Validator: validators.IdentityLinkValidator},
	{Name: AttendanceCollection, Indexes: AttendanceIndexes, Validator: validators.AttendanceValidator},
	{Name: RoutinesCollection, Indexes: RoutinesIndexes, Validator: validators.RoutineValidator},
	{Name: ProgressCollection, Indexes: ProgressIndexes, Validator: validators.ProgressValidator},
}

// RunMigration is idempotent: existing collections get their validator
// refreshed and missing indexes created.
func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, def := range Collections {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if len(def.Indexes) == 0 {
			continue
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully", "database", db.Name())
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection()
		if validator != nil {
			opts.SetValidator(validator)
		}
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	if validator == nil {
		return nil
	}
	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
