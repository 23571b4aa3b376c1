package repository

import (
	"context"
	"fmt"

	"smartgym/pkg/config"
	mongotx "smartgym/pkg/db/mongo"
	"smartgym/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ProgressCollection = "Progress"

// mongoProgressRepository relies on the uk_progress_customer_date index to
// reject a second record on the same day.
type mongoProgressRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoProgressRepository(cfg *config.Config) ProgressRepository {
	return &mongoProgressRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(ProgressCollection),
	}
}

func (r *mongoProgressRepository) Insert(ctx context.Context, record *model.ProgressRecord) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		if mongotx.IsDuplicateKey(err) {
			return ErrAlreadyRecorded
		}
		return fmt.Errorf("failed to insert progress record: %w", err)
	}
	return nil
}

func (r *mongoProgressRepository) ListByCustomer(ctx context.Context, customerID string) ([]*model.ProgressRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"customer_id": customerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]*model.ProgressRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode progress: %w", err)
	}
	return records, nil
}
