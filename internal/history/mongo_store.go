package history

import (
	"context"
	"fmt"
	"time"

	"smartgym/pkg/config"
	"smartgym/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "History"

// MongoStore persists history entries, one document per booking.
type MongoStore struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoStore(cfg *config.Config) *MongoStore {
	return &MongoStore{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(CollectionName),
	}
}

func (s *MongoStore) Record(ctx context.Context, customerID, trainerID, schedule string) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	entry := model.HistoryEntry{
		CustomerID: customerID,
		TrainerID:  trainerID,
		Schedule:   schedule,
		Note:       NoteFor(trainerID, schedule),
		RecordedAt: time.Now().UTC(),
	}
	if _, err := s.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

func (s *MongoStore) CustomerHistory(ctx context.Context, customerID string) ([]model.HistoryEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{"customer_id": customerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]model.HistoryEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return entries, nil
}
