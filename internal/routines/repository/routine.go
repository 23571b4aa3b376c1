package repository

import (
	"context"
	"errors"
	"fmt"

	"smartgym/pkg/config"
	"smartgym/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const RoutinesCollection = "Routines"

type mongoRoutineRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRoutineRepository(cfg *config.Config) RoutineRepository {
	return &mongoRoutineRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(RoutinesCollection),
	}
}

func (r *mongoRoutineRepository) Insert(ctx context.Context, routine *model.Routine) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, routine); err != nil {
		return fmt.Errorf("failed to insert routine: %w", err)
	}
	return nil
}

func (r *mongoRoutineRepository) ListByCustomer(ctx context.Context, customerID string) ([]*model.Routine, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"customer_id": customerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list routines: %w", err)
	}
	defer cursor.Close(ctx)

	routines := make([]*model.Routine, 0)
	if err := cursor.All(ctx, &routines); err != nil {
		return nil, fmt.Errorf("failed to decode routines: %w", err)
	}
	return routines, nil
}

func (r *mongoRoutineRepository) Latest(ctx context.Context, customerID string) (*model.Routine, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var routine model.Routine
	if err := r.collection.FindOne(ctx, bson.M{"customer_id": customerID}, opts).Decode(&routine); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest routine: %w", err)
	}
	return &routine, nil
}
