package repository

import (
	"context"
	"fmt"

	"smartgym/pkg/config"
	"smartgym/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const AttendanceCollection = "Attendance"

type mongoAttendanceRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAttendanceRepository(cfg *config.Config) AttendanceRepository {
	return &mongoAttendanceRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(AttendanceCollection),
	}
}

func (r *mongoAttendanceRepository) Insert(ctx context.Context, record *model.AttendanceRecord) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert attendance record: %w", err)
	}
	return nil
}

func (r *mongoAttendanceRepository) ListByEmail(ctx context.Context, email string) ([]*model.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]*model.AttendanceRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode attendance: %w", err)
	}
	return records, nil
}
