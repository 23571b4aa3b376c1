package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	migrations "smartgym/internal/migrations/mongo"
	"smartgym/pkg/client"
	"smartgym/pkg/config"
	"smartgym/pkg/logger"
	"smartgym/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const envMongoTestURI = "MONGO_TEST_URI"

func newMongoRepository(t *testing.T) ProgressRepository {
	t.Helper()
	uri := os.Getenv(envMongoTestURI)
	if uri == "" {
		t.Skipf("%s not set", envMongoTestURI)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { _ = mc.Disconnect(context.Background()) })

	name := fmt.Sprintf("smartgym_progress_%d", time.Now().UnixNano())
	db := mc.Database(name)
	t.Cleanup(func() { _ = db.Drop(context.Background()) })
	if err := migrations.RunMigration(ctx, db, logger.Discard()); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	return NewMongoProgressRepository(&config.Config{
		MongoDatabaseName: name,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		Log:               logger.Discard(),
		Client:            &client.Client{Mongo: mc},
	})
}

func TestMongoProgressRepository_UniquePerDay(t *testing.T) {
	repo := newMongoRepository(t)
	ctx := context.Background()
	now := time.Date(2030, 1, 10, 9, 0, 0, 0, time.UTC)

	insert := func(id, date string, weight float64) error {
		return repo.Insert(ctx, &model.ProgressRecord{
			ID: id, CustomerID: "alice@gym.io", Date: date,
			WeightKg: weight, BodyFatPct: 20, MusclePct: 40, CreatedAt: now,
		})
	}

	if err := insert("p2", "2030-01-11", 79); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if err := insert("p1", "2030-01-10", 80); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if err := insert("p3", "2030-01-10", 81); !errors.Is(err, ErrAlreadyRecorded) {
		t.Fatalf("expected ErrAlreadyRecorded, got %v", err)
	}

	got, err := repo.ListByCustomer(ctx, "alice@gym.io")
	if err != nil {
		t.Fatalf("ListByCustomer() error: %v", err)
	}
	if len(got) != 2 || got[0].Date != "2030-01-10" || got[1].Date != "2030-01-11" {
		t.Errorf("expected two records by date, got %+v", got)
	}
}
