package service

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"smartgym/internal/bookings/repository"
	migrations "smartgym/internal/migrations/mongo"
	"smartgym/pkg/client"
	"smartgym/pkg/config"
	"smartgym/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnvMongoTestURI points at a replica set; transactions are not available
// on a standalone server.
const EnvMongoTestURI = "MONGO_TEST_URI"

func TestScheduler_MongoRepository(t *testing.T) {
	uri := os.Getenv(EnvMongoTestURI)
	if uri == "" {
		t.Skipf("%s not set", EnvMongoTestURI)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { _ = mc.Disconnect(context.Background()) })
	if err := mc.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping: %v", err)
	}

	runSchedulerSuite(t, func(t *testing.T) repository.BookingRepository {
		name := fmt.Sprintf("smartgym_test_%d", time.Now().UnixNano())
		db := mc.Database(name)
		t.Cleanup(func() { _ = db.Drop(context.Background()) })

		if err := migrations.RunMigration(context.Background(), db, logger.Discard()); err != nil {
			t.Fatalf("migration failed: %v", err)
		}

		cfg := &config.Config{
			MongoDatabaseName: name,
			ReadTimeout:       5 * time.Second,
			WriteTimeout:      30 * time.Second,
			Log:               logger.Discard(),
			Client:            &client.Client{Mongo: mc},
		}
		return repository.NewMongoBookingRepository(cfg)
	})
}
