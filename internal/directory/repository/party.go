package repository

import (
	"context"
	"errors"
	"fmt"

	"smartgym/pkg/config"
	mongotx "smartgym/pkg/db/mongo"
	"smartgym/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CustomersCollection = "Customers"
	TrainersCollection  = "Trainers"
)

type mongoPartyRepository struct {
	cfg       *config.Config
	customers *mongo.Collection
	trainers  *mongo.Collection
}

func NewMongoPartyRepository(cfg *config.Config) PartyRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPartyRepository{
		cfg:       cfg,
		customers: db.Collection(CustomersCollection),
		trainers:  db.Collection(TrainersCollection),
	}
}

func (r *mongoPartyRepository) CreateCustomer(ctx context.Context, customer *model.Customer) error {
	return r.insert(ctx, r.customers, customer)
}

func (r *mongoPartyRepository) CreateTrainer(ctx context.Context, trainer *model.Trainer) error {
	return r.insert(ctx, r.trainers, trainer)
}

func (r *mongoPartyRepository) insert(ctx context.Context, coll *mongo.Collection, doc any) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongotx.IsDuplicateKey(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert into %s: %w", coll.Name(), err)
	}
	return nil
}

func (r *mongoPartyRepository) FindCustomer(ctx context.Context, id string) (*model.Customer, error) {
	var c model.Customer
	if err := r.findOne(ctx, r.customers, id, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *mongoPartyRepository) FindTrainer(ctx context.Context, id string) (*model.Trainer, error) {
	var t model.Trainer
	if err := r.findOne(ctx, r.trainers, id, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *mongoPartyRepository) findOne(ctx context.Context, coll *mongo.Collection, id string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to find %s in %s: %w", id, coll.Name(), err)
	}
	return nil
}

func (r *mongoPartyRepository) ListCustomers(ctx context.Context) ([]*model.Customer, error) {
	customers := make([]*model.Customer, 0)
	if err := r.list(ctx, r.customers, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *mongoPartyRepository) ListTrainers(ctx context.Context) ([]*model.Trainer, error) {
	trainers := make([]*model.Trainer, 0)
	if err := r.list(ctx, r.trainers, &trainers); err != nil {
		return nil, err
	}
	return trainers, nil
}

func (r *mongoPartyRepository) list(ctx context.Context, coll *mongo.Collection, out any) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return nil
}
