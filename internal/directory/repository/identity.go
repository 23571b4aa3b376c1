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

const IdentityLinksCollection = "IdentityLinks"

type mongoIdentityRepository struct {
	cfg   *config.Config
	links *mongo.Collection
}

func NewMongoIdentityRepository(cfg *config.Config) IdentityRepository {
	return &mongoIdentityRepository{
		cfg:   cfg,
		links: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(IdentityLinksCollection),
	}
}

func (r *mongoIdentityRepository) UpsertIdentity(ctx context.Context, link *model.IdentityLink) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.links.ReplaceOne(ctx, bson.M{"_id": link.DNI}, link, opts); err != nil {
		return fmt.Errorf("failed to upsert identity link: %w", err)
	}
	return nil
}

func (r *mongoIdentityRepository) FindIdentity(ctx context.Context, dni string) (*model.IdentityLink, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var link model.IdentityLink
	if err := r.links.FindOne(ctx, bson.M{"_id": dni}).Decode(&link); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotLinked
		}
		return nil, fmt.Errorf("failed to find identity link: %w", err)
	}
	return &link, nil
}
