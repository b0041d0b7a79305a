package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type indexSet struct {
	collection string
	models     []mongo.IndexModel
}

func indexSets() []indexSet {
	return []indexSet{
		{
			collection: "users",
			models: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("email_unique").SetUnique(true),
			}},
		},
		{
			collection: "categories",
			models: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "name", Value: 1}, {Key: "userId", Value: 1}},
				Options: options.Index().SetName("name_owner_unique").SetUnique(true),
			}},
		},
		{
			collection: "products",
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
					Options: options.Index().SetName("owner_created"),
				},
				{
					Keys: bson.D{{Key: "categoryId", Value: 1}},
					Options: options.Index().
						SetName("category_id").
						SetPartialFilterExpression(bson.M{"categoryId": bson.M{"$exists": true}}),
				},
				{
					Keys:    bson.D{{Key: "createdAt", Value: -1}},
					Options: options.Index().SetName("created_desc"),
				},
			},
		},
		{
			collection: "reviews",
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "productId", Value: 1}, {Key: "createdAt", Value: -1}},
					Options: options.Index().SetName("product_created"),
				},
				{
					Keys:    bson.D{{Key: "userId", Value: 1}},
					Options: options.Index().SetName("owner"),
				},
			},
		},
	}
}

// EnsureIndexes creates every index the stores rely on. Each collection is
// attempted even if an earlier one fails; all failures are returned joined.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log *zap.SugaredLogger) error {
	var errs []error
	for _, set := range indexSets() {
		names, err := ensureCollectionIndexes(ctx, db, set)
		if err != nil {
			log.Errorw("index creation failed", "collection", set.collection, "error", err)
			errs = append(errs, err)
			continue
		}
		log.Infow("indexes ensured", "collection", set.collection, "indexes", names)
	}
	return errors.Join(errs...)
}

func ensureCollectionIndexes(ctx context.Context, db *mongo.Database, set indexSet) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return db.Collection(set.collection).Indexes().CreateMany(ctx, set.models)
}
