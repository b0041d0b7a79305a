package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maxwharris/Produck/internal/models"
	"github.com/maxwharris/Produck/internal/store"
)

type categoryStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func (c categoryStore) Insert(ctx context.Context, category *models.Category) error {
	now := c.now()
	category.CreatedAt = now
	category.UpdatedAt = now

	res, err := c.coll.InsertOne(ctx, category)
	if err != nil {
		return translate(err)
	}
	category.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (c categoryStore) findOne(ctx context.Context, filter bson.M) (*models.Category, error) {
	var category models.Category
	if err := c.coll.FindOne(ctx, filter).Decode(&category); err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (c categoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	return c.findOne(ctx, bson.M{"_id": id})
}

func (c categoryStore) FindByOwnerAndName(ctx context.Context, ownerID primitive.ObjectID, name string) (*models.Category, error) {
	return c.findOne(ctx, bson.M{"userId": ownerID, "name": name})
}

func (c categoryStore) find(ctx context.Context, filter bson.M) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c categoryStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}
	return c.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (c categoryStore) List(ctx context.Context, ownerID *primitive.ObjectID) ([]models.Category, error) {
	filter := bson.M{}
	if ownerID != nil {
		filter["userId"] = *ownerID
	}
	return c.find(ctx, filter)
}

func (c categoryStore) UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, patch store.CategoryPatch) (*models.Category, error) {
	update := withTimestamp(categoryUpdateDocument(patch), nil, c.now())

	var category models.Category
	err := c.coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "userId": ownerID}, update, returnAfter()).Decode(&category)
	if err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (c categoryStore) DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	if err := c.coll.FindOneAndDelete(ctx, bson.M{"_id": id, "userId": ownerID}).Decode(&category); err != nil {
		return nil, translate(err)
	}
	return &category, nil
}
