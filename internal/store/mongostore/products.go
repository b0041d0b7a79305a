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

type productStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func (p productStore) Insert(ctx context.Context, product *models.Product) error {
	now := p.now()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := p.coll.InsertOne(ctx, product)
	if err != nil {
		return translate(err)
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (p productStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	if err := p.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (p productStore) List(ctx context.Context, filter store.ProductFilter) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := p.coll.Find(ctx, productFilterDocument(filter), opts)
	if err != nil {
		return nil, err
	}
	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (p productStore) UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, patch store.ProductPatch) (*models.Product, error) {
	updateSet, updateUnset := productUpdateDocument(patch)
	update := withTimestamp(updateSet, updateUnset, p.now())

	var product models.Product
	err := p.coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "userId": ownerID}, update, returnAfter()).Decode(&product)
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (p productStore) DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	if err := p.coll.FindOneAndDelete(ctx, bson.M{"_id": id, "userId": ownerID}).Decode(&product); err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (p productStore) Remove(ctx context.Context, id primitive.ObjectID) error {
	_, err := p.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (p productStore) SyncCategory(ctx context.Context, categoryID primitive.ObjectID, name string, unlink bool) (int64, error) {
	res, err := p.coll.UpdateMany(ctx, bson.M{"categoryId": categoryID}, categorySyncDocument(name, unlink))
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
