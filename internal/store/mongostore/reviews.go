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

type reviewStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
}

func (r reviewStore) Insert(ctx context.Context, review *models.Review) error {
	now := r.now()
	review.CreatedAt = now
	review.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, review)
	if err != nil {
		return translate(err)
	}
	review.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r reviewStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (r reviewStore) find(ctx context.Context, filter bson.M) ([]models.Review, error) {
	cursor, err := r.coll.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r reviewStore) ListByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	return r.find(ctx, bson.M{"productId": productID})
}

func (r reviewStore) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Review, error) {
	return r.find(ctx, bson.M{"userId": ownerID})
}

func (r reviewStore) LatestForProducts(ctx context.Context, productIDs []primitive.ObjectID) (map[primitive.ObjectID]models.Review, error) {
	latest := make(map[primitive.ObjectID]models.Review, len(productIDs))
	if len(productIDs) == 0 {
		return latest, nil
	}

	reviews, err := r.find(ctx, bson.M{"productId": bson.M{"$in": productIDs}})
	if err != nil {
		return nil, err
	}
	for _, review := range reviews {
		if _, seen := latest[review.ProductID]; !seen {
			latest[review.ProductID] = review
		}
	}
	return latest, nil
}

func (r reviewStore) UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, patch store.ReviewPatch) (*models.Review, error) {
	update := withTimestamp(reviewUpdateDocument(patch), nil, r.now())

	var review models.Review
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "userId": ownerID}, update, returnAfter()).Decode(&review)
	if err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (r reviewStore) DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id, "userId": ownerID}).Decode(&review); err != nil {
		return nil, translate(err)
	}
	return &review, nil
}
