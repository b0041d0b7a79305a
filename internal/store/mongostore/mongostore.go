// Package mongostore implements the store contract on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/maxwharris/Produck/internal/store"
)

const (
	usersCollection      = "users"
	categoriesCollection = "categories"
	productsCollection   = "products"
	reviewsCollection    = "reviews"
)

type Store struct {
	db           *mongo.Database
	transactions bool
	now          func() time.Time
}

var _ store.Store = (*Store)(nil)

// New wraps db. With transactions enabled the server must be a replica set
// member or mongos.
func New(db *mongo.Database, transactions bool) *Store {
	return &Store{
		db:           db,
		transactions: transactions,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Database() *mongo.Database { return s.db }

func (s *Store) Users() store.UserStore {
	return userStore{coll: s.db.Collection(usersCollection), now: s.now}
}

func (s *Store) Categories() store.CategoryStore {
	return categoryStore{coll: s.db.Collection(categoriesCollection), now: s.now}
}

func (s *Store) Products() store.ProductStore {
	return productStore{coll: s.db.Collection(productsCollection), now: s.now}
}

func (s *Store) Reviews() store.ReviewStore {
	return reviewStore{coll: s.db.Collection(reviewsCollection), now: s.now}
}

func (s *Store) Atomic() bool { return s.transactions }

func (s *Store) WithinUnit(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.transactions {
		return fn(ctx)
	}

	session, err := s.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return s.db.Client().Ping(checkCtx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

// translate maps driver errors onto the store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return errors.Join(store.ErrDuplicate, err)
	default:
		return err
	}
}

func returnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}
