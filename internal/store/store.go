// Package store declares the persistence contract for users, categories,
// products and reviews. Drivers live in the mongostore and memstore
// subpackages.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maxwharris/Produck/internal/models"
)

var (
	ErrNotFound  = errors.New("store: document not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

// ProductFilter narrows a product listing. All set fields must match.
type ProductFilter struct {
	OwnerID *primitive.ObjectID
	// Category matches products linked by id, or unlinked products whose
	// stored category name equals Category.Name.
	Category *models.Category
	// Search is a literal, case-insensitive substring of name or description.
	Search string
}

// ProductPatch holds the fields to change; nil fields are left alone.
type ProductPatch struct {
	Name            *string
	CategoryID      *primitive.ObjectID
	UnsetCategoryID bool
	Category        *string
	PurchaseDate    *time.Time
	Cost            *float64
	Description     *string
	UPC             *string
}

type CategoryPatch struct {
	Name  *string
	Color *string
}

type ReviewPatch struct {
	Rating   *int
	Blurb    *string
	Photos   *models.StringList
	Cost     *float64
	TimeUsed *string
}

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	// SearchByName matches a literal case-insensitive substring of the name,
	// sorted by name. An empty text matches everyone.
	SearchByName(ctx context.Context, text string, limit int64) ([]models.User, error)
}

type CategoryStore interface {
	Insert(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindByOwnerAndName(ctx context.Context, ownerID primitive.ObjectID, name string) (*models.Category, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error)
	// List returns categories sorted by name, scoped to ownerID when set.
	List(ctx context.Context, ownerID *primitive.ObjectID) ([]models.Category, error)
	UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, patch CategoryPatch) (*models.Category, error)
	DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Category, error)
}

type ProductStore interface {
	Insert(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	// List returns matching products, newest first.
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, patch ProductPatch) (*models.Product, error)
	DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Product, error)
	// Remove deletes without an ownership check. Used only to undo a
	// half-written create.
	Remove(ctx context.Context, id primitive.ObjectID) error
	// SyncCategory writes name onto every product linked to categoryID and,
	// with unlink, drops the link. It returns the number of products touched.
	SyncCategory(ctx context.Context, categoryID primitive.ObjectID, name string, unlink bool) (int64, error)
}

type ReviewStore interface {
	Insert(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	// ListByProduct returns the product's reviews, newest first.
	ListByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Review, error)
	// LatestForProducts maps each product id to its newest review. Products
	// without reviews are absent from the map.
	LatestForProducts(ctx context.Context, productIDs []primitive.ObjectID) (map[primitive.ObjectID]models.Review, error)
	UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, patch ReviewPatch) (*models.Review, error)
	DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Review, error)
}

type Store interface {
	Users() UserStore
	Categories() CategoryStore
	Products() ProductStore
	Reviews() ReviewStore

	// WithinUnit runs fn with a context whose writes commit together when
	// Atomic reports true. Otherwise writes land one by one and the caller
	// is responsible for undoing partial work.
	WithinUnit(ctx context.Context, fn func(ctx context.Context) error) error
	Atomic() bool

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
