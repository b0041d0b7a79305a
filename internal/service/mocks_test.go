package service

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maxwharris/Produck/internal/models"
	"github.com/maxwharris/Produck/internal/store"
)

type mockStore struct {
	users      *mockUserStore
	categories *mockCategoryStore
	products   *mockProductStore
	reviews    *mockReviewStore
	atomic     bool
}

func newMockStore() *mockStore {
	return &mockStore{
		users:      &mockUserStore{},
		categories: &mockCategoryStore{},
		products:   &mockProductStore{},
		reviews:    &mockReviewStore{},
	}
}

func (m *mockStore) Users() store.UserStore           { return m.users }
func (m *mockStore) Categories() store.CategoryStore { return m.categories }
func (m *mockStore) Products() store.ProductStore     { return m.products }
func (m *mockStore) Reviews() store.ReviewStore       { return m.reviews }
func (m *mockStore) Atomic() bool                     { return m.atomic }
func (m *mockStore) Ping(ctx context.Context) error   { return nil }
func (m *mockStore) Close(ctx context.Context) error  { return nil }

func (m *mockStore) WithinUnit(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *mockStore) assertExpectations(t mock.TestingT) {
	m.users.AssertExpectations(t)
	m.categories.AssertExpectations(t)
	m.products.AssertExpectations(t)
	m.reviews.AssertExpectations(t)
}

var _ store.Store = (*mockStore)(nil)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Insert(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *mockUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*models.User); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if v, ok := args.Get(0).(*models.User); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	args := m.Called(ctx, ids)
	if v, ok := args.Get(0).([]models.User); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) SearchByName(ctx context.Context, text string, limit int64) ([]models.User, error) {
	args := m.Called(ctx, text, limit)
	if v, ok := args.Get(0).([]models.User); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ store.UserStore = (*mockUserStore)(nil)

type mockCategoryStore struct{ mock.Mock }

func (m *mockCategoryStore) Insert(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}
func (m *mockCategoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*models.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCategoryStore) FindByOwnerAndName(ctx context.Context, ownerID primitive.ObjectID, name string) (*models.Category, error) {
	args := m.Called(ctx, ownerID, name)
	if v, ok := args.Get(0).(*models.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCategoryStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error) {
	args := m.Called(ctx, ids)
	if v, ok := args.Get(0).([]models.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCategoryStore) List(ctx context.Context, ownerID *primitive.ObjectID) ([]models.Category, error) {
	args := m.Called(ctx, ownerID)
	if v, ok := args.Get(0).([]models.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCategoryStore) UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, patch store.CategoryPatch) (*models.Category, error) {
	args := m.Called(ctx, id, ownerID, patch)
	if v, ok := args.Get(0).(*models.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCategoryStore) DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Category, error) {
	args := m.Called(ctx, id, ownerID)
	if v, ok := args.Get(0).(*models.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ store.CategoryStore = (*mockCategoryStore)(nil)

type mockProductStore struct{ mock.Mock }

func (m *mockProductStore) Insert(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}
func (m *mockProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*models.Product); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProductStore) List(ctx context.Context, filter store.ProductFilter) ([]models.Product, error) {
	args := m.Called(ctx, filter)
	if v, ok := args.Get(0).([]models.Product); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProductStore) UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, patch store.ProductPatch) (*models.Product, error) {
	args := m.Called(ctx, id, ownerID, patch)
	if v, ok := args.Get(0).(*models.Product); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProductStore) DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Product, error) {
	args := m.Called(ctx, id, ownerID)
	if v, ok := args.Get(0).(*models.Product); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProductStore) Remove(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockProductStore) SyncCategory(ctx context.Context, categoryID primitive.ObjectID, name string, unlink bool) (int64, error) {
	args := m.Called(ctx, categoryID, name, unlink)
	return args.Get(0).(int64), args.Error(1)
}

var _ store.ProductStore = (*mockProductStore)(nil)

type mockReviewStore struct{ mock.Mock }

func (m *mockReviewStore) Insert(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}
func (m *mockReviewStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*models.Review); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockReviewStore) ListByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	args := m.Called(ctx, productID)
	if v, ok := args.Get(0).([]models.Review); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockReviewStore) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Review, error) {
	args := m.Called(ctx, ownerID)
	if v, ok := args.Get(0).([]models.Review); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockReviewStore) LatestForProducts(ctx context.Context, productIDs []primitive.ObjectID) (map[primitive.ObjectID]models.Review, error) {
	args := m.Called(ctx, productIDs)
	if v, ok := args.Get(0).(map[primitive.ObjectID]models.Review); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockReviewStore) UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, patch store.ReviewPatch) (*models.Review, error) {
	args := m.Called(ctx, id, ownerID, patch)
	if v, ok := args.Get(0).(*models.Review); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockReviewStore) DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Review, error) {
	args := m.Called(ctx, id, ownerID)
	if v, ok := args.Get(0).(*models.Review); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ store.ReviewStore = (*mockReviewStore)(nil)
