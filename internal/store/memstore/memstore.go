// Package memstore is an in-process store driver. It keeps every collection
// in maps guarded by one lock and is meant for local runs and tests.
package memstore

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maxwharris/Produck/internal/models"
	"github.com/maxwharris/Produck/internal/store"
)

type Store struct {
	mu         sync.RWMutex
	now        func() time.Time
	users      map[primitive.ObjectID]models.User
	categories map[primitive.ObjectID]models.Category
	products   map[primitive.ObjectID]models.Product
	reviews    map[primitive.ObjectID]models.Review
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		now:        func() time.Time { return time.Now().UTC() },
		users:      map[primitive.ObjectID]models.User{},
		categories: map[primitive.ObjectID]models.Category{},
		products:   map[primitive.ObjectID]models.Product{},
		reviews:    map[primitive.ObjectID]models.Review{},
	}
}

func (s *Store) Users() store.UserStore           { return userStore{s} }
func (s *Store) Categories() store.CategoryStore { return categoryStore{s} }
func (s *Store) Products() store.ProductStore     { return productStore{s} }
func (s *Store) Reviews() store.ReviewStore       { return reviewStore{s} }

func (s *Store) WithinUnit(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *Store) Atomic() bool { return false }

func (s *Store) Ping(ctx context.Context) error  { return ctx.Err() }
func (s *Store) Close(ctx context.Context) error { return nil }

// stamp fills id and timestamps the way the mongo driver does on insert.
func (s *Store) stamp(id *primitive.ObjectID, created, updated *time.Time) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
	now := s.now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

// newestFirst orders by creation time, then by id so ties stay stable.
func newestFirst(aCreated, bCreated time.Time, aID, bID primitive.ObjectID) bool {
	if !aCreated.Equal(bCreated) {
		return aCreated.After(bCreated)
	}
	return bytes.Compare(aID[:], bID[:]) > 0
}

func containsFold(value, sub string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(sub))
}

func idSet(ids []primitive.ObjectID) map[primitive.ObjectID]struct{} {
	set := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

type userStore struct{ s *Store }

func (u userStore) Insert(ctx context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, existing := range u.s.users {
		if existing.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	u.s.stamp(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	u.s.users[user.ID] = *user
	return nil
}

func (u userStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	user, ok := u.s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (u userStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	for _, user := range u.s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (u userStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	users := make([]models.User, 0, len(ids))
	for id := range idSet(ids) {
		if user, ok := u.s.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (u userStore) SearchByName(ctx context.Context, text string, limit int64) ([]models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	users := []models.User{}
	for _, user := range u.s.users {
		if containsFold(user.Name, text) {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	if limit > 0 && int64(len(users)) > limit {
		users = users[:limit]
	}
	return users, nil
}

type categoryStore struct{ s *Store }

func (c categoryStore) duplicate(ownerID primitive.ObjectID, name string, except primitive.ObjectID) bool {
	for id, existing := range c.s.categories {
		if id != except && existing.OwnerID == ownerID && existing.Name == name {
			return true
		}
	}
	return false
}

func (c categoryStore) Insert(ctx context.Context, category *models.Category) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if c.duplicate(category.OwnerID, category.Name, primitive.NilObjectID) {
		return store.ErrDuplicate
	}
	c.s.stamp(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	c.s.categories[category.ID] = *category
	return nil
}

func (c categoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	category, ok := c.s.categories[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &category, nil
}

func (c categoryStore) FindByOwnerAndName(ctx context.Context, ownerID primitive.ObjectID, name string) (*models.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	for _, category := range c.s.categories {
		if category.OwnerID == ownerID && category.Name == name {
			return &category, nil
		}
	}
	return nil, store.ErrNotFound
}

func (c categoryStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	categories := make([]models.Category, 0, len(ids))
	for id := range idSet(ids) {
		if category, ok := c.s.categories[id]; ok {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

func (c categoryStore) List(ctx context.Context, ownerID *primitive.ObjectID) ([]models.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	categories := []models.Category{}
	for _, category := range c.s.categories {
		if ownerID == nil || category.OwnerID == *ownerID {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (c categoryStore) UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, patch store.CategoryPatch) (*models.Category, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	category, ok := c.s.categories[id]
	if !ok || category.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	if patch.Name != nil {
		if c.duplicate(ownerID, *patch.Name, id) {
			return nil, store.ErrDuplicate
		}
		category.Name = *patch.Name
	}
	if patch.Color != nil {
		category.Color = *patch.Color
	}
	category.UpdatedAt = c.s.now()
	c.s.categories[id] = category
	return &category, nil
}

func (c categoryStore) DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Category, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	category, ok := c.s.categories[id]
	if !ok || category.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	delete(c.s.categories, id)
	return &category, nil
}

type productStore struct{ s *Store }

func (p productStore) Insert(ctx context.Context, product *models.Product) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	p.s.stamp(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	p.s.products[product.ID] = *product
	return nil
}

func (p productStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	product, ok := p.s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &product, nil
}

func matchesProduct(product models.Product, filter store.ProductFilter) bool {
	if filter.OwnerID != nil && product.OwnerID != *filter.OwnerID {
		return false
	}
	if c := filter.Category; c != nil {
		linked := product.CategoryID != nil && *product.CategoryID == c.ID
		legacy := product.CategoryID == nil && product.Category == c.Name
		if !linked && !legacy {
			return false
		}
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		if !containsFold(product.Name, search) && !containsFold(product.Description, search) {
			return false
		}
	}
	return true
}

func (p productStore) List(ctx context.Context, filter store.ProductFilter) ([]models.Product, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	products := []models.Product{}
	for _, product := range p.s.products {
		if matchesProduct(product, filter) {
			products = append(products, product)
		}
	}
	sort.Slice(products, func(i, j int) bool {
		return newestFirst(products[i].CreatedAt, products[j].CreatedAt, products[i].ID, products[j].ID)
	})
	return products, nil
}

func (p productStore) UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, patch store.ProductPatch) (*models.Product, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	product, ok := p.s.products[id]
	if !ok || product.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.UnsetCategoryID {
		product.CategoryID = nil
	}
	if patch.CategoryID != nil {
		categoryID := *patch.CategoryID
		product.CategoryID = &categoryID
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.PurchaseDate != nil {
		product.PurchaseDate = *patch.PurchaseDate
	}
	if patch.Cost != nil {
		product.Cost = *patch.Cost
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.UPC != nil {
		product.UPC = *patch.UPC
	}
	product.UpdatedAt = p.s.now()
	p.s.products[id] = product
	return &product, nil
}

func (p productStore) DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Product, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	product, ok := p.s.products[id]
	if !ok || product.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	delete(p.s.products, id)
	return &product, nil
}

func (p productStore) Remove(ctx context.Context, id primitive.ObjectID) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	delete(p.s.products, id)
	return nil
}

func (p productStore) SyncCategory(ctx context.Context, categoryID primitive.ObjectID, name string, unlink bool) (int64, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	var touched int64
	for id, product := range p.s.products {
		if product.CategoryID == nil || *product.CategoryID != categoryID {
			continue
		}
		product.Category = name
		if unlink {
			product.CategoryID = nil
		}
		p.s.products[id] = product
		touched++
	}
	return touched, nil
}

type reviewStore struct{ s *Store }

func cloneReview(review models.Review) models.Review {
	review.Photos = append(models.StringList{}, review.Photos...)
	return review
}

func (r reviewStore) Insert(ctx context.Context, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.stamp(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	r.s.reviews[review.ID] = cloneReview(*review)
	return nil
}

func (r reviewStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	review, ok := r.s.reviews[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	review = cloneReview(review)
	return &review, nil
}

func (r reviewStore) collect(match func(models.Review) bool) []models.Review {
	reviews := []models.Review{}
	for _, review := range r.s.reviews {
		if match(review) {
			reviews = append(reviews, cloneReview(review))
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		return newestFirst(reviews[i].CreatedAt, reviews[j].CreatedAt, reviews[i].ID, reviews[j].ID)
	})
	return reviews
}

func (r reviewStore) ListByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.collect(func(review models.Review) bool { return review.ProductID == productID }), nil
}

func (r reviewStore) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.collect(func(review models.Review) bool { return review.OwnerID == ownerID }), nil
}

func (r reviewStore) LatestForProducts(ctx context.Context, productIDs []primitive.ObjectID) (map[primitive.ObjectID]models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := idSet(productIDs)
	latest := make(map[primitive.ObjectID]models.Review, len(productIDs))
	for _, review := range r.collect(func(review models.Review) bool {
		_, ok := wanted[review.ProductID]
		return ok
	}) {
		if _, seen := latest[review.ProductID]; !seen {
			latest[review.ProductID] = review
		}
	}
	return latest, nil
}

func (r reviewStore) UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, patch store.ReviewPatch) (*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	review, ok := r.s.reviews[id]
	if !ok || review.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	if patch.Rating != nil {
		review.Rating = *patch.Rating
	}
	if patch.Blurb != nil {
		review.Blurb = *patch.Blurb
	}
	if patch.Photos != nil {
		review.Photos = append(models.StringList{}, (*patch.Photos)...)
	}
	if patch.Cost != nil {
		review.Cost = *patch.Cost
	}
	if patch.TimeUsed != nil {
		review.TimeUsed = *patch.TimeUsed
	}
	review.UpdatedAt = r.s.now()
	r.s.reviews[id] = review
	review = cloneReview(review)
	return &review, nil
}

func (r reviewStore) DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	review, ok := r.s.reviews[id]
	if !ok || review.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	delete(r.s.reviews, id)
	return &review, nil
}
