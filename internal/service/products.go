package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/maxwharris/Produck/internal/apperror"
	"github.com/maxwharris/Produck/internal/models"
	"github.com/maxwharris/Produck/internal/store"
)

var errProductNotOwned = apperror.NewNotFoundOrUnauthorized("Product not found or unauthorized")

type NewProduct struct {
	Name         string
	CategoryID   string
	Category     string
	PurchaseDate time.Time
	Cost         *float64
	Description  string
	UPC          string
	Review       ReviewFields
}

// ProductChanges is a partial update; nil fields are left unchanged.
type ProductChanges struct {
	Name         *string
	CategoryID   *string
	Category     *string
	PurchaseDate *time.Time
	Cost         *float64
	Description  *string
	UPC          *string
	Review       ReviewFields
}

type ProductQuery struct {
	CategoryID string
	OwnerID    string
	Search     string
}

type ProductService struct {
	store store.Store
	log   *zap.SugaredLogger
}

func NewProductService(s store.Store, log *zap.SugaredLogger) *ProductService {
	return &ProductService{store: s, log: log}
}

func (s *ProductService) Create(ctx context.Context, ownerID primitive.ObjectID, in NewProduct) (*models.ProductWithReview, error) {
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return nil, apperror.NewValidation("name is required")
	case in.PurchaseDate.IsZero():
		return nil, apperror.NewValidation("purchaseDate is required")
	case in.Cost == nil:
		return nil, apperror.NewValidation("cost is required")
	case *in.Cost < 0:
		return nil, apperror.NewValidation("cost must not be negative")
	}
	if err := in.Review.validate(); err != nil {
		return nil, err
	}

	categoryID, categoryName, err := s.resolveCategory(ctx, ownerID, in.CategoryID, in.Category)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		Name:         name,
		CategoryID:   categoryID,
		Category:     categoryName,
		PurchaseDate: in.PurchaseDate.UTC(),
		Cost:         *in.Cost,
		Description:  strings.TrimSpace(in.Description),
		UPC:          strings.TrimSpace(in.UPC),
		OwnerID:      ownerID,
	}
	review := in.Review.build(ownerID, primitive.NilObjectID, product.Cost)

	err = s.store.WithinUnit(ctx, func(ctx context.Context) error {
		if err := s.store.Products().Insert(ctx, &product); err != nil {
			return err
		}
		if review == nil {
			return nil
		}
		review.ProductID = product.ID
		if err := s.store.Reviews().Insert(ctx, review); err != nil {
			if !s.store.Atomic() {
				s.discard(ctx, product.ID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, apperror.NewUpstream("failed to create product", err)
	}

	s.log.Infow("product created", "productId", product.ID.Hex(), "ownerId", ownerID.Hex(), "withReview", review != nil)
	return s.expandOne(ctx, product)
}

// discard undoes a product insert whose review could not be written.
func (s *ProductService) discard(ctx context.Context, productID primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.store.Products().Remove(ctx, productID); err != nil {
		s.log.Errorw("failed to remove orphaned product", "productId", productID.Hex(), "error", err)
	}
}

// resolveCategory links to a Category when one can be found. A bare name with
// no matching category of the owner is kept as a name only.
func (s *ProductService) resolveCategory(ctx context.Context, ownerID primitive.ObjectID, rawID, rawName string) (*primitive.ObjectID, string, error) {
	if strings.TrimSpace(rawID) != "" {
		categoryID, err := ParseID("category", rawID)
		if err != nil {
			return nil, "", err
		}
		category, err := s.store.Categories().FindByID(ctx, categoryID)
		if err != nil {
			return nil, "", notFoundAs(err, apperror.NewValidation("category not found"), "failed to load category")
		}
		return &category.ID, category.Name, nil
	}

	name := strings.TrimSpace(rawName)
	if name == "" {
		return nil, "", apperror.NewValidation("category is required")
	}
	category, err := s.store.Categories().FindByOwnerAndName(ctx, ownerID, name)
	switch {
	case err == nil:
		return &category.ID, category.Name, nil
	case errors.Is(err, store.ErrNotFound):
		return nil, name, nil
	default:
		return nil, "", apperror.NewUpstream("failed to load category", err)
	}
}

func (s *ProductService) List(ctx context.Context, q ProductQuery) ([]models.ProductWithReview, error) {
	filter := store.ProductFilter{Search: strings.TrimSpace(q.Search)}

	if strings.TrimSpace(q.CategoryID) != "" {
		categoryID, err := ParseID("category", q.CategoryID)
		if err != nil {
			return nil, err
		}
		category, err := s.store.Categories().FindByID(ctx, categoryID)
		if err != nil {
			return nil, notFoundAs(err, apperror.NewNotFound("Category not found"), "failed to load category")
		}
		filter.Category = category
	}
	if strings.TrimSpace(q.OwnerID) != "" {
		ownerID, err := ParseID("user", q.OwnerID)
		if err != nil {
			return nil, err
		}
		filter.OwnerID = &ownerID
	}

	products, err := s.store.Products().List(ctx, filter)
	if err != nil {
		return nil, apperror.NewUpstream("failed to list products", err)
	}
	return s.expand(ctx, products)
}

func (s *ProductService) Get(ctx context.Context, rawID string) (*models.ProductWithReview, error) {
	productID, err := ParseID("product", rawID)
	if err != nil {
		return nil, err
	}
	product, err := s.store.Products().FindByID(ctx, productID)
	if err != nil {
		return nil, notFoundAs(err, apperror.NewNotFound("Product not found"), "failed to load product")
	}
	return s.expandOne(ctx, *product)
}

func (s *ProductService) Update(ctx context.Context, rawID string, ownerID primitive.ObjectID, changes ProductChanges) (*models.ProductWithReview, error) {
	productID, err := ParseID("product", rawID)
	if err != nil {
		return nil, err
	}
	patch, err := s.productPatch(ctx, ownerID, changes)
	if err != nil {
		return nil, err
	}

	var updated *models.Product
	err = s.store.WithinUnit(ctx, func(ctx context.Context) error {
		product, err := s.store.Products().UpdateOwned(ctx, productID, ownerID, patch)
		if err != nil {
			return err
		}
		updated = product
		if changes.Review.Empty() {
			return nil
		}
		return s.applyReview(ctx, *product, ownerID, changes.Review)
	})
	if err != nil {
		return nil, notFoundAs(err, errProductNotOwned, "failed to update product")
	}

	s.log.Infow("product updated", "productId", productID.Hex(), "ownerId", ownerID.Hex())
	return s.expandOne(ctx, *updated)
}

func (s *ProductService) productPatch(ctx context.Context, ownerID primitive.ObjectID, changes ProductChanges) (store.ProductPatch, error) {
	patch := store.ProductPatch{
		Description: trimmedPtr(changes.Description),
		UPC:         trimmedPtr(changes.UPC),
		Cost:        changes.Cost,
	}
	if changes.Name != nil {
		patch.Name = trimmedPtr(changes.Name)
		if *patch.Name == "" {
			return patch, apperror.NewValidation("name must not be empty")
		}
	}
	if changes.Cost != nil && *changes.Cost < 0 {
		return patch, apperror.NewValidation("cost must not be negative")
	}
	if changes.PurchaseDate != nil {
		date := changes.PurchaseDate.UTC()
		patch.PurchaseDate = &date
	}
	if err := changes.Review.validate(); err != nil {
		return patch, err
	}

	if changes.CategoryID != nil || changes.Category != nil {
		var rawID, rawName string
		if changes.CategoryID != nil {
			rawID = *changes.CategoryID
		}
		if changes.Category != nil {
			rawName = *changes.Category
		}
		categoryID, name, err := s.resolveCategory(ctx, ownerID, rawID, rawName)
		if err != nil {
			return patch, err
		}
		patch.CategoryID = categoryID
		patch.UnsetCategoryID = categoryID == nil
		patch.Category = &name
	}
	return patch, nil
}

// applyReview updates the acting owner's newest review of the product, or
// creates one when none exists and the fields are complete.
func (s *ProductService) applyReview(ctx context.Context, product models.Product, ownerID primitive.ObjectID, fields ReviewFields) error {
	reviews, err := s.store.Reviews().ListByProduct(ctx, product.ID)
	if err != nil {
		return err
	}
	for _, review := range reviews {
		if review.OwnerID == ownerID {
			_, err := s.store.Reviews().UpdateOwned(ctx, review.ID, ownerID, fields.patch())
			return err
		}
	}
	if review := fields.build(ownerID, product.ID, product.Cost); review != nil {
		return s.store.Reviews().Insert(ctx, review)
	}
	return nil
}

func (s *ProductService) Delete(ctx context.Context, rawID string, ownerID primitive.ObjectID) error {
	productID, err := ParseID("product", rawID)
	if err != nil {
		return err
	}
	if _, err := s.store.Products().DeleteOwned(ctx, productID, ownerID); err != nil {
		return notFoundAs(err, errProductNotOwned, "failed to delete product")
	}
	s.log.Infow("product deleted", "productId", productID.Hex(), "ownerId", ownerID.Hex())
	return nil
}

// ReviewsFor lists every review of a product, newest first.
func (s *ProductService) ReviewsFor(ctx context.Context, rawID string) ([]models.Review, error) {
	productID, err := ParseID("product", rawID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.store.Reviews().ListByProduct(ctx, productID)
	if err != nil {
		return nil, apperror.NewUpstream("failed to list reviews", err)
	}
	return reviews, nil
}

func (s *ProductService) expandOne(ctx context.Context, product models.Product) (*models.ProductWithReview, error) {
	expanded, err := s.expand(ctx, []models.Product{product})
	if err != nil {
		return nil, err
	}
	return &expanded[0], nil
}

// expand attaches owners, refreshed category names and newest reviews with
// one batched lookup per collection.
func (s *ProductService) expand(ctx context.Context, products []models.Product) ([]models.ProductWithReview, error) {
	out := make([]models.ProductWithReview, 0, len(products))
	if len(products) == 0 {
		return out, nil
	}

	ownerIDs := make([]primitive.ObjectID, 0, len(products))
	categoryIDs := make([]primitive.ObjectID, 0, len(products))
	productIDs := make([]primitive.ObjectID, 0, len(products))
	for _, product := range products {
		ownerIDs = append(ownerIDs, product.OwnerID)
		productIDs = append(productIDs, product.ID)
		if product.CategoryID != nil {
			categoryIDs = append(categoryIDs, *product.CategoryID)
		}
	}

	users, err := s.store.Users().FindByIDs(ctx, uniqueIDs(ownerIDs))
	if err != nil {
		return nil, apperror.NewUpstream("failed to load owners", err)
	}
	owners := make(map[primitive.ObjectID]models.UserSummary, len(users))
	for _, user := range users {
		owners[user.ID] = user.Summary()
	}

	categoryNames := map[primitive.ObjectID]string{}
	if len(categoryIDs) > 0 {
		categories, err := s.store.Categories().FindByIDs(ctx, uniqueIDs(categoryIDs))
		if err != nil {
			return nil, apperror.NewUpstream("failed to load categories", err)
		}
		for _, category := range categories {
			categoryNames[category.ID] = category.Name
		}
	}

	latest, err := s.store.Reviews().LatestForProducts(ctx, productIDs)
	if err != nil {
		return nil, apperror.NewUpstream("failed to load reviews", err)
	}

	for _, product := range products {
		if product.CategoryID != nil {
			if name, ok := categoryNames[*product.CategoryID]; ok {
				product.Category = name
			}
		}
		item := models.ProductWithReview{Product: product}
		if owner, ok := owners[product.OwnerID]; ok {
			item.Owner = &owner
		}
		if review, ok := latest[product.ID]; ok {
			item.Review = &review
		}
		out = append(out, item)
	}
	return out, nil
}
