package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/maxwharris/Produck/internal/apperror"
	"github.com/maxwharris/Produck/internal/models"
	"github.com/maxwharris/Produck/internal/store"
)

var errReviewNotOwned = apperror.NewNotFoundOrUnauthorized("Review not found or unauthorized")

type ReviewService struct {
	store store.Store
	log   *zap.SugaredLogger
}

func NewReviewService(s store.Store, log *zap.SugaredLogger) *ReviewService {
	return &ReviewService{store: s, log: log}
}

// Create adds a standalone review to an existing product. Cost defaults to
// the product's cost.
func (s *ReviewService) Create(ctx context.Context, ownerID primitive.ObjectID, rawProductID string, fields ReviewFields) (*models.Review, error) {
	productID, err := ParseID("product", rawProductID)
	if err != nil {
		return nil, err
	}
	if err := fields.validate(); err != nil {
		return nil, err
	}
	if !fields.Complete() {
		return nil, apperror.NewValidation("rating, blurb and timeUsed are required")
	}

	product, err := s.store.Products().FindByID(ctx, productID)
	if err != nil {
		return nil, notFoundAs(err, apperror.NewNotFound("Product not found"), "failed to load product")
	}

	review := fields.build(ownerID, product.ID, product.Cost)
	if err := s.store.Reviews().Insert(ctx, review); err != nil {
		return nil, apperror.NewUpstream("failed to create review", err)
	}
	s.log.Infow("review created", "reviewId", review.ID.Hex(), "productId", productID.Hex())
	return review, nil
}

func (s *ReviewService) ListMine(ctx context.Context, ownerID primitive.ObjectID) ([]models.Review, error) {
	reviews, err := s.store.Reviews().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.NewUpstream("failed to list reviews", err)
	}
	return reviews, nil
}

func (s *ReviewService) Get(ctx context.Context, rawID string) (*models.Review, error) {
	reviewID, err := ParseID("review", rawID)
	if err != nil {
		return nil, err
	}
	review, err := s.store.Reviews().FindByID(ctx, reviewID)
	if err != nil {
		return nil, notFoundAs(err, apperror.NewNotFound("Review not found"), "failed to load review")
	}
	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, rawID string, ownerID primitive.ObjectID, fields ReviewFields) (*models.Review, error) {
	reviewID, err := ParseID("review", rawID)
	if err != nil {
		return nil, err
	}
	if err := fields.validate(); err != nil {
		return nil, err
	}
	if fields.Blurb != nil && strings.TrimSpace(*fields.Blurb) == "" {
		return nil, apperror.NewValidation("blurb must not be empty")
	}
	if fields.TimeUsed != nil && strings.TrimSpace(*fields.TimeUsed) == "" {
		return nil, apperror.NewValidation("timeUsed must not be empty")
	}

	review, err := s.store.Reviews().UpdateOwned(ctx, reviewID, ownerID, fields.patch())
	if err != nil {
		return nil, notFoundAs(err, errReviewNotOwned, "failed to update review")
	}
	return review, nil
}

// Delete removes the review document only. Photo URLs are client supplied
// and uploads carry no owner, so the files are left on disk.
func (s *ReviewService) Delete(ctx context.Context, rawID string, ownerID primitive.ObjectID) error {
	reviewID, err := ParseID("review", rawID)
	if err != nil {
		return err
	}
	if _, err := s.store.Reviews().DeleteOwned(ctx, reviewID, ownerID); err != nil {
		return notFoundAs(err, errReviewNotOwned, "failed to delete review")
	}
	s.log.Infow("review deleted", "reviewId", reviewID.Hex(), "ownerId", ownerID.Hex())
	return nil
}
