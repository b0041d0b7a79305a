package service

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maxwharris/Produck/internal/apperror"
	"github.com/maxwharris/Produck/internal/models"
	"github.com/maxwharris/Produck/internal/store"
)

// ReviewFields are the review inputs that may ride along with a product
// create or update. Nil means the field was not sent.
type ReviewFields struct {
	Rating   *int
	Blurb    *string
	TimeUsed *string
	Photos   []string
	Cost     *float64
}

func (r ReviewFields) Empty() bool {
	return r.Rating == nil && r.Blurb == nil && r.TimeUsed == nil && r.Photos == nil && r.Cost == nil
}

// Complete reports whether rating, blurb and timeUsed are all present.
func (r ReviewFields) Complete() bool {
	return r.Rating != nil &&
		r.Blurb != nil && strings.TrimSpace(*r.Blurb) != "" &&
		r.TimeUsed != nil && strings.TrimSpace(*r.TimeUsed) != ""
}

func (r ReviewFields) validate() error {
	if r.Rating != nil && !models.ValidRating(*r.Rating) {
		return apperror.NewValidation("rating must be between 1 and 5")
	}
	if r.Cost != nil && *r.Cost < 0 {
		return apperror.NewValidation("cost must not be negative")
	}
	return nil
}

// build returns nil when the fields are not complete. Cost falls back to
// defaultCost.
func (r ReviewFields) build(ownerID, productID primitive.ObjectID, defaultCost float64) *models.Review {
	if !r.Complete() {
		return nil
	}
	cost := defaultCost
	if r.Cost != nil {
		cost = *r.Cost
	}
	return &models.Review{
		ProductID: productID,
		OwnerID:   ownerID,
		Rating:    *r.Rating,
		Blurb:     strings.TrimSpace(*r.Blurb),
		TimeUsed:  strings.TrimSpace(*r.TimeUsed),
		Photos:    models.StringList(r.Photos).Compact(),
		Cost:      cost,
	}
}

func (r ReviewFields) patch() store.ReviewPatch {
	patch := store.ReviewPatch{
		Rating:   r.Rating,
		Blurb:    trimmedPtr(r.Blurb),
		TimeUsed: trimmedPtr(r.TimeUsed),
		Cost:     r.Cost,
	}
	if r.Photos != nil {
		photos := models.StringList(r.Photos).Compact()
		patch.Photos = &photos
	}
	return patch
}
