package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/maxwharris/Produck/internal/service"
)

type CreateReviewRequest struct {
	ProductID string   `json:"productId" binding:"required"`
	Rating    *int     `json:"rating" binding:"required"`
	Blurb     *string  `json:"blurb" binding:"required"`
	TimeUsed  *string  `json:"timeUsed" binding:"required"`
	Photos    []string `json:"photos"`
	Cost      *float64 `json:"cost"`
}

type UpdateReviewRequest struct {
	Rating   *int     `json:"rating"`
	Blurb    *string  `json:"blurb"`
	TimeUsed *string  `json:"timeUsed"`
	Photos   []string `json:"photos"`
	Cost     *float64 `json:"cost"`
}

// ListReviews serves a product's reviews when productId is given, otherwise
// the caller's own reviews.
func ListReviews(products *service.ProductService, reviews *service.ReviewService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "GET /api/reviews"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		if productID := strings.TrimSpace(c.Query("productId")); productID != "" {
			items, err := products.ReviewsFor(ctx, productID)
			if err != nil {
				respondError(c, log, route, err)
				return
			}
			c.JSON(http.StatusOK, items)
			return
		}

		ownerID, ok := actingUser(c)
		if !ok {
			return
		}
		items, err := reviews.ListMine(ctx, ownerID)
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func GetReview(reviews *service.ReviewService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "GET /api/reviews/:id"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		item, err := reviews.Get(ctx, c.Param("id"))
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func CreateReview(reviews *service.ReviewService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "POST /api/reviews"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		ownerID, ok := actingUser(c)
		if !ok {
			return
		}
		var req CreateReviewRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondValidationError(c, err)
			return
		}

		item, err := reviews.Create(ctx, ownerID, req.ProductID, service.ReviewFields{
			Rating:   req.Rating,
			Blurb:    req.Blurb,
			TimeUsed: req.TimeUsed,
			Photos:   req.Photos,
			Cost:     req.Cost,
		})
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func UpdateReview(reviews *service.ReviewService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "PUT /api/reviews/:id"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		ownerID, ok := actingUser(c)
		if !ok {
			return
		}
		var req UpdateReviewRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondValidationError(c, err)
			return
		}

		item, err := reviews.Update(ctx, c.Param("id"), ownerID, service.ReviewFields{
			Rating:   req.Rating,
			Blurb:    req.Blurb,
			TimeUsed: req.TimeUsed,
			Photos:   req.Photos,
			Cost:     req.Cost,
		})
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func DeleteReview(reviews *service.ReviewService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "DELETE /api/reviews/:id"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		ownerID, ok := actingUser(c)
		if !ok {
			return
		}
		if err := reviews.Delete(ctx, c.Param("id"), ownerID); err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
	}
}
