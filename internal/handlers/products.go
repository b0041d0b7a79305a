package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/maxwharris/Produck/internal/service"
)

// reviewRequest carries the review fields accepted alongside a product.
type reviewRequest struct {
	Rating   *int     `json:"rating"`
	Blurb    *string  `json:"blurb"`
	TimeUsed *string  `json:"timeUsed"`
	Photos   []string `json:"photos"`
}

func (r reviewRequest) fields() service.ReviewFields {
	return service.ReviewFields{Rating: r.Rating, Blurb: r.Blurb, TimeUsed: r.TimeUsed, Photos: r.Photos}
}

type CreateProductRequest struct {
	Name         string   `json:"name" binding:"required"`
	Category     string   `json:"category"`
	CategoryID   string   `json:"categoryId"`
	PurchaseDate string   `json:"purchaseDate" binding:"required"`
	Cost         *float64 `json:"cost" binding:"required"`
	Description  string   `json:"description"`
	UPC          string   `json:"upc"`
	reviewRequest
}

type UpdateProductRequest struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	CategoryID   *string  `json:"categoryId"`
	PurchaseDate *string  `json:"purchaseDate"`
	Cost         *float64 `json:"cost"`
	Description  *string  `json:"description"`
	UPC          *string  `json:"upc"`
	reviewRequest
}

func ListProducts(products *service.ProductService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "GET /api/products"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := products.List(ctx, service.ProductQuery{
			CategoryID: c.Query("categoryId"),
			OwnerID:    c.Query("userId"),
			Search:     c.Query("search"),
		})
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func GetProduct(products *service.ProductService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "GET /api/products/:id"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		item, err := products.Get(ctx, c.Param("id"))
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func CreateProduct(products *service.ProductService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "POST /api/products"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		ownerID, ok := actingUser(c)
		if !ok {
			return
		}
		var req CreateProductRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondValidationError(c, err)
			return
		}
		purchaseDate, err := parseDate("purchaseDate", req.PurchaseDate)
		if err != nil {
			respondError(c, log, route, err)
			return
		}

		item, err := products.Create(ctx, ownerID, service.NewProduct{
			Name:         req.Name,
			Category:     req.Category,
			CategoryID:   req.CategoryID,
			PurchaseDate: purchaseDate,
			Cost:         req.Cost,
			Description:  req.Description,
			UPC:          req.UPC,
			Review:       req.fields(),
		})
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func UpdateProduct(products *service.ProductService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "PUT /api/products/:id"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		ownerID, ok := actingUser(c)
		if !ok {
			return
		}
		var req UpdateProductRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondValidationError(c, err)
			return
		}

		changes := service.ProductChanges{
			Name:        req.Name,
			Category:    req.Category,
			CategoryID:  req.CategoryID,
			Cost:        req.Cost,
			Description: req.Description,
			UPC:         req.UPC,
			Review:      req.fields(),
		}
		if req.PurchaseDate != nil {
			purchaseDate, err := parseDate("purchaseDate", *req.PurchaseDate)
			if err != nil {
				respondError(c, log, route, err)
				return
			}
			changes.PurchaseDate = &purchaseDate
		}

		item, err := products.Update(ctx, c.Param("id"), ownerID, changes)
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func DeleteProduct(products *service.ProductService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "DELETE /api/products/:id"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		ownerID, ok := actingUser(c)
		if !ok {
			return
		}
		if err := products.Delete(ctx, c.Param("id"), ownerID); err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

func ProductReviews(products *service.ProductService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "GET /api/products/:id/reviews"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		reviews, err := products.ReviewsFor(ctx, c.Param("id"))
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}
