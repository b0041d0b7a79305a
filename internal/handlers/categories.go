package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/maxwharris/Produck/internal/service"
)

type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"required"`
}

type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func ListCategories(categories *service.CategoryService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "GET /api/categories"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := categories.List(ctx, c.Query("userId"))
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func GetCategory(categories *service.CategoryService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "GET /api/categories/:id"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		item, err := categories.Get(ctx, c.Param("id"))
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func CreateCategory(categories *service.CategoryService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "POST /api/categories"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		ownerID, ok := actingUser(c)
		if !ok {
			return
		}
		var req CreateCategoryRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondValidationError(c, err)
			return
		}

		item, err := categories.Create(ctx, ownerID, req.Name, req.Color)
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func UpdateCategory(categories *service.CategoryService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "PUT /api/categories/:id"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		ownerID, ok := actingUser(c)
		if !ok {
			return
		}
		var req UpdateCategoryRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondValidationError(c, err)
			return
		}

		item, err := categories.Update(ctx, c.Param("id"), ownerID, service.CategoryChanges{Name: req.Name, Color: req.Color})
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func DeleteCategory(categories *service.CategoryService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "DELETE /api/categories/:id"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		ownerID, ok := actingUser(c)
		if !ok {
			return
		}
		if err := categories.Delete(ctx, c.Param("id"), ownerID); err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
