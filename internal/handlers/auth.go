package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/maxwharris/Produck/internal/service"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(users *service.UserService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "POST /api/auth/register"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		var req RegisterRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondValidationError(c, err)
			return
		}

		result, err := users.Register(ctx, req.Name, req.Email, req.Password)
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

func Login(users *service.UserService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "POST /api/auth/login"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		var req LoginRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondValidationError(c, err)
			return
		}

		result, err := users.Login(ctx, req.Email, req.Password)
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func GetMe(users *service.UserService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "GET /api/auth/me"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		userID, ok := actingUser(c)
		if !ok {
			return
		}
		user, err := users.Me(ctx, userID)
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
