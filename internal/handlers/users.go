package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/maxwharris/Produck/internal/service"
)

// SearchUsers looks users up by exact email when ?email is set, otherwise by
// name substring.
func SearchUsers(users *service.UserService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "GET /api/users"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		var (
			result interface{}
			err    error
		)
		if email := strings.TrimSpace(c.Query("email")); email != "" {
			result, err = users.FindByEmail(ctx, email)
		} else {
			result, err = users.Search(ctx, c.Query("search"))
		}
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func GetUser(users *service.UserService, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "GET /api/users/:id"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)
		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := users.Get(ctx, c.Param("id"))
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
