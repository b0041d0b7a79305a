package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/maxwharris/Produck/internal/apperror"
	"github.com/maxwharris/Produck/internal/middleware"
)

// requestTimeout bounds the store work of a single request.
const requestTimeout = 5 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

func handlePanic(c *gin.Context, log *zap.SugaredLogger, route string) {
	if r := recover(); r != nil {
		log.Errorw("panic recovered", "route", route, "panic", r, "requestId", middleware.RequestIDFrom(c))
		c.AbortWithStatusJSON(http.StatusInternalServerError, apperror.ErrorResponse{Error: "internal server error"})
	}
}

// respondError writes {"error": message} with the status of err. Causes of
// server-side failures are logged, never returned.
func respondError(c *gin.Context, log *zap.SugaredLogger, route string, err error) {
	appErr := apperror.FromError(err)
	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		log.Errorw("request failed", "route", route, "status", status, "error", err, "requestId", middleware.RequestIDFrom(c))
	} else {
		log.Infow("request rejected", "route", route, "status", status, "reason", appErr.Message)
	}
	c.AbortWithStatusJSON(status, appErr.ToResponse())
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			case "email":
				details = append(details, fmt.Sprintf("%s must be an email address", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": details,
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// actingUser returns the identity set by middleware.Identify, answering 401
// when there is none.
func actingUser(c *gin.Context) (primitive.ObjectID, bool) {
	userID, ok := middleware.IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, apperror.ErrorResponse{Error: "authentication required"})
	}
	return userID, ok
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(field, raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, apperror.NewValidation(field + " must be a date")
}
