// Package service holds the business rules behind the HTTP handlers. Services
// take raw ids from requests, enforce ownership, and return *apperror.AppError
// values that carry the HTTP status.
package service

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maxwharris/Produck/internal/apperror"
	"github.com/maxwharris/Produck/internal/store"
)

// ParseID converts a hex id from a request. kind names the resource in the
// error message.
func ParseID(kind, raw string) (primitive.ObjectID, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return primitive.NilObjectID, apperror.NewValidation(kind + " id is required")
	}
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, apperror.NewValidation("invalid " + kind + " id")
	}
	return id, nil
}

// notFoundAs maps store.ErrNotFound to notFound and anything else to an
// upstream failure described by action.
func notFoundAs(err error, notFound *apperror.AppError, action string) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound
	}
	return apperror.NewUpstream(action, err)
}

func trimmedPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
