package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maxwharris/Produck/internal/models"
	"github.com/maxwharris/Produck/internal/store/memstore"
)

func nopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func seedUser(t *testing.T, s *memstore.Store, name, email string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email}
	require.NoError(t, s.Users().Insert(context.Background(), &user))
	return user
}

func ptr[T any](v T) *T {
	return &v
}

var purchased = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

func mugInput() NewProduct {
	return NewProduct{
		Name:         "Mug",
		Category:     "Home",
		PurchaseDate: purchased,
		Cost:         ptr(12.0),
		Review: ReviewFields{
			Rating:   ptr(4),
			Blurb:    ptr("ok"),
			TimeUsed: ptr("1 month"),
		},
	}
}
