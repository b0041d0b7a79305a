package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/maxwharris/Produck/internal/apperror"
	"github.com/maxwharris/Produck/internal/session"
	"github.com/maxwharris/Produck/internal/store/memstore"
)

func newUserService(s *memstore.Store) (*UserService, *session.Signer) {
	signer := session.NewSigner("test-secret", time.Hour)
	svc := NewUserService(s, signer, nopLogger())
	svc.hashCost = bcrypt.MinCost
	return svc, signer
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, signer := newUserService(memstore.New())

	registered, err := svc.Register(ctx, "Ann", " Ann@Example.com ", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", registered.User.Email)
	assert.Equal(t, int64(3600), registered.ExpiresIn)

	userID, err := signer.Parse(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, userID)

	loggedIn, err := svc.Login(ctx, "ANN@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.User, loggedIn.User)

	_, err = svc.Login(ctx, "ann@example.com", "wrong")
	assert.True(t, apperror.IsUnauthorized(err))
	_, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.True(t, apperror.IsUnauthorized(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(memstore.New())

	_, err := svc.Register(ctx, "Ann", "ann@example.com", "pw")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Other Ann", "ANN@example.com", "pw")
	assert.True(t, apperror.IsConflict(err))
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newUserService(memstore.New())

	_, err := svc.Register(context.Background(), "", "a@example.com", "pw")
	assert.True(t, apperror.IsValidation(err))
	_, err = svc.Register(context.Background(), "Ann", "", "pw")
	assert.True(t, apperror.IsValidation(err))
	_, err = svc.Register(context.Background(), "Ann", "a@example.com", "")
	assert.True(t, apperror.IsValidation(err))
}

func TestLoginRejectsUserWithoutPassword(t *testing.T) {
	s := memstore.New()
	seedUser(t, s, "Legacy", "legacy@example.com")
	svc, _ := newUserService(s)

	_, err := svc.Login(context.Background(), "legacy@example.com", "")
	assert.True(t, apperror.IsUnauthorized(err))
}

func TestSearchCapsAtTwenty(t *testing.T) {
	s := memstore.New()
	for i := 0; i < 25; i++ {
		seedUser(t, s, fmt.Sprintf("User %02d", i), fmt.Sprintf("user%d@example.com", i))
	}
	seedUser(t, s, "Zed", "zed@example.com")
	svc, _ := newUserService(s)

	found, err := svc.Search(context.Background(), "user")
	require.NoError(t, err)
	require.Len(t, found, 20)
	assert.Equal(t, "User 00", found[0].Name)

	zed, err := svc.Search(context.Background(), "ZE")
	require.NoError(t, err)
	require.Len(t, zed, 1)
	assert.Equal(t, "zed@example.com", zed[0].Email)
}

func TestFindByEmailReturnsZeroOrOne(t *testing.T) {
	s := memstore.New()
	ann := seedUser(t, s, "Ann", "ann@example.com")
	svc, _ := newUserService(s)

	found, err := svc.FindByEmail(context.Background(), "ANN@example.com")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ann.ID, found[0].ID)

	none, err := svc.FindByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGetUser(t *testing.T) {
	s := memstore.New()
	ann := seedUser(t, s, "Ann", "ann@example.com")
	svc, _ := newUserService(s)

	got, err := svc.Get(context.Background(), ann.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)

	_, err = svc.Get(context.Background(), "64b000000000000000000000")
	assert.True(t, apperror.IsNotFound(err))
	_, err = svc.Get(context.Background(), "xyz")
	assert.True(t, apperror.IsValidation(err))
}
