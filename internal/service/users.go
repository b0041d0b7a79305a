package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/maxwharris/Produck/internal/apperror"
	"github.com/maxwharris/Produck/internal/models"
	"github.com/maxwharris/Produck/internal/session"
	"github.com/maxwharris/Produck/internal/store"
)

const userSearchLimit = 20

var errBadCredentials = apperror.NewUnauthorized("invalid email or password")

type AuthResult struct {
	Token     string             `json:"token"`
	ExpiresIn int64              `json:"expiresIn"`
	User      models.UserSummary `json:"user"`
}

type UserService struct {
	store    store.Store
	signer   *session.Signer
	log      *zap.SugaredLogger
	hashCost int
}

func NewUserService(s store.Store, signer *session.Signer, log *zap.SugaredLogger) *UserService {
	return &UserService{store: s, signer: signer, log: log, hashCost: bcrypt.DefaultCost}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func summaries(users []models.User) []models.UserSummary {
	out := make([]models.UserSummary, 0, len(users))
	for _, user := range users {
		out = append(out, user.Summary())
	}
	return out
}

// Search matches a case-insensitive substring of the name, at most 20 users.
func (s *UserService) Search(ctx context.Context, text string) ([]models.UserSummary, error) {
	users, err := s.store.Users().SearchByName(ctx, strings.TrimSpace(text), userSearchLimit)
	if err != nil {
		return nil, apperror.NewUpstream("failed to search users", err)
	}
	return summaries(users), nil
}

// FindByEmail returns zero or one user.
func (s *UserService) FindByEmail(ctx context.Context, email string) ([]models.UserSummary, error) {
	user, err := s.store.Users().FindByEmail(ctx, NormalizeEmail(email))
	switch {
	case err == nil:
		return []models.UserSummary{user.Summary()}, nil
	case errors.Is(err, store.ErrNotFound):
		return []models.UserSummary{}, nil
	default:
		return nil, apperror.NewUpstream("failed to look up user", err)
	}
}

func (s *UserService) Get(ctx context.Context, rawID string) (*models.UserSummary, error) {
	userID, err := ParseID("user", rawID)
	if err != nil {
		return nil, err
	}
	return s.Me(ctx, userID)
}

func (s *UserService) Me(ctx context.Context, userID primitive.ObjectID) (*models.UserSummary, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, apperror.NewNotFound("User not found"), "failed to load user")
	}
	summary := user.Summary()
	return &summary, nil
}

func (s *UserService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	switch {
	case name == "":
		return nil, apperror.NewValidation("name is required")
	case email == "":
		return nil, apperror.NewValidation("email is required")
	case password == "":
		return nil, apperror.NewValidation("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, apperror.NewUpstream("failed to hash password", err)
	}

	user := &models.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.store.Users().Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperror.NewConflict("email already registered", err)
		}
		return nil, apperror.NewUpstream("failed to create user", err)
	}

	s.log.Infow("user registered", "userId", user.ID.Hex())
	return s.authenticate(user)
}

func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.store.Users().FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, apperror.NewUpstream("failed to look up user", err)
	}
	if user.PasswordHash == "" {
		return nil, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errBadCredentials
	}
	return s.authenticate(user)
}

func (s *UserService) authenticate(user *models.User) (*AuthResult, error) {
	token, err := s.signer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, apperror.NewUpstream("failed to issue token", err)
	}
	return &AuthResult{
		Token:     token,
		ExpiresIn: int64(s.signer.TTL().Seconds()),
		User:      user.Summary(),
	}, nil
}
