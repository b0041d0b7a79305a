package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/maxwharris/Produck/internal/session"
)

const (
	identityKey       = "userId"
	identitySourceKey = "identitySource"
)

// ErrNoIdentity means a resolver found nothing to act on. Any other resolver
// error rejects the request.
var ErrNoIdentity = errors.New("no identity presented")

// IdentityResolver extracts the acting user from a request.
type IdentityResolver interface {
	Name() string
	Resolve(c *gin.Context) (primitive.ObjectID, error)
}

type tokenParser interface {
	Parse(raw string) (primitive.ObjectID, error)
}

// SessionResolver reads an "Authorization: Bearer <token>" header.
type SessionResolver struct {
	Tokens tokenParser
}

func (SessionResolver) Name() string { return "session" }

func (r SessionResolver) Resolve(c *gin.Context) (primitive.ObjectID, error) {
	raw := strings.TrimSpace(c.GetHeader("Authorization"))
	if raw == "" {
		return primitive.NilObjectID, ErrNoIdentity
	}
	parts := strings.Fields(raw)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return primitive.NilObjectID, session.ErrInvalidToken
	}
	return r.Tokens.Parse(parts[1])
}

// ClaimResolver trusts a userId or ownerId sent in the JSON body or query
// string of a mutating request. Only install it for trusted callers. Safe
// methods never claim, since userId is a read filter there.
type ClaimResolver struct {
	Log *zap.SugaredLogger
}

func (ClaimResolver) Name() string { return "claimed" }

func (r ClaimResolver) Resolve(c *gin.Context) (primitive.ObjectID, error) {
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return primitive.NilObjectID, ErrNoIdentity
	}

	var claim struct {
		UserID  string `json:"userId"`
		OwnerID string `json:"ownerId"`
	}
	if c.Request.Body != nil && c.Request.ContentLength != 0 && c.ContentType() == binding.MIMEJSON {
		// The body is cached by gin, so handlers can bind it again.
		if err := c.ShouldBindBodyWith(&claim, binding.JSON); err != nil && r.Log != nil {
			r.Log.Debugw("claim not read from body", "path", c.FullPath(), "error", err)
		}
	}

	for _, candidate := range []string{claim.UserID, claim.OwnerID, c.Query("userId"), c.Query("ownerId")} {
		value := strings.TrimSpace(candidate)
		if value == "" {
			continue
		}
		id, err := primitive.ObjectIDFromHex(value)
		if err != nil {
			return primitive.NilObjectID, errors.New("invalid claimed user id")
		}
		return id, nil
	}
	return primitive.NilObjectID, ErrNoIdentity
}

// Identify runs the resolvers in order and stores the first identity found.
// Requests without any identity continue anonymously.
func Identify(log *zap.SugaredLogger, resolvers ...IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, resolver := range resolvers {
			userID, err := resolver.Resolve(c)
			if errors.Is(err, ErrNoIdentity) {
				continue
			}
			if err != nil {
				log.Warnw("identity rejected", "resolver", resolver.Name(), "path", c.FullPath(), "error", err)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			c.Set(identityKey, userID)
			c.Set(identitySourceKey, resolver.Name())
			break
		}
		c.Next()
	}
}

// RequireIdentity rejects anonymous requests.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := IdentityFrom(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (primitive.ObjectID, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return primitive.NilObjectID, false
	}
	userID, ok := value.(primitive.ObjectID)
	return userID, ok && !userID.IsZero()
}

// IdentitySource names the resolver that identified the request.
func IdentitySource(c *gin.Context) string {
	return c.GetString(identitySourceKey)
}
