package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/maxwharris/Produck/internal/models"
	"github.com/maxwharris/Produck/internal/session"
	"github.com/maxwharris/Produck/internal/store/memstore"
)

type testServer struct {
	router *gin.Engine
	store  *memstore.Store
	signer *session.Signer
}

func newTestServer(t *testing.T, allowClaimed bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := memstore.New()
	signer := session.NewSigner("test-secret", time.Hour)
	deps := NewDeps(s, signer, t.TempDir(), zap.NewNop().Sugar())
	deps.UploadLimitBytes = 1 << 20
	deps.AllowClaimedIdentity = allowClaimed

	return &testServer{router: NewRouter(deps), store: s, signer: signer}
}

func (ts *testServer) seedUser(t *testing.T, name, email string) (models.User, string) {
	t.Helper()
	user := models.User{Name: name, Email: email}
	require.NoError(t, ts.store.Users().Insert(context.Background(), &user))
	token, err := ts.signer.Issue(user.ID, user.Email)
	require.NoError(t, err)
	return user, token
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func mugBody(ownerID primitive.ObjectID) gin.H {
	return gin.H{
		"userId":       ownerID.Hex(),
		"name":         "Mug",
		"category":     "Home",
		"purchaseDate": "2024-03-10",
		"cost":         12,
		"description":  "Blue ceramic mug",
		"rating":       4,
		"blurb":        "Keeps coffee warm",
		"timeUsed":     "2 months",
	}
}

func TestCreateProductThenReviewsByProduct(t *testing.T) {
	ts := newTestServer(t, true)
	u1, _ := ts.seedUser(t, "Alice", "alice@example.com")

	rec := ts.do(t, http.MethodPost, "/api/products", mugBody(u1.ID), "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.ProductWithReview](t, rec)
	assert.Equal(t, "Mug", created.Name)
	assert.Equal(t, u1.ID, created.OwnerID)
	require.NotNil(t, created.Owner)
	assert.Equal(t, "Alice", created.Owner.Name)
	require.NotNil(t, created.Review)
	assert.Equal(t, 4, created.Review.Rating)
	assert.Equal(t, 12.0, created.Review.Cost)

	rec = ts.do(t, http.MethodGet, "/api/reviews?productId="+created.ID.Hex(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	reviews := decode[[]models.Review](t, rec)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Rating)
	assert.Equal(t, created.ID, reviews[0].ProductID)

	rec = ts.do(t, http.MethodGet, "/api/products/"+created.ID.Hex()+"/reviews", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Review](t, rec), 1)
}

func TestCreateProductWithoutReviewFields(t *testing.T) {
	ts := newTestServer(t, false)
	_, token := ts.seedUser(t, "Alice", "alice@example.com")

	rec := ts.do(t, http.MethodPost, "/api/products", gin.H{
		"name":         "Lamp",
		"category":     "Home",
		"purchaseDate": "2024-03-10T08:00:00Z",
		"cost":         30,
		"rating":       5,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.ProductWithReview](t, rec)
	assert.Nil(t, created.Review)

	rec = ts.do(t, http.MethodGet, "/api/reviews?productId="+created.ID.Hex(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestDeleteProductByOtherUserIsNotFound(t *testing.T) {
	ts := newTestServer(t, true)
	u1, _ := ts.seedUser(t, "Alice", "alice@example.com")
	u2, _ := ts.seedUser(t, "Bob", "bob@example.com")

	rec := ts.do(t, http.MethodPost, "/api/products", mugBody(u1.ID), "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.ProductWithReview](t, rec)
	path := "/api/products/" + created.ID.Hex()

	rec = ts.do(t, http.MethodDelete, path, gin.H{"userId": u2.ID.Hex()}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Product not found or unauthorized"}`, rec.Body.String())

	rec = ts.do(t, http.MethodPut, path, gin.H{"userId": u2.ID.Hex(), "name": "Stolen"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Mug", decode[models.ProductWithReview](t, rec).Name)

	rec = ts.do(t, http.MethodDelete, path, gin.H{"userId": u1.ID.Hex()}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Product deleted successfully"}`, rec.Body.String())

	rec = ts.do(t, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClaimedIdentityIgnoredWhenDisabled(t *testing.T) {
	ts := newTestServer(t, false)
	u1, _ := ts.seedUser(t, "Alice", "alice@example.com")

	rec := ts.do(t, http.MethodPost, "/api/products", mugBody(u1.ID), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateProductAsOwner(t *testing.T) {
	ts := newTestServer(t, false)
	u1, token := ts.seedUser(t, "Alice", "alice@example.com")

	rec := ts.do(t, http.MethodPost, "/api/products", mugBody(u1.ID), token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.ProductWithReview](t, rec)

	rec = ts.do(t, http.MethodPut, "/api/products/"+created.ID.Hex(), gin.H{
		"name":   "Travel Mug",
		"rating": 2,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[models.ProductWithReview](t, rec)
	assert.Equal(t, "Travel Mug", updated.Name)
	require.NotNil(t, updated.Review)
	assert.Equal(t, 2, updated.Review.Rating)

	rec = ts.do(t, http.MethodPut, "/api/products/"+created.ID.Hex(), gin.H{"purchaseDate": "yesterday"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProductValidation(t *testing.T) {
	ts := newTestServer(t, false)
	_, token := ts.seedUser(t, "Alice", "alice@example.com")

	rec := ts.do(t, http.MethodPost, "/api/products", gin.H{"category": "Home", "cost": 3}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}](t, rec)
	assert.Equal(t, "validation failed", body.Error)
	assert.Contains(t, body.Details, "name is required")
	assert.Contains(t, body.Details, "purchaseDate is required")

	rec = ts.do(t, http.MethodPost, "/api/products", gin.H{
		"name": "Mug", "category": "Home", "purchaseDate": "2024-03-10", "cost": 3,
		"rating": 9, "blurb": "x", "timeUsed": "1 day",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListProductsFilters(t *testing.T) {
	ts := newTestServer(t, false)
	u1, token := ts.seedUser(t, "Alice", "alice@example.com")

	rec := ts.do(t, http.MethodPost, "/api/categories", gin.H{"name": "Kitchen", "color": "#ff0000"}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	kitchen := decode[models.Category](t, rec)

	for _, body := range []gin.H{
		{"name": "Kettle", "categoryId": kitchen.ID.Hex(), "purchaseDate": "2024-01-01", "cost": 40},
		{"name": "Towel", "category": "Bath", "purchaseDate": "2024-01-02", "cost": 8, "description": "ABC cotton"},
	} {
		rec = ts.do(t, http.MethodPost, "/api/products", body, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/api/products?categoryId="+kitchen.ID.Hex(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	byCategory := decode[[]models.ProductWithReview](t, rec)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Kettle", byCategory[0].Name)
	assert.Equal(t, "Kitchen", byCategory[0].Category)

	rec = ts.do(t, http.MethodGet, "/api/products?search=abc", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	bySearch := decode[[]models.ProductWithReview](t, rec)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Towel", bySearch[0].Name)

	rec = ts.do(t, http.MethodGet, "/api/products?userId="+u1.ID.Hex(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.ProductWithReview](t, rec), 2)

	rec = ts.do(t, http.MethodGet, "/api/products?search=nothing-matches", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/products?categoryId="+primitive.NewObjectID().Hex(), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/products?categoryId=not-an-id", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryLifecycle(t *testing.T) {
	ts := newTestServer(t, false)
	u1, aliceToken := ts.seedUser(t, "Alice", "alice@example.com")
	_, bobToken := ts.seedUser(t, "Bob", "bob@example.com")

	rec := ts.do(t, http.MethodPost, "/api/categories", gin.H{"name": "Home", "color": "#00ff00"}, aliceToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	home := decode[models.Category](t, rec)
	assert.Equal(t, u1.ID, home.OwnerID)

	rec = ts.do(t, http.MethodPost, "/api/categories", gin.H{"name": "Home", "color": "#0000ff"}, aliceToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Category name already exists"}`, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/categories", gin.H{"name": "Home", "color": "#0000ff"}, bobToken)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/categories?userId="+u1.ID.Hex(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Category](t, rec), 1)

	rec = ts.do(t, http.MethodPut, "/api/categories/"+home.ID.Hex(), gin.H{"color": "#123456"}, bobToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/categories/"+home.ID.Hex(), gin.H{"name": "House"}, aliceToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "House", decode[models.Category](t, rec).Name)

	rec = ts.do(t, http.MethodGet, "/api/categories/"+home.ID.Hex(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/categories/"+home.ID.Hex(), nil, aliceToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/categories/"+home.ID.Hex(), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewLifecycle(t *testing.T) {
	ts := newTestServer(t, false)
	u1, aliceToken := ts.seedUser(t, "Alice", "alice@example.com")
	_, bobToken := ts.seedUser(t, "Bob", "bob@example.com")

	rec := ts.do(t, http.MethodPost, "/api/products", mugBody(u1.ID), aliceToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	product := decode[models.ProductWithReview](t, rec)

	rec = ts.do(t, http.MethodPost, "/api/reviews", gin.H{
		"productId": product.ID.Hex(),
		"rating":    5,
		"blurb":     "Great mug",
		"timeUsed":  "1 week",
	}, bobToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	review := decode[models.Review](t, rec)
	assert.Equal(t, 12.0, review.Cost)

	rec = ts.do(t, http.MethodGet, "/api/reviews", nil, bobToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Review](t, rec), 1)

	rec = ts.do(t, http.MethodGet, "/api/reviews", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/reviews/"+review.ID.Hex(), gin.H{"rating": 1}, aliceToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/reviews/"+review.ID.Hex(), gin.H{"rating": 3}, bobToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 3, decode[models.Review](t, rec).Rating)

	rec = ts.do(t, http.MethodGet, "/api/reviews/"+review.ID.Hex(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/reviews/"+review.ID.Hex(), nil, bobToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/reviews?productId="+product.ID.Hex(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Review](t, rec), 1)
}

func TestUserDirectory(t *testing.T) {
	ts := newTestServer(t, false)
	alice, _ := ts.seedUser(t, "Alice Smith", "alice@example.com")
	ts.seedUser(t, "Bob", "bob@example.com")

	rec := ts.do(t, http.MethodGet, "/api/users?search=ALI", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	found := decode[[]models.UserSummary](t, rec)
	require.Len(t, found, 1)
	assert.Equal(t, "Alice Smith", found[0].Name)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = ts.do(t, http.MethodGet, "/api/users?email=Alice@Example.com", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.UserSummary](t, rec), 1)

	rec = ts.do(t, http.MethodGet, "/api/users?email=nobody@example.com", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/users/"+alice.ID.Hex(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, alice.ID, decode[models.UserSummary](t, rec).ID)

	rec = ts.do(t, http.MethodGet, "/api/users/"+primitive.NewObjectID().Hex(), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterLoginAndMe(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"name": "Carol", "email": "Carol@Example.com", "password": "s3cret-pass",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	registered := decode[struct {
		Token string             `json:"token"`
		User  models.UserSummary `json:"user"`
	}](t, rec)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "carol@example.com", registered.User.Email)

	rec = ts.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"name": "Carol", "email": "carol@example.com", "password": "other",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "carol@example.com", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "carol@example.com", "password": "s3cret-pass"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := decode[struct {
		Token string `json:"token"`
	}](t, rec).Token

	rec = ts.do(t, http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, registered.User.ID, decode[models.UserSummary](t, rec).ID)

	rec = ts.do(t, http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/auth/me", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUploadAndServe(t *testing.T) {
	ts := newTestServer(t, false)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "../../photo.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-jpeg"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	urls := decode[struct {
		URLs []string `json:"urls"`
	}](t, rec).URLs
	require.Len(t, urls, 1)
	assert.Regexp(t, `^/uploads/\d+-photo\.jpg$`, urls[0])

	rec = ts.do(t, http.MethodGet, urls[0], nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fake-jpeg", rec.Body.String())
}

func TestUploadWithoutFiles(t *testing.T) {
	ts := newTestServer(t, false)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("note", "no files here"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadTooLarge(t *testing.T) {
	ts := newTestServer(t, false)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "big.bin")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), 2<<20))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(t, http.MethodGet, "/healthz", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestDeletingReviewKeepsSharedUploads(t *testing.T) {
	ts := newTestServer(t, false)
	ann, annToken := ts.seedUser(t, "Ann", "ann@example.com")
	mallory, malloryToken := ts.seedUser(t, "Mallory", "mallory@example.com")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "ann.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("ann-photo"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	photo := decode[struct {
		URLs []string `json:"urls"`
	}](t, rec).URLs[0]

	annProduct := mugBody(ann.ID)
	annProduct["photos"] = []string{photo}
	rec = ts.do(t, http.MethodPost, "/api/products", annProduct, annToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	malloryProduct := mugBody(mallory.ID)
	malloryProduct["photos"] = []string{photo}
	rec = ts.do(t, http.MethodPost, "/api/products", malloryProduct, malloryToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.ProductWithReview](t, rec)
	require.NotNil(t, created.Review)

	rec = ts.do(t, http.MethodDelete, "/api/reviews/"+created.Review.ID.Hex(), nil, malloryToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, photo, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ann-photo", rec.Body.String())
}

func TestReadFiltersAreNotIdentityClaims(t *testing.T) {
	for _, allowClaimed := range []bool{false, true} {
		ts := newTestServer(t, allowClaimed)

		rec := ts.do(t, http.MethodGet, "/api/products?userId=bad", nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "claims enabled: %v", allowClaimed)

		rec = ts.do(t, http.MethodGet, "/api/categories?userId=bad", nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "claims enabled: %v", allowClaimed)
	}
}
