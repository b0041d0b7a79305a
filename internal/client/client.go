// Package client is a typed Go client for the Produck REST API, mirroring the
// calls the mobile and web apps make.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/maxwharris/Produck/internal/models"
)

const (
	DevelopmentBaseURL = "http://localhost:8080"
	ProductionBaseURL  = "https://api.produck.example"
)

// BaseURL picks the development host or the production placeholder.
func BaseURL(dev bool) string {
	if dev {
		return DevelopmentBaseURL
	}
	return ProductionBaseURL
}

// Identity is who a call acts as. Token wins over UserID; UserID is only
// honoured by servers that allow claimed identities.
type Identity struct {
	Token  string
	UserID string
}

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("produck api: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session is the result of Register or Login.
type Session struct {
	Token     string             `json:"token"`
	ExpiresIn int64              `json:"expiresIn"`
	User      models.UserSummary `json:"user"`
}

func (s Session) Identity() Identity {
	return Identity{Token: s.Token, UserID: s.User.ID.Hex()}
}

type ProductQuery struct {
	CategoryID string
	UserID     string
	Search     string
}

// ProductInput is the body of a create or update. Empty fields are omitted,
// so an update only touches what is set.
type ProductInput struct {
	Name         string   `json:"name,omitempty"`
	Category     string   `json:"category,omitempty"`
	CategoryID   string   `json:"categoryId,omitempty"`
	PurchaseDate string   `json:"purchaseDate,omitempty"`
	Cost         *float64 `json:"cost,omitempty"`
	Description  string   `json:"description,omitempty"`
	UPC          string   `json:"upc,omitempty"`
	Rating       *int     `json:"rating,omitempty"`
	Blurb        string   `json:"blurb,omitempty"`
	TimeUsed     string   `json:"timeUsed,omitempty"`
	Photos       []string `json:"photos,omitempty"`
}

// UploadFile is one file for Upload.
type UploadFile struct {
	Name    string
	Content io.Reader
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	var out Session
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", Identity{}, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", Identity{}, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]models.ProductWithReview, error) {
	params := url.Values{}
	setParam(params, "categoryId", q.CategoryID)
	setParam(params, "userId", q.UserID)
	setParam(params, "search", q.Search)

	var out []models.ProductWithReview
	if err := c.do(ctx, http.MethodGet, withQuery("/api/products", params), Identity{}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, productID string) (*models.ProductWithReview, error) {
	var out models.ProductWithReview
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(productID), Identity{}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, id Identity, in ProductInput) (*models.ProductWithReview, error) {
	var out models.ProductWithReview
	if err := c.do(ctx, http.MethodPost, "/api/products", id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id Identity, productID string, in ProductInput) (*models.ProductWithReview, error) {
	var out models.ProductWithReview
	if err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(productID), id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id Identity, productID string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(productID), id, nil, nil)
}

// ListCategories lists every category, or only ownerID's when set.
func (c *Client) ListCategories(ctx context.Context, ownerID string) ([]models.Category, error) {
	params := url.Values{}
	setParam(params, "userId", ownerID)

	var out []models.Category
	if err := c.do(ctx, http.MethodGet, withQuery("/api/categories", params), Identity{}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, id Identity, name, color string) (*models.Category, error) {
	var out models.Category
	body := map[string]string{"name": name, "color": color}
	if err := c.do(ctx, http.MethodPost, "/api/categories", id, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchUsers(ctx context.Context, text string) ([]models.UserSummary, error) {
	var out []models.UserSummary
	path := withQuery("/api/users", url.Values{"search": {text}})
	if err := c.do(ctx, http.MethodGet, path, Identity{}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindUserByEmail returns nil, nil when no user has that email.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (*models.UserSummary, error) {
	var out []models.UserSummary
	path := withQuery("/api/users", url.Values{"email": {email}})
	if err := c.do(ctx, http.MethodGet, path, Identity{}, nil, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (c *Client) GetUser(ctx context.Context, userID string) (*models.UserSummary, error) {
	var out models.UserSummary
	if err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID), Identity{}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ReviewsFor(ctx context.Context, productID string) ([]models.Review, error) {
	var out []models.Review
	path := withQuery("/api/reviews", url.Values{"productId": {productID}})
	if err := c.do(ctx, http.MethodGet, path, Identity{}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upload sends files as multipart "files" parts and returns their public URLs.
func (c *Client) Upload(ctx context.Context, files ...UploadFile) ([]string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, file := range files {
		part, err := writer.CreateFormFile("files", file.Name)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, fmt.Errorf("read %s: %w", file.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out struct {
		URLs []string `json:"urls"`
	}
	if err := c.send(req, &out); err != nil {
		return nil, err
	}
	return out.URLs, nil
}

func (c *Client) do(ctx context.Context, method, path string, id Identity, payload, out interface{}) error {
	body, err := encodeBody(method, id, payload)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id.Token != "" {
		req.Header.Set("Authorization", "Bearer "+id.Token)
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// encodeBody marshals payload and, when the caller holds no token, adds the
// claimed userId to the body of mutating requests.
func encodeBody(method string, id Identity, payload interface{}) ([]byte, error) {
	claim := id.Token == "" && id.UserID != "" && method != http.MethodGet
	if payload == nil && !claim {
		return nil, nil
	}

	fields := map[string]interface{}{}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		if !claim {
			return raw, nil
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
	}
	fields["userId"] = id.UserID
	return json.Marshal(fields)
}

func newAPIError(status int, raw []byte) *APIError {
	var body struct {
		Error string `json:"error"`
	}
	message := http.StatusText(status)
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		message = body.Error
	}
	return &APIError{Status: status, Message: message}
}

func setParam(params url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		params.Set(key, value)
	}
}

func withQuery(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}
