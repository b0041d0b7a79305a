package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/maxwharris/Produck/internal/middleware"
	"github.com/maxwharris/Produck/internal/service"
	"github.com/maxwharris/Produck/internal/session"
	"github.com/maxwharris/Produck/internal/store"
)

// Deps is everything the HTTP surface needs.
type Deps struct {
	Store      store.Store
	Products   *service.ProductService
	Categories *service.CategoryService
	Reviews    *service.ReviewService
	Users      *service.UserService
	Uploads    *service.UploadService
	Signer     *session.Signer

	UploadLimitBytes     int64
	CORSOrigins          []string
	AllowClaimedIdentity bool
	Log                  *zap.SugaredLogger
}

// NewDeps builds the services on top of s.
func NewDeps(s store.Store, signer *session.Signer, publicDir string, log *zap.SugaredLogger) Deps {
	uploads := service.NewUploadService(publicDir, log)
	return Deps{
		Store:      s,
		Products:   service.NewProductService(s, log),
		Categories: service.NewCategoryService(s, log),
		Reviews:    service.NewReviewService(s, log),
		Users:      service.NewUserService(s, signer, log),
		Uploads:    uploads,
		Signer:     signer,
		Log:        log,
	}
}

func NewRouter(d Deps) *gin.Engine {
	log := d.Log
	resolvers := []middleware.IdentityResolver{middleware.SessionResolver{Tokens: d.Signer}}
	if d.AllowClaimedIdentity {
		resolvers = append(resolvers, middleware.ClaimResolver{Log: log})
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log))
	if len(d.CORSOrigins) > 0 {
		r.Use(middleware.CORS(d.CORSOrigins))
	}

	r.GET("/healthz", Health(d.Store, log))
	r.Static("/uploads", d.Uploads.Dir())

	api := r.Group("/api")
	api.Use(middleware.Identify(log, resolvers...))
	{
		api.POST("/auth/register", Register(d.Users, log))
		api.POST("/auth/login", Login(d.Users, log))
		api.GET("/auth/me", middleware.RequireIdentity(), GetMe(d.Users, log))

		api.GET("/products", ListProducts(d.Products, log))
		api.POST("/products", CreateProduct(d.Products, log))
		api.GET("/products/:id", GetProduct(d.Products, log))
		api.PUT("/products/:id", UpdateProduct(d.Products, log))
		api.DELETE("/products/:id", DeleteProduct(d.Products, log))
		api.GET("/products/:id/reviews", ProductReviews(d.Products, log))

		api.GET("/categories", ListCategories(d.Categories, log))
		api.POST("/categories", CreateCategory(d.Categories, log))
		api.GET("/categories/:id", GetCategory(d.Categories, log))
		api.PUT("/categories/:id", UpdateCategory(d.Categories, log))
		api.DELETE("/categories/:id", DeleteCategory(d.Categories, log))

		api.GET("/reviews", ListReviews(d.Products, d.Reviews, log))
		api.POST("/reviews", CreateReview(d.Reviews, log))
		api.GET("/reviews/:id", GetReview(d.Reviews, log))
		api.PUT("/reviews/:id", UpdateReview(d.Reviews, log))
		api.DELETE("/reviews/:id", DeleteReview(d.Reviews, log))

		api.GET("/users", SearchUsers(d.Users, log))
		api.GET("/users/:id", GetUser(d.Users, log))

		api.POST("/upload", Upload(d.Uploads, d.UploadLimitBytes, log))
	}

	return r
}
