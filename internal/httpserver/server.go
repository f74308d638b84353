package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"vitalia/internal/domain"
	"vitalia/internal/paging"
	"vitalia/internal/service/catalog"
	customersvc "vitalia/internal/service/customer"
)

// CatalogService is the slice of the catalog service the handlers need.
type CatalogService interface {
	Products(ctx context.Context, q catalog.Query) (paging.Page[domain.Product], error)
	Product(ctx context.Context, id string) (*domain.Product, error)
	Featured(ctx context.Context, seed int64, limit int) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	Listings(ctx context.Context, kind string) ([]domain.Listing, error)
	Listing(ctx context.Context, id string) (*domain.Listing, error)
	CreateListing(ctx context.Context, l domain.Listing) (*domain.Listing, error)
	UpdateListing(ctx context.Context, l domain.Listing) (*domain.Listing, error)
	DeleteListing(ctx context.Context, id string) error
}

// CustomerService is the auth surface the handlers need.
type CustomerService interface {
	Signup(ctx context.Context, in customersvc.SignupInput) (*domain.Customer, error)
	Login(ctx context.Context, email, password string) (*domain.Customer, string, string, error)
	Logout(ctx context.Context, token string)
	LookupByToken(ctx context.Context, token string) (*domain.Customer, error)
	AccessTTLSeconds() int
}

// Deps bundles everything the router needs.
type Deps struct {
	CatalogSvc  CatalogService
	CustomerSvc CustomerService
	CORSOrigins []string
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	db         *pgxpool.Pool
}

// New builds a Server with all API routes wired.
func New(addr string, logger *log.Logger, db *pgxpool.Pool, deps Deps) (*Server, error) {
	router := buildRouter(logger, db, deps)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
		db:         db,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
