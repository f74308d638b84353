package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"vitalia/internal/domain"
	"vitalia/internal/paging"
	"vitalia/internal/service/catalog"
	customersvc "vitalia/internal/service/customer"
)

type stubCatalog struct {
	products  []domain.Product
	listings  []domain.Listing
	productsQ catalog.Query
	deletedID string
	err       error
}

func (s *stubCatalog) Products(_ context.Context, q catalog.Query) (paging.Page[domain.Product], error) {
	s.productsQ = q
	if s.err != nil {
		return paging.Page[domain.Product]{}, s.err
	}
	return paging.Slice(s.products, q.Page, q.PerPage), nil
}

func (s *stubCatalog) Product(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCatalog) Featured(_ context.Context, _ int64, limit int) ([]domain.Product, error) {
	if limit > len(s.products) {
		limit = len(s.products)
	}
	return s.products[:limit], s.err
}

func (s *stubCatalog) CreateProduct(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, s.err
}

func (s *stubCatalog) UpdateProduct(_ context.Context, p domain.Product) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &p, nil
}

func (s *stubCatalog) DeleteProduct(_ context.Context, id string) error {
	s.deletedID = id
	return s.err
}

func (s *stubCatalog) Listings(_ context.Context, kind string) ([]domain.Listing, error) {
	var out []domain.Listing
	for _, l := range s.listings {
		if l.Kind == kind {
			out = append(out, l)
		}
	}
	return out, s.err
}

func (s *stubCatalog) Listing(_ context.Context, id string) (*domain.Listing, error) {
	for _, l := range s.listings {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCatalog) CreateListing(_ context.Context, l domain.Listing) (*domain.Listing, error) {
	return &l, s.err
}

func (s *stubCatalog) UpdateListing(_ context.Context, l domain.Listing) (*domain.Listing, error) {
	return &l, s.err
}

func (s *stubCatalog) DeleteListing(_ context.Context, id string) error {
	s.deletedID = id
	return s.err
}

type stubCustomers struct {
	byToken   map[string]*domain.Customer
	loggedOut []string
}

func (s *stubCustomers) Signup(_ context.Context, in customersvc.SignupInput) (*domain.Customer, error) {
	return &domain.Customer{ID: "new", Email: in.Email}, nil
}

func (s *stubCustomers) Login(_ context.Context, email, password string) (*domain.Customer, string, string, error) {
	if password != "Secreta123" {
		return nil, "", "", customersvc.ErrInvalidCredentials
	}
	return &domain.Customer{ID: "c1", Email: email}, "acc", "ref", nil
}

func (s *stubCustomers) Logout(_ context.Context, token string) {
	s.loggedOut = append(s.loggedOut, token)
}

func (s *stubCustomers) LookupByToken(_ context.Context, token string) (*domain.Customer, error) {
	cust, ok := s.byToken[token]
	if !ok {
		return nil, customersvc.ErrInvalidToken
	}
	return cust, nil
}

func (s *stubCustomers) AccessTTLSeconds() int {
	return 3600
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testRouter(cat *stubCatalog, cust *stubCustomers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return buildRouter(testLogger(), nil, Deps{CatalogSvc: cat, CustomerSvc: cust})
}

func doRequest(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router := testRouter(&stubCatalog{}, &stubCustomers{})
	rec := doRequest(router, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListProducts_ForwardsQueryAndReturnsPage(t *testing.T) {
	cat := &stubCatalog{products: []domain.Product{
		{ID: "1", Name: "Vela"},
		{ID: "2", Name: "Aceite"},
	}}
	router := testRouter(cat, &stubCustomers{})

	rec := doRequest(router, http.MethodGet, "/api/products?category=velas&q=vela&sort=price-asc&page=1&perPage=10", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if cat.productsQ.Category != "velas" || cat.productsQ.Search != "vela" || cat.productsQ.Sort != "price-asc" {
		t.Fatalf("query not forwarded: %+v", cat.productsQ)
	}

	var page productPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.TotalItems != 2 || len(page.Items) != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	router := testRouter(&stubCatalog{}, &stubCustomers{})
	rec := doRequest(router, http.MethodGet, "/api/products/missing", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestWriteRoutes_RequireAuth(t *testing.T) {
	router := testRouter(&stubCatalog{}, &stubCustomers{byToken: map[string]*domain.Customer{}})

	rec := doRequest(router, http.MethodPost, "/api/products", "", `{"slug":"x"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = doRequest(router, http.MethodDelete, "/api/products/1", "bad-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with unknown token, got %d", rec.Code)
	}
}

func TestWriteRoutes_RequireAdmin(t *testing.T) {
	cust := &stubCustomers{byToken: map[string]*domain.Customer{
		"user-token":  {ID: "u1"},
		"admin-token": {ID: "a1", IsAdmin: true},
	}}
	cat := &stubCatalog{}
	router := testRouter(cat, cust)

	rec := doRequest(router, http.MethodDelete, "/api/products/p9", "user-token", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}

	rec = doRequest(router, http.MethodDelete, "/api/products/p9", "admin-token", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for admin delete, got %d", rec.Code)
	}
	if cat.deletedID != "p9" {
		t.Fatalf("delete not forwarded, got %q", cat.deletedID)
	}
}

func TestUpdateProduct_Returns200(t *testing.T) {
	cust := &stubCustomers{byToken: map[string]*domain.Customer{
		"admin-token": {ID: "a1", IsAdmin: true},
	}}
	router := testRouter(&stubCatalog{}, cust)

	rec := doRequest(router, http.MethodPut, "/api/products/p1", "admin-token",
		`{"slug":"vela","name":"Vela","priceCents":100,"currency":"ARS"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update must answer 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var p domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ID != "p1" {
		t.Fatalf("path id not applied, got %+v", p)
	}
}

func TestListings_FilteredByKindFromPath(t *testing.T) {
	cat := &stubCatalog{listings: []domain.Listing{
		{ID: "l1", Kind: domain.KindCourse, Title: "Curso de respiración"},
		{ID: "l2", Kind: domain.KindEvent, Title: "Retiro de fin de semana"},
	}}
	router := testRouter(cat, &stubCustomers{})

	rec := doRequest(router, http.MethodGet, "/api/courses", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Items []domain.Listing `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0].ID != "l1" {
		t.Fatalf("unexpected listings %+v", body.Items)
	}
}
