package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"vitalia/internal/domain"
)

func TestLogin_Success(t *testing.T) {
	router := testRouter(&stubCatalog{}, &stubCustomers{})

	rec := doRequest(router, http.MethodPost, "/api/auth/login", "",
		`{"email":"ana@example.com","password":"Secreta123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.AccessToken != "acc" || body.RefreshToken != "ref" || body.ExpiresIn != 3600 {
		t.Fatalf("unexpected login response %+v", body)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	router := testRouter(&stubCatalog{}, &stubCustomers{})
	rec := doRequest(router, http.MethodPost, "/api/auth/login", "",
		`{"email":"ana@example.com","password":"mala"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	router := testRouter(&stubCatalog{}, &stubCustomers{})
	rec := doRequest(router, http.MethodPost, "/api/auth/login", "", `{"email":"ana@example.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSignup_Returns201(t *testing.T) {
	router := testRouter(&stubCatalog{}, &stubCustomers{})
	rec := doRequest(router, http.MethodPost, "/api/auth/signup", "",
		`{"email":"nueva@example.com","password":"Secreta123"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestMe_ReturnsCurrentCustomer(t *testing.T) {
	cust := &stubCustomers{byToken: map[string]*domain.Customer{
		"tok": {ID: "c1", Email: "ana@example.com"},
	}}
	router := testRouter(&stubCatalog{}, cust)

	rec := doRequest(router, http.MethodGet, "/api/auth/me", "tok", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var me domain.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if me.ID != "c1" {
		t.Fatalf("unexpected customer %+v", me)
	}

	rec = doRequest(router, http.MethodGet, "/api/auth/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	cust := &stubCustomers{byToken: map[string]*domain.Customer{
		"tok": {ID: "c1"},
	}}
	router := testRouter(&stubCatalog{}, cust)

	rec := doRequest(router, http.MethodPost, "/api/auth/logout", "tok", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(cust.loggedOut) != 1 || cust.loggedOut[0] != "tok" {
		t.Fatalf("token not revoked: %v", cust.loggedOut)
	}
}
