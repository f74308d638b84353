// Package session holds the client-side auth state: the bearer token plus
// the logged-in customer, sourced from cookies at boot and updated by
// login/logout.
package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"

	"vitalia/internal/domain"
)

const (
	// TokenCookie carries the bearer token issued at login.
	TokenCookie = "vitalia_session"
	// UserCookie carries the customer profile as base64-encoded JSON.
	UserCookie = "vitalia_user"
)

// Session is a concurrency-safe holder for auth state. It implements the
// resource client's TokenSource.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *domain.Customer
}

// New returns an empty, unauthenticated session.
func New() *Session {
	return &Session{}
}

// FromRequest rebuilds a session from the request's cookies. A missing or
// malformed user cookie degrades to a token-only session; a missing token
// cookie yields an unauthenticated one.
func FromRequest(r *http.Request) *Session {
	s := New()
	tc, err := r.Cookie(TokenCookie)
	if err != nil || tc.Value == "" {
		return s
	}
	s.token = tc.Value

	uc, err := r.Cookie(UserCookie)
	if err != nil {
		return s
	}
	raw, err := base64.RawURLEncoding.DecodeString(uc.Value)
	if err != nil {
		return s
	}
	var user domain.Customer
	if err := json.Unmarshal(raw, &user); err != nil {
		return s
	}
	s.user = &user
	return s
}

// Login records the issued token and customer.
func (s *Session) Login(token string, user domain.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = &user
}

// Logout drops all auth state.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

// Token implements client.TokenSource.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// User returns a copy of the logged-in customer, or nil.
func (s *Session) User() *domain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a token is present.
func (s *Session) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

// IsAdmin reports whether the logged-in customer has admin rights.
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin
}

// Cookies serializes the session for the response, so the next boot can
// rehydrate via FromRequest. An unauthenticated session expires both
// cookies.
func (s *Session) Cookies() []*http.Cookie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return []*http.Cookie{
			{Name: TokenCookie, Value: "", Path: "/", MaxAge: -1},
			{Name: UserCookie, Value: "", Path: "/", MaxAge: -1},
		}
	}

	cookies := []*http.Cookie{{
		Name:     TokenCookie,
		Value:    s.token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}}
	if s.user != nil {
		if raw, err := json.Marshal(s.user); err == nil {
			cookies = append(cookies, &http.Cookie{
				Name:     UserCookie,
				Value:    base64.RawURLEncoding.EncodeToString(raw),
				Path:     "/",
				SameSite: http.SameSiteLaxMode,
			})
		}
	}
	return cookies
}
