// Package client provides typed access to the platform REST API. One
// Resource[T] is instantiated per entity collection (products, courses,
// events, offerings) with only its path and response shape varying.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

// TokenSource yields the current bearer token, if any. It is injected
// explicitly at construction so resources never read ambient session state.
type TokenSource interface {
	Token() (string, bool)
}

// API is the shared capability behind every resource: base URL, transport
// and optional token source.
type API struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *log.Logger
}

// Option customizes an API.
type Option func(*API)

// WithHTTPClient replaces the default transport.
func WithHTTPClient(c *http.Client) Option {
	return func(a *API) { a.http = c }
}

// WithTokenSource enables bearer-token injection for authenticated
// resources.
func WithTokenSource(ts TokenSource) Option {
	return func(a *API) { a.tokens = ts }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(a *API) { a.logger = l }
}

// NewAPI builds an API rooted at baseURL. An empty base URL is allowed and
// simply makes every request fail, mirroring a missing deployment config.
func NewAPI(baseURL string, opts ...Option) *API {
	a := &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State is the observable result of the most recent operation on a
// resource. Err carries the stringified failure shown verbatim to the user;
// there is no finer error taxonomy. Data keeps its previous value across
// failures.
type State[T any] struct {
	Data    *T
	Err     string
	Loading bool
}

// Resource is a typed handle on one remote collection. Operations mirror
// their outcome into State. In-flight requests are neither cancelled nor
// de-duplicated: when two calls overlap, whichever response arrives last
// overwrites the state (last-write-wins).
type Resource[T any] struct {
	api  *API
	path string
	auth bool

	mu    sync.Mutex
	state State[T]
}

// NewResource builds a handle on api for the collection at path. When auth
// is true and the API has a token source with a current token, requests
// carry an Authorization: Bearer header.
func NewResource[T any](api *API, path string, auth bool) *Resource[T] {
	return &Resource[T]{
		api:  api,
		path: "/" + strings.Trim(path, "/"),
		auth: auth,
	}
}

// State returns a copy of the current state.
func (r *Resource[T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Fetch issues a GET for the whole collection path. Any 2xx status is a
// success; the decoded body replaces Data. On failure Data is left
// untouched and Err is set. Loading is cleared last regardless of outcome.
func (r *Resource[T]) Fetch(ctx context.Context) (*T, error) {
	r.begin()
	defer r.finish()

	res, err := r.do(ctx, http.MethodGet, r.api.baseURL+r.path, nil)
	if err != nil {
		return nil, r.fail(err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, r.fail(statusError(res.StatusCode))
	}
	return r.succeed(res.Body)
}

// Create issues a POST with a JSON body. There is no optimistic update: the
// caller reacts to the returned value (or to State changing) to chain
// follow-up behavior.
func (r *Resource[T]) Create(ctx context.Context, body any) (*T, error) {
	r.begin()
	defer r.finish()

	res, err := r.do(ctx, http.MethodPost, r.api.baseURL+r.path, body)
	if err != nil {
		return nil, r.fail(err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, r.fail(statusError(res.StatusCode))
	}
	return r.succeed(res.Body)
}

// Update issues a PUT to path/id. Only a 200 counts as success, even when
// the transport itself did not fail. The decoded value is returned directly
// and also mirrored into State.
func (r *Resource[T]) Update(ctx context.Context, id string, body any) (*T, error) {
	r.begin()
	defer r.finish()

	res, err := r.do(ctx, http.MethodPut, r.api.baseURL+r.path+"/"+id, body)
	if err != nil {
		return nil, r.fail(err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, r.fail(statusError(res.StatusCode))
	}
	return r.succeed(res.Body)
}

// Delete issues a DELETE to path/id. 200, 202 and 204 are successes. A 204
// carries no body, so a zero value stands in as the success marker mirrored
// into State.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	r.begin()
	defer r.finish()

	res, err := r.do(ctx, http.MethodDelete, r.api.baseURL+r.path+"/"+id, nil)
	if err != nil {
		return r.fail(err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		_, err := r.succeed(res.Body)
		return err
	case http.StatusNoContent:
		marker := new(T)
		r.mu.Lock()
		r.state.Data = marker
		r.state.Err = ""
		r.mu.Unlock()
		return nil
	default:
		return r.fail(statusError(res.StatusCode))
	}
}

func (r *Resource[T]) do(ctx context.Context, method, url string, body any) (*http.Response, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.auth && r.api.tokens != nil {
		if token, ok := r.api.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	r.api.logger.Printf("client: %s %s", method, url)
	return r.api.http.Do(req)
}

func (r *Resource[T]) begin() {
	r.mu.Lock()
	r.state.Loading = true
	r.mu.Unlock()
}

func (r *Resource[T]) finish() {
	r.mu.Lock()
	r.state.Loading = false
	r.mu.Unlock()
}

func (r *Resource[T]) succeed(body io.Reader) (*T, error) {
	value := new(T)
	if err := json.NewDecoder(body).Decode(value); err != nil {
		return nil, r.fail(fmt.Errorf("decode response: %w", err))
	}
	r.mu.Lock()
	r.state.Data = value
	r.state.Err = ""
	r.mu.Unlock()
	return value, nil
}

func (r *Resource[T]) fail(err error) error {
	r.mu.Lock()
	r.state.Err = err.Error()
	r.mu.Unlock()
	return err
}

func statusError(code int) error {
	return fmt.Errorf("request failed with status %d", code)
}
