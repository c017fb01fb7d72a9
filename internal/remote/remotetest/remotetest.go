// Package remotetest provides fixture data and fakes of the remote API:
// an in-process Source and a chi-routed HTTP server.
package remotetest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/remote"
)

// Users returns n fixture users with ids 1..n
func Users(n int) []remote.User {
	out := make([]remote.User, n)
	for i := range out {
		id := i + 1
		out[i] = remote.User{
			ID:       id,
			Name:     fmt.Sprintf("User %d", id),
			Username: fmt.Sprintf("user%d", id),
			Email:    fmt.Sprintf("user%d@example.org", id),
			Company:  remote.Company{Name: "Acme"},
		}
	}
	return out
}

// Posts returns n fixture posts with ids 1..n, ten per author
func Posts(n int) []remote.Post {
	out := make([]remote.Post, n)
	for i := range out {
		id := i + 1
		out[i] = remote.Post{
			ID:     id,
			UserID: i/10 + 1,
			Title:  fmt.Sprintf("post title %d", id),
			Body:   "body",
		}
	}
	return out
}

// Source is an in-process remote.Source over fixed slices. Err, when set,
// is returned by every call.
type Source struct {
	mu        sync.Mutex
	UserList  []remote.User
	PostList  []remote.Post
	Err       error
	listCalls atomic.Int64
}

var _ remote.Source = (*Source)(nil)

// NewSource returns a Source with the given fixtures
func NewSource(users []remote.User, posts []remote.Post) *Source {
	return &Source{UserList: users, PostList: posts}
}

// ListCalls reports how many listing fetches were made
func (s *Source) ListCalls() int64 { return s.listCalls.Load() }

// SetErr makes every later call fail with err
func (s *Source) SetErr(err error) {
	s.mu.Lock()
	s.Err = err
	s.mu.Unlock()
}

func (s *Source) err(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Err
}

func (s *Source) Users(ctx context.Context) ([]remote.User, error) {
	s.listCalls.Add(1)
	if err := s.err(ctx); err != nil {
		return nil, err
	}
	return append([]remote.User(nil), s.UserList...), nil
}

func (s *Source) User(ctx context.Context, id int) (remote.User, error) {
	if err := s.err(ctx); err != nil {
		return remote.User{}, err
	}
	for _, u := range s.UserList {
		if u.ID == id {
			return u, nil
		}
	}
	return remote.User{}, fmt.Errorf("GET /users/%d: %w", id, remote.ErrNotFound)
}

func (s *Source) Posts(ctx context.Context) ([]remote.Post, error) {
	s.listCalls.Add(1)
	if err := s.err(ctx); err != nil {
		return nil, err
	}
	return append([]remote.Post(nil), s.PostList...), nil
}

func (s *Source) Post(ctx context.Context, id int) (remote.Post, error) {
	if err := s.err(ctx); err != nil {
		return remote.Post{}, err
	}
	for _, p := range s.PostList {
		if p.ID == id {
			return p, nil
		}
	}
	return remote.Post{}, fmt.Errorf("GET /posts/%d: %w", id, remote.ErrNotFound)
}

// Handler serves /users, /users/{id}, /posts and /posts/{id} from src.
// A request whose path is in failPaths answers with that status instead.
func Handler(src *Source, failPaths map[string]int) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if code, ok := failPaths[req.URL.Path]; ok {
				http.Error(w, http.StatusText(code), code)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/users", func(w http.ResponseWriter, req *http.Request) {
		users, err := src.Users(req.Context())
		writeResult(w, users, err)
	})
	r.Get("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(req, "id"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]any{})
			return
		}
		u, err := src.User(req.Context(), id)
		writeResult(w, u, err)
	})
	r.Get("/posts", func(w http.ResponseWriter, req *http.Request) {
		posts, err := src.Posts(req.Context())
		writeResult(w, posts, err)
	})
	r.Get("/posts/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(req, "id"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]any{})
			return
		}
		p, err := src.Post(req.Context(), id)
		writeResult(w, p, err)
	})
	return r
}

// NewServer starts an httptest server for src, closed when t ends
func NewServer(t testing.TB, src *Source, failPaths map[string]int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(Handler(src, failPaths))
	t.Cleanup(srv.Close)
	return srv
}

func writeResult(w http.ResponseWriter, v any, err error) {
	switch {
	case errors.Is(err, remote.ErrNotFound):
		// JSONPlaceholder answers unknown ids with 404 and an empty object
		writeJSON(w, http.StatusNotFound, map[string]any{})
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
