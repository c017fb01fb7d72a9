// Package auth implements the panel's single-account login. The session
// token and user are kept in the kv store under the same keys the browser
// panel used.
package auth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/kv"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/remote"
)

// The only accepted account
const (
	AdminEmail    = "admin@example.com"
	AdminPassword = "Secret@123"
)

// Storage keys
const (
	TokenKey = "token"
	UserKey  = "user"
)

// TokenPrefix marks a token issued by Login
const TokenPrefix = "Bearer_"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotLoggedIn        = errors.New("not logged in")
)

var adminUser = models.SessionUser{ID: 1, Name: "Admin User", Role: models.RoleAdmin}

// Service logs in and out against a kv store
type Service struct {
	store kv.Store
	delay *remote.Injector
}

// New returns an auth service. delay may be nil.
func New(store kv.Store, delay *remote.Injector) *Service {
	return &Service{store: store, delay: delay}
}

// Login checks the credentials and persists a new session
func (s *Service) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if err := s.delay.Wait(ctx); err != nil {
		return nil, err
	}
	if !matches(email, AdminEmail) || !matches(password, AdminPassword) {
		return nil, ErrInvalidCredentials
	}

	user := adminUser
	user.Email = email
	sess := &models.Session{Token: newToken(), User: user}

	data, err := json.Marshal(sess.User)
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}
	if err := s.store.Set(ctx, TokenKey, []byte(sess.Token)); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	if err := s.store.Set(ctx, UserKey, data); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return sess, nil
}

// Logout clears the stored session
func (s *Service) Logout(ctx context.Context) error {
	if err := s.delay.Wait(ctx); err != nil {
		return err
	}
	return s.clear(ctx)
}

// Current returns the stored session, or nil if there is none
func (s *Service) Current(ctx context.Context) (*models.Session, error) {
	token, ok, err := s.store.Get(ctx, TokenKey)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	if !ok || len(token) == 0 {
		return nil, nil
	}
	sess := &models.Session{Token: string(token)}

	raw, ok, err := s.store.Get(ctx, UserKey)
	if err != nil {
		return nil, fmt.Errorf("read user: %w", err)
	}
	if ok {
		if err := json.Unmarshal(raw, &sess.User); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
	}
	return sess, nil
}

// Require returns the current session or ErrNotLoggedIn
func (s *Service) Require(ctx context.Context) (*models.Session, error) {
	ok, err := s.Validate(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotLoggedIn
	}
	return s.Current(ctx)
}

// Validate reports whether a well-formed token is stored. A missing or
// malformed token clears the session. It only reads local state, so it
// never waits on the delay.
func (s *Service) Validate(ctx context.Context) (bool, error) {
	token, ok, err := s.store.Get(ctx, TokenKey)
	if err != nil {
		return false, fmt.Errorf("read token: %w", err)
	}
	if !ok || !strings.HasPrefix(string(token), TokenPrefix) {
		return false, s.clear(ctx)
	}
	return true, nil
}

func (s *Service) clear(ctx context.Context) error {
	for _, key := range []string{TokenKey, UserKey} {
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}
	return nil
}

func newToken() string {
	return TokenPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func matches(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
