package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/kv/memory"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/remote"
)

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	s := New(store, nil)

	sess, err := s.Login(ctx, AdminEmail, AdminPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !strings.HasPrefix(sess.Token, TokenPrefix) || len(sess.Token) <= len(TokenPrefix) {
		t.Errorf("token = %q", sess.Token)
	}
	want := models.SessionUser{ID: 1, Name: "Admin User", Email: AdminEmail, Role: models.RoleAdmin}
	if sess.User != want {
		t.Errorf("user = %+v, want %+v", sess.User, want)
	}

	raw, ok, _ := store.Get(ctx, TokenKey)
	if !ok || string(raw) != sess.Token {
		t.Errorf("stored token = %q", raw)
	}
	raw, _, _ = store.Get(ctx, UserKey)
	if string(raw) != `{"id":1,"name":"Admin User","email":"admin@example.com","role":"Admin"}` {
		t.Errorf("stored user = %s", raw)
	}

	cur, err := s.Current(ctx)
	if err != nil || cur == nil || cur.Token != sess.Token || cur.User != want {
		t.Fatalf("Current = %+v, %v", cur, err)
	}
}

func TestLoginTokensDiffer(t *testing.T) {
	s := New(memory.New(), nil)
	a, _ := s.Login(context.Background(), AdminEmail, AdminPassword)
	b, _ := s.Login(context.Background(), AdminEmail, AdminPassword)
	if a.Token == b.Token {
		t.Error("tokens should be unique per login")
	}
}

func TestLoginInvalid(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	s := New(store, nil)

	tests := []struct{ email, password string }{
		{AdminEmail, "secret@123"},
		{"Admin@example.com", AdminPassword},
		{"", ""},
	}
	for _, tt := range tests {
		_, err := s.Login(ctx, tt.email, tt.password)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%q, %q) err = %v", tt.email, tt.password, err)
		}
	}
	if store.Len() != 0 {
		t.Error("failed login must not persist anything")
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	s := New(store, nil)
	if _, err := s.Login(ctx, AdminEmail, AdminPassword); err != nil {
		t.Fatal(err)
	}
	if err := s.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	cur, err := s.Current(ctx)
	if err != nil || cur != nil {
		t.Errorf("after logout Current = %+v, %v", cur, err)
	}
	if _, err := s.Require(ctx); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Require err = %v", err)
	}
}

func TestValidateClearsMalformedToken(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_ = store.Set(ctx, TokenKey, []byte("garbage"))
	_ = store.Set(ctx, UserKey, []byte(`{"id":1}`))
	s := New(store, nil)

	ok, err := s.Validate(ctx)
	if err != nil || ok {
		t.Fatalf("Validate = %v, %v", ok, err)
	}
	if store.Len() != 0 {
		t.Errorf("malformed session not cleared; %d keys left", store.Len())
	}
}

func TestValidateWellFormed(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New(), nil)
	if _, err := s.Login(ctx, AdminEmail, AdminPassword); err != nil {
		t.Fatal(err)
	}
	ok, err := s.Validate(ctx)
	if err != nil || !ok {
		t.Fatalf("Validate = %v, %v", ok, err)
	}
	sess, err := s.Require(ctx)
	if err != nil || sess.User.Name != "Admin User" {
		t.Fatalf("Require = %+v, %v", sess, err)
	}
}

func TestLoginDelayFailure(t *testing.T) {
	in := &remote.Injector{FailureRate: 1, Roll: func() float64 { return 0.1 }}
	s := New(memory.New(), in)
	if _, err := s.Login(context.Background(), AdminEmail, AdminPassword); !errors.Is(err, remote.ErrInjected) {
		t.Errorf("err = %v", err)
	}
}

func TestValidateSkipsDelay(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	if _, err := New(store, nil).Login(ctx, AdminEmail, AdminPassword); err != nil {
		t.Fatal(err)
	}

	rolls := 0
	in := &remote.Injector{FailureRate: 1, Roll: func() float64 { rolls++; return 0 }}
	s := New(store, in)
	if ok, err := s.Validate(ctx); err != nil || !ok {
		t.Fatalf("Validate = %v, %v", ok, err)
	}
	if _, err := s.Require(ctx); err != nil {
		t.Fatalf("Require: %v", err)
	}
	if rolls != 0 {
		t.Errorf("rolls = %d, want 0", rolls)
	}
}
