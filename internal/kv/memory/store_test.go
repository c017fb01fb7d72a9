package memory

import (
	"context"
	"testing"
)

func TestGetMissing(t *testing.T) {
	s := New()
	v, ok, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || v != nil {
		t.Fatalf("expected missing key, got ok=%v v=%q", ok, v)
	}
}

func TestSetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	val := []byte(`{"added":[]}`)
	if err := s.Set(ctx, "k", val); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// Mutating the caller's slice must not change the stored value
	val[0] = 'X'

	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(got) != `{"added":[]}` {
		t.Errorf("got %q", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("key still present after Delete")
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}
