package remote_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/remote"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/remote/remotetest"
)

func TestInjectorZeroValue(t *testing.T) {
	var in remote.Injector
	if err := in.Wait(context.Background()); err != nil {
		t.Fatalf("zero injector: %v", err)
	}
	var nilIn *remote.Injector
	if err := nilIn.Wait(context.Background()); err != nil {
		t.Fatalf("nil injector: %v", err)
	}
}

func TestInjectorLatency(t *testing.T) {
	in := &remote.Injector{Latency: 15 * time.Millisecond}
	start := time.Now()
	if err := in.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	if d := time.Since(start); d < 15*time.Millisecond {
		t.Errorf("returned after %v", d)
	}
}

func TestInjectorCancel(t *testing.T) {
	in := &remote.Injector{Latency: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := in.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestInjectorFailureRate(t *testing.T) {
	tests := []struct {
		rate float64
		roll float64
		fail bool
	}{
		{0, 0, false},
		{0.5, 0.49, true},
		{0.5, 0.5, false},
		{1, 0.99, true},
	}
	for _, tt := range tests {
		roll := tt.roll
		in := &remote.Injector{FailureRate: tt.rate, Roll: func() float64 { return roll }}
		err := in.Wait(context.Background())
		if got := errors.Is(err, remote.ErrInjected); got != tt.fail {
			t.Errorf("rate=%v roll=%v: failed=%v, want %v", tt.rate, tt.roll, got, tt.fail)
		}
	}
}

type recorder struct {
	endpoints []string
	errs      []error
}

func (r *recorder) ObserveFetch(endpoint string, _ time.Duration, err error) {
	r.endpoints = append(r.endpoints, endpoint)
	r.errs = append(r.errs, err)
}

func TestObserved(t *testing.T) {
	src := remotetest.NewSource(remotetest.Users(2), remotetest.Posts(2))
	rec := &recorder{}
	s := remote.Observed(src, rec)
	ctx := context.Background()

	_, _ = s.Users(ctx)
	_, _ = s.User(ctx, 9)
	_, _ = s.Posts(ctx)
	_, _ = s.Post(ctx, 1)

	want := []string{remote.EndpointUsers, remote.EndpointUser, remote.EndpointPosts, remote.EndpointPost}
	if len(rec.endpoints) != len(want) {
		t.Fatalf("endpoints = %v", rec.endpoints)
	}
	for i := range want {
		if rec.endpoints[i] != want[i] {
			t.Errorf("endpoint[%d] = %s, want %s", i, rec.endpoints[i], want[i])
		}
	}
	if !errors.Is(rec.errs[1], remote.ErrNotFound) {
		t.Errorf("User(9) error not observed: %v", rec.errs[1])
	}
}
