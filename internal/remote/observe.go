package remote

import (
	"context"
	"time"
)

// Observer receives the outcome of every fetch
type Observer interface {
	ObserveFetch(endpoint string, elapsed time.Duration, err error)
}

// Endpoint labels reported to an Observer
const (
	EndpointUsers = "users"
	EndpointUser  = "user"
	EndpointPosts = "posts"
	EndpointPost  = "post"
)

// Observed wraps src so each fetch is reported to obs
func Observed(src Source, obs Observer) Source {
	if obs == nil {
		return src
	}
	return &observed{src: src, obs: obs}
}

type observed struct {
	src Source
	obs Observer
}

func (s *observed) Users(ctx context.Context) ([]User, error) {
	start := time.Now()
	v, err := s.src.Users(ctx)
	s.obs.ObserveFetch(EndpointUsers, time.Since(start), err)
	return v, err
}

func (s *observed) User(ctx context.Context, id int) (User, error) {
	start := time.Now()
	v, err := s.src.User(ctx, id)
	s.obs.ObserveFetch(EndpointUser, time.Since(start), err)
	return v, err
}

func (s *observed) Posts(ctx context.Context) ([]Post, error) {
	start := time.Now()
	v, err := s.src.Posts(ctx)
	s.obs.ObserveFetch(EndpointPosts, time.Since(start), err)
	return v, err
}

func (s *observed) Post(ctx context.Context, id int) (Post, error) {
	start := time.Now()
	v, err := s.src.Post(ctx, id)
	s.obs.ObserveFetch(EndpointPost, time.Since(start), err)
	return v, err
}
