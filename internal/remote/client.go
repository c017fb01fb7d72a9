// Package remote fetches the read-only base records from a
// JSONPlaceholder-compatible REST API.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public mock API the panel reads from
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// DefaultTimeout bounds every request when no timeout is configured
const DefaultTimeout = 30 * time.Second

// ErrNotFound is returned when the API answers 404 for a by-id lookup
var ErrNotFound = errors.New("not found")

// StatusError is a non-404 error status from the API
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("GET %s: HTTP %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: HTTP %d: %s", e.Path, e.StatusCode, body)
}

// User is a user record as served by /users
type User struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone,omitempty"`
	Website  string  `json:"website,omitempty"`
	Company  Company `json:"company"`
}

// Company is the employer block embedded in a user
type Company struct {
	Name string `json:"name"`
}

// Post is a post record as served by /posts
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Source is the set of reads the overlay needs from the API
type Source interface {
	Users(ctx context.Context) ([]User, error)
	User(ctx context.Context, id int) (User, error)
	Posts(ctx context.Context) ([]Post, error)
	Post(ctx context.Context, id int) (Post, error)
}

// Client is an HTTP client for the API
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

var _ Source = (*Client)(nil)

// New creates a client. An empty baseURL selects DefaultBaseURL and a
// non-positive timeout selects DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Users lists every user
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// User fetches one user by id
func (c *Client) User(ctx context.Context, id int) (User, error) {
	var u User
	err := c.get(ctx, "/users/"+strconv.Itoa(id), &u)
	return u, err
}

// Posts lists every post
func (c *Client) Posts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.get(ctx, "/posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Post fetches one post by id
func (c *Client) Post(ctx context.Context, id int) (Post, error) {
	var p Post
	err := c.get(ctx, "/posts/"+strconv.Itoa(id), &p)
	return p, err
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("GET %s: %w", path, ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		return &StatusError{Path: path, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
