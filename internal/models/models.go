package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Kind identifies an entity collection
type Kind string

const (
	KindUsers  Kind = "users"
	KindOrders Kind = "orders"
)

// Role represents a user's role
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleUser   Role = "User"
)

// UserStatus represents whether a user account is active
type UserStatus string

const (
	UserActive   UserStatus = "Active"
	UserInactive UserStatus = "Inactive"
)

// OrderStatus represents order lifecycle state
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderCompleted  OrderStatus = "Completed"
	OrderCancelled  OrderStatus = "Cancelled"
)

// Roles lists valid roles in display order
var Roles = []Role{RoleAdmin, RoleEditor, RoleUser}

// UserStatuses lists valid user statuses
var UserStatuses = []UserStatus{UserActive, UserInactive}

// OrderStatuses lists valid order statuses
var OrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderCompleted, OrderCancelled}

// FilterAll is the filter value that disables a field filter
const FilterAll = "all"

// Record is implemented by every overlay entity
type Record interface {
	RecordID() int
}

// User is an admin-panel user account
type User struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Role     Role       `json:"role"`
	Status   UserStatus `json:"status"`
	JoinDate string     `json:"joinDate"`
}

// RecordID returns the user ID
func (u User) RecordID() int { return u.ID }

// Order is a customer order
type Order struct {
	ID            int         `json:"id"`
	OrderNumber   string      `json:"orderNumber"`
	Customer      string      `json:"customer"`
	CustomerEmail string      `json:"customerEmail"`
	Amount        float64     `json:"amount"`
	Status        OrderStatus `json:"status"`
	OrderDate     string      `json:"orderDate"`
	Items         string      `json:"items"`
}

// RecordID returns the order ID
func (o Order) RecordID() int { return o.ID }

// Patch is a sparse set of field overrides keyed by JSON field name
type Patch map[string]json.RawMessage

// PatchField is the JSON field that patches may never carry
const PatchField = "id"

// NewPatch builds a patch from plain values, dropping the id field
func NewPatch(fields map[string]any) (Patch, error) {
	p := make(Patch, len(fields))
	for k, v := range fields {
		if k == PatchField {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal field %s: %w", k, err)
		}
		p[k] = raw
	}
	return p, nil
}

// Merge returns a new patch with other's fields layered over p
func (p Patch) Merge(other Patch) Patch {
	out := make(Patch, len(p)+len(other))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range other {
		if k == PatchField {
			continue
		}
		out[k] = v
	}
	return out
}

// Keys returns the patched field names in sorted order
func (p Patch) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Apply shallow-merges the patch over base, patch fields taking precedence.
// The id of base is always preserved.
func Apply[E any](base E, p Patch) (E, error) {
	if len(p) == 0 {
		return base, nil
	}
	data, err := json.Marshal(base)
	if err != nil {
		return base, fmt.Errorf("marshal base: %w", err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return base, fmt.Errorf("decode base: %w", err)
	}
	for k, v := range p {
		if k == PatchField {
			continue
		}
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return base, fmt.Errorf("marshal merged: %w", err)
	}
	var out E
	if err := json.Unmarshal(merged, &out); err != nil {
		return base, fmt.Errorf("decode merged: %w", err)
	}
	return out, nil
}

// Changes holds local additions and per-id overrides for one entity kind.
// LastIssued is the highest id Create has handed out, kept so a deleted
// addition's id is not issued again.
type Changes[E any] struct {
	Added      []E           `json:"added"`
	Updated    map[int]Patch `json:"updated"`
	LastIssued int           `json:"lastIssued,omitempty"`
}

// Normalize replaces nil collections with empty ones
func (c *Changes[E]) Normalize() {
	if c.Added == nil {
		c.Added = []E{}
	}
	if c.Updated == nil {
		c.Updated = map[int]Patch{}
	}
}

// IDSet is an insertion-ordered set of ids, serialized as a JSON array
type IDSet []int

// Has reports whether id is in the set
func (s IDSet) Has(id int) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Add appends id unless it is already present
func (s IDSet) Add(id int) IDSet {
	if s.Has(id) {
		return s
	}
	return append(s, id)
}

// Lookup returns the set as a map for repeated membership checks
func (s IDSet) Lookup() map[int]struct{} {
	m := make(map[int]struct{}, len(s))
	for _, v := range s {
		m[v] = struct{}{}
	}
	return m
}

// Filter holds list query parameters
type Filter struct {
	Search   string            `json:"search,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
	DateFrom string            `json:"dateFrom,omitempty"`
	DateTo   string            `json:"dateTo,omitempty"`
	Page     int               `json:"page"`
	PageSize int               `json:"limit"`
}

// Default page parameters
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Page is one page of a filtered, sorted collection
type Page[E any] struct {
	Items      []E `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// SessionUser is the identity attached to a login session
type SessionUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Session is the persisted login state
type Session struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// ActionType represents a mutation recorded in the activity log
type ActionType string

const (
	ActionCreate ActionType = "create"
	ActionUpdate ActionType = "update"
	ActionDelete ActionType = "delete"
	ActionLogin  ActionType = "login"
	ActionLogout ActionType = "logout"
)

// Activity is one entry in the recent activity feed
type Activity struct {
	Kind      Kind       `json:"kind,omitempty"`
	Action    ActionType `json:"action"`
	EntityID  int        `json:"entityId,omitempty"`
	Label     string     `json:"label"`
	Actor     string     `json:"actor,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// Config is the panel configuration stored at .panel/config.json
type Config struct {
	StoreDriver string  `json:"store_driver,omitempty"`
	StoreDSN    string  `json:"store_dsn,omitempty"`
	APIBaseURL  string  `json:"api_base_url,omitempty"`
	PageSize    int     `json:"page_size,omitempty"`
	Latency     string  `json:"latency,omitempty"` // duration string, e.g. "500ms"
	FailureRate float64 `json:"failure_rate,omitempty"`
	HTTPTimeout string  `json:"http_timeout,omitempty"`

	S3Bucket    string `json:"s3_bucket,omitempty"`
	S3Region    string `json:"s3_region,omitempty"`
	S3Endpoint  string `json:"s3_endpoint,omitempty"`
	S3Prefix    string `json:"s3_prefix,omitempty"`
	S3PathStyle bool   `json:"s3_path_style,omitempty"`

	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"`
}

// ParseID parses a decimal record id
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
