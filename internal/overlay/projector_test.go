package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/remote"
)

func TestProjectUser(t *testing.T) {
	u := remote.User{ID: 7, Name: "Kurtis Weissnat", Email: "Telly.Hoeger@billy.biz"}
	tests := []struct {
		index  int
		role   models.Role
		status models.UserStatus
		date   string
	}{
		{0, models.RoleAdmin, models.UserInactive, "2024-01-01"},
		{1, models.RoleUser, models.UserActive, "2024-02-04"},
		{2, models.RoleEditor, models.UserActive, "2024-03-07"},
		{5, models.RoleEditor, models.UserInactive, "2024-06-16"},
		{10, models.RoleUser, models.UserInactive, "2024-11-03"},
		{12, models.RoleAdmin, models.UserActive, "2024-01-09"},
	}
	for _, tt := range tests {
		got := ProjectUser(u, tt.index)
		assert.Equal(t, 7, got.ID)
		assert.Equal(t, u.Name, got.Name)
		assert.Equal(t, u.Email, got.Email)
		assert.Equal(t, tt.role, got.Role, "index %d role", tt.index)
		assert.Equal(t, tt.status, got.Status, "index %d status", tt.index)
		assert.Equal(t, tt.date, got.JoinDate, "index %d joinDate", tt.index)
	}
}

func TestProjectOrder(t *testing.T) {
	tests := []struct {
		post     remote.Post
		index    int
		customer string
		email    string
		status   models.OrderStatus
		date     string
	}{
		{remote.Post{ID: 1, UserID: 1, Title: "sunt aut"}, 0, "John Doe", "customer1@example.com", models.OrderPending, "2024-01-01"},
		{remote.Post{ID: 2, UserID: 1}, 1, "John Doe", "customer1@example.com", models.OrderProcessing, "2024-02-02"},
		{remote.Post{ID: 23, UserID: 3}, 2, "Mike Johnson", "customer3@example.com", models.OrderCompleted, "2024-03-03"},
		{remote.Post{ID: 100, UserID: 10}, 99, "Maria Garcia", "customer10@example.com", models.OrderCancelled, "2024-04-16"},
		{remote.Post{ID: 101, UserID: 11}, 30, "Customer 11", "customer11@example.com", models.OrderCompleted, "2024-07-03"},
	}
	for _, tt := range tests {
		got := ProjectOrder(tt.post, tt.index)
		assert.Equal(t, tt.post.ID, got.ID)
		assert.Equal(t, OrderNumber(tt.post.ID), got.OrderNumber)
		assert.Equal(t, tt.customer, got.Customer)
		assert.Equal(t, tt.email, got.CustomerEmail)
		assert.Equal(t, tt.status, got.Status, "index %d", tt.index)
		assert.Equal(t, tt.date, got.OrderDate, "index %d", tt.index)
		assert.Equal(t, tt.post.Title, got.Items)
	}
}

func TestOrderNumber(t *testing.T) {
	assert.Equal(t, "ORD-00001", OrderNumber(1))
	assert.Equal(t, "ORD-00101", OrderNumber(101))
	assert.Equal(t, "ORD-123456", OrderNumber(123456))
}

func TestOrderAmountDeterministic(t *testing.T) {
	assert.InDelta(t, 129.19, OrderAmount(1), 1e-9)
	assert.InDelta(t, 525.14, OrderAmount(6), 1e-9)
	for id := 1; id <= 500; id++ {
		a := OrderAmount(id)
		assert.GreaterOrEqual(t, a, 50.0)
		assert.Less(t, a, 550.0)
		assert.Equal(t, a, OrderAmount(id))
	}

	p := remote.Post{ID: 42, UserID: 5}
	assert.Equal(t, ProjectOrder(p, 3), ProjectOrder(p, 3), "projection must be idempotent")
}
