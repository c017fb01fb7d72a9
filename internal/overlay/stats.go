package overlay

import (
	"context"
	"fmt"
	"math"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/activity"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
)

// Stats are the dashboard widgets
type Stats struct {
	TotalUsers     int                        `json:"totalUsers"`
	ActiveUsers    int                        `json:"activeUsers"`
	TotalOrders    int                        `json:"totalOrders"`
	Revenue        float64                    `json:"revenue"`
	OrdersByStatus map[models.OrderStatus]int `json:"ordersByStatus"`
	RecentActivity []models.Activity          `json:"recentActivity"`
}

// RecentActivityLimit is how many feed entries the dashboard shows
const RecentActivityLimit = 5

// Dashboard computes Stats over both overlays and the activity feed
type Dashboard struct {
	Users    *Users
	Orders   *Orders
	Activity *activity.Log
}

// Stats reads both collections once and summarizes them. Revenue counts
// every order that is not cancelled.
func (d *Dashboard) Stats(ctx context.Context) (Stats, error) {
	users, err := d.Users.All(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("users: %w", err)
	}
	orders, err := d.Orders.All(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("orders: %w", err)
	}

	st := Stats{
		TotalUsers:     len(users),
		TotalOrders:    len(orders),
		OrdersByStatus: make(map[models.OrderStatus]int, len(models.OrderStatuses)),
		RecentActivity: []models.Activity{},
	}
	for _, u := range users {
		if u.Status == models.UserActive {
			st.ActiveUsers++
		}
	}
	for _, s := range models.OrderStatuses {
		st.OrdersByStatus[s] = 0
	}
	var cents int64
	for _, o := range orders {
		st.OrdersByStatus[o.Status]++
		if o.Status != models.OrderCancelled {
			cents += int64(math.Round(o.Amount * 100))
		}
	}
	st.Revenue = float64(cents) / 100

	if d.Activity != nil {
		recent, err := d.Activity.Recent(ctx, RecentActivityLimit)
		if err != nil {
			return Stats{}, fmt.Errorf("activity: %w", err)
		}
		st.RecentActivity = recent
	}
	return st, nil
}
