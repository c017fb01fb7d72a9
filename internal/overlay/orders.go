package overlay

import (
	"fmt"
	"time"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/changestore"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/kv"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/remote"
)

// Orders is the overlay over remote /posts, presented as orders
type Orders = Service[remote.Post, models.Order]

var orderStatuses = [...]models.OrderStatus{
	models.OrderPending, models.OrderProcessing, models.OrderCompleted, models.OrderCancelled,
}

// customerNames is indexed by the post author's id minus one
var customerNames = [...]string{
	"John Doe", "Jane Smith", "Mike Johnson", "Sarah Williams", "Tom Brown",
	"Emily Davis", "David Wilson", "Lisa Anderson", "Robert Taylor", "Maria Garcia",
}

// OrderNumber formats the display number for an order id
func OrderNumber(id int) string {
	return fmt.Sprintf("ORD-%05d", id)
}

// OrderAmount is the simulated order total for an id, in [50, 550) with
// two decimals. It depends only on the id so repeated reads agree.
func OrderAmount(id int) float64 {
	cents := mod(id*7919, 50000)
	return 50 + float64(cents)/100
}

// ProjectOrder derives an order from a remote post at position index
func ProjectOrder(p remote.Post, index int) models.Order {
	customer := fmt.Sprintf("Customer %d", p.UserID)
	if i := p.UserID - 1; i >= 0 && i < len(customerNames) {
		customer = customerNames[i]
	}
	return models.Order{
		ID:            p.ID,
		OrderNumber:   OrderNumber(p.ID),
		Customer:      customer,
		CustomerEmail: fmt.Sprintf("customer%d@example.com", p.UserID),
		Amount:        OrderAmount(p.ID),
		Status:        orderStatuses[mod(index, len(orderStatuses))],
		OrderDate:     calendarDate(2024, index%12, index%28+1),
		Items:         p.Title,
	}
}

// OrderSchema describes orders for a Service
func OrderSchema(src remote.Source) Schema[remote.Post, models.Order] {
	return Schema[remote.Post, models.Order]{
		Kind:    models.KindOrders,
		List:    src.Posts,
		Fetch:   src.Post,
		BaseID:  func(p remote.Post) int { return p.ID },
		Project: ProjectOrder,
		Search: func(o models.Order) []string {
			return []string{o.OrderNumber, o.Customer, o.CustomerEmail}
		},
		Field: orderField,
		Date:  func(o models.Order) string { return o.OrderDate },
		Prepare: func(o models.Order, id int) models.Order {
			o.ID = id
			if o.OrderNumber == "" {
				o.OrderNumber = OrderNumber(id)
			}
			if o.Status == "" {
				o.Status = models.OrderPending
			}
			return o
		},
		Stub:  func(id int) models.Order { return models.Order{ID: id} },
		Label: func(o models.Order) string { return fmt.Sprintf("%s (%s)", o.OrderNumber, o.Customer) },
	}
}

// OrderFilterFields lists the fields usable in an orders Filter
var OrderFilterFields = []string{"status", "customer"}

func orderField(o models.Order, name string) (string, bool) {
	switch name {
	case "status":
		return string(o.Status), true
	case "customer":
		return o.Customer, true
	}
	return "", false
}

// NewOrders builds the orders overlay over src with state in store
func NewOrders(src remote.Source, store kv.Store, opts ...Option) *Orders {
	return New(OrderSchema(src), changestore.New[models.Order](store, models.KindOrders), opts...)
}

// calendarDate formats year, 0-based month and day as YYYY-MM-DD,
// normalizing overflow the way time.Date does.
func calendarDate(year, month0, day int) string {
	return time.Date(year, time.Month(month0+1), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// mod is the non-negative remainder of a/n
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
