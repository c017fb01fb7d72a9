package overlay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/activity"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/changestore"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/kv/memory"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/metrics"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/remote"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/remote/remotetest"
)

type fixture struct {
	src     *remotetest.Source
	kv      *memory.Store
	users   *Users
	orders  *Orders
	feed    *activity.Log
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, nUsers, nPosts int, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		src:     remotetest.NewSource(remotetest.Users(nUsers), remotetest.Posts(nPosts)),
		kv:      memory.New(),
		metrics: metrics.New(),
	}
	f.feed = activity.New(f.kv)
	base := []Option{
		WithActivity(f.feed),
		WithMetrics(f.metrics),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time { return time.Date(2024, 6, 19, 12, 0, 0, 0, time.UTC) }),
		WithActor("Admin User"),
	}
	opts = append(base, opts...)
	f.users = NewUsers(f.src, f.kv, opts...)
	f.orders = NewOrders(f.src, f.kv, opts...)
	return f
}

func ids[E models.Record](items []E) []int {
	out := make([]int, len(items))
	for i, e := range items {
		out[i] = e.RecordID()
	}
	return out
}

func patch(t *testing.T, fields map[string]any) models.Patch {
	t.Helper()
	p, err := models.NewPatch(fields)
	require.NoError(t, err)
	return p
}

func TestQueryDefaultsAndOrdering(t *testing.T) {
	f := newFixture(t, 10, 0)
	page, err := f.users.Query(context.Background(), models.Filter{})
	require.NoError(t, err)

	assert.Equal(t, []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, ids(page.Items))
	assert.Equal(t, 10, page.Total)
	assert.Equal(t, models.DefaultPage, page.Page)
	assert.Equal(t, models.DefaultPageSize, page.PageSize)
	assert.Equal(t, 1, page.TotalPages)
}

func TestScenarioCreateSurfacesFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10, 0)

	created, err := f.users.Create(ctx, models.User{ID: 500, Name: "Nina New", Email: "nina@example.com", Role: models.RoleEditor})
	require.NoError(t, err)
	assert.Equal(t, 11, created.ID, "input id must be ignored")
	assert.Equal(t, models.UserActive, created.Status)

	page, err := f.users.Query(ctx, models.Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}, ids(page.Items))
	assert.Equal(t, 11, page.Total)
	assert.Equal(t, 2, page.TotalPages)

	page2, err := f.users.Query(ctx, models.Filter{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(page2.Items))
}

func TestScenarioUpdateThenDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10, 0)

	_, err := f.users.Update(ctx, 5, patch(t, map[string]any{"status": "Inactive"}))
	require.NoError(t, err)
	require.NoError(t, f.users.Delete(ctx, 5))

	page, err := f.users.Query(ctx, models.Filter{PageSize: 100})
	require.NoError(t, err)
	assert.NotContains(t, ids(page.Items), 5)

	raw, ok, err := f.kv.Get(ctx, changestore.ChangesKey(models.KindUsers))
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"added":[],"updated":{}}`, string(raw))
	raw, _, _ = f.kv.Get(ctx, changestore.DeletedKey(models.KindUsers))
	assert.JSONEq(t, `[5]`, string(raw))

	created, err := f.users.Create(ctx, models.User{Name: "Fresh", Email: "fresh@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 11, created.ID)
	assert.Equal(t, models.UserActive, created.Status, "no override may leak into a new record")
}

func TestScenarioEmptyStatusFilter(t *testing.T) {
	f := newFixture(t, 0, 2) // positions 0 and 1: Pending, Processing
	page, err := f.orders.Query(context.Background(), models.Filter{
		Fields: map[string]string{"status": string(models.OrderCompleted)},
	})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 0, page.TotalPages)

	data, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"total":0,"page":1,"limit":10,"totalPages":0}`, string(data))
}

func TestDeletionMasking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0, 20)
	for _, id := range []int{3, 7, 20} {
		require.NoError(t, f.orders.Delete(ctx, id))
	}

	filters := []models.Filter{
		{PageSize: 100},
		{Search: "ORD-0000", PageSize: 100},
		{Fields: map[string]string{"status": "all"}, PageSize: 100},
		{Search: "customer", Page: 2, PageSize: 5},
	}
	for _, flt := range filters {
		page, err := f.orders.Query(ctx, flt)
		require.NoError(t, err)
		for _, id := range []int{3, 7, 20} {
			assert.NotContains(t, ids(page.Items), id, "filter %+v", flt)
		}
	}

	_, err := f.orders.Get(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletionShiftsProjectionIndex(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 4, 0)
	require.NoError(t, f.users.Delete(ctx, 1))

	all, err := f.users.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// user 2 now sits at position 0 of the masked listing
	u2 := all[2]
	assert.Equal(t, 2, u2.ID)
	assert.Equal(t, models.RoleAdmin, u2.Role)
	assert.Equal(t, models.UserInactive, u2.Status)
}

func TestDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5, 0)
	require.NoError(t, f.users.Delete(ctx, 3))
	require.NoError(t, f.users.Delete(ctx, 3))

	deleted, err := f.users.Store().LoadDeleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.IDSet{3}, deleted)
}

func TestDeleteLocalAddition(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5, 0)
	a, err := f.users.Create(ctx, models.User{Name: "A"})
	require.NoError(t, err)
	b, err := f.users.Create(ctx, models.User{Name: "B"})
	require.NoError(t, err)
	require.Equal(t, []int{6, 7}, []int{a.ID, b.ID})

	require.NoError(t, f.users.Delete(ctx, 6))

	st, err := f.users.Store().Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, ids(st.Changes.Added))
	assert.Equal(t, models.IDSet{6}, st.Deleted, "deleted local ids stay reserved")

	_, err = f.users.Get(ctx, 6)
	assert.ErrorIs(t, err, ErrNotFound)

	c, err := f.users.Create(ctx, models.User{Name: "C"})
	require.NoError(t, err)
	assert.Equal(t, 8, c.ID)
}

func TestIDMonotonicity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10, 0)
	seen := 0
	for round := 0; round < 4; round++ {
		page, err := f.users.Query(ctx, models.Filter{PageSize: 100})
		require.NoError(t, err)
		for _, id := range ids(page.Items) {
			seen = max(seen, id)
		}
		// deleting the current maximum must not let its id be reused
		require.NoError(t, f.users.Delete(ctx, seen))
		created, err := f.users.Create(ctx, models.User{Name: fmt.Sprintf("n%d", round)})
		require.NoError(t, err)
		assert.Greater(t, created.ID, seen)
	}
}

func TestDeleteUnknownDoesNotInflateIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10, 0)

	require.NoError(t, f.users.Delete(ctx, 999))
	created, err := f.users.Create(ctx, models.User{Name: "After"})
	require.NoError(t, err)
	assert.Equal(t, 11, created.ID)

	require.NoError(t, f.users.Delete(ctx, 11))
	next, err := f.users.Create(ctx, models.User{Name: "Next"})
	require.NoError(t, err)
	assert.Equal(t, 12, next.ID, "a deleted addition's id is not issued again")

	raw, _, err := f.kv.Get(ctx, changestore.ChangesKey(models.KindUsers))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"lastIssued":12`)
}

func TestOverridePrecedence(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10, 0)

	updated, err := f.users.Update(ctx, 3, patch(t, map[string]any{"name": "Renamed", "role": "Editor", "id": 999}))
	require.NoError(t, err)
	assert.Equal(t, 3, updated.ID)
	assert.Equal(t, "Renamed", updated.Name)

	page, err := f.users.Query(ctx, models.Filter{PageSize: 100})
	require.NoError(t, err)
	var got models.User
	for _, u := range page.Items {
		if u.ID == 3 {
			got = u
		}
	}
	base := ProjectUser(remotetest.Users(10)[2], 2)
	want := base
	want.Name = "Renamed"
	want.Role = models.RoleEditor
	assert.Equal(t, want, got)

	// second patch layers on the first
	_, err = f.users.Update(ctx, 3, patch(t, map[string]any{"status": "Inactive"}))
	require.NoError(t, err)
	got, err = f.users.Get(ctx, 3)
	require.NoError(t, err)
	want.Status = models.UserInactive
	assert.Equal(t, want, got)
}

func TestUpdateLocalAdditionInPlace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 3, 0)
	for _, name := range []string{"A", "B", "C"} {
		_, err := f.users.Create(ctx, models.User{Name: name, Email: name + "@x.io"})
		require.NoError(t, err)
	}

	u, err := f.users.Update(ctx, 5, patch(t, map[string]any{"email": "b@y.io", "id": 1}))
	require.NoError(t, err)
	assert.Equal(t, 5, u.ID)
	assert.Equal(t, "B", u.Name)
	assert.Equal(t, "b@y.io", u.Email)

	st, err := f.users.Store().Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 6}, ids(st.Changes.Added), "position in added must be kept")
	assert.Empty(t, st.Changes.Updated)
}

func TestUpdateDeletedIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5, 0)
	require.NoError(t, f.users.Delete(ctx, 2))

	_, err := f.users.Update(ctx, 2, patch(t, map[string]any{"name": "zombie"}))
	assert.ErrorIs(t, err, ErrNotFound)

	st, err := f.users.Store().Snapshot(ctx)
	require.NoError(t, err)
	assert.NotContains(t, st.Changes.Updated, 2)
}

func TestUpdateUnknownIDKeepsOverride(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5, 0)

	u, err := f.users.Update(ctx, 99, patch(t, map[string]any{"name": "Ghost"}))
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: 99, Name: "Ghost"}, u)

	st, err := f.users.Store().Snapshot(ctx)
	require.NoError(t, err)
	require.Contains(t, st.Changes.Updated, 99)

	page, err := f.users.Query(ctx, models.Filter{PageSize: 100})
	require.NoError(t, err)
	assert.NotContains(t, ids(page.Items), 99, "a dangling override is not a record")
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0, 10)

	o, err := f.orders.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, ProjectOrder(remotetest.Posts(10)[3], 3), o)

	created, err := f.orders.Create(ctx, models.Order{Customer: "Zed", Amount: 12.5})
	require.NoError(t, err)
	assert.Equal(t, 11, created.ID)
	assert.Equal(t, "ORD-00011", created.OrderNumber)
	assert.Equal(t, models.OrderPending, created.Status)

	got, err := f.orders.Get(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = f.orders.Get(ctx, 77)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, remote.ErrNotFound)
}

func TestCreateKeepsExplicitOrderNumber(t *testing.T) {
	f := newFixture(t, 0, 3)
	o, err := f.orders.Create(context.Background(), models.Order{OrderNumber: "ORD-CUSTOM", Status: models.OrderCompleted})
	require.NoError(t, err)
	assert.Equal(t, 4, o.ID)
	assert.Equal(t, "ORD-CUSTOM", o.OrderNumber)
	assert.Equal(t, models.OrderCompleted, o.Status)
}

func TestCreateOnEmptyCollection(t *testing.T) {
	f := newFixture(t, 0, 0)
	u, err := f.users.Create(context.Background(), models.User{Name: "first"})
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
}

func TestPaginationProperty(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0, 23)
	for _, size := range []int{1, 3, 5, 10, 23, 50} {
		for page := 1; page <= 30; page++ {
			p, err := f.orders.Query(ctx, models.Filter{Page: page, PageSize: size})
			require.NoError(t, err)
			want := min(size, p.Total-(page-1)*size)
			if want < 0 {
				want = 0
			}
			assert.Len(t, p.Items, want, "page=%d size=%d", page, size)
			assert.Equal(t, (23+size-1)/size, p.TotalPages)
		}
	}
}

func TestPageClamping(t *testing.T) {
	f := newFixture(t, 3, 0)
	p, err := f.users.Query(context.Background(), models.Filter{Page: -4, PageSize: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, models.DefaultPageSize, p.PageSize)
	assert.Len(t, p.Items, 3)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 12, 0)
	_, err := f.users.Create(ctx, models.User{Name: "Anna Straße", Email: "anna@example.com"})
	require.NoError(t, err)

	tests := []struct {
		search string
		want   []int
	}{
		{"USER 1", []int{12, 11, 10, 1}},
		{"user3@EXAMPLE", []int{3}},
		{"strasse", []int{13}},
		{" strasse", []int{13}},
		{"  anna@  ", []int{}},
		{"1 ", []int{}},
		{"   ", []int{}},
		{"nobody", []int{}},
	}
	for _, tt := range tests {
		p, err := f.users.Query(ctx, models.Filter{Search: tt.search, PageSize: 100})
		require.NoError(t, err)
		assert.Equal(t, tt.want, ids(p.Items), "search %q", tt.search)
	}
}

func TestOrderSearchFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0, 30)

	p, err := f.orders.Query(ctx, models.Filter{Search: "ord-00025", PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, []int{25}, ids(p.Items))

	p, err = f.orders.Query(ctx, models.Filter{Search: "jane smith", PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, []int{20, 19, 18, 17, 16, 15, 14, 13, 12, 11}, ids(p.Items))

	p, err = f.orders.Query(ctx, models.Filter{Search: "customer3@", PageSize: 100})
	require.NoError(t, err)
	assert.Len(t, p.Items, 10)
}

func TestFieldFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10, 0)

	p, err := f.users.Query(ctx, models.Filter{
		Fields:   map[string]string{"role": "Admin", "status": "all"},
		PageSize: 100,
	})
	require.NoError(t, err)
	// positions 0,3,6,9 are Admin
	assert.Equal(t, []int{10, 7, 4, 1}, ids(p.Items))

	p, err = f.users.Query(ctx, models.Filter{
		Fields:   map[string]string{"role": "Admin", "status": "Inactive"},
		PageSize: 100,
	})
	require.NoError(t, err)
	// Inactive positions 0,5; Admin among them: position 0
	assert.Equal(t, []int{1}, ids(p.Items))

	_, err = f.users.Query(ctx, models.Filter{Fields: map[string]string{"shoe_size": "42"}})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	p, err = f.users.Query(ctx, models.Filter{Fields: map[string]string{"shoe_size": "all"}})
	require.NoError(t, err, "sentinel values skip validation")
	assert.Equal(t, 10, p.Total)
}

func TestOrderDateRange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0, 4) // dates 2024-01-01, 02-02, 03-03, 04-04

	p, err := f.orders.Query(ctx, models.Filter{DateFrom: "2024-02-01", DateTo: "2024-03-31"})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, ids(p.Items))

	// clock is 2024-06-19
	p, err = f.orders.Query(ctx, models.Filter{DateFrom: "year-start", DateTo: "-100d"})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, ids(p.Items))

	_, err = f.orders.Query(ctx, models.Filter{DateFrom: "someday"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestRemoteFailurePropagates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 3, 3)
	f.src.SetErr(&remote.StatusError{Path: "/users", StatusCode: 503})

	_, err := f.users.Query(ctx, models.Filter{})
	var se *remote.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 503, se.StatusCode)

	_, err = f.users.Create(ctx, models.User{Name: "x"})
	require.ErrorAs(t, err, &se)

	st, err := f.users.Store().Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, st.Changes.Added, "failed create must not persist")
}

func TestInjectedDelayFailure(t *testing.T) {
	ctx := context.Background()
	in := &remote.Injector{FailureRate: 1, Roll: func() float64 { return 0 }}
	f := newFixture(t, 3, 0, WithDelay(in))

	_, err := f.users.Create(ctx, models.User{Name: "x"})
	assert.ErrorIs(t, err, remote.ErrInjected)
	err = f.users.Delete(ctx, 1)
	assert.ErrorIs(t, err, remote.ErrInjected)

	deleted, err := f.users.Store().LoadDeleted(ctx)
	require.NoError(t, err)
	assert.Empty(t, deleted)

	// reads are not delayed
	_, err = f.users.Query(ctx, models.Filter{})
	assert.NoError(t, err)
}

func TestOneDrawPerOperation(t *testing.T) {
	ctx := context.Background()
	var mutations, reads int
	delay := &remote.Injector{FailureRate: 0.5, Roll: func() float64 { mutations++; return 0.9 }}
	faults := &remote.Injector{FailureRate: 0.5, Roll: func() float64 { reads++; return 0.9 }}
	f := newFixture(t, 3, 0, WithDelay(delay), WithReadFaults(faults))

	_, err := f.users.Create(ctx, models.User{Name: "x"})
	require.NoError(t, err)
	require.NoError(t, f.users.Delete(ctx, 1))
	assert.Equal(t, 2, mutations)
	assert.Zero(t, reads, "mutations must not draw read faults")

	_, err = f.users.Query(ctx, models.Filter{})
	require.NoError(t, err)
	_, err = f.users.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, reads)
	assert.Equal(t, 2, mutations)
}

func TestReadFaults(t *testing.T) {
	ctx := context.Background()
	in := &remote.Injector{FailureRate: 1, Roll: func() float64 { return 0 }}
	f := newFixture(t, 3, 0, WithReadFaults(in))

	_, err := f.users.Query(ctx, models.Filter{})
	assert.ErrorIs(t, err, remote.ErrInjected)
	_, err = f.users.Get(ctx, 1)
	assert.ErrorIs(t, err, remote.ErrInjected)
	_, err = f.users.All(ctx)
	assert.ErrorIs(t, err, remote.ErrInjected)

	created, err := f.users.Create(ctx, models.User{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
}

func TestMutationsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := newFixture(t, 3, 0, WithDelay(&remote.Injector{Latency: time.Hour}))
	_, err := f.users.Update(ctx, 1, patch(t, map[string]any{"name": "x"}))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestActivityRecorded(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 3, 3)

	_, err := f.users.Create(ctx, models.User{Name: "Nia", Email: "nia@example.com"})
	require.NoError(t, err)
	_, err = f.orders.Update(ctx, 2, patch(t, map[string]any{"status": "Completed"}))
	require.NoError(t, err)
	require.NoError(t, f.orders.Delete(ctx, 3))
	_, err = f.orders.Update(ctx, 3, patch(t, map[string]any{"status": "Completed"}))
	require.Error(t, err)

	feed, err := f.feed.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, feed, 3, "failed mutations are not recorded")
	assert.Equal(t, models.ActionDelete, feed[0].Action)
	assert.Equal(t, "orders #3", feed[0].Label)
	assert.Equal(t, models.ActionUpdate, feed[1].Action)
	assert.Equal(t, "ORD-00002 (John Doe)", feed[1].Label)
	assert.Equal(t, models.ActionCreate, feed[2].Action)
	assert.Equal(t, "Nia <nia@example.com>", feed[2].Label)
	assert.Equal(t, "Admin User", feed[2].Actor)
	assert.Equal(t, 4, feed[2].EntityID)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10, 8)
	d := &Dashboard{Users: f.users, Orders: f.orders, Activity: f.feed}

	require.NoError(t, f.orders.Delete(ctx, 8))
	_, err := f.orders.Create(ctx, models.Order{Customer: "Big", Amount: 1000, Status: models.OrderCompleted})
	require.NoError(t, err)

	st, err := d.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, st.TotalUsers)
	assert.Equal(t, 8, st.ActiveUsers) // positions 0 and 5 inactive
	assert.Equal(t, 8, st.TotalOrders)

	// positions 0..6 -> P, Pr, C, X, P, Pr, C; plus the created Completed order
	assert.Equal(t, 2, st.OrdersByStatus[models.OrderPending])
	assert.Equal(t, 2, st.OrdersByStatus[models.OrderProcessing])
	assert.Equal(t, 3, st.OrdersByStatus[models.OrderCompleted])
	assert.Equal(t, 1, st.OrdersByStatus[models.OrderCancelled])

	want := 1000.0
	for id := 1; id <= 7; id++ {
		if id != 4 {
			want += OrderAmount(id)
		}
	}
	assert.InDelta(t, want, st.Revenue, 0.001)
	require.Len(t, st.RecentActivity, 2)
	assert.Equal(t, models.ActionCreate, st.RecentActivity[0].Action)
}
