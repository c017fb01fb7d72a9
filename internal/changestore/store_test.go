package changestore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/kv/memory"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "admin_panel_users_changes", ChangesKey(models.KindUsers))
	assert.Equal(t, "admin_panel_users_deleted", DeletedKey(models.KindUsers))
	assert.Equal(t, "admin_panel_orders_changes", ChangesKey(models.KindOrders))
	assert.Equal(t, "admin_panel_orders_deleted", DeletedKey(models.KindOrders))
}

func TestLoadDefaultsWhenAbsent(t *testing.T) {
	ctx := context.Background()
	s := New[models.User](memory.New(), models.KindUsers)

	c, err := s.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, c.Added)
	assert.NotNil(t, c.Updated)
	assert.Empty(t, c.Added)
	assert.Empty(t, c.Updated)

	ids, err := s.LoadDeleted(ctx)
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestSaveWritesEmptyShape(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	s := New[models.User](backend, models.KindUsers)

	require.NoError(t, s.Save(ctx, models.Changes[models.User]{}))
	require.NoError(t, s.SaveDeleted(ctx, nil))

	raw, ok, err := backend.Get(ctx, ChangesKey(models.KindUsers))
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"added":[],"updated":{}}`, string(raw))

	raw, ok, err = backend.Get(ctx, DeletedKey(models.KindUsers))
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestRoundTripPersistedShape(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	s := New[models.User](backend, models.KindUsers)

	patch, err := models.NewPatch(map[string]any{"name": "Renamed", "id": 99})
	require.NoError(t, err)
	in := models.Changes[models.User]{
		Added: []models.User{{ID: 11, Name: "New", Email: "new@example.com",
			Role: models.RoleEditor, Status: models.UserActive, JoinDate: "2024-05-01"}},
		Updated: map[int]models.Patch{2: patch},
	}
	require.NoError(t, s.Save(ctx, in))

	raw, _, err := backend.Get(ctx, ChangesKey(models.KindUsers))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"added":[{"id":11,"name":"New","email":"new@example.com","role":"Editor","status":"Active","joinDate":"2024-05-01"}],
		"updated":{"2":{"name":"Renamed"}}
	}`, string(raw))

	out, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in.Added, out.Added)
	require.Contains(t, out.Updated, 2)
	assert.JSONEq(t, `"Renamed"`, string(out.Updated[2]["name"]))
}

func TestCorruptValue(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	require.NoError(t, backend.Set(ctx, ChangesKey(models.KindOrders), []byte(`{not json`)))
	require.NoError(t, backend.Set(ctx, DeletedKey(models.KindOrders), []byte(`{"a":1}`)))
	s := New[models.Order](backend, models.KindOrders)

	_, err := s.Load(ctx)
	assert.True(t, errors.Is(err, ErrCorrupt), "got %v", err)
	_, err = s.LoadDeleted(ctx)
	assert.True(t, errors.Is(err, ErrCorrupt), "got %v", err)
	err = s.Update(ctx, func(*State[models.Order]) error { return nil })
	assert.True(t, errors.Is(err, ErrCorrupt), "got %v", err)
}

func TestNullValuesNormalize(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	require.NoError(t, backend.Set(ctx, ChangesKey(models.KindUsers), []byte(`{"added":null}`)))
	require.NoError(t, backend.Set(ctx, DeletedKey(models.KindUsers), []byte(`null`)))
	s := New[models.User](backend, models.KindUsers)

	st, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.NotNil(t, st.Changes.Added)
	assert.NotNil(t, st.Changes.Updated)
	assert.NotNil(t, st.Deleted)
}

func TestUpdateWritesOnlyChangedKeys(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	s := New[models.User](backend, models.KindUsers)

	require.NoError(t, s.Update(ctx, func(st *State[models.User]) error {
		st.Deleted = st.Deleted.Add(3)
		return nil
	}))

	_, ok, _ := backend.Get(ctx, ChangesKey(models.KindUsers))
	assert.False(t, ok, "untouched empty changes should not be written")
	raw, ok, _ := backend.Get(ctx, DeletedKey(models.KindUsers))
	require.True(t, ok)
	assert.JSONEq(t, `[3]`, string(raw))
}

func TestUpdateErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	s := New[models.User](backend, models.KindUsers)
	boom := errors.New("boom")

	err := s.Update(ctx, func(st *State[models.User]) error {
		st.Deleted = st.Deleted.Add(1)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, backend.Len())
}

func TestUpdateSerializesWriters(t *testing.T) {
	ctx := context.Background()
	s := New[models.User](memory.New(), models.KindUsers)

	const n = 20
	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			err := s.Update(ctx, func(st *State[models.User]) error {
				st.Changes.Added = append(st.Changes.Added, models.User{ID: 100 + id})
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	c, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, c.Added, n)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	s := New[models.Order](backend, models.KindOrders)
	require.NoError(t, s.SaveDeleted(ctx, models.IDSet{1, 2}))
	require.NoError(t, s.Reset(ctx))

	ids, err := s.LoadDeleted(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestIDSetEncodesAsArray(t *testing.T) {
	data, err := json.Marshal(models.IDSet{4, 1}.Add(2).Add(4))
	require.NoError(t, err)
	assert.Equal(t, `[4,1,2]`, string(data))
}
