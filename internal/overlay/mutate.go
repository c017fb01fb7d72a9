package overlay

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/changestore"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/metrics"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/remote"
)

// Create stores e as a new local record. Any id on e is ignored; the new id
// is one past the largest of the remote ids, the local additions and the
// last id this store issued, so an id is never handed out twice.
func (s *Service[B, E]) Create(ctx context.Context, e E) (E, error) {
	start := time.Now()
	created, err := s.create(ctx, e)
	s.finish(ctx, models.ActionCreate, created.RecordID(), s.label(created), start, err)
	return created, err
}

func (s *Service[B, E]) create(ctx context.Context, e E) (E, error) {
	var zero E
	if err := s.delay.Wait(ctx); err != nil {
		return zero, err
	}
	base, err := s.schema.List(ctx)
	if err != nil {
		return zero, fmt.Errorf("list %s: %w", s.schema.Kind, err)
	}
	maxID := 0
	for _, b := range base {
		maxID = max(maxID, s.schema.BaseID(b))
	}

	var created E
	err = s.store.Update(ctx, func(st *changestore.State[E]) error {
		id := max(maxID, st.Changes.LastIssued)
		for _, a := range st.Changes.Added {
			id = max(id, a.RecordID())
		}
		created = s.schema.Prepare(e, id+1)
		st.Changes.Added = append(st.Changes.Added, created)
		st.Changes.LastIssued = id + 1
		return nil
	})
	if err != nil {
		return zero, err
	}
	return created, nil
}

// Update merges patch into record id. Local additions are rewritten in
// place; remote records get the patch folded into their stored override.
func (s *Service[B, E]) Update(ctx context.Context, id int, patch models.Patch) (E, error) {
	start := time.Now()
	updated, err := s.update(ctx, id, patch)
	s.finish(ctx, models.ActionUpdate, id, s.label(updated), start, err)
	return updated, err
}

func (s *Service[B, E]) update(ctx context.Context, id int, patch models.Patch) (E, error) {
	var zero E
	if err := s.delay.Wait(ctx); err != nil {
		return zero, err
	}
	patch = models.Patch{}.Merge(patch)

	var (
		local    bool
		result   E
		override models.Patch
	)
	err := s.store.Update(ctx, func(st *changestore.State[E]) error {
		if i := s.indexOfAdded(st.Changes.Added, id); i >= 0 {
			merged, err := models.Apply(st.Changes.Added[i], patch)
			if err != nil {
				return fmt.Errorf("apply %s patch %d: %w", s.schema.Kind, id, err)
			}
			st.Changes.Added[i] = merged
			local, result = true, merged
			return nil
		}
		if st.Deleted.Has(id) {
			return fmt.Errorf("%w: %s %d is deleted", ErrNotFound, s.schema.Kind, id)
		}
		override = st.Changes.Updated[id].Merge(patch)
		st.Changes.Updated[id] = override
		return nil
	})
	if err != nil {
		return zero, err
	}
	if local {
		return result, nil
	}

	current, err := s.fetch(ctx, id, override)
	if errors.Is(err, remote.ErrNotFound) {
		// The override stays stored; it surfaces again if the id ever appears remotely.
		s.logger.Warn("override stored for unknown record", "kind", s.schema.Kind, "id", id)
		current, err = models.Apply(s.schema.Stub(id), override)
	}
	if err != nil {
		return zero, err
	}
	return models.Apply(current, patch)
}

// Delete removes a local addition, or hides a remote record and drops its
// override. Either way the id joins the deleted set. Deleting an already
// deleted id is a no-op.
func (s *Service[B, E]) Delete(ctx context.Context, id int) error {
	start := time.Now()
	err := s.delete(ctx, id)
	s.finish(ctx, models.ActionDelete, id, fmt.Sprintf("%s #%d", s.schema.Kind, id), start, err)
	return err
}

func (s *Service[B, E]) delete(ctx context.Context, id int) error {
	if err := s.delay.Wait(ctx); err != nil {
		return err
	}
	return s.store.Update(ctx, func(st *changestore.State[E]) error {
		if i := s.indexOfAdded(st.Changes.Added, id); i >= 0 {
			st.Changes.Added = slices.Delete(st.Changes.Added, i, i+1)
		}
		st.Deleted = st.Deleted.Add(id)
		delete(st.Changes.Updated, id)
		return nil
	})
}

func (s *Service[B, E]) indexOfAdded(added []E, id int) int {
	return slices.IndexFunc(added, func(e E) bool { return e.RecordID() == id })
}

func (s *Service[B, E]) label(e E) string {
	if s.schema.Label == nil {
		return fmt.Sprintf("%s #%d", s.schema.Kind, e.RecordID())
	}
	return s.schema.Label(e)
}

// finish reports a mutation to metrics, the activity feed and the log
func (s *Service[B, E]) finish(ctx context.Context, action models.ActionType, id int, label string, start time.Time, err error) {
	kind := string(s.schema.Kind)
	s.metrics.ObserveMutation(kind, string(action), metrics.Result(err, ErrNotFound), time.Since(start))
	if err != nil {
		s.logger.Debug("mutation failed", "kind", kind, "action", action, "id", id, "err", err)
		return
	}
	s.logger.Debug("mutation applied", "kind", kind, "action", action, "id", id)

	entry := models.Activity{
		Kind:     s.schema.Kind,
		Action:   action,
		EntityID: id,
		Label:    label,
		Actor:    s.actor,
	}
	if rerr := s.activity.Record(ctx, entry); rerr != nil {
		s.logger.Warn("record activity", "kind", kind, "id", id, "err", rerr)
	}
}
