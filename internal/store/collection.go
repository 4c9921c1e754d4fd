package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/lifeos/lifeos-sync/internal/models"
	"github.com/lifeos/lifeos-sync/internal/schema"
	"github.com/lifeos/lifeos-sync/pkg/idgen"
)

// State is the per-collection lifecycle: Uninitialized until the store
// starts, Loading while the initial fetch is in flight, Ready afterwards.
// Mutations issued during Loading are not queued; consumers are expected to
// wait for Ready.
type State int

const (
	Uninitialized State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Collection holds the in-memory ordered items of one entity kind plus the
// mutation protocol around them. It owns its slice exclusively for the
// lifetime of the session; insertion order is preserved and the collection
// never sorts implicitly.
//
// PT is the pointer type of T and carries the id/timestamp accessors, so one
// implementation serves all six kinds; per-kind derivations plug in through
// the two hooks.
type Collection[T any, PT interface {
	*T
	models.Mutable
}] struct {
	name  string
	store *Store

	// onAdd runs on every locally created entity before it is appended.
	onAdd func(PT)
	// onUpdate runs after a partial update is merged, with the raw update
	// fields so the hook can see what was touched.
	onUpdate func(PT, map[string]any)
	// sample seeds the guest path when no local snapshot exists.
	sample func() []T

	state State
	items []T
}

// locking note: the collection reuses the store-wide mutex so a mutation's
// snapshot/apply pair is atomic with respect to every other mutation and to
// change-feed merges.

// Name returns the collection's wire name.
func (c *Collection[T, PT]) Name() string { return c.name }

// State returns the collection's lifecycle state.
func (c *Collection[T, PT]) State() State {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	return c.state
}

// Items returns a deep snapshot of the collection in insertion order.
// Consumers render snapshots; they never touch the owned slice.
func (c *Collection[T, PT]) Items() []T {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	return cloneSlice(c.items)
}

// Get returns a copy of the entity with the given id.
func (c *Collection[T, PT]) Get(id string) (T, bool) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if i := c.indexLocked(id); i >= 0 {
		return cloneSlice(c.items[i : i+1])[0], true
	}
	var zero T
	return zero, false
}

// Len returns the number of entities currently held.
func (c *Collection[T, PT]) Len() int {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	return len(c.items)
}

// Add assigns a fresh id and timestamps to the entity, applies it
// optimistically and commits it remotely when a session exists. Any id or
// timestamps supplied by the caller are overwritten.
func (c *Collection[T, PT]) Add(ctx context.Context, entity T) Result {
	c.store.mu.Lock()
	snapshot := cloneSlice(c.items)

	p := PT(&entity)
	p.SetEntityID(idgen.New())
	now := time.Now()
	p.StampCreated(now)
	p.StampUpdated(now)
	if c.onAdd != nil {
		c.onAdd(p)
	}
	c.items = append(c.items, entity)
	id := p.EntityID()
	c.store.mu.Unlock()

	return c.commit(ctx, snapshot, ChangeInsert, id, &entity)
}

// Update merges the partial fields into the entity with the given id and
// rewrites updatedAt. A missing id is silently a no-op. The id and createdAt
// of the entity cannot be changed through updates.
func (c *Collection[T, PT]) Update(ctx context.Context, id string, updates map[string]any) Result {
	c.store.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.store.mu.Unlock()
		return Applied
	}
	snapshot := cloneSlice(c.items)

	merged, err := mergeFields(c.items[idx], updates)
	if err != nil {
		c.store.mu.Unlock()
		c.store.log.WithError(err).WithFields(logrus.Fields{
			"collection": c.name,
			"id":         id,
		}).Warn("Ignoring malformed update payload")
		return Applied
	}

	p := PT(&merged)
	p.SetEntityID(id)
	p.StampCreated(PT(&c.items[idx]).CreatedStamp())
	p.StampUpdated(time.Now())
	if c.onUpdate != nil {
		c.onUpdate(p, updates)
	}
	c.items[idx] = merged
	c.store.mu.Unlock()

	return c.commit(ctx, snapshot, ChangeUpdate, id, &merged)
}

// Mutate applies a structured edit to the entity with the given id. The
// callback returns false to signal a no-op (for example a task id that does
// not exist), in which case nothing is written anywhere. Used by the
// project task operations.
func (c *Collection[T, PT]) Mutate(ctx context.Context, id string, fn func(PT) bool) Result {
	c.store.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.store.mu.Unlock()
		return Applied
	}
	snapshot := cloneSlice(c.items)

	entity := cloneSlice(c.items[idx : idx+1])[0]
	if !fn(PT(&entity)) {
		c.store.mu.Unlock()
		return Applied
	}
	PT(&entity).StampUpdated(time.Now())
	c.items[idx] = entity
	c.store.mu.Unlock()

	return c.commit(ctx, snapshot, ChangeUpdate, id, &entity)
}

// Delete removes the entity with the given id. A missing id is silently a
// no-op. Linked ids referencing the deleted entity elsewhere are left alone;
// soft references never cascade.
func (c *Collection[T, PT]) Delete(ctx context.Context, id string) Result {
	c.store.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.store.mu.Unlock()
		return Applied
	}
	snapshot := cloneSlice(c.items)
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	c.store.mu.Unlock()

	return c.commit(ctx, snapshot, ChangeDelete, id, nil)
}

// commit finishes a mutation that is already visible locally: the anonymous
// path persists the collection snapshot to device-local storage and is done;
// the authenticated path translates the entity through the schema mapper and
// writes it remotely, reverting to the pre-mutation snapshot if the remote
// store rejects it. Failures are absorbed here and logged exactly once; they
// never propagate past the store boundary.
func (c *Collection[T, PT]) commit(ctx context.Context, snapshot []T, op ChangeType, id string, entity *T) Result {
	identity := c.store.gate.Current()
	if identity == nil || c.store.remote == nil {
		c.persistLocal()
		c.store.notify(Change{Collection: c.name, Type: op, ID: id, Origin: originLocal})
		return Applied
	}

	var err error
	switch op {
	case ChangeInsert, ChangeUpdate:
		var row bson.M
		row, err = schema.ToRemote(entity, identity.UserID)
		if err == nil {
			if op == ChangeInsert {
				err = c.store.remote.Insert(ctx, c.name, row)
			} else {
				err = c.store.remote.Update(ctx, c.name, id, identity.UserID, row)
			}
		}
	case ChangeDelete:
		err = c.store.remote.Delete(ctx, c.name, id, identity.UserID)
	}

	if err != nil {
		c.store.mu.Lock()
		c.items = snapshot
		c.store.mu.Unlock()
		c.store.log.WithError(err).WithFields(logrus.Fields{
			"collection": c.name,
			"id":         id,
			"op":         string(op),
		}).Error("Remote write failed, local state rolled back")
		return RolledBack
	}

	c.store.notify(Change{Collection: c.name, Type: op, ID: id, Origin: originLocal})
	return Confirmed
}

// applyRemote merges one change-feed notification into local state. Inserts
// are suppressed when the id is already present, which guards against the
// feed echoing a write this session just performed optimistically. Updates
// and deletes for absent ids are ignored. A late notification can overwrite
// a newer local edit; precedence is by arrival, not recency.
func (c *Collection[T, PT]) applyRemote(ev ChangeEvent) {
	switch ev.Type {
	case ChangeInsert, ChangeUpdate:
		entity, err := schema.FromRemote[T](ev.Row)
		if err != nil {
			c.store.log.WithError(err).WithField("collection", c.name).Warn("Dropping undecodable change-feed row")
			return
		}
		id := PT(&entity).EntityID()
		c.store.mu.Lock()
		idx := c.indexLocked(id)
		switch {
		case ev.Type == ChangeInsert && idx >= 0:
			c.store.mu.Unlock()
			return
		case ev.Type == ChangeInsert:
			c.items = append(c.items, entity)
		case idx < 0:
			c.store.mu.Unlock()
			return
		default:
			c.items[idx] = entity
		}
		c.store.mu.Unlock()
		c.store.notify(Change{Collection: c.name, Type: ev.Type, ID: id, Origin: originRemote})

	case ChangeDelete:
		c.store.mu.Lock()
		idx := c.indexLocked(ev.ID)
		if idx < 0 {
			c.store.mu.Unlock()
			return
		}
		c.items = append(c.items[:idx], c.items[idx+1:]...)
		c.store.mu.Unlock()
		c.store.notify(Change{Collection: c.name, Type: ChangeDelete, ID: ev.ID, Origin: originRemote})
	}
}

// loadFromRemote replaces the collection with the fetched rows, dropping any
// that fail to decode.
func (c *Collection[T, PT]) loadFromRemote(rows []bson.M) {
	items := make([]T, 0, len(rows))
	for _, row := range rows {
		entity, err := schema.FromRemote[T](row)
		if err != nil {
			c.store.log.WithError(err).WithField("collection", c.name).Warn("Dropping undecodable row from initial fetch")
			continue
		}
		items = append(items, entity)
	}
	c.store.mu.Lock()
	c.items = items
	c.store.mu.Unlock()
}

// loadLocalOrSample restores the last-seen device-local snapshot, falling
// back to generated sample data when no snapshot exists or it fails to
// parse.
func (c *Collection[T, PT]) loadLocalOrSample() {
	if c.store.local == nil {
		items := c.sample()
		c.store.mu.Lock()
		c.items = items
		c.store.mu.Unlock()
		return
	}
	if raw, ok := c.store.local.Get(c.name); ok {
		var items []T
		if err := json.Unmarshal(raw, &items); err == nil {
			c.store.mu.Lock()
			c.items = items
			c.store.mu.Unlock()
			return
		}
		c.store.log.WithField("collection", c.name).Warn("Malformed local snapshot, falling back to sample data")
	}
	items := c.sample()
	c.store.mu.Lock()
	c.items = items
	c.store.mu.Unlock()
}

// persistLocal writes the whole collection to device-local storage. Called
// under no lock contention concerns: single process, single writer.
func (c *Collection[T, PT]) persistLocal() {
	if c.store.local == nil {
		return
	}
	c.store.mu.Lock()
	raw, err := json.Marshal(c.items)
	c.store.mu.Unlock()
	if err != nil {
		c.store.log.WithError(err).WithField("collection", c.name).Warn("Failed to encode local snapshot")
		return
	}
	if err := c.store.local.Set(c.name, raw); err != nil {
		c.store.log.WithError(err).WithField("collection", c.name).Warn("Failed to write local snapshot")
	}
}

func (c *Collection[T, PT]) setState(s State) {
	c.store.mu.Lock()
	c.state = s
	c.store.mu.Unlock()
}

// indexLocked returns the position of the entity with the given id, or -1.
// Caller holds the store mutex.
func (c *Collection[T, PT]) indexLocked(id string) int {
	for i := range c.items {
		if PT(&c.items[i]).EntityID() == id {
			return i
		}
	}
	return -1
}

// cloneSlice deep-copies items through JSON so snapshots never alias the
// owned slice's nested slices.
func cloneSlice[T any](items []T) []T {
	if items == nil {
		return nil
	}
	raw, err := json.Marshal(items)
	if err != nil {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}
	out := make([]T, 0, len(items))
	if err := json.Unmarshal(raw, &out); err != nil {
		out = make([]T, len(items))
		copy(out, items)
	}
	return out
}

// mergeFields applies the JS-spread semantics the dashboard relies on: the
// current entity's top-level fields, overlaid by the update's fields, decoded
// into a fresh value.
func mergeFields[T any](current T, updates map[string]any) (T, error) {
	var out T
	raw, err := json.Marshal(current)
	if err != nil {
		return out, err
	}
	base := map[string]any{}
	if err := json.Unmarshal(raw, &base); err != nil {
		return out, err
	}
	for k, v := range updates {
		base[k] = v
	}
	merged, err := json.Marshal(base)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(merged, &out); err != nil {
		return out, err
	}
	return out, nil
}
