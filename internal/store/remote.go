package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// ChangeType discriminates change-feed notifications and local change
// broadcasts.
type ChangeType string

const (
	ChangeInsert ChangeType = "insert"
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
)

// ChangeEvent is one push notification from the remote change feed. Row
// carries the new row for inserts and updates; deletes carry only the entity
// id.
type ChangeEvent struct {
	Type ChangeType
	Row  bson.M
	ID   string
}

// Remote is the contract the sync engine expects from the remote backing
// store: six collections keyed by the entity id field, tagged with an owner
// identity, queryable by that identity, with a push-based change feed scoped
// the same way. The Mongo implementation lives in internal/repository.
type Remote interface {
	// FetchAll returns every row owned by userID, most recent first.
	FetchAll(ctx context.Context, collection, userID string) ([]bson.M, error)
	Insert(ctx context.Context, collection string, row bson.M) error
	Update(ctx context.Context, collection, id, userID string, row bson.M) error
	Delete(ctx context.Context, collection, id, userID string) error
	// Watch delivers change notifications for rows owned by userID until ctx
	// is cancelled; the returned channel is closed on teardown.
	Watch(ctx context.Context, collection, userID string) (<-chan ChangeEvent, error)
}

// KV is the device-local persistence collaborator: a flat key-value snapshot
// store written after every mutation when no session is present.
type KV interface {
	Get(key string) ([]byte, bool)
	Set(key string, data []byte) error
}

// Change is a local broadcast emitted after every applied mutation or merged
// remote notification, consumed by the websocket feed.
type Change struct {
	Collection string     `json:"collection"`
	Type       ChangeType `json:"type"`
	ID         string     `json:"id"`
	Origin     string     `json:"origin"`
}

const (
	originLocal  = "local"
	originRemote = "remote"
)
