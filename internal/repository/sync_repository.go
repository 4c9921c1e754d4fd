package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lifeos/lifeos-sync/internal/store"
	"github.com/lifeos/lifeos-sync/pkg/logger"
)

// SyncRepository is the MongoDB implementation of the sync engine's remote
// backing store: one collection per entity kind, rows keyed by the
// client-generated entity id (stored as _id so change-stream delete events
// carry it), tagged with the owning user, with change streams as the push
// change feed.
type SyncRepository struct {
	db *mongo.Database
}

// NewSyncRepository creates a new instance of SyncRepository.
func NewSyncRepository(db *mongo.Database) *SyncRepository {
	return &SyncRepository{db: db}
}

// EnsureIndexes creates the owner-scoped index every query and change feed
// filter relies on.
func (r *SyncRepository) EnsureIndexes(ctx context.Context, collections []string) error {
	for _, name := range collections {
		_, err := r.db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		})
		if err != nil {
			return fmt.Errorf("failed to index %s: %v", name, err)
		}
	}
	return nil
}

// FetchAll returns every row owned by userID, most recent first.
func (r *SyncRepository) FetchAll(ctx context.Context, collection, userID string) ([]bson.M, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.db.Collection(collection).Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %v", collection, err)
	}
	defer cursor.Close(ctx)

	var rows []bson.M
	for cursor.Next(ctx) {
		var row bson.M
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode %s row: %v", collection, err)
		}
		rows = append(rows, row)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error on %s: %v", collection, err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"collection": collection,
		"user_id":    userID,
		"count":      len(rows),
	}).Debug("Fetched rows")
	return rows, nil
}

// Insert stores a new row, reusing the entity id as the primary key.
func (r *SyncRepository) Insert(ctx context.Context, collection string, row bson.M) error {
	if id, ok := row["id"].(string); ok {
		row["_id"] = id
	}
	if _, err := r.db.Collection(collection).InsertOne(ctx, row); err != nil {
		return fmt.Errorf("failed to insert into %s: %v", collection, err)
	}
	return nil
}

// Update overwrites the row with the given entity id, scoped to its owner.
func (r *SyncRepository) Update(ctx context.Context, collection, id, userID string, row bson.M) error {
	delete(row, "_id")
	filter := bson.M{"_id": id, "user_id": userID}
	if _, err := r.db.Collection(collection).UpdateOne(ctx, filter, bson.M{"$set": row}); err != nil {
		return fmt.Errorf("failed to update %s/%s: %v", collection, id, err)
	}
	return nil
}

// Delete removes the row with the given entity id, scoped to its owner.
// Absence is not an error.
func (r *SyncRepository) Delete(ctx context.Context, collection, id, userID string) error {
	filter := bson.M{"_id": id, "user_id": userID}
	if _, err := r.db.Collection(collection).DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %v", collection, id, err)
	}
	return nil
}

// Watch opens a change stream scoped to the owner and adapts its events to
// the engine's discriminated insert/update/delete shape. The channel closes
// when ctx is cancelled. Delete events carry no full document, so they pass
// the owner filter unconditionally; the engine ignores deletes for ids it
// does not hold, which makes a foreign delete a no-op.
func (r *SyncRepository) Watch(ctx context.Context, collection, userID string) (<-chan store.ChangeEvent, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "fullDocument.user_id", Value: userID}},
			bson.D{{Key: "operationType", Value: "delete"}},
		}}}}},
	}
	streamOptions := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := r.db.Collection(collection).Watch(ctx, pipeline, streamOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %v", collection, err)
	}

	feed := make(chan store.ChangeEvent)
	go func() {
		defer close(feed)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var ev struct {
				OperationType string `bson:"operationType"`
				FullDocument  bson.M `bson:"fullDocument"`
				DocumentKey   struct {
					ID interface{} `bson:"_id"`
				} `bson:"documentKey"`
			}
			if err := stream.Decode(&ev); err != nil {
				logger.Log.WithError(err).WithField("collection", collection).Warn("Failed to decode change stream event")
				continue
			}
			id, _ := ev.DocumentKey.ID.(string)

			switch ev.OperationType {
			case "insert":
				feed <- store.ChangeEvent{Type: store.ChangeInsert, Row: ev.FullDocument, ID: id}
			case "update", "replace":
				feed <- store.ChangeEvent{Type: store.ChangeUpdate, Row: ev.FullDocument, ID: id}
			case "delete":
				feed <- store.ChangeEvent{Type: store.ChangeDelete, ID: id}
			}
		}
	}()

	logger.Log.WithFields(map[string]interface{}{
		"collection": collection,
		"user_id":    userID,
	}).Debug("Change feed subscribed")
	return feed, nil
}
