package auditlogRepo

import (
	"context"
	"fmt"
	"time"

	"opsledger/database"
	"opsledger/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAuditLogRepo implements AuditLogRepository using MongoDB.
type MongoAuditLogRepo struct {
	coll *mongo.Collection
}

// NewMongoAuditLogRepo constructs a new instance of MongoAuditLogRepo.
func NewMongoAuditLogRepo() *MongoAuditLogRepo {
	return &MongoAuditLogRepo{coll: database.Collection("audit_log")}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Append inserts one entry. Mongo ObjectIDs are monotonic per process, so
// sorting on _id preserves creation order even when two entries share a
// timestamp (one lifecycle operation can write two entries back to back).
func (repo *MongoAuditLogRepo) Append(entry *models.AuditLogEntry) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("error appending audit entry: %w", err)
	}
	return nil
}

// ListBySession returns one session's trail, oldest first.
func (repo *MongoAuditLogRepo) ListBySession(sessionID string) ([]models.AuditLogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return repo.list(bson.M{"session_id": sessionID}, opts)
}

// ListAll returns the feed newest first.
func (repo *MongoAuditLogRepo) ListAll() ([]models.AuditLogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	return repo.list(bson.M{}, opts)
}

func (repo *MongoAuditLogRepo) list(filter bson.M, opts *options.FindOptions) ([]models.AuditLogEntry, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing audit entries: %w", err)
	}
	defer func(ctx context.Context) { _ = cursor.Close(ctx) }(ctx)

	var entries []models.AuditLogEntry
	for cursor.Next(ctx) {
		var e models.AuditLogEntry
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("error decoding audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return entries, nil
}
