// File: database/repository/session/sessionMongoQueries.go
package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"opsledger/models"

	"go.mongodb.org/mongo-driver/bson"
)

// HasConflict checks for an overlapping non-Cancelled session for the same
// employee and date. Intervals are half-open: a session ending at the exact
// minute another starts does not conflict. Zero-padded "HH:MM" strings make
// the range comparison safe at the query level.
func (repo *MongoSessionRepo) HasConflict(employeeID, date, startTime, endTime, excludeSessionID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"employee_id": employeeID,
		"date":        date,
		"status":      bson.M{"$ne": models.StatusCancelled},
		"start_time":  bson.M{"$lt": endTime},
		"end_time":    bson.M{"$gt": startTime},
	}
	if excludeSessionID != "" {
		filter["id"] = bson.M{"$ne": excludeSessionID}
	}

	count, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("error checking schedule conflict: %w", err)
	}
	return count > 0, nil
}

// ListByCompany returns all sessions belonging to one tenant.
func (repo *MongoSessionRepo) ListByCompany(companyID string) ([]models.Session, error) {
	return repo.list(bson.M{"company_id": companyID})
}

// ListAll returns every session across all tenants.
func (repo *MongoSessionRepo) ListAll() ([]models.Session, error) {
	return repo.list(bson.M{})
}

// ListByStatus returns all sessions currently in the given state.
func (repo *MongoSessionRepo) ListByStatus(status models.SessionStatus) ([]models.Session, error) {
	return repo.list(bson.M{"status": status})
}

func (repo *MongoSessionRepo) list(filter bson.M) ([]models.Session, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing sessions: %w", err)
	}
	defer func(ctx context.Context) { _ = cursor.Close(ctx) }(ctx)

	var sessions []models.Session
	for cursor.Next(ctx) {
		var s models.Session
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("error decoding session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return sessions, nil
}
