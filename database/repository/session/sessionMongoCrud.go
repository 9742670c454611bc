// File: database/repository/session/sessionMongoCrud.go
package sessionRepo

import (
	"errors"
	"fmt"
	"time"

	"opsledger/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new session document.
func (repo *MongoSessionRepo) Create(session *models.Session) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, session)
	if err != nil {
		return fmt.Errorf("error creating session: %w", err)
	}
	return nil
}

// GetByID retrieves a session by its ID.
func (repo *MongoSessionRepo) GetByID(id string) (*models.Session, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var session models.Session
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching session %s: %w", id, err)
	}
	return &session, nil
}

// Update replaces an existing session document.
func (repo *MongoSessionRepo) Update(session *models.Session) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": session.ID}
	res, err := repo.coll.ReplaceOne(ctx, filter, session)
	if err != nil {
		return fmt.Errorf("error updating session %s: %w", session.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
