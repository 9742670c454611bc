package directoryRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"opsledger/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDirectoryRepo implements DirectoryRepository against the platform's
// users collection, which is owned by the external account system.
type MongoDirectoryRepo struct {
	coll *mongo.Collection
}

// NewMongoDirectoryRepo constructs a new instance of MongoDirectoryRepo.
func NewMongoDirectoryRepo() *MongoDirectoryRepo {
	return &MongoDirectoryRepo{coll: database.Collection("users")}
}

// Lookup resolves a user id to its directory entry.
func (repo *MongoDirectoryRepo) Lookup(id string) (*Entry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var entry Entry
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching directory entry %s: %w", id, err)
	}
	return &entry, nil
}
