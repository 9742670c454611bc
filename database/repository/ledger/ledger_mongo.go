package ledgerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"opsledger/database"
	"opsledger/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLedgerRepo implements LedgerRepository using MongoDB.
type MongoLedgerRepo struct {
	coll *mongo.Collection
}

// NewMongoLedgerRepo constructs a new instance of MongoLedgerRepo.
func NewMongoLedgerRepo() *MongoLedgerRepo {
	return &MongoLedgerRepo{coll: database.Collection("financial_records")}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Insert persists one posting.
func (repo *MongoLedgerRepo) Insert(record *models.FinancialRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("error inserting financial record: %w", err)
	}
	return nil
}

// GetBySessionID returns the posting linked to one session.
func (repo *MongoLedgerRepo) GetBySessionID(sessionID string) (*models.FinancialRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var record models.FinancialRecord
	err := repo.coll.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching financial record for session %s: %w", sessionID, err)
	}
	return &record, nil
}

// ListByCompany returns one tenant's postings, newest first.
func (repo *MongoLedgerRepo) ListByCompany(companyID string) ([]models.FinancialRecord, error) {
	return repo.list(bson.M{"company_id": companyID})
}

// ListAll returns every posting, newest first.
func (repo *MongoLedgerRepo) ListAll() ([]models.FinancialRecord, error) {
	return repo.list(bson.M{})
}

func (repo *MongoLedgerRepo) list(filter bson.M) ([]models.FinancialRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing financial records: %w", err)
	}
	defer func(ctx context.Context) { _ = cursor.Close(ctx) }(ctx)

	var records []models.FinancialRecord
	for cursor.Next(ctx) {
		var r models.FinancialRecord
		if err := cursor.Decode(&r); err != nil {
			return nil, fmt.Errorf("error decoding financial record: %w", err)
		}
		records = append(records, r)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return records, nil
}
