package repository

import (
	"context"
	"fmt"
	"time"

	"flightlookup-service/internal/domain/entity"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const searchRecordsCollection = "search_records"

// MongoSearchRecordRepository implements SearchRecordRepository
type MongoSearchRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoSearchRecordRepository creates a new search record repository
func NewMongoSearchRecordRepository(db *mongo.Database) *MongoSearchRecordRepository {
	return &MongoSearchRecordRepository{
		collection: db.Collection(searchRecordsCollection),
	}
}

// EnsureIndexes creates the indexes used by history queries
func (r *MongoSearchRecordRepository) EnsureIndexes(ctx context.Context) error {
	// Index on createdAt for newest-first listing
	createdAtIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	}

	// Compound index for per-query history
	queryIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "kind", Value: 1},
			{Key: "query", Value: 1},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{createdAtIndex, queryIndex})
	if err != nil {
		return fmt.Errorf("failed to create search record indexes: %w", err)
	}
	return nil
}

// Save inserts a search record
func (r *MongoSearchRecordRepository) Save(ctx context.Context, record *entity.SearchRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to insert search record: %w", err)
	}
	return nil
}

// FindRecent returns up to limit records, most recent first
func (r *MongoSearchRecordRepository) FindRecent(ctx context.Context, limit int) ([]*entity.SearchRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]*entity.SearchRecord, 0, limit)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
