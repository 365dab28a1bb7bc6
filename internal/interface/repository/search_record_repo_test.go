package repository

import (
	"context"
	"testing"
	"time"

	"flightlookup-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoSearchRecordRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("save fills id and timestamp", func(mt *mtest.T) {
		repo := NewMongoSearchRecordRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		record := &entity.SearchRecord{Kind: entity.SearchKindFlight, Query: "BA123", ResultCount: 1}
		require.NoError(mt, repo.Save(context.Background(), record))
		assert.NotEmpty(mt, record.ID)
		assert.False(mt, record.CreatedAt.IsZero())
	})

	mt.Run("save surfaces write errors", func(mt *mtest.T) {
		repo := NewMongoSearchRecordRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Save(context.Background(), &entity.SearchRecord{ID: "dup", Kind: entity.SearchKindFlight})
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "failed to insert search record")
	})

	mt.Run("find recent decodes records", func(mt *mtest.T) {
		repo := NewMongoSearchRecordRepository(mt.DB)
		created := time.Date(2026, 1, 30, 12, 0, 0, 0, time.UTC)
		ns := mt.DB.Name() + "." + searchRecordsCollection

		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "b"},
			{Key: "kind", Value: entity.SearchKindDepartures},
			{Key: "query", Value: "JFK"},
			{Key: "resultCount", Value: 3},
			{Key: "createdAt", Value: created},
		})
		last := mtest.CreateCursorResponse(0, ns, mtest.NextBatch, bson.D{
			{Key: "_id", Value: "a"},
			{Key: "kind", Value: entity.SearchKindFlight},
			{Key: "query", Value: "BA123"},
			{Key: "createdAt", Value: created.Add(-time.Hour)},
		})
		mt.AddMockResponses(first, last)

		records, err := repo.FindRecent(context.Background(), 10)
		require.NoError(mt, err)
		require.Len(mt, records, 2)
		assert.Equal(mt, "b", records[0].ID)
		assert.Equal(mt, "JFK", records[0].Query)
		assert.Equal(mt, 3, records[0].ResultCount)
		assert.True(mt, created.Equal(records[0].CreatedAt))
		assert.Equal(mt, entity.SearchKindFlight, records[1].Kind)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		repo := NewMongoSearchRecordRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, repo.EnsureIndexes(context.Background()))
	})
}
