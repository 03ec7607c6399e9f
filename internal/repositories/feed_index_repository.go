package repositories

import (
	"context"

	"github.com/meddeck-app/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FeedIndexRepository defines the interface for the cached per-follower feed index
type FeedIndexRepository interface {
	// SeedEntries writes all entries as one ordered batch.
	SeedEntries(ctx context.Context, entries []models.FeedIndexEntry) error
	AddEntry(ctx context.Context, entry *models.FeedIndexEntry) error
	GetByFollowerID(ctx context.Context, followerID string, limit int64) ([]models.FeedIndexEntry, error)
}

// MongoFeedIndexRepository implements FeedIndexRepository for MongoDB
type MongoFeedIndexRepository struct {
	collection *mongo.Collection
}

// NewMongoFeedIndexRepository creates a new MongoFeedIndexRepository
func NewMongoFeedIndexRepository(db *mongo.Database) *MongoFeedIndexRepository {
	return &MongoFeedIndexRepository{collection: db.Collection("feed_index")}
}

// SeedEntries submits the follow-seed as a single ordered multi-insert
func (r *MongoFeedIndexRepository) SeedEntries(ctx context.Context, entries []models.FeedIndexEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, len(entries))
	for i := range entries {
		entries[i].ID = primitive.NewObjectID()
		docs[i] = entries[i]
	}
	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	return err
}

// AddEntry writes a single feed index entry
func (r *MongoFeedIndexRepository) AddEntry(ctx context.Context, entry *models.FeedIndexEntry) error {
	entry.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// GetByFollowerID retrieves a follower's cached feed, newest first
func (r *MongoFeedIndexRepository) GetByFollowerID(ctx context.Context, followerID string, limit int64) ([]models.FeedIndexEntry, error) {
	var entries []models.FeedIndexEntry
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"follower_id": followerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
