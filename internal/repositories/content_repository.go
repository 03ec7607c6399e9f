package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/meddeck-app/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContentRepository defines the interface for content data operations
type ContentRepository interface {
	CreateContent(ctx context.Context, item *models.ContentItem) error
	GetContentByID(ctx context.Context, id string) (*models.ContentItem, error)
	GetRecentByOwner(ctx context.Context, ownerID string, limit int64) ([]models.ContentItem, error)
	GetAllContent(ctx context.Context, skip, limit int64) ([]models.ContentItem, error)
	IncrementLikesCount(ctx context.Context, contentID string) error
	DecrementLikesCount(ctx context.Context, contentID string) error
	IncrementCommentsCount(ctx context.Context, contentID string) error
}

// MongoContentRepository implements ContentRepository for MongoDB
type MongoContentRepository struct {
	collection *mongo.Collection
}

// NewMongoContentRepository creates a new MongoContentRepository
func NewMongoContentRepository(db *mongo.Database) *MongoContentRepository {
	return &MongoContentRepository{collection: db.Collection("content")}
}

// CreateContent creates a new content item in MongoDB
func (r *MongoContentRepository) CreateContent(ctx context.Context, item *models.ContentItem) error {
	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, item)
	return err
}

// GetContentByID retrieves a content item by ID from MongoDB
func (r *MongoContentRepository) GetContentByID(ctx context.Context, id string) (*models.ContentItem, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid content ID format: %w", err)
	}

	var item models.ContentItem
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("content not found")
		}
		return nil, err
	}
	return &item, nil
}

// GetRecentByOwner retrieves the owner's most recent content items, newest first
func (r *MongoContentRepository) GetRecentByOwner(ctx context.Context, ownerID string, limit int64) ([]models.ContentItem, error) {
	var items []models.ContentItem
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetAllContent retrieves content items with pagination, newest first
func (r *MongoContentRepository) GetAllContent(ctx context.Context, skip, limit int64) ([]models.ContentItem, error) {
	var items []models.ContentItem
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// IncrementLikesCount increments the likes count of a content item
func (r *MongoContentRepository) IncrementLikesCount(ctx context.Context, contentID string) error {
	objID, err := primitive.ObjectIDFromHex(contentID)
	if err != nil {
		return fmt.Errorf("invalid content ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"likes_count": 1}})
	return err
}

// DecrementLikesCount decrements the likes count of a content item
func (r *MongoContentRepository) DecrementLikesCount(ctx context.Context, contentID string) error {
	objID, err := primitive.ObjectIDFromHex(contentID)
	if err != nil {
		return fmt.Errorf("invalid content ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"likes_count": -1}})
	return err
}

// IncrementCommentsCount increments the comments count of a content item
func (r *MongoContentRepository) IncrementCommentsCount(ctx context.Context, contentID string) error {
	objID, err := primitive.ObjectIDFromHex(contentID)
	if err != nil {
		return fmt.Errorf("invalid content ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"comments_count": 1}})
	return err
}
