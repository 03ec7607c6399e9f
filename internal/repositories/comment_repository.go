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

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.CommentEntry) error
	GetCommentByID(ctx context.Context, id string) (*models.CommentEntry, error)
	GetCommentByPath(ctx context.Context, contentID string, path []string) (*models.CommentEntry, error)
	GetCommentsByContentID(ctx context.Context, contentID string) ([]models.CommentEntry, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

// CreateComment creates a new comment in MongoDB
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.CommentEntry) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetCommentByID retrieves a comment by ID from MongoDB
func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.CommentEntry, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID format: %w", err)
	}

	var comment models.CommentEntry
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("comment not found")
		}
		return nil, err
	}
	return &comment, nil
}

// GetCommentByPath resolves the comment a path points at. The last element of
// the path is the target comment's id; the rest is its ancestor chain.
func (r *MongoCommentRepository) GetCommentByPath(ctx context.Context, contentID string, path []string) (*models.CommentEntry, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("empty comment path")
	}

	comment, err := r.GetCommentByID(ctx, path[len(path)-1])
	if err != nil {
		return nil, err
	}
	if comment.ContentID != contentID {
		return nil, fmt.Errorf("comment does not belong to content %s", contentID)
	}
	return comment, nil
}

// GetCommentsByContentID retrieves all comments for a content item, oldest first
func (r *MongoCommentRepository) GetCommentsByContentID(ctx context.Context, contentID string) ([]models.CommentEntry, error) {
	var comments []models.CommentEntry
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"content_id": contentID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
