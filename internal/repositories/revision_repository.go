package repositories

import (
	"context"
	"time"

	"github.com/meddeck-app/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RevisionRepository defines the interface for case revision data operations
type RevisionRepository interface {
	CreateRevision(ctx context.Context, revision *models.CaseRevision) error
	GetRevisionsByCaseID(ctx context.Context, caseID string) ([]models.CaseRevision, error)
}

// MongoRevisionRepository implements RevisionRepository for MongoDB
type MongoRevisionRepository struct {
	collection *mongo.Collection
}

// NewMongoRevisionRepository creates a new MongoRevisionRepository
func NewMongoRevisionRepository(db *mongo.Database) *MongoRevisionRepository {
	return &MongoRevisionRepository{collection: db.Collection("revisions")}
}

// CreateRevision appends a new revision to a case in MongoDB
func (r *MongoRevisionRepository) CreateRevision(ctx context.Context, revision *models.CaseRevision) error {
	revision.ID = primitive.NewObjectID()
	revision.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, revision)
	return err
}

// GetRevisionsByCaseID retrieves all revisions of a case, newest first
func (r *MongoRevisionRepository) GetRevisionsByCaseID(ctx context.Context, caseID string) ([]models.CaseRevision, error) {
	var revisions []models.CaseRevision
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"case_id": caseID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &revisions); err != nil {
		return nil, err
	}
	return revisions, nil
}
