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

// NotificationRepository defines the interface for the notification record store
type NotificationRepository interface {
	// Append inserts a record and patches the store-assigned id back onto it.
	Append(ctx context.Context, record *models.NotificationRecord) error
	// FindAggregate returns the existing coalescing target for a like-class
	// event, or nil when none exists. Plain query, not a transaction.
	FindAggregate(ctx context.Context, recipientID, contentID string, kind models.NotificationKind, commentID string) (*models.NotificationRecord, error)
	// Touch updates only the timestamp and actor of an existing record.
	Touch(ctx context.Context, id primitive.ObjectID, actorID string, timestamp time.Time) error
	GetByRecipientID(ctx context.Context, recipientID string, page, limit int) ([]models.NotificationRecord, int64, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int64, error)
	MarkAsRead(ctx context.Context, recipientID, recordID string) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

// Append inserts the record, then writes the generated ObjectID hex back onto
// the same document's id field. The identifier is not knowable before the
// insert, so this is a two-step create-then-patch.
func (r *MongoNotificationRepository) Append(ctx context.Context, record *models.NotificationRecord) error {
	record.ID = primitive.NewObjectID()
	res, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	record.RecordID = oid.Hex()

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"id": record.RecordID}})
	if err != nil {
		return fmt.Errorf("failed to patch record id: %w", err)
	}
	return nil
}

// FindAggregate looks up the single coalescing target for (recipient, content,
// kind, comment). commentID is empty for likes on the content itself.
func (r *MongoNotificationRepository) FindAggregate(ctx context.Context, recipientID, contentID string, kind models.NotificationKind, commentID string) (*models.NotificationRecord, error) {
	filter := bson.M{
		"recipient_id": recipientID,
		"content_id":   contentID,
		"kind":         kind,
	}
	if commentID != "" {
		filter["comment_id"] = commentID
	} else {
		filter["comment_id"] = bson.M{"$exists": false}
	}

	var record models.NotificationRecord
	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Touch coalesces a repeat event into an existing record. Only timestamp and
// actor change; kind, content id and path stay as written.
func (r *MongoNotificationRepository) Touch(ctx context.Context, id primitive.ObjectID, actorID string, timestamp time.Time) error {
	update := bson.M{"$set": bson.M{
		"actor_id":  actorID,
		"timestamp": timestamp,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("notification record not found")
	}
	return nil
}

// GetByRecipientID retrieves a recipient's records, newest first, with pagination
func (r *MongoNotificationRepository) GetByRecipientID(ctx context.Context, recipientID string, page, limit int) ([]models.NotificationRecord, int64, error) {
	filter := bson.M{"recipient_id": recipientID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((page - 1) * limit)
	findOptions := options.Find().SetSkip(skip).SetLimit(int64(limit)).SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var records []models.NotificationRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// GetUnreadCount returns the number of unread records for a recipient
func (r *MongoNotificationRepository) GetUnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "is_read": false})
}

// MarkAsRead marks one record as read, scoped to the recipient
func (r *MongoNotificationRepository) MarkAsRead(ctx context.Context, recipientID, recordID string) error {
	objID, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		return fmt.Errorf("invalid notification ID format: %w", err)
	}
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "recipient_id": recipientID},
		bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("notification record not found")
	}
	return nil
}

// MarkAllAsRead marks every unread record of a recipient as read
func (r *MongoNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"recipient_id": recipientID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}})
	return err
}
