package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedIndexEntry is one cached reference in a follower's feed index (MongoDB).
// Entries are seeded in bulk when a follow relation is created and carry the
// original content timestamp so the feed stays chronologically ordered.
type FeedIndexEntry struct {
	ID         primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	FollowerID string             `json:"follower_id" bson:"follower_id"` // Firebase UID
	ContentID  string             `json:"content_id" bson:"content_id"`
	OwnerID    string             `json:"owner_id" bson:"owner_id"`
	Timestamp  time.Time          `json:"timestamp" bson:"timestamp"`
}
