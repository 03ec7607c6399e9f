package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationKind is the small-integer taxonomy discriminating notification types
type NotificationKind int

const (
	KindLikeContent      NotificationKind = 1 // like on a post or case
	KindLikeComment      NotificationKind = 2 // like on a top-level comment
	KindLikeReply        NotificationKind = 3 // like on a reply
	KindComment          NotificationKind = 4 // new comment on owned content
	KindReply            NotificationKind = 5 // new reply to an authored comment
	KindCaseRevision     NotificationKind = 6 // bookmarked case updated
	KindDiagnosisResolve NotificationKind = 7 // bookmarked case resolved with a diagnosis
	KindNewFollower      NotificationKind = 8 // someone started following
)

// IsLikeClass reports whether repeated events of this kind coalesce into a
// single record instead of each producing their own.
func (k NotificationKind) IsLikeClass() bool {
	return k == KindLikeContent || k == KindLikeComment || k == KindLikeReply
}

// IsRevisionClass reports whether the kind fans out to bookmarkers
func (k NotificationKind) IsRevisionClass() bool {
	return k == KindCaseRevision || k == KindDiagnosisResolve
}

// NotificationRecord represents one entry in a recipient's notification
// collection (MongoDB). RecordID holds the store-assigned ObjectID hex and is
// patched onto the document after insertion; ActorID is absent entirely when
// the triggering content is anonymous.
type NotificationRecord struct {
	ID          primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	RecordID    string             `json:"id,omitempty" bson:"id,omitempty"`
	RecipientID string             `json:"recipient_id" bson:"recipient_id"` // Firebase UID
	Kind        NotificationKind   `json:"kind" bson:"kind"`
	ContentID   string             `json:"content_id" bson:"content_id"`
	CommentID   string             `json:"comment_id,omitempty" bson:"comment_id,omitempty"`
	Path        []string           `json:"path,omitempty" bson:"path,omitempty"`
	ActorID     string             `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	Timestamp   time.Time          `json:"timestamp" bson:"timestamp"`
	IsRead      bool               `json:"is_read" bson:"is_read"`
}
