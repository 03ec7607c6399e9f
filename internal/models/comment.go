package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentEntry represents a comment on a content item, stored in MongoDB.
// Replies carry the ordered list of ancestor comment ids in Path; a top-level
// comment has an empty Path, so len(Path) equals the reply depth.
type CommentEntry struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ContentID string             `json:"content_id" bson:"content_id"`
	AuthorID  string             `json:"author_id" bson:"author_id"` // Firebase UID of the commenter
	Body      string             `json:"body" bson:"body"`
	Path      []string           `json:"path,omitempty" bson:"path,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// CreateCommentRequest defines the request body for commenting on content.
// ParentPath locates the parent comment when the new comment is a reply.
type CreateCommentRequest struct {
	Body       string   `json:"body" validate:"required,min=1,max=2000"`
	ParentPath []string `json:"parent_path,omitempty"`
}
