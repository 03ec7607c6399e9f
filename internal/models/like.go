package models

import "time"

// LikeEntry represents a like on a content item or on one of its comments.
// CommentID is empty for a like on the content itself. At most one row exists
// per (content, comment, actor) triple.
type LikeEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ContentID string    `json:"content_id" gorm:"index;uniqueIndex:idx_target_actor_like"` // MongoDB ObjectID as string
	CommentID string    `json:"comment_id,omitempty" gorm:"uniqueIndex:idx_target_actor_like"`
	ActorID   string    `json:"actor_id" gorm:"index;uniqueIndex:idx_target_actor_like"` // Firebase UID of the liker
	CreatedAt time.Time `json:"created_at"`
}

// CreateLikeRequest defines the request body for liking a comment or reply.
// Path locates the liked comment inside the content's reply tree.
type CreateLikeRequest struct {
	Path []string `json:"path,omitempty"`
}
