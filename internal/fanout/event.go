package fanout

import (
	"time"

	"github.com/meddeck-app/backend/internal/models"
)

// EventKind identifies a content-mutation event delivered to the dispatcher
type EventKind int

const (
	EventLikeCreated EventKind = iota + 1
	EventCommentCreated
	EventFollowCreated
	EventRevisionCreated
)

// String returns the event kind name used in logs
func (k EventKind) String() string {
	switch k {
	case EventLikeCreated:
		return "like_created"
	case EventCommentCreated:
		return "comment_created"
	case EventFollowCreated:
		return "follow_created"
	case EventRevisionCreated:
		return "revision_created"
	default:
		return "unknown"
	}
}

// Event is one content-mutation event. Which fields are set depends on Kind:
//
//   - EventLikeCreated: ActorID, ContentID, Path (empty for a like on the
//     content itself, otherwise the path to the liked comment), Timestamp.
//   - EventCommentCreated: ActorID, ContentID, CommentID (the new comment),
//     Timestamp.
//   - EventFollowCreated: FollowerID, FollowedID, Timestamp.
//   - EventRevisionCreated: ContentID (the case), RevisionID, RevisionKind,
//     Timestamp.
type Event struct {
	Kind         EventKind
	ContentID    string
	CommentID    string
	Path         []string
	ActorID      string
	FollowerID   string
	FollowedID   string
	RevisionID   string
	RevisionKind models.RevisionKind
	Timestamp    time.Time
}
