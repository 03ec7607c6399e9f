package fanout

import (
	"context"
	"fmt"

	"github.com/meddeck-app/backend/internal/models"
	"github.com/meddeck-app/backend/internal/repositories"
	"github.com/meddeck-app/backend/pkg/metrics"
	"go.uber.org/zap"
)

// Pusher hands a freshly persisted record off to the delivery transport.
// Delivery is best effort and never blocks or fails record persistence.
type Pusher interface {
	Push(ctx context.Context, record *models.NotificationRecord)
}

// Engine decides, for each qualifying event, whether to create a new
// notification record or coalesce into an existing one.
//
// Like-class kinds keep at most one record per (recipient, content, kind,
// comment) tuple: the first event creates it, later events only move its
// timestamp and actor forward. Comment/reply kinds append one record per
// event. The existence check is a plain query followed by a conditional
// write; two near-simultaneous like events for the same tuple can both see
// "none exists" and double-create. Handlers are invoked at least once by the
// platform, so this window is accepted rather than guarded.
type Engine struct {
	notifications repositories.NotificationRepository
	content       repositories.ContentRepository
	comments      repositories.CommentRepository
	bookmarks     repositories.BookmarkRepository
	pusher        Pusher
	log           *zap.Logger
}

// NewEngine creates a coalescing engine over the given stores. pusher may be
// nil when no delivery transport is configured.
func NewEngine(
	notifRepo repositories.NotificationRepository,
	contentRepo repositories.ContentRepository,
	commentRepo repositories.CommentRepository,
	bookmarkRepo repositories.BookmarkRepository,
	pusher Pusher,
	log *zap.Logger,
) *Engine {
	return &Engine{
		notifications: notifRepo,
		content:       contentRepo,
		comments:      commentRepo,
		bookmarks:     bookmarkRepo,
		pusher:        pusher,
		log:           log,
	}
}

// HandleLike processes a like on content, a comment, or a reply.
func (e *Engine) HandleLike(ctx context.Context, ev Event) error {
	recipientID, kind, commentID, err := e.resolveLikeTarget(ctx, ev)
	if err != nil {
		e.log.Error("failed to resolve like target",
			zap.String("content_id", ev.ContentID),
			zap.String("actor_id", ev.ActorID),
			zap.Error(err))
		return err
	}

	if ev.ActorID == recipientID {
		metrics.SelfActionSkips.Inc()
		return nil
	}

	existing, err := e.notifications.FindAggregate(ctx, recipientID, ev.ContentID, kind, commentID)
	if err != nil {
		e.log.Error("aggregate lookup failed",
			zap.String("recipient_id", recipientID),
			zap.String("content_id", ev.ContentID),
			zap.Error(err))
		return err
	}

	if existing != nil {
		if err := e.notifications.Touch(ctx, existing.ID, ev.ActorID, ev.Timestamp); err != nil {
			e.log.Error("failed to coalesce like notification",
				zap.String("recipient_id", recipientID),
				zap.String("content_id", ev.ContentID),
				zap.Error(err))
			return err
		}
		metrics.NotificationsCoalesced.Inc()
		return nil
	}

	record := &models.NotificationRecord{
		RecipientID: recipientID,
		Kind:        kind,
		ContentID:   ev.ContentID,
		CommentID:   commentID,
		Path:        ev.Path,
		ActorID:     ev.ActorID,
		Timestamp:   ev.Timestamp,
	}
	return e.append(ctx, record)
}

// resolveLikeTarget determines who receives a like notification. A like on the
// content itself notifies the content owner; a like on a comment or reply
// notifies that comment's author, which requires fetching the comment first.
func (e *Engine) resolveLikeTarget(ctx context.Context, ev Event) (recipientID string, kind models.NotificationKind, commentID string, err error) {
	if len(ev.Path) == 0 {
		item, err := e.content.GetContentByID(ctx, ev.ContentID)
		if err != nil {
			return "", 0, "", fmt.Errorf("resolving content owner: %w", err)
		}
		return item.OwnerID, models.KindLikeContent, "", nil
	}

	comment, err := e.comments.GetCommentByPath(ctx, ev.ContentID, ev.Path)
	if err != nil {
		return "", 0, "", fmt.Errorf("resolving comment author: %w", err)
	}

	kind = models.KindLikeComment
	if len(comment.Path) > 0 {
		kind = models.KindLikeReply
	}
	return comment.AuthorID, kind, comment.ID.Hex(), nil
}

// HandleComment processes a newly created comment or reply. Every event
// produces its own record, there is no coalescing for this class.
func (e *Engine) HandleComment(ctx context.Context, ev Event) error {
	comment, err := e.comments.GetCommentByID(ctx, ev.CommentID)
	if err != nil {
		e.log.Error("failed to load comment",
			zap.String("comment_id", ev.CommentID),
			zap.String("content_id", ev.ContentID),
			zap.Error(err))
		return err
	}

	var recipientID string
	kind := models.KindComment
	if len(comment.Path) == 0 {
		item, err := e.content.GetContentByID(ctx, ev.ContentID)
		if err != nil {
			e.log.Error("failed to resolve content owner",
				zap.String("content_id", ev.ContentID),
				zap.Error(err))
			return err
		}
		recipientID = item.OwnerID
	} else {
		parent, err := e.comments.GetCommentByID(ctx, comment.Path[len(comment.Path)-1])
		if err != nil {
			e.log.Error("failed to resolve parent comment author",
				zap.String("comment_id", ev.CommentID),
				zap.String("content_id", ev.ContentID),
				zap.Error(err))
			return err
		}
		recipientID = parent.AuthorID
		kind = models.KindReply
	}

	if ev.ActorID == recipientID {
		metrics.SelfActionSkips.Inc()
		return nil
	}

	record := &models.NotificationRecord{
		RecipientID: recipientID,
		Kind:        kind,
		ContentID:   ev.ContentID,
		CommentID:   ev.CommentID,
		Path:        append(append([]string{}, comment.Path...), ev.CommentID),
		ActorID:     ev.ActorID,
		Timestamp:   ev.Timestamp,
	}
	return e.append(ctx, record)
}

// HandleFollow appends a new-follower notification to the followed user.
func (e *Engine) HandleFollow(ctx context.Context, ev Event) error {
	if ev.FollowerID == ev.FollowedID {
		metrics.SelfActionSkips.Inc()
		return nil
	}

	record := &models.NotificationRecord{
		RecipientID: ev.FollowedID,
		Kind:        models.KindNewFollower,
		ActorID:     ev.FollowerID,
		Timestamp:   ev.Timestamp,
	}
	return e.append(ctx, record)
}

// HandleRevision fans a case revision out to every bookmarker except the case
// owner. The per-recipient writes are independent: a failure on one recipient
// is logged and does not roll back or stop the others.
func (e *Engine) HandleRevision(ctx context.Context, ev Event) error {
	item, err := e.content.GetContentByID(ctx, ev.ContentID)
	if err != nil {
		e.log.Error("failed to load case for revision fan-out",
			zap.String("case_id", ev.ContentID),
			zap.String("revision_id", ev.RevisionID),
			zap.Error(err))
		return err
	}

	if item.Kind != models.ContentKindCase {
		return fmt.Errorf("revision event for non-case content %s", ev.ContentID)
	}

	bookmarkers, err := e.bookmarks.GetBookmarkerIDs(ev.ContentID)
	if err != nil {
		e.log.Error("failed to enumerate bookmarkers",
			zap.String("case_id", ev.ContentID),
			zap.Error(err))
		return err
	}

	kind := models.KindCaseRevision
	if ev.RevisionKind == models.RevisionKindDiagnosis {
		kind = models.KindDiagnosisResolve
	}

	// The owner's identity is only revealed when the case is visible;
	// anonymous cases drop the actor field entirely.
	actorID := ""
	if item.Privacy == models.PrivacyVisible {
		actorID = item.OwnerID
	}

	for _, recipientID := range bookmarkers {
		if recipientID == item.OwnerID {
			continue
		}

		record := &models.NotificationRecord{
			RecipientID: recipientID,
			Kind:        kind,
			ContentID:   ev.ContentID,
			Path:        []string{ev.RevisionID},
			ActorID:     actorID,
			Timestamp:   ev.Timestamp,
		}
		if err := e.append(ctx, record); err != nil {
			metrics.FanOutFailures.Inc()
			e.log.Error("revision fan-out write failed",
				zap.String("recipient_id", recipientID),
				zap.String("case_id", ev.ContentID),
				zap.String("revision_id", ev.RevisionID),
				zap.Error(err))
		}
	}
	return nil
}

func (e *Engine) append(ctx context.Context, record *models.NotificationRecord) error {
	if err := e.notifications.Append(ctx, record); err != nil {
		e.log.Error("failed to append notification record",
			zap.String("recipient_id", record.RecipientID),
			zap.String("content_id", record.ContentID),
			zap.Int("kind", int(record.Kind)),
			zap.Error(err))
		return err
	}
	metrics.NotificationsCreated.Inc()

	if e.pusher != nil {
		e.pusher.Push(ctx, record)
	}
	return nil
}
