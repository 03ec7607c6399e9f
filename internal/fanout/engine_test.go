package fanout

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/meddeck-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type engineFixture struct {
	engine    *Engine
	notifs    *fakeNotificationStore
	content   *fakeContentStore
	comments  *fakeCommentStore
	bookmarks *fakeBookmarkStore
	pusher    *fakePusher
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		notifs:    newFakeNotificationStore(),
		content:   newFakeContentStore(),
		comments:  newFakeCommentStore(),
		bookmarks: newFakeBookmarkStore(),
		pusher:    &fakePusher{},
	}
	f.engine = NewEngine(f.notifs, f.content, f.comments, f.bookmarks, f.pusher, zap.NewNop())
	return f
}

func TestLikeOnContentCreatesRecord(t *testing.T) {
	f := newEngineFixture()
	item := f.content.addContent("u1", models.ContentKindPost, models.PrivacyVisible, time.Now())
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	err := f.engine.HandleLike(context.Background(), Event{
		Kind:      EventLikeCreated,
		ContentID: item.ID.Hex(),
		ActorID:   "u2",
		Timestamp: t1,
	})
	require.NoError(t, err)

	records := f.notifs.forRecipient("u1")
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, models.KindLikeContent, rec.Kind)
	assert.Equal(t, item.ID.Hex(), rec.ContentID)
	assert.Equal(t, "u2", rec.ActorID)
	assert.Equal(t, t1, rec.Timestamp)
	assert.Empty(t, rec.CommentID)

	// The store-assigned identifier is written back onto the record
	require.NotEmpty(t, rec.RecordID)
	assert.Equal(t, rec.ID.Hex(), rec.RecordID)
}

func TestRepeatedLikesCoalesce(t *testing.T) {
	f := newEngineFixture()
	item := f.content.addContent("u1", models.ContentKindPost, models.PrivacyVisible, time.Now())
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	ev := Event{Kind: EventLikeCreated, ContentID: item.ID.Hex(), ActorID: "u2", Timestamp: t1}
	require.NoError(t, f.engine.HandleLike(context.Background(), ev))

	ev.ActorID = "u3"
	ev.Timestamp = t2
	require.NoError(t, f.engine.HandleLike(context.Background(), ev))

	records := f.notifs.forRecipient("u1")
	require.Len(t, records, 1, "second like must coalesce, not duplicate")
	rec := records[0]
	assert.Equal(t, "u3", rec.ActorID, "coalesced record carries the last actor")
	assert.Equal(t, t2, rec.Timestamp, "coalesced record carries the last timestamp")
	assert.Equal(t, models.KindLikeContent, rec.Kind)
	assert.Equal(t, item.ID.Hex(), rec.ContentID)
}

func TestOwnersOwnLikeIsNoop(t *testing.T) {
	f := newEngineFixture()
	item := f.content.addContent("u1", models.ContentKindPost, models.PrivacyVisible, time.Now())

	err := f.engine.HandleLike(context.Background(), Event{
		Kind:      EventLikeCreated,
		ContentID: item.ID.Hex(),
		ActorID:   "u1",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
	assert.Empty(t, f.notifs.all())
	assert.Empty(t, f.pusher.pushed)
}

func TestLikeOnCommentNotifiesCommentAuthor(t *testing.T) {
	f := newEngineFixture()
	item := f.content.addContent("u1", models.ContentKindCase, models.PrivacyVisible, time.Now())
	comment := f.comments.addComment(item.ID.Hex(), "u2", nil)

	err := f.engine.HandleLike(context.Background(), Event{
		Kind:      EventLikeCreated,
		ContentID: item.ID.Hex(),
		Path:      []string{comment.ID.Hex()},
		ActorID:   "u3",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)

	records := f.notifs.forRecipient("u2")
	require.Len(t, records, 1)
	assert.Equal(t, models.KindLikeComment, records[0].Kind)
	assert.Equal(t, comment.ID.Hex(), records[0].CommentID)
	assert.Equal(t, "u3", records[0].ActorID)
	assert.Empty(t, f.notifs.forRecipient("u1"), "content owner is not notified for a comment like")
}

func TestLikeOnReplyUsesReplyKind(t *testing.T) {
	f := newEngineFixture()
	item := f.content.addContent("u1", models.ContentKindCase, models.PrivacyVisible, time.Now())
	parent := f.comments.addComment(item.ID.Hex(), "u2", nil)
	reply := f.comments.addComment(item.ID.Hex(), "u4", []string{parent.ID.Hex()})

	err := f.engine.HandleLike(context.Background(), Event{
		Kind:      EventLikeCreated,
		ContentID: item.ID.Hex(),
		Path:      []string{parent.ID.Hex(), reply.ID.Hex()},
		ActorID:   "u3",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)

	records := f.notifs.forRecipient("u4")
	require.Len(t, records, 1)
	assert.Equal(t, models.KindLikeReply, records[0].Kind)
}

func TestCommentLikesCoalescePerComment(t *testing.T) {
	f := newEngineFixture()
	item := f.content.addContent("u1", models.ContentKindCase, models.PrivacyVisible, time.Now())
	first := f.comments.addComment(item.ID.Hex(), "u2", nil)
	second := f.comments.addComment(item.ID.Hex(), "u2", nil)

	for _, comment := range []string{first.ID.Hex(), second.ID.Hex()} {
		for _, actor := range []string{"u3", "u4"} {
			require.NoError(t, f.engine.HandleLike(context.Background(), Event{
				Kind:      EventLikeCreated,
				ContentID: item.ID.Hex(),
				Path:      []string{comment},
				ActorID:   actor,
				Timestamp: time.Now(),
			}))
		}
	}

	// One coalesced record per liked comment, not per like
	assert.Len(t, f.notifs.forRecipient("u2"), 2)
}

func TestSelfLikeOnOwnCommentIsNoop(t *testing.T) {
	f := newEngineFixture()
	item := f.content.addContent("u1", models.ContentKindPost, models.PrivacyVisible, time.Now())
	comment := f.comments.addComment(item.ID.Hex(), "u2", nil)

	err := f.engine.HandleLike(context.Background(), Event{
		Kind:      EventLikeCreated,
		ContentID: item.ID.Hex(),
		Path:      []string{comment.ID.Hex()},
		ActorID:   "u2",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
	assert.Empty(t, f.notifs.all())
}

func TestLikeOnMissingContentFails(t *testing.T) {
	f := newEngineFixture()

	err := f.engine.HandleLike(context.Background(), Event{
		Kind:      EventLikeCreated,
		ContentID: "000000000000000000000000",
		ActorID:   "u2",
		Timestamp: time.Now(),
	})
	require.Error(t, err)
	assert.Empty(t, f.notifs.all(), "no partial record on resolution failure")
}

func TestCommentsAppendWithoutCoalescing(t *testing.T) {
	f := newEngineFixture()
	item := f.content.addContent("u2", models.ContentKindCase, models.PrivacyVisible, time.Now())
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, author := range []string{"u1", "u3"} {
		comment := f.comments.addComment(item.ID.Hex(), author, nil)
		require.NoError(t, f.engine.HandleComment(context.Background(), Event{
			Kind:      EventCommentCreated,
			ContentID: item.ID.Hex(),
			CommentID: comment.ID.Hex(),
			ActorID:   author,
			Timestamp: t1.Add(time.Duration(i) * time.Minute),
		}))
	}

	records := f.notifs.forRecipient("u2")
	require.Len(t, records, 2, "comment notifications never coalesce")
	for _, rec := range records {
		assert.Equal(t, models.KindComment, rec.Kind)
		assert.NotEmpty(t, rec.RecordID)
	}
}

func TestReplyNotifiesParentCommentAuthor(t *testing.T) {
	f := newEngineFixture()
	item := f.content.addContent("u1", models.ContentKindCase, models.PrivacyVisible, time.Now())
	parent := f.comments.addComment(item.ID.Hex(), "u2", nil)
	reply := f.comments.addComment(item.ID.Hex(), "u3", []string{parent.ID.Hex()})

	err := f.engine.HandleComment(context.Background(), Event{
		Kind:      EventCommentCreated,
		ContentID: item.ID.Hex(),
		CommentID: reply.ID.Hex(),
		ActorID:   "u3",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)

	assert.Empty(t, f.notifs.forRecipient("u1"), "content owner is not the recipient of a reply")
	records := f.notifs.forRecipient("u2")
	require.Len(t, records, 1)
	assert.Equal(t, models.KindReply, records[0].Kind)
	assert.Equal(t, reply.ID.Hex(), records[0].CommentID)
	assert.Equal(t, []string{parent.ID.Hex(), reply.ID.Hex()}, records[0].Path)
}

func TestReplyToOwnCommentIsNoop(t *testing.T) {
	f := newEngineFixture()
	item := f.content.addContent("u1", models.ContentKindCase, models.PrivacyVisible, time.Now())
	parent := f.comments.addComment(item.ID.Hex(), "u2", nil)
	reply := f.comments.addComment(item.ID.Hex(), "u2", []string{parent.ID.Hex()})

	err := f.engine.HandleComment(context.Background(), Event{
		Kind:      EventCommentCreated,
		ContentID: item.ID.Hex(),
		CommentID: reply.ID.Hex(),
		ActorID:   "u2",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
	assert.Empty(t, f.notifs.all())
}

func TestFollowNotifiesFollowedUser(t *testing.T) {
	f := newEngineFixture()

	err := f.engine.HandleFollow(context.Background(), Event{
		Kind:       EventFollowCreated,
		FollowerID: "u2",
		FollowedID: "u1",
		Timestamp:  time.Now(),
	})
	require.NoError(t, err)

	records := f.notifs.forRecipient("u1")
	require.Len(t, records, 1)
	assert.Equal(t, models.KindNewFollower, records[0].Kind)
	assert.Equal(t, "u2", records[0].ActorID)
}

func TestSelfFollowIsNoop(t *testing.T) {
	f := newEngineFixture()

	err := f.engine.HandleFollow(context.Background(), Event{
		Kind:       EventFollowCreated,
		FollowerID: "u1",
		FollowedID: "u1",
		Timestamp:  time.Now(),
	})
	require.NoError(t, err)
	assert.Empty(t, f.notifs.all())
}

func TestRevisionFansOutToBookmarkersExceptOwner(t *testing.T) {
	f := newEngineFixture()
	item := f.content.addContent("u1", models.ContentKindCase, models.PrivacyVisible, time.Now())
	caseID := item.ID.Hex()
	for _, uid := range []string{"u1", "u2", "u3"} {
		require.NoError(t, f.bookmarks.SaveBookmark(&models.Bookmark{UserID: uid, CaseID: caseID}))
	}

	err := f.engine.HandleRevision(context.Background(), Event{
		Kind:         EventRevisionCreated,
		ContentID:    caseID,
		RevisionID:   "rev1",
		RevisionKind: models.RevisionKindUpdate,
		Timestamp:    time.Now(),
	})
	require.NoError(t, err)

	assert.Empty(t, f.notifs.forRecipient("u1"), "case owner is excluded from revision fan-out")
	for _, uid := range []string{"u2", "u3"} {
		records := f.notifs.forRecipient(uid)
		require.Len(t, records, 1)
		assert.Equal(t, models.KindCaseRevision, records[0].Kind)
		assert.Equal(t, caseID, records[0].ContentID)
		assert.Equal(t, []string{"rev1"}, records[0].Path)
		assert.Equal(t, "u1", records[0].ActorID)
	}
}

func TestRevisionOnPostIsRejected(t *testing.T) {
	f := newEngineFixture()
	item := f.content.addContent("u1", models.ContentKindPost, models.PrivacyVisible, time.Now())
	require.NoError(t, f.bookmarks.SaveBookmark(&models.Bookmark{UserID: "u2", CaseID: item.ID.Hex()}))

	err := f.engine.HandleRevision(context.Background(), Event{
		Kind:         EventRevisionCreated,
		ContentID:    item.ID.Hex(),
		RevisionID:   "rev1",
		RevisionKind: models.RevisionKindUpdate,
		Timestamp:    time.Now(),
	})
	require.Error(t, err, "revisions only exist on cases")
	assert.Empty(t, f.notifs.all())
}

func TestRevisionWithOnlyOwnerBookmarkIsNoop(t *testing.T) {
	f := newEngineFixture()
	item := f.content.addContent("u1", models.ContentKindCase, models.PrivacyVisible, time.Now())
	require.NoError(t, f.bookmarks.SaveBookmark(&models.Bookmark{UserID: "u1", CaseID: item.ID.Hex()}))

	err := f.engine.HandleRevision(context.Background(), Event{
		Kind:         EventRevisionCreated,
		ContentID:    item.ID.Hex(),
		RevisionID:   "rev1",
		RevisionKind: models.RevisionKindUpdate,
		Timestamp:    time.Now(),
	})
	require.NoError(t, err)
	assert.Empty(t, f.notifs.all())
}

func TestAnonymousRevisionOmitsActor(t *testing.T) {
	f := newEngineFixture()
	item := f.content.addContent("u1", models.ContentKindCase, models.PrivacyAnonymous, time.Now())
	caseID := item.ID.Hex()
	for _, uid := range []string{"u2", "u3"} {
		require.NoError(t, f.bookmarks.SaveBookmark(&models.Bookmark{UserID: uid, CaseID: caseID}))
	}

	err := f.engine.HandleRevision(context.Background(), Event{
		Kind:         EventRevisionCreated,
		ContentID:    caseID,
		RevisionID:   "rev1",
		RevisionKind: models.RevisionKindUpdate,
		Timestamp:    time.Now(),
	})
	require.NoError(t, err)

	records := f.notifs.all()
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Empty(t, rec.ActorID, "anonymous case must not reveal the owner")
	}
}

func TestDiagnosisRevisionUsesDiagnosisKind(t *testing.T) {
	f := newEngineFixture()
	item := f.content.addContent("u1", models.ContentKindCase, models.PrivacyVisible, time.Now())
	require.NoError(t, f.bookmarks.SaveBookmark(&models.Bookmark{UserID: "u2", CaseID: item.ID.Hex()}))

	err := f.engine.HandleRevision(context.Background(), Event{
		Kind:         EventRevisionCreated,
		ContentID:    item.ID.Hex(),
		RevisionID:   "rev2",
		RevisionKind: models.RevisionKindDiagnosis,
		Timestamp:    time.Now(),
	})
	require.NoError(t, err)

	records := f.notifs.forRecipient("u2")
	require.Len(t, records, 1)
	assert.Equal(t, models.KindDiagnosisResolve, records[0].Kind)
}

func TestRevisionPartialFailureDoesNotStopFanOut(t *testing.T) {
	f := newEngineFixture()
	item := f.content.addContent("u1", models.ContentKindCase, models.PrivacyVisible, time.Now())
	caseID := item.ID.Hex()
	for _, uid := range []string{"u2", "u3", "u4"} {
		require.NoError(t, f.bookmarks.SaveBookmark(&models.Bookmark{UserID: uid, CaseID: caseID}))
	}
	f.notifs.failFor["u3"] = fmt.Errorf("write unavailable")

	err := f.engine.HandleRevision(context.Background(), Event{
		Kind:         EventRevisionCreated,
		ContentID:    caseID,
		RevisionID:   "rev1",
		RevisionKind: models.RevisionKindUpdate,
		Timestamp:    time.Now(),
	})
	require.NoError(t, err, "per-recipient failures are logged, not surfaced")

	assert.Len(t, f.notifs.forRecipient("u2"), 1)
	assert.Empty(t, f.notifs.forRecipient("u3"))
	assert.Len(t, f.notifs.forRecipient("u4"), 1)
}

func TestUnreadCountSkipsReadRecords(t *testing.T) {
	f := newEngineFixture()
	first := f.content.addContent("u1", models.ContentKindPost, models.PrivacyVisible, time.Now())
	second := f.content.addContent("u1", models.ContentKindPost, models.PrivacyVisible, time.Now())

	for _, item := range []string{first.ID.Hex(), second.ID.Hex()} {
		require.NoError(t, f.engine.HandleLike(context.Background(), Event{
			Kind:      EventLikeCreated,
			ContentID: item,
			ActorID:   "u2",
			Timestamp: time.Now(),
		}))
	}

	count, err := f.notifs.GetUnreadCount(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	f.notifs.markRead(f.notifs.forRecipient("u1")[0].ID)

	count, err = f.notifs.GetUnreadCount(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPusherReceivesNewRecords(t *testing.T) {
	f := newEngineFixture()
	item := f.content.addContent("u1", models.ContentKindPost, models.PrivacyVisible, time.Now())

	require.NoError(t, f.engine.HandleLike(context.Background(), Event{
		Kind:      EventLikeCreated,
		ContentID: item.ID.Hex(),
		ActorID:   "u2",
		Timestamp: time.Now(),
	}))

	require.Len(t, f.pusher.pushed, 1)
	assert.Equal(t, "u1", f.pusher.pushed[0].RecipientID)

	// Coalescing does not re-push
	require.NoError(t, f.engine.HandleLike(context.Background(), Event{
		Kind:      EventLikeCreated,
		ContentID: item.ID.Hex(),
		ActorID:   "u3",
		Timestamp: time.Now(),
	}))
	assert.Len(t, f.pusher.pushed, 1)
}
