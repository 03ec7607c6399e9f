package fanout

import (
	"context"
	"testing"
	"time"

	"github.com/meddeck-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDispatchRoutesByKind(t *testing.T) {
	d := NewEmptyDispatcher(zap.NewNop())

	var got Event
	d.Register(EventLikeCreated, func(ctx context.Context, ev Event) error {
		got = ev
		return nil
	})

	ev := Event{Kind: EventLikeCreated, ContentID: "c1", ActorID: "u2", Timestamp: time.Now()}
	require.NoError(t, d.Dispatch(context.Background(), ev))
	assert.Equal(t, ev, got)
}

func TestDispatchUnknownKindFails(t *testing.T) {
	d := NewEmptyDispatcher(zap.NewNop())

	err := d.Dispatch(context.Background(), Event{Kind: EventKind(99)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no handler registered")
}

func TestFollowDispatchSeedsFeedAndNotifies(t *testing.T) {
	notifs := newFakeNotificationStore()
	content := newFakeContentStore()
	comments := newFakeCommentStore()
	bookmarks := newFakeBookmarkStore()
	feed := &fakeFeedIndexStore{}

	engine := NewEngine(notifs, content, comments, bookmarks, nil, zap.NewNop())
	propagator := NewPropagator(content, feed, zap.NewNop())
	d := NewDispatcher(engine, propagator, zap.NewNop())

	content.addContent("u1", models.ContentKindPost, models.PrivacyVisible, time.Now())

	err := d.Dispatch(context.Background(), Event{
		Kind:       EventFollowCreated,
		FollowerID: "u2",
		FollowedID: "u1",
		Timestamp:  time.Now(),
	})
	require.NoError(t, err)

	assert.Len(t, feed.entries, 1, "follower's feed is seeded with the followed user's content")
	records := notifs.forRecipient("u1")
	require.Len(t, records, 1)
	assert.Equal(t, models.KindNewFollower, records[0].Kind)
}

func TestDispatcherCoversAllEventKinds(t *testing.T) {
	engine := NewEngine(newFakeNotificationStore(), newFakeContentStore(), newFakeCommentStore(), newFakeBookmarkStore(), nil, zap.NewNop())
	propagator := NewPropagator(newFakeContentStore(), &fakeFeedIndexStore{}, zap.NewNop())
	d := NewDispatcher(engine, propagator, zap.NewNop())

	for _, kind := range []EventKind{EventLikeCreated, EventCommentCreated, EventFollowCreated, EventRevisionCreated} {
		_, ok := d.handlers[kind]
		assert.True(t, ok, "handler missing for %s", kind)
	}
}
