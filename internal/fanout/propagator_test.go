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

func TestSeedFollowerFeedCopiesRecentItems(t *testing.T) {
	content := newFakeContentStore()
	feed := &fakeFeedIndexStore{}
	p := NewPropagator(content, feed, zap.NewNop())

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	items := make([]*models.ContentItem, 0, 5)
	for i := 0; i < 5; i++ {
		items = append(items, content.addContent("u1", models.ContentKindPost, models.PrivacyVisible, base.Add(time.Duration(i)*time.Minute)))
	}

	err := p.SeedFollowerFeed(context.Background(), Event{
		Kind:       EventFollowCreated,
		FollowerID: "u2",
		FollowedID: "u1",
	})
	require.NoError(t, err)

	require.Len(t, feed.entries, 5)
	assert.Equal(t, 1, feed.seedCalls, "all entries land in one batch")
	for i, entry := range feed.entries {
		assert.Equal(t, "u2", entry.FollowerID)
		assert.Equal(t, "u1", entry.OwnerID)
		// Newest first, carrying the original content timestamps
		want := items[len(items)-1-i]
		assert.Equal(t, want.ID.Hex(), entry.ContentID)
		assert.Equal(t, want.CreatedAt, entry.Timestamp)
	}
}

func TestSeedFollowerFeedCapsAtLimit(t *testing.T) {
	content := newFakeContentStore()
	feed := &fakeFeedIndexStore{}
	p := NewPropagator(content, feed, zap.NewNop())

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		content.addContent("u1", models.ContentKindPost, models.PrivacyVisible, base.Add(time.Duration(i)*time.Minute))
	}

	err := p.SeedFollowerFeed(context.Background(), Event{
		Kind:       EventFollowCreated,
		FollowerID: "u2",
		FollowedID: "u1",
	})
	require.NoError(t, err)

	require.Len(t, feed.entries, feedSeedLimit)
	// The 20 newest of the 25 items, so the oldest entry is item index 5
	newest := feed.entries[0]
	oldest := feed.entries[len(feed.entries)-1]
	assert.Equal(t, base.Add(24*time.Minute), newest.Timestamp)
	assert.Equal(t, base.Add(5*time.Minute), oldest.Timestamp)
}

func TestSeedFollowerFeedNoContentIsNoop(t *testing.T) {
	content := newFakeContentStore()
	feed := &fakeFeedIndexStore{}
	p := NewPropagator(content, feed, zap.NewNop())

	err := p.SeedFollowerFeed(context.Background(), Event{
		Kind:       EventFollowCreated,
		FollowerID: "u2",
		FollowedID: "u1",
	})
	require.NoError(t, err)
	assert.Zero(t, feed.seedCalls, "no batch is issued when the followed user has no content")
	assert.Empty(t, feed.entries)
}

func TestSeedFollowerFeedPropagatesBatchError(t *testing.T) {
	content := newFakeContentStore()
	feed := &fakeFeedIndexStore{failSeed: fmt.Errorf("write unavailable")}
	p := NewPropagator(content, feed, zap.NewNop())

	content.addContent("u1", models.ContentKindPost, models.PrivacyVisible, time.Now())

	err := p.SeedFollowerFeed(context.Background(), Event{
		Kind:       EventFollowCreated,
		FollowerID: "u2",
		FollowedID: "u1",
	})
	require.Error(t, err)
	assert.Empty(t, feed.entries)
}
