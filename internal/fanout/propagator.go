package fanout

import (
	"context"

	"github.com/meddeck-app/backend/internal/models"
	"github.com/meddeck-app/backend/internal/repositories"
	"github.com/meddeck-app/backend/pkg/metrics"
	"go.uber.org/zap"
)

// feedSeedLimit bounds how many of the followed user's recent items are copied
// into a new follower's feed index.
const feedSeedLimit = 20

// Propagator copies a bounded window of a followed user's recent content into
// the follower's cached feed index when a follow relation is created.
type Propagator struct {
	content repositories.ContentRepository
	feed    repositories.FeedIndexRepository
	log     *zap.Logger
}

// NewPropagator creates a new Propagator
func NewPropagator(contentRepo repositories.ContentRepository, feedRepo repositories.FeedIndexRepository, log *zap.Logger) *Propagator {
	return &Propagator{content: contentRepo, feed: feedRepo, log: log}
}

// SeedFollowerFeed fetches the followed user's most recent items (newest
// first) and writes one feed index entry per item, carrying the original
// content timestamp, as a single batch. A followed user with no content is a
// no-op. Best-effort cache seed: the batch is not retried here.
func (p *Propagator) SeedFollowerFeed(ctx context.Context, ev Event) error {
	items, err := p.content.GetRecentByOwner(ctx, ev.FollowedID, feedSeedLimit)
	if err != nil {
		p.log.Error("failed to fetch recent content for feed seed",
			zap.String("followed_id", ev.FollowedID),
			zap.String("follower_id", ev.FollowerID),
			zap.Error(err))
		return err
	}
	if len(items) == 0 {
		return nil
	}

	entries := make([]models.FeedIndexEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, models.FeedIndexEntry{
			FollowerID: ev.FollowerID,
			ContentID:  item.ID.Hex(),
			OwnerID:    item.OwnerID,
			Timestamp:  item.CreatedAt,
		})
	}

	if err := p.feed.SeedEntries(ctx, entries); err != nil {
		p.log.Error("feed seed batch failed",
			zap.String("followed_id", ev.FollowedID),
			zap.String("follower_id", ev.FollowerID),
			zap.Int("entries", len(entries)),
			zap.Error(err))
		return err
	}

	metrics.FeedEntriesSeeded.Add(float64(len(entries)))
	return nil
}
