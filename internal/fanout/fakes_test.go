package fanout

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/meddeck-app/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stand-ins for the repository interfaces so the engine and
// propagator can be exercised without live databases.

type fakeNotificationStore struct {
	mu      sync.Mutex
	records []*models.NotificationRecord
	// failFor makes Append fail for specific recipients
	failFor map[string]error
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{failFor: make(map[string]error)}
}

func (s *fakeNotificationStore) Append(ctx context.Context, record *models.NotificationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failFor[record.RecipientID]; ok {
		return err
	}
	record.ID = primitive.NewObjectID()
	record.RecordID = record.ID.Hex()
	clone := *record
	s.records = append(s.records, &clone)
	return nil
}

func (s *fakeNotificationStore) FindAggregate(ctx context.Context, recipientID, contentID string, kind models.NotificationKind, commentID string) (*models.NotificationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.RecipientID == recipientID && r.ContentID == contentID && r.Kind == kind && r.CommentID == commentID {
			clone := *r
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *fakeNotificationStore) Touch(ctx context.Context, id primitive.ObjectID, actorID string, timestamp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			r.ActorID = actorID
			r.Timestamp = timestamp
			return nil
		}
	}
	return fmt.Errorf("notification record not found")
}

func (s *fakeNotificationStore) GetByRecipientID(ctx context.Context, recipientID string, page, limit int) ([]models.NotificationRecord, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.NotificationRecord
	for _, r := range s.records {
		if r.RecipientID == recipientID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (s *fakeNotificationStore) GetUnreadCount(ctx context.Context, recipientID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, r := range s.records {
		if r.RecipientID == recipientID && !r.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *fakeNotificationStore) MarkAsRead(ctx context.Context, recipientID, recordID string) error {
	return nil
}

func (s *fakeNotificationStore) MarkAllAsRead(ctx context.Context, recipientID string) error {
	return nil
}

func (s *fakeNotificationStore) markRead(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			r.IsRead = true
		}
	}
}

func (s *fakeNotificationStore) all() []*models.NotificationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.NotificationRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *fakeNotificationStore) forRecipient(uid string) []*models.NotificationRecord {
	var out []*models.NotificationRecord
	for _, r := range s.all() {
		if r.RecipientID == uid {
			out = append(out, r)
		}
	}
	return out
}

type fakeContentStore struct {
	items map[string]*models.ContentItem
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{items: make(map[string]*models.ContentItem)}
}

func (s *fakeContentStore) addContent(ownerID string, kind models.ContentKind, privacy models.Privacy, createdAt time.Time) *models.ContentItem {
	item := &models.ContentItem{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Kind:      kind,
		Privacy:   privacy,
		CreatedAt: createdAt,
	}
	s.items[item.ID.Hex()] = item
	return item
}

func (s *fakeContentStore) CreateContent(ctx context.Context, item *models.ContentItem) error {
	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now()
	s.items[item.ID.Hex()] = item
	return nil
}

func (s *fakeContentStore) GetContentByID(ctx context.Context, id string) (*models.ContentItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("content not found")
	}
	return item, nil
}

func (s *fakeContentStore) GetRecentByOwner(ctx context.Context, ownerID string, limit int64) ([]models.ContentItem, error) {
	var items []models.ContentItem
	for _, item := range s.items {
		if item.OwnerID == ownerID {
			items = append(items, *item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if int64(len(items)) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *fakeContentStore) GetAllContent(ctx context.Context, skip, limit int64) ([]models.ContentItem, error) {
	return nil, nil
}

func (s *fakeContentStore) IncrementLikesCount(ctx context.Context, contentID string) error    { return nil }
func (s *fakeContentStore) DecrementLikesCount(ctx context.Context, contentID string) error    { return nil }
func (s *fakeContentStore) IncrementCommentsCount(ctx context.Context, contentID string) error { return nil }

type fakeCommentStore struct {
	comments map[string]*models.CommentEntry
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: make(map[string]*models.CommentEntry)}
}

func (s *fakeCommentStore) addComment(contentID, authorID string, path []string) *models.CommentEntry {
	comment := &models.CommentEntry{
		ID:        primitive.NewObjectID(),
		ContentID: contentID,
		AuthorID:  authorID,
		Path:      path,
		CreatedAt: time.Now(),
	}
	s.comments[comment.ID.Hex()] = comment
	return comment
}

func (s *fakeCommentStore) CreateComment(ctx context.Context, comment *models.CommentEntry) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	s.comments[comment.ID.Hex()] = comment
	return nil
}

func (s *fakeCommentStore) GetCommentByID(ctx context.Context, id string) (*models.CommentEntry, error) {
	comment, ok := s.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment not found")
	}
	return comment, nil
}

func (s *fakeCommentStore) GetCommentByPath(ctx context.Context, contentID string, path []string) (*models.CommentEntry, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("empty comment path")
	}
	comment, err := s.GetCommentByID(ctx, path[len(path)-1])
	if err != nil {
		return nil, err
	}
	if comment.ContentID != contentID {
		return nil, fmt.Errorf("comment does not belong to content %s", contentID)
	}
	return comment, nil
}

func (s *fakeCommentStore) GetCommentsByContentID(ctx context.Context, contentID string) ([]models.CommentEntry, error) {
	return nil, nil
}

type fakeBookmarkStore struct {
	bookmarkers map[string][]string // caseID -> user UIDs
}

func newFakeBookmarkStore() *fakeBookmarkStore {
	return &fakeBookmarkStore{bookmarkers: make(map[string][]string)}
}

func (s *fakeBookmarkStore) SaveBookmark(bookmark *models.Bookmark) error {
	s.bookmarkers[bookmark.CaseID] = append(s.bookmarkers[bookmark.CaseID], bookmark.UserID)
	return nil
}

func (s *fakeBookmarkStore) RemoveBookmark(userID, caseID string) error { return nil }

func (s *fakeBookmarkStore) IsBookmarked(userID, caseID string) (bool, error) { return false, nil }

func (s *fakeBookmarkStore) GetBookmarkerIDs(caseID string) ([]string, error) {
	return s.bookmarkers[caseID], nil
}

func (s *fakeBookmarkStore) GetBookmarksByUser(userID string) ([]models.Bookmark, error) {
	return nil, nil
}

type fakeFeedIndexStore struct {
	entries   []models.FeedIndexEntry
	seedCalls int
	failSeed  error
}

func (s *fakeFeedIndexStore) SeedEntries(ctx context.Context, entries []models.FeedIndexEntry) error {
	s.seedCalls++
	if s.failSeed != nil {
		return s.failSeed
	}
	s.entries = append(s.entries, entries...)
	return nil
}

func (s *fakeFeedIndexStore) AddEntry(ctx context.Context, entry *models.FeedIndexEntry) error {
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *fakeFeedIndexStore) GetByFollowerID(ctx context.Context, followerID string, limit int64) ([]models.FeedIndexEntry, error) {
	var out []models.FeedIndexEntry
	for _, e := range s.entries {
		if e.FollowerID == followerID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakePusher struct {
	mu     sync.Mutex
	pushed []*models.NotificationRecord
}

func (p *fakePusher) Push(ctx context.Context, record *models.NotificationRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushed = append(p.pushed, record)
}
