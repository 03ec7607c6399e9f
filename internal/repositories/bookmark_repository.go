package repositories

import (
	"fmt"

	"github.com/meddeck-app/backend/internal/models"
	"gorm.io/gorm"
)

// BookmarkRepository defines the interface for bookmark operations
type BookmarkRepository interface {
	SaveBookmark(bookmark *models.Bookmark) error
	RemoveBookmark(userID, caseID string) error
	IsBookmarked(userID, caseID string) (bool, error)
	GetBookmarkerIDs(caseID string) ([]string, error)
	GetBookmarksByUser(userID string) ([]models.Bookmark, error)
}

// PostgresBookmarkRepository implements BookmarkRepository
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

// NewPostgresBookmarkRepository creates a new PostgresBookmarkRepository
func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

// SaveBookmark creates a new bookmark in PostgreSQL
func (r *PostgresBookmarkRepository) SaveBookmark(bookmark *models.Bookmark) error {
	return r.db.Create(bookmark).Error
}

// RemoveBookmark deletes a bookmark from PostgreSQL
func (r *PostgresBookmarkRepository) RemoveBookmark(userID, caseID string) error {
	res := r.db.Where("user_id = ? AND case_id = ?", userID, caseID).Delete(&models.Bookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("bookmark not found")
	}
	return nil
}

// IsBookmarked checks whether a user has bookmarked a case
func (r *PostgresBookmarkRepository) IsBookmarked(userID, caseID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Bookmark{}).Where("user_id = ? AND case_id = ?", userID, caseID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetBookmarkerIDs returns the UIDs of every user who bookmarked a case
func (r *PostgresBookmarkRepository) GetBookmarkerIDs(caseID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Bookmark{}).Where("case_id = ?", caseID).Pluck("user_id", &ids).Error
	return ids, err
}

// GetBookmarksByUser retrieves all bookmarks of a user
func (r *PostgresBookmarkRepository) GetBookmarksByUser(userID string) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&bookmarks).Error
	return bookmarks, err
}
