package repositories

import (
	"fmt"

	"github.com/meddeck-app/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.LikeEntry) error
	DeleteLike(contentID, commentID, actorID string) error
	HasLiked(contentID, commentID, actorID string) (bool, error)
	GetLikesCountByContentID(contentID string) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike creates a new like in PostgreSQL
func (r *PostgresLikeRepository) CreateLike(like *models.LikeEntry) error {
	return r.db.Create(like).Error
}

// DeleteLike deletes a like from PostgreSQL
func (r *PostgresLikeRepository) DeleteLike(contentID, commentID, actorID string) error {
	res := r.db.Where("content_id = ? AND comment_id = ? AND actor_id = ?", contentID, commentID, actorID).Delete(&models.LikeEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like not found")
	}
	return nil
}

// HasLiked checks whether an actor has already liked the target
func (r *PostgresLikeRepository) HasLiked(contentID, commentID, actorID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.LikeEntry{}).Where("content_id = ? AND comment_id = ? AND actor_id = ?", contentID, commentID, actorID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLikesCountByContentID retrieves the count of likes on a content item itself
func (r *PostgresLikeRepository) GetLikesCountByContentID(contentID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.LikeEntry{}).Where("content_id = ? AND comment_id = ''", contentID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
