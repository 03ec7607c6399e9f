package repositories

import (
	"fmt"

	"github.com/meddeck-app/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(follow *models.FollowRelation) error
	DeleteFollow(followerID, followedID string) error
	IsFollowing(followerID, followedID string) (bool, error)
	GetFollowerIDs(userID string) ([]string, error)
	GetFollowedIDs(userID string) ([]string, error)
	GetFollowersCount(userID string) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) CreateFollow(follow *models.FollowRelation) error {
	return r.db.Create(follow).Error
}

func (r *PostgresFollowRepository) DeleteFollow(followerID, followedID string) error {
	res := r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).Delete(&models.FollowRelation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("follow relationship not found")
	}
	return nil
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followedID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.FollowRelation{}).Where("follower_id = ? AND followed_id = ?", followerID, followedID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) GetFollowerIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.FollowRelation{}).Where("followed_id = ?", userID).Pluck("follower_id", &ids).Error
	return ids, err
}

func (r *PostgresFollowRepository) GetFollowedIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.FollowRelation{}).Where("follower_id = ?", userID).Pluck("followed_id", &ids).Error
	return ids, err
}

func (r *PostgresFollowRepository) GetFollowersCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.FollowRelation{}).Where("followed_id = ?", userID).Count(&count).Error
	return count, err
}
