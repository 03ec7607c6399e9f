package repositories

import (
	"github.com/meddeck-app/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByUID(uid string) (*models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(uid string) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user profile in PostgreSQL
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByUID retrieves a user by Firebase UID
func (r *PostgresUserRepository) GetUserByUID(uid string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("uid = ?", uid).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user profile
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// DeleteUser deletes a user profile by Firebase UID
func (r *PostgresUserRepository) DeleteUser(uid string) error {
	return r.db.Where("uid = ?", uid).Delete(&models.User{}).Error
}
