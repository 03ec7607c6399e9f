package repositories

import (
	"github.com/meddeck-app/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeviceRepository defines the interface for push device token operations
type DeviceRepository interface {
	RegisterDevice(device *models.Device) error
	GetActiveTokensByUser(userID string) ([]string, error)
	DeactivateToken(token string) error
}

// PostgresDeviceRepository implements DeviceRepository for PostgreSQL
type PostgresDeviceRepository struct {
	db *gorm.DB
}

// NewPostgresDeviceRepository creates a new PostgresDeviceRepository
func NewPostgresDeviceRepository(db *gorm.DB) *PostgresDeviceRepository {
	return &PostgresDeviceRepository{db: db}
}

// RegisterDevice upserts a device token for a user
func (r *PostgresDeviceRepository) RegisterDevice(device *models.Device) error {
	device.IsActive = true
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"platform", "is_active", "updated_at"}),
	}).Create(device).Error
}

// GetActiveTokensByUser returns the active push tokens of a user
func (r *PostgresDeviceRepository) GetActiveTokensByUser(userID string) ([]string, error) {
	var tokens []string
	err := r.db.Model(&models.Device{}).Where("user_id = ? AND is_active = true", userID).Pluck("token", &tokens).Error
	return tokens, err
}

// DeactivateToken marks a token inactive after the push service rejects it
func (r *PostgresDeviceRepository) DeactivateToken(token string) error {
	return r.db.Model(&models.Device{}).Where("token = ?", token).Update("is_active", false).Error
}
