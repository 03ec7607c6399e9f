package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a clinician profile (PostgreSQL), keyed by Firebase UID
type User struct {
	gorm.Model  `json:"-"`
	UID         string `json:"uid" gorm:"uniqueIndex"` // Firebase User UID
	DisplayName string `json:"display_name"`
	Email       string `json:"email" gorm:"uniqueIndex"`
	Specialty   string `json:"specialty,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// UserCompact is the trimmed profile embedded in enriched API responses
type UserCompact struct {
	UID         string `json:"uid"`
	DisplayName string `json:"display_name"`
	Specialty   string `json:"specialty,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// ToCompact returns the compact projection of a user profile
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		UID:         u.UID,
		DisplayName: u.DisplayName,
		Specialty:   u.Specialty,
		AvatarURL:   u.AvatarURL,
	}
}

// CreateUserRequest defines the request body for registering a profile
type CreateUserRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Specialty   string `json:"specialty,omitempty" validate:"omitempty,max=80"`
	AvatarURL   string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// UpdateUserRequest defines the request body for updating a profile
type UpdateUserRequest struct {
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,min=2,max=50"`
	Specialty   string `json:"specialty,omitempty" validate:"omitempty,max=80"`
	AvatarURL   string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// Device represents a registered push token for a user's device
type Device struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;uniqueIndex:idx_user_device_token"` // Firebase UID
	Token     string    `json:"token" gorm:"uniqueIndex:idx_user_device_token"`
	Platform  string    `json:"platform" gorm:"size:10"` // ios, android
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterDeviceRequest defines the request body for registering a push token
type RegisterDeviceRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=ios android"`
}
