package models

import "time"

// FollowRelation represents a directed follow edge between two clinicians
type FollowRelation struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID string    `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_followed"` // Firebase UID
	FollowedID string    `json:"followed_id" gorm:"index;uniqueIndex:idx_follower_followed"` // Firebase UID
	CreatedAt  time.Time `json:"created_at"`
}
