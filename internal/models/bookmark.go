package models

import "time"

// Bookmark represents a case saved by a user for follow-up. Bookmarkers of a
// case receive revision notifications when the case is updated.
type Bookmark struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;uniqueIndex:idx_user_case_bookmark"` // Firebase UID
	CaseID    string    `json:"case_id" gorm:"index;uniqueIndex:idx_user_case_bookmark"` // MongoDB ObjectID as string
	CreatedAt time.Time `json:"created_at"`
}
