package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentKind discriminates the two kinds of shareable content
type ContentKind string

const (
	ContentKindPost ContentKind = "post"
	ContentKindCase ContentKind = "case"
)

// Privacy controls how much of the owner's identity is exposed alongside content
type Privacy string

const (
	PrivacyVisible   Privacy = "visible"
	PrivacyAnonymous Privacy = "anonymous"
	PrivacyGroup     Privacy = "group"
)

// ContentItem represents a post or clinical case stored in MongoDB
type ContentItem struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID       string             `json:"owner_id" bson:"owner_id"` // Firebase UID of the author
	Kind          ContentKind        `json:"kind" bson:"kind"`
	Privacy       Privacy            `json:"privacy" bson:"privacy"`
	Title         string             `json:"title,omitempty" bson:"title,omitempty"`
	Body          string             `json:"body" bson:"body"`
	ImageURLs     []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	LikesCount    int                `json:"likes_count" bson:"likes_count"`
	CommentsCount int                `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateContentRequest defines the request body for publishing a post or case
type CreateContentRequest struct {
	Kind      string   `json:"kind" validate:"required,oneof=post case"`
	Privacy   string   `json:"privacy" validate:"required,oneof=visible anonymous group"`
	Title     string   `json:"title,omitempty" validate:"omitempty,max=200"`
	Body      string   `json:"body" validate:"required,min=1,max=5000"`
	ImageURLs []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}
