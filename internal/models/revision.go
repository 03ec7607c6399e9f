package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RevisionKind distinguishes a plain case update from a diagnosis resolution
type RevisionKind string

const (
	RevisionKindUpdate    RevisionKind = "update"
	RevisionKindDiagnosis RevisionKind = "diagnosis"
)

// CaseRevision represents an update appended to a clinical case (MongoDB)
type CaseRevision struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CaseID    string             `json:"case_id" bson:"case_id"`
	Kind      RevisionKind       `json:"kind" bson:"kind"`
	Title     string             `json:"title,omitempty" bson:"title,omitempty"`
	Body      string             `json:"body" bson:"body"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// CreateRevisionRequest defines the request body for appending a case revision
type CreateRevisionRequest struct {
	Kind  string `json:"kind" validate:"required,oneof=update diagnosis"`
	Title string `json:"title,omitempty" validate:"omitempty,max=200"`
	Body  string `json:"body" validate:"required,min=1,max=5000"`
}
