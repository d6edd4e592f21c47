// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a locally registered account (the legacy auth variant).
//
// Accounts created through the hosted identity provider are mirrored here
// with ExternalID set, so role checks work for both kinds of callers.
// Role is "member" unless assigned manually.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	FullName     string             `bson:"fullName,omitempty" json:"fullName,omitempty"`
	PasswordHash string             `bson:"passwordHash,omitempty" json:"-"`
	ExternalID   string             `bson:"externalId,omitempty" json:"externalId,omitempty"`
	Role         string             `bson:"role" json:"role"` // admin | member

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
