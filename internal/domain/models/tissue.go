// internal/domain/models/tissue.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tissue is one entry in the tissue-information catalog. The catalog pages
// look tissues up by organ name, so a folded copy of the name is stored for
// case/diacritic-insensitive lookup.
type Tissue struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	Histology   string             `bson:"histology,omitempty" json:"histology,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"` // base64 data URI or URL
	UserID      string             `bson:"userId" json:"userId"`

	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
