// internal/domain/models/forumpost.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ForumPost field names match the documents the React client already reads,
// so bson and json tags stay camelCase rather than this repo's usual snake.
type ForumPost struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title    string             `bson:"title" json:"title"`
	Content  string             `bson:"content" json:"content"`
	ImageURL string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"` // base64 data URI or uploaded-file path
	UserID   string             `bson:"userId" json:"userId"`
	UserName string             `bson:"userName,omitempty" json:"userName,omitempty"`
	Tags     []string           `bson:"tags,omitempty" json:"tags,omitempty"`

	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ForumComment hangs off a post by postId. Referential integrity is not
// enforced at write time; a comment can outlive (or predate) its post.
type ForumComment struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PostID   string             `bson:"postId" json:"postId"`
	Text     string             `bson:"text" json:"text"`
	UserID   string             `bson:"userId" json:"userId"`
	UserName string             `bson:"userName,omitempty" json:"userName,omitempty"`

	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
