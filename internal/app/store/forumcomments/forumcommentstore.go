// internal/app/store/forumcomments/forumcommentstore.go
package forumcommentstore

import (
	"context"
	"time"

	"github.com/yvelmence/tissuefinder/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("forumcomments")}
}

// Create persists a comment. The referenced post is not checked for
// existence; comments on deleted posts simply never render.
func (s *Store) Create(ctx context.Context, comment models.ForumComment) (models.ForumComment, error) {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now().UTC()
	comment.UpdatedAt = nil
	if _, err := s.c.InsertOne(ctx, comment); err != nil {
		return models.ForumComment{}, err
	}
	return comment, nil
}

// ListByPost returns a post's comments, newest first.
func (s *Store) ListByPost(ctx context.Context, postID string) ([]models.ForumComment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	comments := []models.ForumComment{}
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.ForumComment, error) {
	var comment models.ForumComment
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		return models.ForumComment{}, err
	}
	return comment, nil
}

// UpdateText replaces a comment's text and refreshes updatedAt, returning
// the updated document.
func (s *Store) UpdateText(ctx context.Context, id primitive.ObjectID, text string) (models.ForumComment, error) {
	set := bson.M{
		"text":      text,
		"updatedAt": time.Now().UTC(),
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var comment models.ForumComment
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&comment)
	if err != nil {
		return models.ForumComment{}, err
	}
	return comment, nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByPost removes every comment under a post. Used by the cascade when
// the post itself is deleted.
func (s *Store) DeleteByPost(ctx context.Context, postID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"postId": postID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
