// internal/app/store/forumposts/forumpoststore.go
package forumpoststore

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
	return &Store{c: db.Collection("forumposts")}
}

// Create persists a new post with a server-generated id and creation
// timestamp. Any client-supplied createdAt is ignored.
func (s *Store) Create(ctx context.Context, post models.ForumPost) (models.ForumPost, error) {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now().UTC()
	post.UpdatedAt = nil
	if _, err := s.c.InsertOne(ctx, post); err != nil {
		return models.ForumPost{}, err
	}
	return post, nil
}

// List returns all posts, newest first. There is no pagination.
func (s *Store) List(ctx context.Context) ([]models.ForumPost, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []models.ForumPost{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.ForumPost, error) {
	var post models.ForumPost
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		return models.ForumPost{}, err
	}
	return post, nil
}

// Update overwrites the post's title, content, and image and refreshes
// updatedAt, returning the updated document. No field-level diffing.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, title, content, imageURL string) (models.ForumPost, error) {
	now := time.Now().UTC()
	set := bson.M{
		"title":     title,
		"content":   content,
		"imageUrl":  imageURL,
		"updatedAt": now,
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.ForumPost
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&post)
	if err != nil {
		return models.ForumPost{}, err
	}
	return post, nil
}

// Delete removes a post by id. Returns the number of documents deleted
// (0 or 1); comment cleanup is the caller's job.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
