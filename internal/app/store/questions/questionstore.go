// internal/app/store/questions/questionstore.go
//
// The flat question bank predates the per-quiz collections and still backs
// the original practice-quiz page at /api/questions.
package questionstore

import (
	"context"

	"github.com/yvelmence/tissuefinder/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("questions")}
}

// List returns all question-bank documents in insertion order.
func (s *Store) List(ctx context.Context) ([]models.QuizQuestion, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	questions := []models.QuizQuestion{}
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// Insert adds a question to the bank. Only used by admin tooling and tests;
// the observed flows never update or delete bank questions.
func (s *Store) Insert(ctx context.Context, q models.QuizQuestion) (models.QuizQuestion, error) {
	q.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, q); err != nil {
		return models.QuizQuestion{}, err
	}
	return q, nil
}
