// internal/app/store/quizzes/quizstore.go
package quizstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/yvelmence/tissuefinder/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Quizzes are stored as a metadata record in the "quizzes" collection plus a
// dynamically named collection holding that quiz's question documents. The
// two writes are sequential with no transaction: if the question insert
// fails, the metadata record is left behind (known inconsistency window).
type Store struct {
	db *mongo.Database
}

// collectionNamePattern guards reads of dynamically created collections so
// a caller cannot name an arbitrary collection.
var collectionNamePattern = regexp.MustCompile(`^quiz_\d+$`)

var ErrBadCollectionName = errors.New("not a quiz collection name")

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// ListQuizzes returns all quiz metadata records.
func (s *Store) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	cur, err := s.db.Collection("quizzes").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	quizzes := []models.Quiz{}
	if err := cur.All(ctx, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

// CreateQuiz inserts the metadata record, then bulk-inserts the questions
// into a fresh collection named by timestamp. Step two failing does not
// roll back step one.
func (s *Store) CreateQuiz(ctx context.Context, quizName string, questions []models.QuizQuestion) (models.Quiz, error) {
	quiz := models.Quiz{
		ID:             primitive.NewObjectID(),
		QuizName:       quizName,
		CollectionName: fmt.Sprintf("quiz_%d", time.Now().UnixMilli()),
		CreatedAt:      time.Now().UTC(),
	}
	if _, err := s.db.Collection("quizzes").InsertOne(ctx, quiz); err != nil {
		return models.Quiz{}, err
	}

	docs := make([]any, len(questions))
	for i, q := range questions {
		q.ID = primitive.NewObjectID()
		docs[i] = q
	}
	if _, err := s.db.Collection(quiz.CollectionName).InsertMany(ctx, docs); err != nil {
		return models.Quiz{}, fmt.Errorf("insert questions into %s: %w", quiz.CollectionName, err)
	}
	return quiz, nil
}

// ListQuestions returns every question document of a quiz collection in
// insertion order.
func (s *Store) ListQuestions(ctx context.Context, collectionName string) ([]models.QuizQuestion, error) {
	if !collectionNamePattern.MatchString(collectionName) {
		return nil, ErrBadCollectionName
	}
	cur, err := s.db.Collection(collectionName).Find(ctx, bson.M{})
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
