// internal/domain/models/quiz.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quiz is the metadata record in the "quizzes" collection. The questions
// themselves live in a dynamically named collection (CollectionName).
type Quiz struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	QuizName       string             `bson:"quizName" json:"quizName"`
	CollectionName string             `bson:"collectionName" json:"collectionName"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// AnswerOption is one choice on a quiz question. Exactly one option per
// question is supposed to carry IsCorrect, but only the authoring form
// enforces that; the server stores whatever it is given.
type AnswerOption struct {
	AnswerText string `bson:"answerText" json:"answerText"`
	IsCorrect  bool   `bson:"isCorrect" json:"isCorrect"`
}

// QuizQuestion is a question document, either in the flat legacy question
// bank or in a per-quiz collection.
type QuizQuestion struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	QuestionText  string             `bson:"questionText" json:"questionText"`
	AnswerOptions []AnswerOption     `bson:"answerOptions" json:"answerOptions"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
}
