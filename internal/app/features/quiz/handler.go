// internal/app/features/quiz/handler.go
package quiz

import (
	"github.com/microcosm-cc/bluemonday"
	questionstore "github.com/yvelmence/tissuefinder/internal/app/store/questions"
	quizstore "github.com/yvelmence/tissuefinder/internal/app/store/quizzes"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the flat question bank and the named per-collection quizzes.
type Handler struct {
	Quizzes   *quizstore.Store
	Questions *questionstore.Store
	Log       *zap.Logger

	strict *bluemonday.Policy
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Quizzes:   quizstore.New(db),
		Questions: questionstore.New(db),
		Log:       logger,
		strict:    bluemonday.StrictPolicy(),
	}
}
