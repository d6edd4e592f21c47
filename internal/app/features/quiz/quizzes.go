// internal/app/features/quiz/quizzes.go
package quiz

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	quizstore "github.com/yvelmence/tissuefinder/internal/app/store/quizzes"
	"github.com/yvelmence/tissuefinder/internal/app/system/httpjson"
	"github.com/yvelmence/tissuefinder/internal/app/system/timeouts"
	"github.com/yvelmence/tissuefinder/internal/domain/models"
	"go.uber.org/zap"
)

// ServeQuestionBank returns every document of the flat question bank.
//
// Route: GET /api/questions
func (h *Handler) ServeQuestionBank(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	qs, err := h.Questions.List(ctx)
	if err != nil {
		h.Log.Error("list question bank failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Error fetching questions")
		return
	}
	httpjson.Write(w, http.StatusOK, qs)
}

// ServeQuizList returns the metadata records of all named quizzes.
//
// Route: GET /api/quizzes
func (h *Handler) ServeQuizList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Quizzes.ListQuizzes(ctx)
	if err != nil {
		h.Log.Error("list quizzes failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Error fetching quizzes")
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

// ServeQuizQuestions returns all questions of one named quiz, in the order
// they were authored.
//
// Route: GET /api/quizzes/{collectionName}
func (h *Handler) ServeQuizQuestions(w http.ResponseWriter, r *http.Request) {
	collectionName := chi.URLParam(r, "collectionName")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	qs, err := h.Quizzes.ListQuestions(ctx, collectionName)
	if errors.Is(err, quizstore.ErrBadCollectionName) {
		httpjson.Error(w, http.StatusNotFound, "quiz not found")
		return
	}
	if err != nil {
		h.Log.Error("list quiz questions failed", zap.Error(err), zap.String("collection", collectionName))
		httpjson.Error(w, http.StatusInternalServerError, "Error fetching quiz questions")
		return
	}
	httpjson.Write(w, http.StatusOK, qs)
}

// createQuestion mirrors the admin quiz editor's payload. Older builds of
// the editor send the text under "question", newer ones under
// "questionText"; both are accepted.
type createQuestion struct {
	Question      string                `json:"question"`
	QuestionText  string                `json:"questionText"`
	AnswerOptions []models.AnswerOption `json:"answerOptions"`
	Image         string                `json:"image"`
}

func (q createQuestion) text() string {
	if t := strings.TrimSpace(q.QuestionText); t != "" {
		return t
	}
	return strings.TrimSpace(q.Question)
}

// HandleCreateQuiz creates a quiz: a metadata record plus a fresh
// timestamp-named collection holding the questions.
//
// Route: POST /api/create-quiz
func (h *Handler) HandleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QuizName  string           `json:"quizName"`
		Questions []createQuestion `json:"questions"`
	}
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.QuizName = strings.TrimSpace(req.QuizName)
	if req.QuizName == "" {
		httpjson.Error(w, http.StatusBadRequest, "quiz name cannot be empty")
		return
	}
	if len(req.Questions) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "quiz must have at least one question")
		return
	}

	questions := make([]models.QuizQuestion, 0, len(req.Questions))
	for _, q := range req.Questions {
		text := q.text()
		if text == "" {
			httpjson.Error(w, http.StatusBadRequest, "question text cannot be empty")
			return
		}
		if len(q.AnswerOptions) == 0 {
			httpjson.Error(w, http.StatusBadRequest, "question must have answer options")
			return
		}
		opts := make([]models.AnswerOption, 0, len(q.AnswerOptions))
		for _, opt := range q.AnswerOptions {
			answer := strings.TrimSpace(opt.AnswerText)
			if answer == "" {
				httpjson.Error(w, http.StatusBadRequest, "answer text cannot be empty")
				return
			}
			opts = append(opts, models.AnswerOption{
				AnswerText: h.strict.Sanitize(answer),
				IsCorrect:  opt.IsCorrect,
			})
		}
		questions = append(questions, models.QuizQuestion{
			QuestionText:  h.strict.Sanitize(text),
			AnswerOptions: opts,
			Image:         strings.TrimSpace(q.Image),
		})
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	created, err := h.Quizzes.CreateQuiz(ctx, h.strict.Sanitize(req.QuizName), questions)
	if err != nil {
		h.Log.Error("create quiz failed", zap.Error(err), zap.String("quiz_name", req.QuizName))
		httpjson.Error(w, http.StatusInternalServerError, "Error creating quiz")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}
