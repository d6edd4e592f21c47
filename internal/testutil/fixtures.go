package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/yvelmence/tissuefinder/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreatePost creates a forum post owned by the given user id.
func (f *Fixtures) CreatePost(ctx context.Context, title, content, userID string) models.ForumPost {
	f.t.Helper()

	post := models.ForumPost{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Content:   content,
		UserID:    userID,
		UserName:  "Test User",
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("forumposts").InsertOne(ctx, post); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

// CreateComment creates a comment under the given post id.
func (f *Fixtures) CreateComment(ctx context.Context, postID, text, userID string) models.ForumComment {
	f.t.Helper()

	comment := models.ForumComment{
		ID:        primitive.NewObjectID(),
		PostID:    postID,
		Text:      text,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("forumcomments").InsertOne(ctx, comment); err != nil {
		f.t.Fatalf("failed to create test comment: %v", err)
	}
	return comment
}

// CreateTissue creates a tissue catalog entry owned by the given user id.
func (f *Fixtures) CreateTissue(ctx context.Context, name, description, userID string) models.Tissue {
	f.t.Helper()

	tissue := models.Tissue{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Description: description,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("tissues").InsertOne(ctx, tissue); err != nil {
		f.t.Fatalf("failed to create test tissue: %v", err)
	}
	return tissue
}

// CreateUser creates a user with the given role and returns it.
func (f *Fixtures) CreateUser(ctx context.Context, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		EmailCI:   text.Fold(email),
		FullName:  "Test User",
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin creates an admin-flagged user.
func (f *Fixtures) CreateAdmin(ctx context.Context, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, email, "admin")
}

// CreateQuestion adds a question to the flat question bank.
func (f *Fixtures) CreateQuestion(ctx context.Context, questionText string, correctIndex int, optionTexts ...string) models.QuizQuestion {
	f.t.Helper()

	q := models.QuizQuestion{
		ID:           primitive.NewObjectID(),
		QuestionText: questionText,
	}
	for i, opt := range optionTexts {
		q.AnswerOptions = append(q.AnswerOptions, models.AnswerOption{
			AnswerText: opt,
			IsCorrect:  i == correctIndex,
		})
	}
	if _, err := f.db.Collection("questions").InsertOne(ctx, q); err != nil {
		f.t.Fatalf("failed to create test question: %v", err)
	}
	return q
}
