package quizstore_test

import (
	"strings"
	"testing"

	quizstore "github.com/yvelmence/tissuefinder/internal/app/store/quizzes"
	"github.com/yvelmence/tissuefinder/internal/domain/models"
	"github.com/yvelmence/tissuefinder/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleQuestions() []models.QuizQuestion {
	return []models.QuizQuestion{
		{
			QuestionText: "Which tissue lines the small intestine?",
			AnswerOptions: []models.AnswerOption{
				{AnswerText: "Simple columnar epithelium", IsCorrect: true},
				{AnswerText: "Stratified squamous epithelium", IsCorrect: false},
			},
		},
		{
			QuestionText: "Which tissue contains chondrocytes?",
			AnswerOptions: []models.AnswerOption{
				{AnswerText: "Cartilage", IsCorrect: true},
				{AnswerText: "Bone", IsCorrect: false},
				{AnswerText: "Blood", IsCorrect: false},
			},
		},
	}
}

func TestStore_CreateQuiz(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := quizstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.CreateQuiz(ctx, "Epithelium Review", sampleQuestions())
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.QuizName != "Epithelium Review" {
		t.Errorf("QuizName: got %q", created.QuizName)
	}
	if !strings.HasPrefix(created.CollectionName, "quiz_") {
		t.Errorf("CollectionName: got %q, want quiz_ prefix", created.CollectionName)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	// Metadata record is visible in the listing.
	list, err := store.ListQuizzes(ctx)
	if err != nil {
		t.Fatalf("ListQuizzes failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 quiz, got %d", len(list))
	}
	if list[0].CollectionName != created.CollectionName {
		t.Errorf("CollectionName mismatch: %q vs %q", list[0].CollectionName, created.CollectionName)
	}
}

func TestStore_CreateQuiz_QuestionsRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := quizstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	want := sampleQuestions()
	created, err := store.CreateQuiz(ctx, "Connective Tissue", want)
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}

	got, err := store.ListQuestions(ctx, created.CollectionName)
	if err != nil {
		t.Fatalf("ListQuestions failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d questions, got %d", len(want), len(got))
	}

	// Insertion order and the correct-answer flags must survive.
	for i := range want {
		if got[i].QuestionText != want[i].QuestionText {
			t.Errorf("question %d: got %q, want %q", i, got[i].QuestionText, want[i].QuestionText)
		}
		if len(got[i].AnswerOptions) != len(want[i].AnswerOptions) {
			t.Fatalf("question %d: expected %d options, got %d",
				i, len(want[i].AnswerOptions), len(got[i].AnswerOptions))
		}
		for j := range want[i].AnswerOptions {
			if got[i].AnswerOptions[j].IsCorrect != want[i].AnswerOptions[j].IsCorrect {
				t.Errorf("question %d option %d: IsCorrect got %v, want %v",
					i, j, got[i].AnswerOptions[j].IsCorrect, want[i].AnswerOptions[j].IsCorrect)
			}
		}
		if got[i].ID == primitive.NilObjectID {
			t.Errorf("question %d: expected ID to be assigned", i)
		}
	}
}

func TestStore_ListQuestions_RejectsForeignCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := quizstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, name := range []string{"users", "quiz_abc", "quiz_", "", "quiz_1; drop"} {
		if _, err := store.ListQuestions(ctx, name); err != quizstore.ErrBadCollectionName {
			t.Errorf("ListQuestions(%q): expected ErrBadCollectionName, got %v", name, err)
		}
	}
}
