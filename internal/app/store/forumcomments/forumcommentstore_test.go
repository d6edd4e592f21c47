package forumcommentstore_test

import (
	"testing"
	"time"

	forumcommentstore "github.com/yvelmence/tissuefinder/internal/app/store/forumcomments"
	"github.com/yvelmence/tissuefinder/internal/domain/models"
	"github.com/yvelmence/tissuefinder/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := forumcommentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.ForumComment{
		PostID:   primitive.NewObjectID().Hex(),
		Text:     "Great explanation",
		UserID:   "user-1",
		UserName: "Test User",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if created.UpdatedAt != nil {
		t.Error("expected UpdatedAt to be nil on a fresh comment")
	}
}

func TestStore_ListByPost_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := forumcommentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	postID := primitive.NewObjectID().Hex()
	otherPostID := primitive.NewObjectID().Hex()

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i, text := range []string{"first", "second", "third"} {
		comment := models.ForumComment{
			ID:        primitive.NewObjectID(),
			PostID:    postID,
			Text:      text,
			UserID:    "user-1",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if _, err := db.Collection("forumcomments").InsertOne(ctx, comment); err != nil {
			t.Fatalf("insert fixture: %v", err)
		}
	}
	// A comment on another post must not leak in.
	other := models.ForumComment{
		ID:        primitive.NewObjectID(),
		PostID:    otherPostID,
		Text:      "unrelated",
		UserID:    "user-2",
		CreatedAt: base,
	}
	if _, err := db.Collection("forumcomments").InsertOne(ctx, other); err != nil {
		t.Fatalf("insert fixture: %v", err)
	}

	comments, err := store.ListByPost(ctx, postID)
	if err != nil {
		t.Fatalf("ListByPost failed: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(comments))
	}
	if comments[0].Text != "third" || comments[2].Text != "first" {
		t.Errorf("expected newest-first order, got %q, %q, %q",
			comments[0].Text, comments[1].Text, comments[2].Text)
	}
}

func TestStore_UpdateText(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := forumcommentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.ForumComment{
		PostID: primitive.NewObjectID().Hex(),
		Text:   "before",
		UserID: "user-1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := store.UpdateText(ctx, created.ID, "after")
	if err != nil {
		t.Fatalf("UpdateText failed: %v", err)
	}
	if updated.Text != "after" {
		t.Errorf("Text: got %q, want %q", updated.Text, "after")
	}
	if updated.UpdatedAt == nil {
		t.Error("expected UpdatedAt to be set after edit")
	}
}

func TestStore_DeleteByPost(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := forumcommentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	postID := primitive.NewObjectID().Hex()
	otherPostID := primitive.NewObjectID().Hex()

	fixtures.CreateComment(ctx, postID, "one", "user-1")
	fixtures.CreateComment(ctx, postID, "two", "user-2")
	survivor := fixtures.CreateComment(ctx, otherPostID, "keep me", "user-3")

	removed, err := store.DeleteByPost(ctx, postID)
	if err != nil {
		t.Fatalf("DeleteByPost failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}

	if _, err := store.GetByID(ctx, survivor.ID); err != nil {
		t.Errorf("comment on other post should survive, got %v", err)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := forumcommentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}
