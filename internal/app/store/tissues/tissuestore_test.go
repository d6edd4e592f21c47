package tissuestore_test

import (
	"testing"

	tissuestore "github.com/yvelmence/tissuefinder/internal/app/store/tissues"
	"github.com/yvelmence/tissuefinder/internal/domain/models"
	"github.com/yvelmence/tissuefinder/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := tissuestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Tissue{
		Name:        "Cardiac Muscle",
		Description: "Striated muscle of the heart wall.",
		Histology:   "Branching fibers with intercalated discs.",
		UserID:      "user-1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.NameCI != "cardiac muscle" {
		t.Errorf("NameCI: got %q, want %q", created.NameCI, "cardiac muscle")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_GetByName_FoldsCase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := tissuestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Tissue{
		Name:   "Hyaline Cartilage",
		UserID: "user-1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for _, lookup := range []string{"Hyaline Cartilage", "hyaline cartilage", "HYALINE CARTILAGE"} {
		got, err := store.GetByName(ctx, lookup)
		if err != nil {
			t.Fatalf("GetByName(%q) failed: %v", lookup, err)
		}
		if got.ID != created.ID {
			t.Errorf("GetByName(%q): got id %v, want %v", lookup, got.ID, created.ID)
		}
	}
}

func TestStore_GetByName_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := tissuestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByName(ctx, "no such organ"); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := tissuestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Tissue{
		Name:        "Bone",
		Description: "old",
		UserID:      "user-1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := store.Update(ctx, created.ID, models.Tissue{
		Name:        "Compact Bone",
		Description: "new",
		Histology:   "Osteons around central canals.",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Name != "Compact Bone" {
		t.Errorf("Name: got %q", updated.Name)
	}
	if updated.UpdatedAt == nil {
		t.Error("expected UpdatedAt to be set after update")
	}

	// The folded name follows the rename.
	if _, err := store.GetByName(ctx, "compact bone"); err != nil {
		t.Errorf("GetByName after rename failed: %v", err)
	}
}

func TestStore_ListNames(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := tissuestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateTissue(ctx, "Liver", "hepatocyte plates", "user-1")
	fixtures.CreateTissue(ctx, "Kidney", "nephron cross sections", "user-1")

	names, err := store.ListNames(ctx)
	if err != nil {
		t.Fatalf("ListNames failed: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %d: %v", len(names), names)
	}

	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["Liver"] || !found["Kidney"] {
		t.Errorf("missing expected names in %v", names)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := tissuestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tissue := fixtures.CreateTissue(ctx, "Lung", "alveolar sacs", "user-1")

	deleted, err := store.Delete(ctx, tissue.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}
	if _, err := store.GetByID(ctx, tissue.ID); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments after delete, got %v", err)
	}
}
