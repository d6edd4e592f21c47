// internal/app/store/tissues/tissuestore.go
package tissuestore

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
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
	return &Store{c: db.Collection("tissues")}
}

func (s *Store) Create(ctx context.Context, tissue models.Tissue) (models.Tissue, error) {
	tissue.ID = primitive.NewObjectID()
	tissue.NameCI = text.Fold(tissue.Name)
	tissue.CreatedAt = time.Now().UTC()
	tissue.UpdatedAt = nil
	if _, err := s.c.InsertOne(ctx, tissue); err != nil {
		return models.Tissue{}, err
	}
	return tissue, nil
}

func (s *Store) List(ctx context.Context) ([]models.Tissue, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tissues := []models.Tissue{}
	if err := cur.All(ctx, &tissues); err != nil {
		return nil, err
	}
	return tissues, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Tissue, error) {
	var tissue models.Tissue
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&tissue)
	if err != nil {
		return models.Tissue{}, err
	}
	return tissue, nil
}

// GetByName looks a tissue up by its folded organ name. The catalog pages
// link by name, not id.
func (s *Store) GetByName(ctx context.Context, name string) (models.Tissue, error) {
	var tissue models.Tissue
	err := s.c.FindOne(ctx, bson.M{"name_ci": text.Fold(name)}).Decode(&tissue)
	if err != nil {
		return models.Tissue{}, err
	}
	return tissue, nil
}

// Update overwrites the record's descriptive fields and refreshes
// updatedAt, returning the updated document.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, tissue models.Tissue) (models.Tissue, error) {
	set := bson.M{
		"name":        tissue.Name,
		"name_ci":     text.Fold(tissue.Name),
		"description": tissue.Description,
		"histology":   tissue.Histology,
		"image":       tissue.Image,
		"updatedAt":   time.Now().UTC(),
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Tissue
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return models.Tissue{}, err
	}
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListNames returns the distinct organ names for the catalog index page.
func (s *Store) ListNames(ctx context.Context) ([]string, error) {
	raw, err := s.c.Distinct(ctx, "name", bson.M{})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(raw))
	for _, v := range raw {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}
