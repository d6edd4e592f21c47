// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/yvelmence/tissuefinder/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateEmail = errors.New("an account with this email already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) Create(ctx context.Context, user models.User) (models.User, error) {
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.EmailCI = text.Fold(user.Email)
	if user.Role == "" {
		user.Role = "member"
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, user); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// GetByEmail finds an account by folded email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&user)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// IsAdmin reports whether the given caller id belongs to an admin-flagged
// user. The id can be a local ObjectID hex or a hosted-provider external id.
func (s *Store) IsAdmin(ctx context.Context, callerID string) (bool, error) {
	or := bson.A{bson.M{"externalId": callerID}}
	if oid, err := primitive.ObjectIDFromHex(callerID); err == nil {
		or = append(or, bson.M{"_id": oid})
	}

	var user models.User
	err := s.c.FindOne(ctx, bson.M{"$or": or}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.Role == "admin", nil
}
