// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
//
// The per-quiz "quiz_<timestamp>" collections are created on demand and do
// not get validators; only the fixed collections are covered here.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("forumposts", forumPostsSchema())
	ensure("forumcomments", forumCommentsSchema())
	ensure("tissues", tissuesSchema())
	ensure("quizzes", quizzesSchema())

	// The flat question bank predates any schema discipline; just make
	// sure the collection exists.
	ensure("questions", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"email", "email_ci", "role"},
			"properties": bson.M{
				"email":        bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"email_ci":     bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"fullName":     bson.M{"bsonType": "string"},
				"passwordHash": bson.M{"bsonType": "string"},
				"externalId":   bson.M{"bsonType": bson.A{"string", "null"}},
				"role":         bson.M{"enum": bson.A{"admin", "member"}},
				"createdAt":    bson.M{"bsonType": "date"},
				"updatedAt":    bson.M{"bsonType": "date"},
			},
		},
	}
}

func forumPostsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "content", "userId", "createdAt"},
			"properties": bson.M{
				"title":     bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"content":   bson.M{"bsonType": "string", "minLength": 1},
				"imageUrl":  bson.M{"bsonType": "string"},
				"userId":    bson.M{"bsonType": "string", "minLength": 1},
				"userName":  bson.M{"bsonType": "string"},
				"tags":      bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
				"createdAt": bson.M{"bsonType": "date"},
				"updatedAt": bson.M{"bsonType": bson.A{"date", "null"}},
			},
		},
	}
}

func forumCommentsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"postId", "text", "userId", "createdAt"},
			"properties": bson.M{
				// postId is the parent's hex id as a string, matching what
				// the client sends, not an objectId reference.
				"postId":    bson.M{"bsonType": "string", "minLength": 1},
				"text":      bson.M{"bsonType": "string", "minLength": 1},
				"userId":    bson.M{"bsonType": "string", "minLength": 1},
				"userName":  bson.M{"bsonType": "string"},
				"createdAt": bson.M{"bsonType": "date"},
				"updatedAt": bson.M{"bsonType": bson.A{"date", "null"}},
			},
		},
	}
}

func tissuesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "name_ci"},
			"properties": bson.M{
				"name":        bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"name_ci":     bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"description": bson.M{"bsonType": "string"},
				"histology":   bson.M{"bsonType": "string"},
				"image":       bson.M{"bsonType": "string"},
				"userId":      bson.M{"bsonType": "string"},
				"createdAt":   bson.M{"bsonType": "date"},
				"updatedAt":   bson.M{"bsonType": bson.A{"date", "null"}},
			},
		},
	}
}

func quizzesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"quizName", "collectionName", "createdAt"},
			"properties": bson.M{
				"quizName":       bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"collectionName": bson.M{"bsonType": "string", "pattern": "^quiz_\\d+$"},
				"createdAt":      bson.M{"bsonType": "date"},
			},
		},
	}
}
