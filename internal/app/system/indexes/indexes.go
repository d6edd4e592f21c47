// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureAll is called at startup. Each ensure* function is idempotent; any
// problems are aggregated so startup can fail fast with everything visible.
//
// Per-quiz question collections are created on demand and deliberately get
// no indexes: they are only ever read in full, in insertion order.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureForumPosts(ctx, db); err != nil {
		problems = append(problems, "forumposts: "+err.Error())
	}
	if err := ensureForumComments(ctx, db); err != nil {
		problems = append(problems, "forumcomments: "+err.Error())
	}
	if err := ensureTissues(ctx, db); err != nil {
		problems = append(problems, "tissues: "+err.Error())
	}
	if err := ensureQuizzes(ctx, db); err != nil {
		problems = append(problems, "quizzes: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email_ci", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email_ci"),
	})
	return err
}

func ensureForumPosts(ctx context.Context, db *mongo.Database) error {
	// The forum list is always newest-first.
	_, err := db.Collection("forumposts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("created_desc"),
	})
	return err
}

func ensureForumComments(ctx context.Context, db *mongo.Database) error {
	// Serves both list-by-post and the cascade delete.
	_, err := db.Collection("forumcomments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "postId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("post_created_desc"),
	})
	return err
}

func ensureTissues(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("tissues").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name_ci", Value: 1}},
		Options: options.Index().SetName("name_ci"),
	})
	return err
}

func ensureQuizzes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("quizzes").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "collectionName", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_collection_name"),
	})
	return err
}
