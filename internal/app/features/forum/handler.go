// internal/app/features/forum/handler.go
package forum

import (
	"github.com/microcosm-cc/bluemonday"
	forumcommentstore "github.com/yvelmence/tissuefinder/internal/app/store/forumcomments"
	forumpoststore "github.com/yvelmence/tissuefinder/internal/app/store/forumposts"
	userstore "github.com/yvelmence/tissuefinder/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for forum posts and comments.
type Handler struct {
	Posts    *forumpoststore.Store
	Comments *forumcommentstore.Store
	Users    *userstore.Store
	Log      *zap.Logger

	// ugc allows the limited markup the post editor produces; strict
	// strips everything, for titles and comment text.
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy

	uploadDir string
	uploadURL string
}

// NewHandler constructs a forum Handler bound to a DB and logger.
// uploadDir/uploadURL configure where uploaded media lands and the URL
// prefix it is served back under.
func NewHandler(db *mongo.Database, uploadDir, uploadURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Posts:     forumpoststore.New(db),
		Comments:  forumcommentstore.New(db),
		Users:     userstore.New(db),
		Log:       logger,
		ugc:       bluemonday.UGCPolicy(),
		strict:    bluemonday.StrictPolicy(),
		uploadDir: uploadDir,
		uploadURL: uploadURL,
	}
}
