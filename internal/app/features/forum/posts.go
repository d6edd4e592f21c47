// internal/app/features/forum/posts.go
package forum

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yvelmence/tissuefinder/internal/app/system/httpjson"
	"github.com/yvelmence/tissuefinder/internal/app/system/timeouts"
	"github.com/yvelmence/tissuefinder/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// postRequest is the body for create and update. Ownership rides on the
// client-supplied userId; see the package note in system/auth.
type postRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	ImageURL string   `json:"imageUrl"`
	UserID   string   `json:"userId"`
	UserName string   `json:"userName"`
	Tags     []string `json:"tags"`
}

// ServeList returns all posts, newest first.
//
// Route: GET /api/forum
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.Posts.List(ctx)
	if err != nil {
		h.Log.Error("list forum posts failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Error fetching forum posts")
		return
	}
	httpjson.Write(w, http.StatusOK, posts)
}

// HandleCreate persists a new post.
//
// Route: POST /api/forum
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	req.UserID = strings.TrimSpace(req.UserID)
	if req.Title == "" || req.Content == "" {
		httpjson.Error(w, http.StatusBadRequest, "title and content cannot be empty")
		return
	}
	if req.UserID == "" {
		httpjson.Error(w, http.StatusBadRequest, "userId is required")
		return
	}

	post := models.ForumPost{
		Title:    h.strict.Sanitize(req.Title),
		Content:  h.ugc.Sanitize(req.Content),
		ImageURL: req.ImageURL,
		UserID:   req.UserID,
		UserName: strings.TrimSpace(req.UserName),
		Tags:     req.Tags,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Posts.Create(ctx, post)
	if err != nil {
		h.Log.Error("create forum post failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Error creating forum post")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// ServeGet returns one post by id.
//
// Route: GET /api/forum/{id}
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	oid, ok := postID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	post, err := h.Posts.GetByID(ctx, oid)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "forum post not found")
		return
	}
	if err != nil {
		h.Log.Error("get forum post failed", zap.Error(err), zap.String("post_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error fetching forum post")
		return
	}
	httpjson.Write(w, http.StatusOK, post)
}

// HandleUpdate overwrites a post's title/content/image. Only the author may
// update; the check compares the body userId with the stored author id.
//
// Route: PUT /api/forum/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	oid, ok := postID(w, r)
	if !ok {
		return
	}

	var req postRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.Title == "" || req.Content == "" {
		httpjson.Error(w, http.StatusBadRequest, "title and content cannot be empty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	existing, err := h.Posts.GetByID(ctx, oid)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "forum post not found")
		return
	}
	if err != nil {
		h.Log.Error("load forum post for update failed", zap.Error(err), zap.String("post_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error updating forum post")
		return
	}
	if existing.UserID != req.UserID {
		httpjson.Error(w, http.StatusForbidden, "you can only edit your own posts")
		return
	}

	updated, err := h.Posts.Update(ctx, oid, h.strict.Sanitize(req.Title), h.ugc.Sanitize(req.Content), req.ImageURL)
	if err != nil {
		h.Log.Error("update forum post failed", zap.Error(err), zap.String("post_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error updating forum post")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleDelete removes a post and all of its comments. Author-only.
//
// Route: DELETE /api/forum/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, ok := postID(w, r)
	if !ok {
		return
	}

	var req struct {
		UserID string `json:"userId"`
	}
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	post, err := h.Posts.GetByID(ctx, oid)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "forum post not found")
		return
	}
	if err != nil {
		h.Log.Error("load forum post for delete failed", zap.Error(err), zap.String("post_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error deleting forum post")
		return
	}
	if post.UserID != req.UserID {
		httpjson.Error(w, http.StatusForbidden, "you can only delete your own posts")
		return
	}

	h.deletePostCascade(ctx, w, oid)
}

// HandleAdminDelete removes any post (and its comments) when the supplied
// adminId belongs to an admin-flagged user.
//
// Route: DELETE /api/forum/admin/{id}
func (h *Handler) HandleAdminDelete(w http.ResponseWriter, r *http.Request) {
	oid, ok := postID(w, r)
	if !ok {
		return
	}

	var req struct {
		AdminID string `json:"adminId"`
	}
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	isAdmin, err := h.Users.IsAdmin(ctx, req.AdminID)
	if err != nil {
		h.Log.Error("admin lookup failed", zap.Error(err), zap.String("admin_id", req.AdminID))
		httpjson.Error(w, http.StatusInternalServerError, "Error deleting forum post")
		return
	}
	if !isAdmin {
		httpjson.Error(w, http.StatusForbidden, "admin access required")
		return
	}

	if _, err := h.Posts.GetByID(ctx, oid); err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "forum post not found")
		return
	} else if err != nil {
		h.Log.Error("load forum post for admin delete failed", zap.Error(err), zap.String("post_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error deleting forum post")
		return
	}

	h.deletePostCascade(ctx, w, oid)
}

// deletePostCascade deletes the post then its comments. The two writes are
// sequential without a transaction; a failure in between leaves the
// comments orphaned, which the next admin delete can clean up.
func (h *Handler) deletePostCascade(ctx context.Context, w http.ResponseWriter, oid primitive.ObjectID) {
	if _, err := h.Posts.Delete(ctx, oid); err != nil {
		h.Log.Error("delete forum post failed", zap.Error(err), zap.String("post_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error deleting forum post")
		return
	}

	removed, err := h.Comments.DeleteByPost(ctx, oid.Hex())
	if err != nil {
		// The post is already gone; report success but keep the orphan
		// count visible in the logs.
		h.Log.Error("cascade comment delete failed", zap.Error(err), zap.String("post_id", oid.Hex()))
	} else if removed > 0 {
		h.Log.Info("cascade deleted comments", zap.Int64("count", removed), zap.String("post_id", oid.Hex()))
	}

	httpjson.Write(w, http.StatusOK, map[string]string{"message": "Forum post deleted successfully"})
}

// postID parses the {id} URL parameter, writing a 400 on malformed input.
func postID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "bad post id")
		return primitive.NilObjectID, false
	}
	return oid, true
}
