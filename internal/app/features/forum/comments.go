// internal/app/features/forum/comments.go
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

// ServeListComments returns a post's comments, newest first. The post id is
// not checked for existence; a bad id just yields an empty list.
//
// Route: GET /api/forum/{id}/comments
func (h *Handler) ServeListComments(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	comments, err := h.Comments.ListByPost(ctx, postID)
	if err != nil {
		h.Log.Error("list comments failed", zap.Error(err), zap.String("post_id", postID))
		httpjson.Error(w, http.StatusInternalServerError, "Error fetching comments")
		return
	}
	httpjson.Write(w, http.StatusOK, comments)
}

// HandleCreateComment adds a comment under a post. Whether the post still
// exists is deliberately not verified at write time.
//
// Route: POST /api/forum/{id}/comments
func (h *Handler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	var req struct {
		Text     string `json:"text"`
		UserID   string `json:"userId"`
		UserName string `json:"userName"`
	}
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	req.UserID = strings.TrimSpace(req.UserID)
	if req.Text == "" {
		httpjson.Error(w, http.StatusBadRequest, "comment text cannot be empty")
		return
	}
	if req.UserID == "" {
		httpjson.Error(w, http.StatusBadRequest, "userId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Comments.Create(ctx, models.ForumComment{
		PostID:   postID,
		Text:     h.strict.Sanitize(req.Text),
		UserID:   req.UserID,
		UserName: strings.TrimSpace(req.UserName),
	})
	if err != nil {
		h.Log.Error("create comment failed", zap.Error(err), zap.String("post_id", postID))
		httpjson.Error(w, http.StatusInternalServerError, "Error adding comment")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// HandleUpdateComment edits a comment's text. Author-only.
//
// Route: PUT /api/forum/comments/{commentId}
func (h *Handler) HandleUpdateComment(w http.ResponseWriter, r *http.Request) {
	oid, ok := commentID(w, r)
	if !ok {
		return
	}

	var req struct {
		Text   string `json:"text"`
		UserID string `json:"userId"`
	}
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		httpjson.Error(w, http.StatusBadRequest, "comment text cannot be empty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	existing, err := h.Comments.GetByID(ctx, oid)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "comment not found")
		return
	}
	if err != nil {
		h.Log.Error("load comment for update failed", zap.Error(err), zap.String("comment_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error updating comment")
		return
	}
	if existing.UserID != req.UserID {
		httpjson.Error(w, http.StatusForbidden, "you can only edit your own comments")
		return
	}

	updated, err := h.Comments.UpdateText(ctx, oid, h.strict.Sanitize(req.Text))
	if err != nil {
		h.Log.Error("update comment failed", zap.Error(err), zap.String("comment_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error updating comment")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleDeleteComment removes a comment. Author-only.
//
// Route: DELETE /api/forum/comments/{commentId}
func (h *Handler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	oid, ok := commentID(w, r)
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	existing, err := h.Comments.GetByID(ctx, oid)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "comment not found")
		return
	}
	if err != nil {
		h.Log.Error("load comment for delete failed", zap.Error(err), zap.String("comment_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error deleting comment")
		return
	}
	if existing.UserID != req.UserID {
		httpjson.Error(w, http.StatusForbidden, "you can only delete your own comments")
		return
	}

	if _, err := h.Comments.Delete(ctx, oid); err != nil {
		h.Log.Error("delete comment failed", zap.Error(err), zap.String("comment_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error deleting comment")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "Comment deleted successfully"})
}

// HandleAdminDeleteComment removes any comment when the supplied adminId
// belongs to an admin-flagged user.
//
// Route: DELETE /api/forum/admin/comments/{commentId}
func (h *Handler) HandleAdminDeleteComment(w http.ResponseWriter, r *http.Request) {
	oid, ok := commentID(w, r)
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	isAdmin, err := h.Users.IsAdmin(ctx, req.AdminID)
	if err != nil {
		h.Log.Error("admin lookup failed", zap.Error(err), zap.String("admin_id", req.AdminID))
		httpjson.Error(w, http.StatusInternalServerError, "Error deleting comment")
		return
	}
	if !isAdmin {
		httpjson.Error(w, http.StatusForbidden, "admin access required")
		return
	}

	deleted, err := h.Comments.Delete(ctx, oid)
	if err != nil {
		h.Log.Error("admin delete comment failed", zap.Error(err), zap.String("comment_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error deleting comment")
		return
	}
	if deleted == 0 {
		httpjson.Error(w, http.StatusNotFound, "comment not found")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "Comment deleted successfully"})
}

func commentID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	idHex := chi.URLParam(r, "commentId")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "bad comment id")
		return primitive.NilObjectID, false
	}
	return oid, true
}
