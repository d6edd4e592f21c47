// internal/app/features/tissues/tissues.go
package tissues

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

type tissueRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Histology   string `json:"histology"`
	Image       string `json:"image"`
	UserID      string `json:"userId"`
}

// ServeList returns every catalog entry.
//
// Route: GET /api/tissues
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Tissues.List(ctx)
	if err != nil {
		h.Log.Error("list tissues failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Error fetching tissues")
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

// ServeNames returns the distinct organ names, for the catalog index and
// the classifier's label cross-links.
//
// Route: GET /api/tissuelist
func (h *Handler) ServeNames(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	names, err := h.Tissues.ListNames(ctx)
	if err != nil {
		h.Log.Error("list tissue names failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Error fetching tissue names")
		return
	}
	httpjson.Write(w, http.StatusOK, names)
}

// HandleCreate adds a catalog entry.
//
// Route: POST /api/tissues
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req tissueRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.UserID = strings.TrimSpace(req.UserID)
	if req.Name == "" {
		httpjson.Error(w, http.StatusBadRequest, "tissue name cannot be empty")
		return
	}
	if req.UserID == "" {
		httpjson.Error(w, http.StatusBadRequest, "userId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Tissues.Create(ctx, models.Tissue{
		Name:        h.strict.Sanitize(req.Name),
		Description: h.ugc.Sanitize(req.Description),
		Histology:   h.ugc.Sanitize(req.Histology),
		Image:       strings.TrimSpace(req.Image),
		UserID:      req.UserID,
	})
	if err != nil {
		h.Log.Error("create tissue failed", zap.Error(err), zap.String("name", req.Name))
		httpjson.Error(w, http.StatusInternalServerError, "Error creating tissue")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// ServeGet fetches one entry. The path segment is an object id when it
// parses as hex, otherwise it is treated as an organ name; the catalog
// pages link by name.
//
// Route: GET /api/tissues/{id}
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		tissue models.Tissue
		err    error
	)
	if oid, idErr := primitive.ObjectIDFromHex(key); idErr == nil {
		tissue, err = h.Tissues.GetByID(ctx, oid)
	} else {
		tissue, err = h.Tissues.GetByName(ctx, key)
	}
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "tissue not found")
		return
	}
	if err != nil {
		h.Log.Error("get tissue failed", zap.Error(err), zap.String("key", key))
		httpjson.Error(w, http.StatusInternalServerError, "Error fetching tissue")
		return
	}
	httpjson.Write(w, http.StatusOK, tissue)
}

// HandleUpdate edits the descriptive fields of an entry. The author or an
// admin may edit.
//
// Route: PUT /api/tissues/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	oid, ok := tissueID(w, r)
	if !ok {
		return
	}

	var req tissueRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		httpjson.Error(w, http.StatusBadRequest, "tissue name cannot be empty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	existing, err := h.Tissues.GetByID(ctx, oid)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "tissue not found")
		return
	}
	if err != nil {
		h.Log.Error("load tissue for update failed", zap.Error(err), zap.String("tissue_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error updating tissue")
		return
	}
	if !h.mayModify(ctx, existing, req.UserID) {
		httpjson.Error(w, http.StatusForbidden, "you can only edit your own tissue entries")
		return
	}

	updated, err := h.Tissues.Update(ctx, oid, models.Tissue{
		Name:        h.strict.Sanitize(req.Name),
		Description: h.ugc.Sanitize(req.Description),
		Histology:   h.ugc.Sanitize(req.Histology),
		Image:       strings.TrimSpace(req.Image),
	})
	if err != nil {
		h.Log.Error("update tissue failed", zap.Error(err), zap.String("tissue_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error updating tissue")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleDelete removes an entry.
//
// Route: DELETE /api/tissues/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, ok := tissueID(w, r)
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

	existing, err := h.Tissues.GetByID(ctx, oid)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "tissue not found")
		return
	}
	if err != nil {
		h.Log.Error("load tissue for delete failed", zap.Error(err), zap.String("tissue_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error deleting tissue")
		return
	}
	if !h.mayModify(ctx, existing, req.UserID) {
		httpjson.Error(w, http.StatusForbidden, "you can only delete your own tissue entries")
		return
	}

	if _, err := h.Tissues.Delete(ctx, oid); err != nil {
		h.Log.Error("delete tissue failed", zap.Error(err), zap.String("tissue_id", oid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Error deleting tissue")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "Tissue deleted successfully"})
}

// mayModify allows the entry's author, or any admin-flagged caller.
func (h *Handler) mayModify(ctx context.Context, tissue models.Tissue, callerID string) bool {
	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return false
	}
	if tissue.UserID == callerID {
		return true
	}
	isAdmin, err := h.Users.IsAdmin(ctx, callerID)
	if err != nil {
		h.Log.Warn("admin lookup failed", zap.Error(err), zap.String("caller_id", callerID))
		return false
	}
	return isAdmin
}

func tissueID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "bad tissue id")
		return primitive.NilObjectID, false
	}
	return oid, true
}
