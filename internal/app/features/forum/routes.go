// internal/app/features/forum/routes.go
package forum

import "github.com/go-chi/chi/v5"

// Routes mounts all forum routes under the base path (typically
// "/api/forum" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Posts
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.ServeGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	r.Delete("/admin/{id}", h.HandleAdminDelete)

	// Media uploads referenced by posts
	r.Post("/upload", h.HandleUpload)

	// Comments
	r.Get("/{id}/comments", h.ServeListComments)
	r.Post("/{id}/comments", h.HandleCreateComment)
	r.Put("/comments/{commentId}", h.HandleUpdateComment)
	r.Delete("/comments/{commentId}", h.HandleDeleteComment)
	r.Delete("/admin/comments/{commentId}", h.HandleAdminDeleteComment)

	return r
}
