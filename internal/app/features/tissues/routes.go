// internal/app/features/tissues/routes.go
package tissues

import "github.com/go-chi/chi/v5"

// Routes wires the tissue catalog endpoints, mounted under /api/tissues.
// The names-only index endpoint lives at /api/tissuelist and is registered
// separately by the bootstrap router.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)

	r.Get("/{id}", h.ServeGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
