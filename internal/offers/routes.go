package offers

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/status", h.UpdateStatus)

	r.Post("/{id}/groups", h.CreateGroup)
	r.Patch("/{id}/groups/{groupID}", h.UpdateGroup)
	r.Delete("/{id}/groups/{groupID}", h.DeleteGroup)
	r.Post("/{id}/groups/{groupID}/items", h.CreateItem)
}

// MountItemRoutes exposes item access by item id, independent of the owning
// offer path.
func (h *Handler) MountItemRoutes(r chi.Router) {
	r.Get("/{id}", h.ShowItem)
	r.Patch("/{id}", h.UpdateItem)
	r.Delete("/{id}", h.DeleteItem)
}
