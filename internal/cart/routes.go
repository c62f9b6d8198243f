package cart

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/quote", h.Preview)
	r.Post("/drafts", h.CreateDraft)
	r.Get("/drafts/{id}", h.ShowDraft)
	r.Post("/drafts/{id}/items", h.AddItem)
	r.Delete("/drafts/{id}/items/{itemID}", h.RemoveItem)
	r.Post("/drafts/{id}/reprice", h.Reprice)
}
