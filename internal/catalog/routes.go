package catalog

import "github.com/go-chi/chi/v5"

// MountRoutes wires the public storefront endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/products", h.ListProducts)
	r.Get("/products/{slug}", h.ShowProduct)
	r.Get("/categories", h.ListCategories)
	r.Get("/brands", h.ListBrands)
}

// MountAdminRoutes wires the catalog management endpoints; the caller guards
// them with the admin session middleware.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Post("/products", h.CreateProduct)
	r.Patch("/products/{id}", h.UpdateProduct)
}
