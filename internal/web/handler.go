// AngelaMos | 2026
// handler.go

package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RaulRamazanov/Shop/internal/core"
	"github.com/RaulRamazanov/Shop/internal/item"
	"github.com/RaulRamazanov/Shop/internal/middleware"
)

const storefrontPageSize = 24

type CatalogReader interface {
	ListItems(ctx context.Context, params item.ListParams) ([]item.ItemResponse, error)
}

type Handler struct {
	renderer *Renderer
	catalog  CatalogReader
}

func NewHandler(renderer *Renderer, catalog CatalogReader) *Handler {
	return &Handler{renderer: renderer, catalog: catalog}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	optionalAuth func(http.Handler) http.Handler,
) {
	r.With(optionalAuth).Get("/", h.Index)
	r.Handle("/static/*", StaticHandler())
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListItems(r.Context(), item.ListParams{
		Limit: storefrontPageSize,
	})
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, PageIndex, PageData{
		Title: "Shop",
		User:  middleware.GetIdentity(r.Context()),
		Data:  items,
	})
}
