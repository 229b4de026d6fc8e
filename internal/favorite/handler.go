// AngelaMos | 2026
// handler.go

package favorite

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RaulRamazanov/Shop/internal/core"
	"github.com/RaulRamazanov/Shop/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/favorites", h.List)
		r.Get("/favorites/", h.List)
		r.Post("/favorites/{itemID}", h.Add)
		r.Delete("/favorites/{itemID}", h.Remove)
	})
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.service.Add(r.Context(), userID, chi.URLParam(r, "itemID")); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "item")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, MessageResponse{Message: "item added to favorites"})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, entries)
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.service.Remove(r.Context(), userID, chi.URLParam(r, "itemID")); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "favorite")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, MessageResponse{Message: "item removed from favorites"})
}
