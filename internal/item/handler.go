// AngelaMos | 2026
// handler.go

package item

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/RaulRamazanov/Shop/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

// RegisterRoutes mounts the catalog. Reads are public; guard wraps the
// write endpoints and may be a no-op.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	guard func(http.Handler) http.Handler,
) {
	r.Get("/items/", h.ListItems)
	r.Get("/items", h.ListItems)
	r.Get("/items/{itemID}", h.GetItem)

	r.Group(func(r chi.Router) {
		r.Use(guard)

		r.Post("/items/", h.CreateItem)
		r.Post("/items", h.CreateItem)
		r.Put("/items/{itemID}", h.UpdateItem)
		r.Delete("/items/{itemID}", h.DeleteItem)
	})
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationError(err))
		return
	}

	item, err := h.service.CreateItem(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToItemResponse(item))
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	item, err := h.service.GetItem(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "item")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToItemResponse(item))
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationError(err))
		return
	}

	item, err := h.service.UpdateItem(r.Context(), itemID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "item")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToItemResponse(item))
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	if err := h.service.DeleteItem(r.Context(), itemID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "item")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, MessageResponse{Message: "item deleted"})
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Skip:  core.QueryInt(r, "skip", 0),
		Limit: core.QueryInt(r, "limit", DefaultLimit),
	}
	params.Normalize()

	items, err := h.service.ListItems(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, items)
}
