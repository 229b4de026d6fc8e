// AngelaMos | 2026
// handler.go

package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/RaulRamazanov/Shop/internal/core"
	"github.com/RaulRamazanov/Shop/internal/middleware"
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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/add-to-cart", h.AddToCart)
		r.Post("/add-to-cart/", h.AddToCart)
		r.Get("/cart", h.ViewCart)
		r.Get("/cart/", h.ViewCart)
		r.Delete("/cart/{itemID}", h.RemoveFromCart)
	})
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationError(err))
		return
	}

	row, err := h.service.AddToCart(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req,
	)
	if err != nil {
		handleError(w, err, "item")
		return
	}

	core.OK(w, AddToCartResponse{CartItemID: row.ID})
}

func (h *Handler) ViewCart(w http.ResponseWriter, r *http.Request) {
	lines, err := h.service.ViewCart(
		r.Context(),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		handleError(w, err, "cart")
		return
	}

	core.OK(w, ToCartResponse(lines))
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	err := h.service.RemoveFromCart(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "itemID"),
	)
	if err != nil {
		handleError(w, err, "cart item")
		return
	}

	core.OK(w, MessageResponse{Message: "item removed from cart"})
}

func handleError(w http.ResponseWriter, err error, resource string) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, resource)
	case errors.Is(err, core.ErrUnauthorized):
		core.Unauthorized(w, "")
	case errors.Is(err, core.ErrInvalidInput):
		core.ValidationFailed(w, "quantity must be >= 1")
	default:
		core.InternalServerError(w, err)
	}
}
