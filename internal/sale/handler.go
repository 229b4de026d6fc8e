// AngelaMos | 2026
// handler.go

package sale

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RaulRamazanov/Shop/internal/core"
	"github.com/RaulRamazanov/Shop/internal/middleware"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.With(authenticator).Get("/sales", h.ListMine)
}

// RegisterSuperadminRoutes expects r to already enforce the superadmin role.
func (h *Handler) RegisterSuperadminRoutes(r chi.Router) {
	r.Get("/sales", h.ListAll)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	sales, err := h.repo.ListByUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, sales)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1, 1, 1<<20)
	pageSize := queryInt(r, "page_size", 20, 1, 100)

	sales, total, err := h.repo.List(r.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, sales, page, pageSize, total)
}

func queryInt(r *http.Request, key string, def, lo, hi int) int {
	v := core.QueryInt(r, key, def)
	if v < lo || v > hi {
		return def
	}
	return v
}
