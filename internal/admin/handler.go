// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RaulRamazanov/Shop/internal/core"
	"github.com/RaulRamazanov/Shop/internal/item"
	"github.com/RaulRamazanov/Shop/internal/middleware"
	"github.com/RaulRamazanov/Shop/internal/user"
	"github.com/RaulRamazanov/Shop/internal/web"
)

const pageSize = 100

type UserLister interface {
	ListUsers(
		ctx context.Context,
		params user.ListUsersParams,
	) ([]user.User, int, error)
}

// Catalog is the item service as the back office sees it.
type Catalog interface {
	web.CatalogReader
	Count(ctx context.Context) (int, error)
}

type HandlerConfig struct {
	DB       DBSource
	Redis    RedisSource
	Renderer *web.Renderer
	Catalog  Catalog
	Users    UserLister
}

type Handler struct {
	HandlerConfig
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{HandlerConfig: cfg}
}

// RegisterRoutes mounts /admin. Only the admin role passes; a superadmin
// is turned away like any other role.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireAdmin)

		r.Get("/", h.AdminPage)
		r.Get("/stats", h.Stats)
		r.Get("/stats/db", h.DatabaseStats)
		r.Get("/stats/redis", h.RedisStats)
		r.Get("/stats/runtime", h.RuntimeStats)
	})
}

// RegisterSuperadminRoutes mounts /superadmin and lets other packages add
// their superadmin endpoints under the same guard.
func (h *Handler) RegisterSuperadminRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	mounts ...func(chi.Router),
) {
	r.Route("/superadmin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireSuperadmin)

		r.Get("/", h.SuperadminPage)
		for _, mount := range mounts {
			mount(r)
		}
	})
}

func (h *Handler) AdminPage(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.ListItems(r.Context(), item.ListParams{Limit: pageSize})
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	h.Renderer.Render(w, http.StatusOK, web.PageAdmin, web.PageData{
		Title: "Admin",
		User:  middleware.GetIdentity(r.Context()),
		Data:  items,
	})
}

func (h *Handler) SuperadminPage(w http.ResponseWriter, r *http.Request) {
	users, _, err := h.Users.ListUsers(r.Context(), user.ListUsersParams{
		Page:     1,
		PageSize: pageSize,
	})
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	h.Renderer.Render(w, http.StatusOK, web.PageSuperadmin, web.PageData{
		Title: "Superadmin",
		User:  middleware.GetIdentity(r.Context()),
		Data:  users,
	})
}
