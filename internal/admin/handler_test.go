// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RaulRamazanov/Shop/internal/core"
	"github.com/RaulRamazanov/Shop/internal/item"
	"github.com/RaulRamazanov/Shop/internal/middleware"
	"github.com/RaulRamazanov/Shop/internal/user"
	"github.com/RaulRamazanov/Shop/internal/web"
)

type stubCatalog struct{}

func (stubCatalog) ListItems(context.Context, item.ListParams) ([]item.ItemResponse, error) {
	return []item.ItemResponse{{ID: "i1", Title: "Boots", Price: 8900, Quantity: 2}}, nil
}

func (stubCatalog) Count(context.Context) (int, error) { return 7, nil }

type stubDB struct{}

func (stubDB) Ping(context.Context) error { return nil }

func (stubDB) Stats() sql.DBStats {
	return sql.DBStats{MaxOpenConnections: 4, OpenConnections: 1}
}

type stubUsers struct{}

func (stubUsers) ListUsers(context.Context, user.ListUsersParams) ([]user.User, int, error) {
	return []user.User{{
		ID: "u9", Username: "zed", Email: "zed@x.com", Role: user.RoleClient,
		CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}}, 1, nil
}

// roleFromHeader stands in for the token authenticator.
func roleFromHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := r.Header.Get("X-Test-Role")
		if role == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		ctx := middleware.WithIdentity(r.Context(), &middleware.Identity{
			UserID: "u1", Username: "root", Role: role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	h := NewHandler(HandlerConfig{
		DB:       stubDB{},
		Redis:    (*core.Redis)(nil),
		Renderer: renderer,
		Catalog:  stubCatalog{},
		Users:    stubUsers{},
	})

	r := chi.NewRouter()
	h.RegisterRoutes(r, roleFromHeader)
	h.RegisterSuperadminRoutes(r, roleFromHeader, func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})
	return r
}

func TestRoleGating(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		path   string
		role   string
		status int
	}{
		{"/admin/", "", http.StatusUnauthorized},
		{"/admin/", "client", http.StatusForbidden},
		{"/admin/", "superadmin", http.StatusForbidden},
		{"/admin/", "admin", http.StatusOK},
		{"/admin/stats", "admin", http.StatusOK},
		{"/superadmin/", "", http.StatusUnauthorized},
		{"/superadmin/", "client", http.StatusForbidden},
		{"/superadmin/", "admin", http.StatusForbidden},
		{"/superadmin/", "superadmin", http.StatusOK},
		{"/superadmin/ping", "superadmin", http.StatusNoContent},
		{"/superadmin/ping", "admin", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.path+"_"+tt.role, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.role != "" {
				req.Header.Set("X-Test-Role", tt.role)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestPagesRenderData(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		path string
		role string
		want []string
	}{
		{"/admin/", "admin", []string{"Item management", "Boots", "89.00", "/static/js/admin.js"}},
		{"/superadmin/", "superadmin", []string{"User management", "zed@x.com", "2026-01-02"}},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		req.Header.Set("X-Test-Role", tt.role)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		body := rec.Body.String()
		for _, want := range tt.want {
			if !strings.Contains(body, want) {
				t.Fatalf("%s: body missing %q", tt.path, want)
			}
		}
	}
}

func TestSystemStats(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("X-Test-Role", "admin")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env struct {
		Data StatsResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if env.Data.Shop != (ShopCounts{Items: 7, Users: 1}) {
		t.Fatalf("shop = %+v", env.Data.Shop)
	}
	if !env.Data.Database.Healthy || env.Data.Database.Pool == nil || env.Data.Database.Pool.MaxOpen != 4 {
		t.Fatalf("database = %+v", env.Data.Database)
	}
	if env.Data.Redis.Healthy || env.Data.Redis.Pool != nil {
		t.Fatalf("redis = %+v", env.Data.Redis)
	}
	if env.Data.Runtime.GoVersion == "" || env.Data.Runtime.CPUs < 1 {
		t.Fatalf("runtime = %+v", env.Data.Runtime)
	}
}
