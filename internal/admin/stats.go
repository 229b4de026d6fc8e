// AngelaMos | 2026
// stats.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"

	"github.com/redis/go-redis/v9"

	"github.com/RaulRamazanov/Shop/internal/core"
	"github.com/RaulRamazanov/Shop/internal/user"
)

type DBSource interface {
	Ping(ctx context.Context) error
	Stats() sql.DBStats
}

// RedisSource may be a nil *core.Redis; Ping then fails and PoolStats is nil.
type RedisSource interface {
	Ping(ctx context.Context) error
	PoolStats() *redis.PoolStats
}

type StatsResponse struct {
	Shop     ShopCounts  `json:"shop"`
	Database PoolReport  `json:"database"`
	Redis    PoolReport  `json:"redis"`
	Runtime  RuntimeInfo `json:"runtime"`
}

type ShopCounts struct {
	Items int `json:"items"`
	Users int `json:"users"`
}

// PoolReport is shared by both backends. Fields a backend does not track
// stay zero.
type PoolReport struct {
	Healthy bool      `json:"healthy"`
	Pool    *PoolInfo `json:"pool,omitempty"`
}

type PoolInfo struct {
	MaxOpen int    `json:"max_open,omitempty"`
	Open    int    `json:"open"`
	InUse   int    `json:"in_use"`
	Idle    int    `json:"idle"`
	Waits   int64  `json:"waits"`
	Waited  string `json:"waited,omitempty"`
	Hits    uint32 `json:"hits,omitempty"`
	Misses  uint32 `json:"misses,omitempty"`
}

type RuntimeInfo struct {
	GoVersion  string `json:"go_version"`
	Goroutines int    `json:"goroutines"`
	CPUs       int    `json:"cpus"`
	HeapBytes  uint64 `json:"heap_bytes"`
	SysBytes   uint64 `json:"sys_bytes"`
	GCCycles   uint32 `json:"gc_cycles"`
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	counts, err := h.shopCounts(ctx)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, StatsResponse{
		Shop:     counts,
		Database: h.databaseReport(ctx),
		Redis:    h.redisReport(ctx),
		Runtime:  readRuntime(),
	})
}

func (h *Handler) DatabaseStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.databaseReport(r.Context()))
}

func (h *Handler) RedisStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.redisReport(r.Context()))
}

func (h *Handler) RuntimeStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, readRuntime())
}

func (h *Handler) shopCounts(ctx context.Context) (ShopCounts, error) {
	items, err := h.Catalog.Count(ctx)
	if err != nil {
		return ShopCounts{}, err
	}

	_, users, err := h.Users.ListUsers(ctx, user.ListUsersParams{Page: 1, PageSize: 1})
	if err != nil {
		return ShopCounts{}, err
	}

	return ShopCounts{Items: items, Users: users}, nil
}

func (h *Handler) databaseReport(ctx context.Context) PoolReport {
	if h.DB == nil {
		return PoolReport{}
	}

	s := h.DB.Stats()
	return PoolReport{
		Healthy: h.DB.Ping(ctx) == nil,
		Pool: &PoolInfo{
			MaxOpen: s.MaxOpenConnections,
			Open:    s.OpenConnections,
			InUse:   s.InUse,
			Idle:    s.Idle,
			Waits:   s.WaitCount,
			Waited:  s.WaitDuration.String(),
		},
	}
}

func (h *Handler) redisReport(ctx context.Context) PoolReport {
	if h.Redis == nil {
		return PoolReport{}
	}

	report := PoolReport{Healthy: h.Redis.Ping(ctx) == nil}
	if s := h.Redis.PoolStats(); s != nil {
		report.Pool = &PoolInfo{
			Open:   int(s.TotalConns),
			InUse:  int(s.TotalConns - s.IdleConns),
			Idle:   int(s.IdleConns),
			Waits:  int64(s.Timeouts),
			Hits:   s.Hits,
			Misses: s.Misses,
		}
	}

	return report
}

func readRuntime() RuntimeInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return RuntimeInfo{
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
		CPUs:       runtime.NumCPU(),
		HeapBytes:  m.HeapAlloc,
		SysBytes:   m.Sys,
		GCCycles:   m.NumGC,
	}
}
