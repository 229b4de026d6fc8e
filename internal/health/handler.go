// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
)

const probeTimeout = 3 * time.Second

type Checker interface {
	Ping(ctx context.Context) error
}

// NamedChecker pairs a dependency name with its probe.
type NamedChecker struct {
	Name    string
	Checker Checker
}

type state int32

const (
	stateServing state = iota
	stateNotReady
	stateDraining
)

// Handler serves the liveness and readiness probes. Liveness only fails
// while draining; readiness also pings every dependency.
type Handler struct {
	checkers []NamedChecker
	state    atomic.Int32
}

func NewHandler(checkers ...NamedChecker) *Handler {
	return &Handler{checkers: checkers}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Liveness)
	r.Get("/livez", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

func (h *Handler) current() state {
	return state(h.state.Load())
}

// SetReady toggles readiness. It has no effect once draining started.
func (h *Handler) SetReady(ready bool) {
	next := stateServing
	if !ready {
		next = stateNotReady
	}
	for {
		cur := h.state.Load()
		if state(cur) == stateDraining || h.state.CompareAndSwap(cur, int32(next)) {
			return
		}
	}
}

func (h *Handler) SetShutdown(shutdown bool) {
	if shutdown {
		h.state.Store(int32(stateDraining))
		return
	}
	h.state.Store(int32(stateServing))
}

func (h *Handler) Liveness(w http.ResponseWriter, _ *http.Request) {
	if h.current() == stateDraining {
		writeJSON(w, http.StatusServiceUnavailable, StatusResponse{Status: "shutting_down"})
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	switch h.current() {
	case stateDraining:
		writeJSON(w, http.StatusServiceUnavailable, StatusResponse{Status: "shutting_down"})
		return
	case stateNotReady:
		writeJSON(w, http.StatusServiceUnavailable, StatusResponse{Status: "not_ready"})
		return
	}

	checks := h.probeAll(r.Context())

	resp := ReadinessResponse{Status: "ok", Checks: checks}
	code := http.StatusOK
	for _, c := range checks {
		if !c.Healthy {
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, code, resp)
}

func (h *Handler) probeAll(ctx context.Context) []HealthCheck {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	results := make([]HealthCheck, len(h.checkers))

	var wg sync.WaitGroup
	for i, nc := range h.checkers {
		wg.Go(func() {
			results[i] = probe(ctx, nc)
		})
	}
	wg.Wait()

	return results
}

// probe reports "ping failed" rather than the driver error.
func probe(ctx context.Context, nc NamedChecker) HealthCheck {
	if nc.Checker == nil {
		return HealthCheck{Name: nc.Name, Message: "not configured"}
	}

	start := time.Now()
	err := nc.Checker.Ping(ctx)

	result := HealthCheck{
		Name:    nc.Name,
		Healthy: err == nil,
		Latency: time.Since(start).Round(time.Microsecond).String(),
	}
	if err != nil {
		result.Message = "ping failed"
	}

	return result
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response
	_ = json.NewEncoder(w).Encode(body)
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ReadinessResponse struct {
	Status string        `json:"status"`
	Checks []HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}
