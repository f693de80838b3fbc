package health

import (
	"net/http"
	"sync/atomic"

	"github.com/julienschmidt/httprouter"

	httputil "routekit/pkg/http"
	"routekit/pkg/logger"
	"routekit/pkg/router"
)

type HealthResponse struct {
	Status string `json:"status"`
	Routes int    `json:"routes,omitempty"`
}

type RouteCounter interface {
	Routes() []router.RouteInfo
}

type Handler struct {
	routes RouteCounter
	ready  atomic.Bool
	log    *logger.Logger
}

func NewHandler(routes RouteCounter, log *logger.Logger) *Handler {
	return &Handler{
		routes: routes,
		log:    log,
	}
}

// SetReady flips readiness; the application marks itself ready once
// all controllers are registered.
func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

func (h *Handler) Prefix() string {
	return ""
}

func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Method: http.MethodGet, Path: "/health", Handle: h.Health},
		{Method: http.MethodGet, Path: "/ready", Handle: h.Ready},
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *Handler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	status, resp := http.StatusOK, HealthResponse{Status: "ready", Routes: len(h.routes.Routes())}
	if !h.ready.Load() {
		h.log.Warn("Readiness check failed", "path", r.URL.Path)
		status, resp = http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"}
	}

	if err := httputil.WriteJSON(w, status, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}
