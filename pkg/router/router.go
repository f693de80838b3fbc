// Package router mounts controller routes on an httprouter.Router.
//
// Every route path is composed from the global prefix, the controller prefix
// and the handler path, and canonicalized with shared.JoinPaths, so
// "api/", "/users//" and ":id/" register as "/api/users/:id".
package router

import (
	"fmt"
	"net/http"
	apperrors "routekit/pkg/errors"
	"routekit/pkg/logger"
	"routekit/pkg/shared"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/julienschmidt/httprouter"
)

var knownMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodOptions: {},
}

type Route struct {
	Method string
	Path   string
	Handle httprouter.Handle
}

type Controller interface {
	Prefix() string
	Routes() []Route
}

type RouteInfo struct {
	Method     string `json:"method"`
	Path       string `json:"path"`
	Controller string `json:"controller"`
}

type Registry struct {
	mu     sync.RWMutex
	router *httprouter.Router
	prefix string
	log    *logger.Logger
	routes map[string]RouteInfo
}

type Option func(*Registry)

func WithGlobalPrefix(prefix string) Option {
	return func(r *Registry) {
		r.prefix = prefix
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// New wraps router and installs JSON NotFound and MethodNotAllowed handlers
// on it.
func New(router *httprouter.Router, opts ...Option) *Registry {
	r := &Registry{
		router: router,
		log:    logger.Discard(),
		routes: make(map[string]RouteInfo),
	}
	for _, opt := range opts {
		opt(r)
	}

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_ = apperrors.WriteError(w, apperrors.NotFound("Route "+req.URL.Path))
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_ = apperrors.WriteError(w, apperrors.MethodNotAllowed(req.Method, req.URL.Path))
	})
	return r
}

func (r *Registry) Prefix() string {
	return shared.ValidatePath(r.prefix)
}

// Register mounts the routes of every controller. Invalid and conflicting
// routes are skipped; all of their errors are returned together.
func (r *Registry) Register(controllers ...Controller) error {
	var result *multierror.Error

	for _, c := range controllers {
		if shared.IsNil(c) {
			result = multierror.Append(result, apperrors.InvalidInput("controller must not be nil"))
			continue
		}
		name := fmt.Sprintf("%T", c)
		for _, route := range c.Routes() {
			if err := r.register(name, c.Prefix(), route); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}

	return result.ErrorOrNil()
}

func (r *Registry) register(controller, controllerPrefix string, route Route) error {
	method := strings.ToUpper(strings.TrimSpace(route.Method))
	path := shared.JoinPaths(r.prefix, controllerPrefix, route.Path)

	details := map[string]any{
		"controller": controller,
		"method":     method,
		"path":       path,
	}

	if _, ok := knownMethods[method]; !ok {
		return apperrors.InvalidInput(fmt.Sprintf("unsupported method %q", route.Method)).WithDetails(details)
	}
	if !shared.IsFunction(route.Handle) {
		return apperrors.InvalidInput("route handler must not be nil").WithDetails(details)
	}

	key := method + " " + path

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.routes[key]; ok {
		details["registered_by"] = existing.Controller
		return apperrors.Conflict(fmt.Sprintf("route %s already registered", key)).WithDetails(details)
	}
	if err := r.mount(method, path, route.Handle); err != nil {
		return apperrors.Conflict(err.Error()).WithDetails(details)
	}

	r.routes[key] = RouteInfo{Method: method, Path: path, Controller: controller}
	r.log.Debug("Route registered", "method", method, "path", path, "controller", controller)
	return nil
}

// mount converts httprouter's registration panics (wildcard conflicts) into
// errors.
func (r *Registry) mount(method, path string, handle httprouter.Handle) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()
	r.router.Handle(method, path, handle)
	return nil
}

// Routes returns the registered routes ordered by path, then method.
func (r *Registry) Routes() []RouteInfo {
	r.mu.RLock()
	out := make([]RouteInfo, 0, len(r.routes))
	for _, info := range r.routes {
		out = append(out, info)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

func (r *Registry) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
