package inspect

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	apperrors "routekit/pkg/errors"
	httputil "routekit/pkg/http"
	"routekit/pkg/logger"
	"routekit/pkg/router"
	"routekit/pkg/shared"

	"github.com/julienschmidt/httprouter"
)

type RouteLister interface {
	Routes() []router.RouteInfo
}

type InspectRequest struct {
	Value json.RawMessage `json:"value"`
}

type NormalizeResponse struct {
	Input *string `json:"input"`
	Path  string  `json:"path"`
}

type Handler struct {
	routes RouteLister
	log    *logger.Logger
}

func NewHandler(routes RouteLister, log *logger.Logger) *Handler {
	return &Handler{
		routes: routes,
		log:    log,
	}
}

func (h *Handler) Prefix() string {
	return "/"
}

func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Method: http.MethodPost, Path: "/inspect", Handle: h.Inspect},
		{Method: http.MethodGet, Path: "/normalize", Handle: h.Normalize},
		{Method: http.MethodGet, Path: "/routes", Handle: h.ListRoutes},
	}
}

// Inspect classifies the "value" member of the request body. An absent member
// is undefined, an explicit JSON null is shared.Null.
func (h *Handler) Inspect(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req InspectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, "Inspect", apperrors.New(apperrors.CodeTooLarge, "request body too large", http.StatusRequestEntityTooLarge))
			return
		}
		h.writeError(w, "Inspect", apperrors.InvalidInput("malformed JSON body"))
		return
	}

	value, err := decodeValue(req.Value)
	if err != nil {
		h.writeError(w, "Inspect", apperrors.InvalidInput("malformed value"))
		return
	}

	if err := httputil.WriteSuccess(w, Classify(value)); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Inspect", "operation", "WriteSuccess", "error", err)
	}
}

func decodeValue(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return shared.Null, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (h *Handler) Normalize(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input *string
	if values, ok := r.URL.Query()["path"]; ok && len(values) > 0 {
		input = &values[0]
	}

	resp := NormalizeResponse{
		Input: input,
		Path:  shared.ValidatePathPtr(input),
	}
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Normalize", "operation", "WriteSuccess", "error", err)
	}
}

func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "ListRoutes", err)
		return
	}

	all := h.routes.Routes()
	if err := httputil.WritePaginated(w, httputil.Page(all, limit, offset), len(all), limit, offset); err != nil {
		h.log.Error("failed to write JSON response", "handler", "ListRoutes", "operation", "WritePaginated", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := apperrors.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}
