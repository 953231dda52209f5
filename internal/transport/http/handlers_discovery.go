package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"callgate/internal/discovery"
	"callgate/internal/domain"
	dErrors "callgate/pkg/domain-errors"
	"callgate/pkg/platform/httputil"
	"callgate/pkg/platform/sentinel"
)

// ComponentResolver picks the default component for a role.
type ComponentResolver interface {
	Default(ctx context.Context, tag discovery.Tag) (domain.ComponentName, error)
}

// DiscoveryHandler serves default-component lookups.
type DiscoveryHandler struct {
	resolver ComponentResolver
	logger   *slog.Logger
}

// NewDiscoveryHandler wires the discovery endpoint.
func NewDiscoveryHandler(resolver ComponentResolver, logger *slog.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{resolver: resolver, logger: logger}
}

// ComponentResponse is the wire form of a resolved component.
type ComponentResponse struct {
	ComponentPackage string `json:"component_package"`
	ComponentClass   string `json:"component_class"`
}

// HandleDefault handles GET /v1/components/{tag}/default.
func (h *DiscoveryHandler) HandleDefault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tag := discovery.Tag(chi.URLParam(r, "tag"))
	switch tag {
	case discovery.TagDial, discovery.TagInCallUI:
	default:
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "unknown discovery tag"))
		return
	}

	component, err := h.resolver.Default(ctx, tag)
	if err != nil {
		httputil.WriteError(w, translateResolveError(err))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ComponentResponse{
		ComponentPackage: component.Package,
		ComponentClass:   component.Class,
	})
}

func translateResolveError(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "no allow-listed component available")
	}
	if dErrors.CodeOf(err) != dErrors.CodeInternal {
		return err
	}
	return dErrors.Wrap(dErrors.CodeInternal, "resolve default component", err)
}
