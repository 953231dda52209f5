package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"callgate/internal/routing"
	dErrors "callgate/pkg/domain-errors"
	"callgate/pkg/platform/httputil"
	"callgate/pkg/requestcontext"
)

// Classifier answers both emergency checks for an address.
type Classifier interface {
	Classify(ctx context.Context, address string) routing.ClassifyResult
}

// EmergencyHandler serves the classification surface.
type EmergencyHandler struct {
	classifier Classifier
	logger     *slog.Logger
}

// NewEmergencyHandler wires the classify endpoint.
func NewEmergencyHandler(classifier Classifier, logger *slog.Logger) *EmergencyHandler {
	return &EmergencyHandler{classifier: classifier, logger: logger}
}

// HandleClassify handles POST /v1/emergency/classify. The answer is
// fail-closed: an unreachable authority yields false on both checks, never
// an error status.
func (h *EmergencyHandler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ClassifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if req.Address == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "address is required"))
		return
	}

	result := h.classifier.Classify(ctx, req.Address)
	httputil.WriteJSON(w, http.StatusOK, ClassifyResponse{
		Local:     result.Local,
		Potential: result.Potential,
	})
}
