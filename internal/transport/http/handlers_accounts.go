package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"callgate/internal/domain"
	"callgate/internal/emergency"
	platformmetrics "callgate/internal/platform/metrics"
	"callgate/pkg/platform/audit"
	"callgate/pkg/platform/httputil"
	"callgate/pkg/requestcontext"
)

// Selector ranks accounts for callers.
type Selector interface {
	SelectAccounts(ctx context.Context) ([]domain.Account, error)
}

// RegistryWriter mutates the account registry.
type RegistryWriter interface {
	Register(ctx context.Context, account domain.Account) error
	Unregister(ctx context.Context, handle domain.AccountHandle) error
	List(ctx context.Context) ([]domain.Account, error)
}

// AccountsHandler serves the account surface.
type AccountsHandler struct {
	selector Selector
	registry RegistryWriter
	logger   *slog.Logger
	metrics  *platformmetrics.Metrics
	auditor  *audit.Publisher
}

// NewAccountsHandler wires the account endpoints.
func NewAccountsHandler(selector Selector, registry RegistryWriter, logger *slog.Logger,
	metrics *platformmetrics.Metrics, auditor *audit.Publisher) *AccountsHandler {
	return &AccountsHandler{
		selector: selector,
		registry: registry,
		logger:   logger,
		metrics:  metrics,
		auditor:  auditor,
	}
}

// HandleList handles GET /v1/accounts: the ranked, enabled account list.
func (h *AccountsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accounts, err := h.selector.SelectAccounts(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "account selection failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := AccountListResponse{Accounts: make([]AccountPayload, 0, len(accounts))}
	for _, a := range accounts {
		resp.Accounts = append(resp.Accounts, FromAccount(a))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleDefaultEmergency handles GET /v1/accounts/default-emergency.
func (h *AccountsHandler) HandleDefaultEmergency(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromAccount(emergency.DefaultAccount()))
}

// HandleRegister handles POST /v1/accounts.
func (h *AccountsHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	payload, ok := httputil.DecodeAndPrepare[AccountPayload](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	account, err := payload.ToDomain()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.registry.Register(ctx, account); err != nil {
		h.logger.ErrorContext(ctx, "account registration failed",
			"request_id", requestID,
			"handle", account.Handle.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.metrics.IncrementMutation("register")
	h.refreshRegistryGauge(ctx)
	h.emitAudit(ctx, "register_account", account.Handle)
	httputil.WriteJSON(w, http.StatusCreated, FromAccount(account))
}

// HandleUnregister handles DELETE /v1/accounts/{package}/{class}/{id}.
func (h *AccountsHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	handle := domain.AccountHandle{
		Component: domain.NewComponentName(
			chi.URLParam(r, "package"),
			chi.URLParam(r, "class"),
		),
		ID: chi.URLParam(r, "id"),
	}

	if err := h.registry.Unregister(ctx, handle); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.metrics.IncrementMutation("unregister")
	h.refreshRegistryGauge(ctx)
	h.emitAudit(ctx, "unregister_account", handle)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountsHandler) refreshRegistryGauge(ctx context.Context) {
	accounts, err := h.registry.List(ctx)
	if err != nil {
		return
	}
	h.metrics.SetRegisteredAccounts(len(accounts))
}

func (h *AccountsHandler) emitAudit(ctx context.Context, action string, handle domain.AccountHandle) {
	if h.auditor == nil {
		return
	}
	err := h.auditor.Emit(ctx, audit.Event{
		Category:  audit.CategoryRegistry,
		Action:    action,
		Handle:    handle.String(),
		RequestID: requestcontext.RequestID(ctx),
		Actor:     requestcontext.Actor(ctx),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "audit emit failed", "action", action, "error", err)
	}
}
