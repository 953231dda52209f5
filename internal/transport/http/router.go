// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services without embedding routing logic so transport concerns stay
// isolated.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"callgate/internal/platform/middleware"
	"callgate/pkg/platform/httputil"
)

// Dependencies carries everything the router mounts.
type Dependencies struct {
	Accounts  *AccountsHandler
	Emergency *EmergencyHandler
	Discovery *DiscoveryHandler
	Logger    *slog.Logger
	Validator middleware.TokenValidator
	Health    func() map[string]string
}

// NewRouter wires all endpoints with the shared middleware chain. Registry
// mutations sit behind bearer auth; reads and the classify endpoint are open
// to the platform processes that call them.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))

	r.Get("/healthz", handleHealth(deps.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/accounts", deps.Accounts.HandleList)
		r.Get("/accounts/default-emergency", deps.Accounts.HandleDefaultEmergency)
		r.Post("/emergency/classify", deps.Emergency.HandleClassify)
		if deps.Discovery != nil {
			r.Get("/components/{tag}/default", deps.Discovery.HandleDefault)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(deps.Validator, deps.Logger))
			r.Post("/accounts", deps.Accounts.HandleRegister)
			r.Delete("/accounts/{package}/{class}/{id}", deps.Accounts.HandleUnregister)
		})
	})

	return r
}

func handleHealth(health func() map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok"}
		if health != nil {
			for name, state := range health() {
				status[name] = state
			}
		}
		httputil.WriteJSON(w, http.StatusOK, status)
	}
}
