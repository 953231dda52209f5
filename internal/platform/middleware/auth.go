package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	dErrors "callgate/pkg/domain-errors"
	"callgate/pkg/platform/httputil"
	"callgate/pkg/requestcontext"
)

// TokenValidator validates an admin bearer token and returns the actor it
// identifies.
type TokenValidator interface {
	ValidateToken(tokenString string) (actor string, err error)
}

// RequireAuth guards the registry mutation surface. Requests without a valid
// bearer token get 401; the validated actor lands in the request context for
// audit records.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			actor, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithActor(ctx, actor)))
		})
	}
}
