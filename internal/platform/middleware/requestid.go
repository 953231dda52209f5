// Package middleware holds the HTTP middleware chain: request identity,
// panic recovery, request logging, and bearer auth for the admin surface.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"callgate/pkg/requestcontext"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns every request an ID, honoring one supplied by the
// caller, and reflects it in the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
