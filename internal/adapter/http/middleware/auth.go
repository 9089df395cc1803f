package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/peerpay/peerledger/internal/infrastructure/auth"
)

// ContextKey is the type for context keys.
type ContextKey string

const (
	// ActorContextKey is the context key for the verified actor identity.
	ActorContextKey ContextKey = "actor"
)

// AuthMiddleware verifies the bearer token and stores the verified actor
// identity in the request context. Handlers never trust user identifiers
// from request bodies; the actor from this middleware is the only
// identity the engine acts on.
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeUnauthorized(w, "invalid authorization header format")
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ActorContextKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext extracts the verified actor identity from context.
func ActorFromContext(ctx context.Context) (string, bool) {
	actorID, ok := ctx.Value(ActorContextKey).(string)
	return actorID, ok && actorID != ""
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"UNAUTHORIZED","message":"` + message + `"}`))
}
