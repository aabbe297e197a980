package middleware

import (
	"app/internal/logger"
	"app/internal/util" // JWT helper
	"context"
	"net/http"
)

// Injected key type to avoid context collisions
type contextKey string

const (
	UserContextKey  = contextKey("user")
	EmailContextKey = contextKey("email")
)

// AuthMiddleware rejects requests that do not carry a valid session token
// (Authorization header or auth cookie) and injects the authenticated user
// ID and email into the request context.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := logger.New()
			tokenString := util.TokenFromRequest(r)
			if tokenString == "" {
				http.Error(w, "Missing session credentials", http.StatusUnauthorized)
				return
			}
			claims, err := util.ValidateSessionToken(tokenString, jwtSecret)
			if err != nil {
				logger.Error().Msgf("Invalid session token: %+v", err)
				http.Error(w, "Invalid session token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), UserContextKey, claims.Subject)
			ctx = context.WithValue(ctx, EmailContextKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ResolveUserID resolves the session carried by the request to a user ID.
// Any failure (no cookie, expired or malformed token) resolves to the empty
// string: an unauthenticated viewer is routine on public pages and must not
// fail the request. Failures are logged and nothing is ever propagated.
func ResolveUserID(r *http.Request, jwtSecret string) string {
	tokenString := util.TokenFromRequest(r)
	if tokenString == "" {
		return ""
	}
	claims, err := util.ValidateSessionToken(tokenString, jwtSecret)
	if err != nil {
		logger := logger.New()
		logger.Debug().Msgf("Session resolution failed: %v", err)
		return ""
	}
	return claims.Subject
}

// OptionalAuthMiddleware injects the viewer's user ID into the context when
// a valid session is present and passes the request through unchanged
// otherwise. Used on public routes that personalize when signed in.
func OptionalAuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID := ResolveUserID(r, jwtSecret); userID != "" {
				ctx := context.WithValue(r.Context(), UserContextKey, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}
