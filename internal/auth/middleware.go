package auth

import (
	"context"
	"net/http"

	"github.com/sakif/studio-site/internal/model"
)

// contextKey is unexported so only this package can read or write the
// identity placed in a request context.
type contextKey string

const identityKey contextKey = "identity"

// CookieName is the session cookie the middleware reads and the login
// handlers set.
const CookieName = "token"

// RequireAuth enforces authentication on protected routes. It reads the JWT
// from the session cookie, validates it, and stores the identity in the
// request context. Missing or invalid tokens get 401 before any handler,
// validation, or storage code runs.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := extractIdentity(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"valid authentication required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a route to admin accounts. It must run after
// RequireAuth; an authenticated non-admin gets 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if role, ok := RoleFromContext(r.Context()); !ok || role != model.RoleAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"forbidden","message":"admin access required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFromContext returns the identity stored by RequireAuth. The portal
// routes use it to scope queries to the caller.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok && identity.UserID != ""
}

// UserIDFromContext returns the authenticated user's id, or ("", false) when
// the request carries no identity.
func UserIDFromContext(ctx context.Context) (string, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity.UserID, ok && identity.UserID != ""
}

// RoleFromContext returns the authenticated user's role.
func RoleFromContext(ctx context.Context) (string, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity.Role, ok && identity.Role != ""
}

// WithIdentity returns a context carrying the given identity. Exported for
// handler tests, which bypass the middleware.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func extractIdentity(r *http.Request, tokens *TokenService) (Identity, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Identity{}, err
	}
	return tokens.Validate(cookie.Value)
}
