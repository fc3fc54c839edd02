package server

import (
	"context"
	"net/http"

	errs "github.com/jthorne/go-travel-site/internal/errors"
	"github.com/jthorne/go-travel-site/token"
	"github.com/jthorne/go-travel-site/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyIdentity stores the verified session identity
const ContextKeyIdentity ContextKey = "identity"

// RequireSession validates the session cookie and injects the resolved
// identity into the request context.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(authCookieName)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorBody(errs.ErrInvalidSession.Error()))
				return
			}

			identity, err := s.auth.Verify(r.Context(), cookie.Value)
			if err != nil {
				writeError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, identity)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireAdmin gates a route on the admin role. Chain after RequireSession.
func (s *Server) RequireAdmin() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFromContext(r.Context())
			if identity == nil || identity.Role != users.RoleAdmin {
				writeJSON(w, http.StatusForbidden, errorBody("admin access required"))
				return
			}
			next(w, r)
		}
	}
}

// IdentityFromContext returns the verified identity, or nil outside a
// RequireSession chain.
func IdentityFromContext(ctx context.Context) *token.Identity {
	identity, _ := ctx.Value(ContextKeyIdentity).(*token.Identity)
	return identity
}
