package server

import (
	"net"
	"net/http"
	"strings"
)

// authCookieName is the cookie carrying the signed session token
const authCookieName = "auth-token"

// SetAuthCookie stores the session token as an http-only, same-site-strict
// cookie. The Secure flag is set only outside local development.
func (s *Server) SetAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(s.config.GetTokenValidity().Seconds()),
	})
}

// ClearAuthCookie expires the session cookie immediately.
func (s *Server) ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}

// clientIP resolves the client key used for rate limiting: the first
// X-Forwarded-For hop when present, otherwise the remote address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, found := strings.Cut(fwd, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
