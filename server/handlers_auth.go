package server

import (
	"encoding/json"
	"net/http"

	errs "github.com/jthorne/go-travel-site/internal/errors"
	"github.com/jthorne/go-travel-site/users"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userPayload is the credential view returned to the client.
type userPayload struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	Role        users.RoleType `json:"role"`
	DisplayName string         `json:"displayName"`
}

type loginResponse struct {
	Success bool        `json:"success"`
	User    userPayload `json:"user"`
	Message string      `json:"message"`
}

type sessionResponse struct {
	Success bool `json:"success"`
	User    any  `json:"user"`
}

// LoginHandler verifies credentials and sets the session cookie.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errs.ErrInvalidInput)
			return
		}

		tok, cred, err := s.auth.Login(r.Context(), req.Email, req.Password, clientIP(r))
		if err != nil {
			writeError(w, err)
			return
		}

		s.SetAuthCookie(w, tok)
		writeJSON(w, http.StatusOK, loginResponse{
			Success: true,
			User: userPayload{
				ID:          cred.ID,
				Email:       cred.Email,
				Role:        cred.Role,
				DisplayName: cred.DisplayName,
			},
			Message: "login successful",
		})
	}
}

// SessionHandler resolves the current session cookie back to an identity.
func (s *Server) SessionHandler() http.HandlerFunc {
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

		writeJSON(w, http.StatusOK, sessionResponse{Success: true, User: identity})
	}
}

// LogoutHandler deletes the session cookie. There is no server-side
// revocation list; cookie deletion and token expiry are the only
// invalidation paths.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.ClearAuthCookie(w)
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
