package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/jthorne/go-travel-site/auth"
	errs "github.com/jthorne/go-travel-site/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

// writeError maps service errors onto the response taxonomy. Anything
// outside the known taxonomy is logged server-side and surfaced as a
// generic 500 with no internal detail.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errs.Is(err, errs.ErrInvalidInput), errs.Is(err, errs.ErrInvalidEmail):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errs.Is(err, errs.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorBody(errs.ErrInvalidCredentials.Error()))
	case errs.Is(err, errs.ErrInvalidSession):
		writeJSON(w, http.StatusUnauthorized, errorBody(errs.ErrInvalidSession.Error()))
	case errs.Is(err, errs.ErrTooManyAttempts):
		var tooMany *auth.TooManyAttemptsError
		if errs.As(err, &tooMany) && tooMany.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.FormatInt(int64(tooMany.RetryAfter.Seconds())+1, 10))
		}
		writeJSON(w, http.StatusTooManyRequests, errorBody(errs.ErrTooManyAttempts.Error()))
	default:
		log.Error().Err(err).Msg("unexpected error")
		writeJSON(w, http.StatusInternalServerError, errorBody("something went wrong"))
	}
}
