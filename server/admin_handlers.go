package server

import (
	"encoding/json"
	"net/http"

	"github.com/jthorne/go-travel-site/catalog"
	errs "github.com/jthorne/go-travel-site/internal/errors"
)

// AdminListPackagesHandler returns every package, drafts included.
func (s *Server) AdminListPackagesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		packages, err := s.repos.Packages.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, packages)
	}
}

func (s *Server) AdminCreatePackageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p catalog.Package
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, errs.ErrInvalidInput)
			return
		}
		if p.Title == "" {
			writeError(w, errs.ErrInvalidInput)
			return
		}

		id, err := s.repos.Packages.Add(r.Context(), p)
		if err != nil {
			writeError(w, err)
			return
		}
		created, err := s.repos.Packages.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) AdminUpdatePackageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch catalog.PackagePatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, errs.ErrInvalidInput)
			return
		}

		id := r.PathValue("id")
		ok, err := s.repos.Packages.Update(r.Context(), id, patch)
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			writeJSON(w, http.StatusNotFound, errorBody("package not found"))
			return
		}
		updated, err := s.repos.Packages.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// AdminDeletePackageHandler removes a package. Deleting an absent id still
// returns 204: deletion is idempotent.
func (s *Server) AdminDeletePackageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.repos.Packages.Delete(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) AdminListTestimonialsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonials, err := s.repos.Testimonials.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, testimonials)
	}
}

func (s *Server) AdminCreateTestimonialHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var tm catalog.Testimonial
		if err := json.NewDecoder(r.Body).Decode(&tm); err != nil {
			writeError(w, errs.ErrInvalidInput)
			return
		}
		if tm.Author == "" || tm.Quote == "" {
			writeError(w, errs.ErrInvalidInput)
			return
		}

		id, err := s.repos.Testimonials.Add(r.Context(), tm)
		if err != nil {
			writeError(w, err)
			return
		}
		created, err := s.repos.Testimonials.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) AdminUpdateTestimonialHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch catalog.TestimonialPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, errs.ErrInvalidInput)
			return
		}

		id := r.PathValue("id")
		ok, err := s.repos.Testimonials.Update(r.Context(), id, patch)
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			writeJSON(w, http.StatusNotFound, errorBody("testimonial not found"))
			return
		}
		updated, err := s.repos.Testimonials.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) AdminDeleteTestimonialHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.repos.Testimonials.Delete(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// AdminListUsersHandler lists the configured login identities.
func (s *Server) AdminListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, err := s.repos.Users.List()
		if err != nil {
			writeError(w, err)
			return
		}
		payload := make([]userPayload, 0, len(creds))
		for _, c := range creds {
			payload = append(payload, userPayload{ID: c.ID, Email: c.Email, Role: c.Role, DisplayName: c.DisplayName})
		}
		writeJSON(w, http.StatusOK, payload)
	}
}
