package server

import (
	"net/http"

	"github.com/jthorne/go-travel-site/catalog"
	errs "github.com/jthorne/go-travel-site/internal/errors"
)

// ListPackagesHandler returns the published packages for the public site.
func (s *Server) ListPackagesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		packages, err := s.repos.Packages.ListByStatus(r.Context(), catalog.PackagePublished)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, packages)
	}
}

// GetPackageHandler returns a single published package.
func (s *Server) GetPackageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.repos.Packages.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			if errs.Is(err, errs.ErrRecordNotFound) {
				writeJSON(w, http.StatusNotFound, errorBody("package not found"))
				return
			}
			writeError(w, err)
			return
		}
		// Unpublished packages are invisible outside the admin CMS
		if p.Status != catalog.PackagePublished {
			writeJSON(w, http.StatusNotFound, errorBody("package not found"))
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// ListTestimonialsHandler returns the approved testimonials.
func (s *Server) ListTestimonialsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonials, err := s.repos.Testimonials.ListByStatus(r.Context(), catalog.TestimonialApproved)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, testimonials)
	}
}
