// Package server is the HTTP boundary: routing, middleware, cookie handling,
// and the mapping from service errors to response statuses.
package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jthorne/go-travel-site/auth"
	"github.com/jthorne/go-travel-site/catalog"
	"github.com/jthorne/go-travel-site/internal/config"
	"github.com/jthorne/go-travel-site/ratelimit"
	"github.com/jthorne/go-travel-site/users"
)

// Repos holds all repository dependencies for the Server
type Repos struct {
	Users        users.Repo
	Packages     catalog.PackageRepo
	Testimonials catalog.TestimonialRepo
}

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	auth     *auth.Service
	repos    Repos
	throttle *ratelimit.Throttle
}

func New(cfg config.Config, repos Repos, authService *auth.Service, throttle *ratelimit.Throttle) (*Server, error) {
	if repos.Users == nil {
		return nil, fmt.Errorf("[Server New] Users repo is required")
	}
	if repos.Packages == nil {
		return nil, fmt.Errorf("[Server New] Packages repo is required")
	}
	if repos.Testimonials == nil {
		return nil, fmt.Errorf("[Server New] Testimonials repo is required")
	}
	if authService == nil {
		return nil, fmt.Errorf("[Server New] auth service is required")
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		auth:     authService,
		repos:    repos,
		throttle: throttle,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
