package server

import "net/http"

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthSession, ChainMiddleware(s.SessionHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))

	// Public catalog (throttled per client IP)
	s.RegisterRouteHandler("GET "+RoutePackages, ChainMiddleware(s.ListPackagesHandler(), s.PublicMiddleware()...))
	s.RegisterRouteHandler("GET "+RoutePackageByID, ChainMiddleware(s.GetPackageHandler(), s.PublicMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteTestimonials, ChainMiddleware(s.ListTestimonialsHandler(), s.PublicMiddleware()...))

	// Admin CMS (require a valid session with the admin role)
	s.RegisterRouteHandler("GET "+RouteAdminPackages, s.adminRoute(s.AdminListPackagesHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminPackages, s.adminRoute(s.AdminCreatePackageHandler()))
	s.RegisterRouteHandler("PUT "+RouteAdminPackageByID, s.adminRoute(s.AdminUpdatePackageHandler()))
	s.RegisterRouteHandler("DELETE "+RouteAdminPackageByID, s.adminRoute(s.AdminDeletePackageHandler()))
	s.RegisterRouteHandler("GET "+RouteAdminTestimonials, s.adminRoute(s.AdminListTestimonialsHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminTestimonials, s.adminRoute(s.AdminCreateTestimonialHandler()))
	s.RegisterRouteHandler("PUT "+RouteAdminTestimonialByID, s.adminRoute(s.AdminUpdateTestimonialHandler()))
	s.RegisterRouteHandler("DELETE "+RouteAdminTestimonialByID, s.adminRoute(s.AdminDeleteTestimonialHandler()))
	s.RegisterRouteHandler("GET "+RouteAdminUsers, s.adminRoute(s.AdminListUsersHandler()))

	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
}

func (s *Server) adminRoute(h http.HandlerFunc) http.HandlerFunc {
	mw := append(s.APIMiddleware(), s.RequireSession(), s.RequireAdmin())
	return ChainMiddleware(h, mw...)
}

// HealthHandler reports process liveness.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
