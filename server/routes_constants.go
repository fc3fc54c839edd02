package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth routes
	RouteAuthLogin   = "/api/auth/login"
	RouteAuthSession = "/api/auth/session"
	RouteAuthLogout  = "/api/auth/logout"

	// Public catalog routes
	RoutePackages     = "/api/packages"
	RoutePackageByID  = "/api/packages/{id}"
	RouteTestimonials = "/api/testimonials"

	// Admin CMS routes
	RouteAdminPackages        = "/api/admin/packages"
	RouteAdminPackageByID     = "/api/admin/packages/{id}"
	RouteAdminTestimonials    = "/api/admin/testimonials"
	RouteAdminTestimonialByID = "/api/admin/testimonials/{id}"
	RouteAdminUsers           = "/api/admin/users"

	// Operational routes
	RouteHealth = "/healthz"
)
