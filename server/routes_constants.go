package server

import "github.com/jrsteele09/project-sync-web/guard"

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Public Routes
	RouteHome   = "/"
	RouteLogin  = guard.PathLogin
	RouteSignup = "/signup"
	RouteLogout = "/logout"

	// Role resolver
	RouteDashboard = "/dashboard"

	// Manager Routes
	RouteManagerDashboard = guard.PathManagerDashboard
	RouteManagerTeams     = "/manager/teams"
	RouteManagerClients   = "/manager/clients"
	RouteManagerProjects  = "/manager/projects"

	// Developer Routes
	RouteDeveloperDashboard = guard.PathDeveloperDashboard
	RouteDeveloperTasks     = "/developer/tasks"
	RouteDeveloperBugs      = "/developer/bugs"

	// Shared Routes (any logged in role)
	RouteProjectDetail = "/projects/{id}"

	// API Routes
	RouteAPISession          = "/api/session"
	RouteAPIValidatePassword = "/api/validate-password"
	RouteMetrics             = "/metrics"
	RouteHealth              = "/healthz"

	// Static Assets
	RouteStatic = "/static/"
)
