package server

import (
	"net/http"
)

func (s *Server) initRoutes() {
	// Root resolvers
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.HomeHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteDashboard, ChainMiddleware(s.DashboardResolverHandler(), s.HTMLMiddleWare()...))

	// LOGIN / SIGNUP / LOGOUT
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageUIHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteSignup, ChainMiddleware(s.SignupGetHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteSignup, ChainMiddleware(s.SignupPostHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// Manager routes
	s.RegisterRouteHandler("GET "+RouteManagerDashboard, ChainMiddleware(s.ManagerDashboardHandler(), s.HTMLMiddleWare(s.RequireManager())...))
	s.RegisterRouteHandler("GET "+RouteManagerTeams, ChainMiddleware(s.SectionHandler("Teams", "Organise developers into teams and assign team leads."), s.HTMLMiddleWare(s.RequireManager())...))
	s.RegisterRouteHandler("GET "+RouteManagerClients, ChainMiddleware(s.SectionHandler("Clients", "Keep track of the clients your projects are delivered for."), s.HTMLMiddleWare(s.RequireManager())...))
	s.RegisterRouteHandler("GET "+RouteManagerProjects, ChainMiddleware(s.SectionHandler("Projects", "Create projects and follow their progress."), s.HTMLMiddleWare(s.RequireManager())...))

	// Developer routes
	s.RegisterRouteHandler("GET "+RouteDeveloperDashboard, ChainMiddleware(s.DeveloperDashboardHandler(), s.HTMLMiddleWare(s.RequireDeveloper())...))
	s.RegisterRouteHandler("GET "+RouteDeveloperTasks, ChainMiddleware(s.SectionHandler("Tasks", "Tasks assigned to you across all projects."), s.HTMLMiddleWare(s.RequireDeveloper())...))
	s.RegisterRouteHandler("GET "+RouteDeveloperBugs, ChainMiddleware(s.SectionHandler("Bugs", "Bugs reported against the projects you work on."), s.HTMLMiddleWare(s.RequireDeveloper())...))

	// Shared routes
	s.RegisterRouteHandler("GET "+RouteProjectDetail, ChainMiddleware(s.ProjectDetailHandler(), s.HTMLMiddleWare(s.RequireLogin())...))

	// API routes
	s.RegisterRouteHandler("GET "+RouteAPISession, ChainMiddleware(s.SessionAPIHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+RouteAPISession, ChainMiddleware(s.SessionAPIHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPIValidatePassword, ChainMiddleware(s.ValidatePasswordHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.Handler())

	s.RegisterRouteHandler("GET "+RouteStatic, ChainMiddleware(s.fileServer.ServeHTTP, s.RecoverMiddleware))
	s.RegisterRouteHandler("/", ChainMiddleware(s.NotFoundHandler(), s.HTMLMiddleWare()...))
}

// NotFoundHandler renders 404 for anything the mux does not know
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "404 - Page Not Found", http.StatusNotFound)
	}
}
