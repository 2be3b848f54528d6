package server

import (
	"net/http"

	"github.com/jrsteele09/project-sync-web/guard"
)

// LandingPageData is the model for landing.html
type LandingPageData struct {
	AppName string
}

// HomeHandler resolves "/": loading page while the session restores, the
// user's own dashboard when logged in, otherwise the public landing page.
func (s *Server) HomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := s.session.Snapshot()
		s.applyDecision(w, r, snap, guard.ResolveHome(snap), func(w http.ResponseWriter, r *http.Request) {
			s.renderPage(w, r, http.StatusOK, "Welcome", "landing.html", LandingPageData{AppName: s.config.GetAppName()})
		})
	}
}

// DashboardResolverHandler sends "/dashboard" to the dashboard for the
// current role. It never renders a page of its own.
func (s *Server) DashboardResolverHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := s.session.Snapshot()
		s.applyDecision(w, r, snap, guard.ResolveDashboard(snap), s.NotFoundHandler())
	}
}
