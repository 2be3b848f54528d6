package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/project-sync-web/users"
)

// DashboardPageData is the model for the role dashboards
type DashboardPageData struct {
	DisplayName string
	Links       []NavLink
}

// SectionPageData is the model for section.html
type SectionPageData struct {
	Title       string
	Description string
}

// ProjectPageData is the model for project_detail.html
type ProjectPageData struct {
	ProjectID string
	BackPath  string
}

func (s *Server) ManagerDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderDashboard(w, r, "Manager dashboard", "manager_dashboard.html")
	}
}

func (s *Server) DeveloperDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderDashboard(w, r, "Developer dashboard", "developer_dashboard.html")
	}
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, title, contentTemplate string) {
	snap := s.snapshotFromRequest(r)
	data := DashboardPageData{DisplayName: snap.User.DisplayName()}
	// Every link except the dashboard itself
	if links := navFor(snap.Role, r.URL.Path); len(links) > 1 {
		data.Links = links[1:]
	}
	s.renderPage(w, r, http.StatusOK, title, contentTemplate, data)
}

// SectionHandler renders a placeholder screen for a list section
func (s *Server) SectionHandler(title, description string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, r, http.StatusOK, title, "section.html", SectionPageData{
			Title:       title,
			Description: description,
		})
	}
}

// ProjectDetailHandler renders a project page for any logged in role
func (s *Server) ProjectDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := strings.TrimSpace(r.PathValue("id"))
		if projectID == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}

		snap := s.snapshotFromRequest(r)
		backPath := RouteDeveloperTasks
		if snap.Role == users.RoleManager {
			backPath = RouteManagerProjects
		}
		s.renderPage(w, r, http.StatusOK, "Project "+projectID, "project_detail.html", ProjectPageData{
			ProjectID: projectID,
			BackPath:  backPath,
		})
	}
}
