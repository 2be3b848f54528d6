package server

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/jrsteele09/project-sync-web/notify"
	"github.com/jrsteele09/project-sync-web/session"
	"github.com/jrsteele09/project-sync-web/users"
	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

// loadingRefreshSeconds is how often the loading page polls while the session restores
const loadingRefreshSeconds = 1

var templateFuncs = template.FuncMap{
	"lower": strings.ToLower,
}

// LayoutData is the model for layout.html
type LayoutData struct {
	AppName     string
	Title       string
	Session     session.Snapshot
	DisplayName string
	Nav         []NavLink
	Notices     []notify.Notification
	Refresh     int
	Content     template.HTML
}

// NavLink is one entry in the role specific navigation bar
type NavLink struct {
	Label  string
	Path   string
	Active bool
}

func navFor(role users.Role, current string) []NavLink {
	var links []NavLink
	switch role {
	case users.RoleManager:
		links = []NavLink{
			{Label: "Dashboard", Path: RouteManagerDashboard},
			{Label: "Teams", Path: RouteManagerTeams},
			{Label: "Clients", Path: RouteManagerClients},
			{Label: "Projects", Path: RouteManagerProjects},
		}
	case users.RoleDeveloper:
		links = []NavLink{
			{Label: "Dashboard", Path: RouteDeveloperDashboard},
			{Label: "Tasks", Path: RouteDeveloperTasks},
			{Label: "Bugs", Path: RouteDeveloperBugs},
		}
	}
	for i := range links {
		links[i].Active = links[i].Path == current
	}
	return links
}

// renderPage renders a content template into the layout. Pending
// notifications are drained into the page.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, title, contentTemplate string, content any) {
	s.renderLayout(w, r, status, title, contentTemplate, content, 0)
}

func (s *Server) renderLoading(w http.ResponseWriter, r *http.Request) {
	s.renderLayout(w, r, http.StatusOK, "Loading", "loading.html", nil, loadingRefreshSeconds)
}

func (s *Server) renderLayout(w http.ResponseWriter, r *http.Request, status int, title, contentTemplate string, content any, refresh int) {
	contentTmpl, ok := s.pages[contentTemplate]
	if !ok {
		log.Error().Str("template", contentTemplate).Msg("Unknown content template")
		http.Error(w, "Failed to load content template", http.StatusInternalServerError)
		return
	}

	var contentBuf bytes.Buffer
	if err := contentTmpl.Execute(&contentBuf, content); err != nil {
		log.Err(err).Str("template", contentTemplate).Msg("Failed to render content template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	snap := s.snapshotFromRequest(r)
	data := LayoutData{
		AppName: s.config.GetAppName(),
		Title:   title,
		Session: snap,
		Nav:     navFor(snap.Role, r.URL.Path),
		Refresh: refresh,
		Content: template.HTML(contentBuf.String()),
	}
	if snap.LoggedIn && snap.User != nil {
		data.DisplayName = snap.User.DisplayName()
	}
	// The loading page polls; keep notices for the page that follows it
	if refresh == 0 {
		data.Notices = s.notices.Drain()
	}

	var page bytes.Buffer
	if err := s.layout.Execute(&page, data); err != nil {
		log.Err(err).Msg("Failed to render layout template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = page.WriteTo(w)
}
