package server

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/jrsteele09/project-sync-web/auth"
	"github.com/jrsteele09/project-sync-web/internal/config"
	"github.com/jrsteele09/project-sync-web/notify"
	"github.com/jrsteele09/project-sync-web/session"
	"github.com/jrsteele09/project-sync-web/users"
	"github.com/rs/zerolog/log"
)

// AuthGateway is the subset of auth.Gateway the pages drive
type AuthGateway interface {
	Login(ctx context.Context, creds users.Credentials) (auth.LoginResult, error)
	Signup(ctx context.Context, req users.SignupRequest) error
	Logout(ctx context.Context) (auth.LogoutResult, error)
}

// SessionReader exposes the read-only side of the session store
type SessionReader interface {
	Snapshot() session.Snapshot
}

// NoticeQueue receives notices and hands them to the next rendered page
type NoticeQueue interface {
	notify.Notifier
	Drain() []notify.Notification
}

type Server struct {
	env        string // Environment (e.g., "DEV", "PROD")
	mux        *http.ServeMux
	routes     []string
	fileServer http.Handler
	config     config.Config
	gateway    AuthGateway
	session    SessionReader
	notices    NoticeQueue
	metrics    *Metrics
	layout     *template.Template
	pages      map[string]*template.Template
}

// New builds the router. metrics may be nil, in which case a private
// registry is created.
func New(config config.Config, gateway AuthGateway, store SessionReader, notices NoticeQueue, metrics *Metrics) (*Server, error) {
	if gateway == nil || store == nil || notices == nil {
		return nil, errors.New("[Server New] gateway, session store and notice queue are required")
	}
	if metrics == nil {
		metrics = NewMetrics()
	}

	layout, pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		env:        config.GetEnv(),
		mux:        http.NewServeMux(),
		fileServer: FileServerHandler(),
		config:     config,
		gateway:    gateway,
		session:    store,
		notices:    notices,
		metrics:    metrics,
		layout:     layout,
		pages:      pages,
	}

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
		method, path, found := strings.Cut(route, " ")
		if !found {
			method, path = "", route
		}
		log.Debug().Msgf("[%-19s] %s", colouredMethod(method), path)
	}
}
