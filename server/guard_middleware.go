package server

import (
	"net/http"

	"github.com/jrsteele09/project-sync-web/guard"
	"github.com/jrsteele09/project-sync-web/users"
)

// RequireRoles gates a page on the current session. The guard runs on every
// request against a fresh snapshot.
func (s *Server) RequireRoles(required guard.RoleSet, opts ...guard.Option) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			snap := s.session.Snapshot()
			s.applyDecision(w, r, snap, guard.Evaluate(snap, required, opts...), next)
		}
	}
}

func (s *Server) RequireManager() func(http.HandlerFunc) http.HandlerFunc {
	return s.RequireRoles(guard.Roles(users.RoleManager))
}

func (s *Server) RequireDeveloper() func(http.HandlerFunc) http.HandlerFunc {
	return s.RequireRoles(guard.Roles(users.RoleDeveloper))
}

// RequireLogin admits any known role
func (s *Server) RequireLogin() func(http.HandlerFunc) http.HandlerFunc {
	return s.RequireRoles(guard.AnyRole())
}
