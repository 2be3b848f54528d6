package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/project-sync-web/guard"
	"github.com/jrsteele09/project-sync-web/session"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the session snapshot the guard admitted the request with
const ContextKeySession ContextKey = "session"

// snapshotFromRequest returns the snapshot the guard evaluated, or the live
// one for routes that are not guarded.
func (s *Server) snapshotFromRequest(r *http.Request) session.Snapshot {
	if snap, ok := r.Context().Value(ContextKeySession).(session.Snapshot); ok {
		return snap
	}
	return s.session.Snapshot()
}

func withSnapshot(r *http.Request, snap session.Snapshot) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ContextKeySession, snap))
}

// applyDecision carries out a guard decision. Only Render and RenderLanding
// reach render.
func (s *Server) applyDecision(w http.ResponseWriter, r *http.Request, snap session.Snapshot, d guard.Decision, render http.HandlerFunc) {
	s.metrics.GuardDecision(d.Outcome)

	switch d.Outcome {
	case guard.Pending:
		s.renderLoading(w, r)
		return
	case guard.Render, guard.RenderLanding:
		render(w, withSnapshot(r, snap))
		return
	}

	if d.Notice != nil {
		s.notices.Notify(d.Notice.Level, d.Notice.Message)
	}
	if d.Err != nil {
		log.Debug().Err(d.Err).Str("path", r.URL.Path).Str("target", d.Target).Msg("Navigation denied")
	}
	redirectSuccess(w, r, d.Target)
}

// redirectSuccess helper for htmx-aware redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
