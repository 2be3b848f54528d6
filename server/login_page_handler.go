package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jrsteele09/project-sync-web/guard"
	apperrors "github.com/jrsteele09/project-sync-web/internal/errors"
	"github.com/jrsteele09/project-sync-web/users"
	"github.com/rs/zerolog/log"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	Email string // Preserve email on error
}

// LoginPageUIHandler displays the login page (GET /login)
func (s *Server) LoginPageUIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if snap := s.session.Snapshot(); snap.LoggedIn && snap.Role.Known() {
			redirectSuccess(w, r, guard.LandingPath(snap.Role))
			return
		}
		s.renderLoginPage(w, r, http.StatusOK, r.URL.Query().Get("email"))
	}
}

// LoginSubmissionHandler processes the login form submission (POST /login).
// Failures re-render the form; the gateway has already queued the notice.
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		creds := users.Credentials{
			Email:    strings.TrimSpace(r.FormValue("email")),
			Password: r.FormValue("password"),
		}

		result, err := s.gateway.Login(r.Context(), creds)
		if err != nil {
			log.Err(err).Msg("Login failed")
			if result.Next != "" && result.Next != r.URL.Path {
				redirectSuccess(w, r, result.Next)
				return
			}
			s.renderLoginPage(w, r, statusForAuthError(err), creds.Email)
			return
		}

		redirectSuccess(w, r, result.Next)
	}
}

// LogoutHandler ends the session (POST /logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.gateway.Logout(r.Context())
		if err != nil {
			log.Err(err).Msg("Logout not performed")
			redirectSuccess(w, r, RouteHome)
			return
		}
		if result.BackendErr != nil {
			log.Warn().Err(result.BackendErr).Msg("Backend logout failed")
		}
		redirectSuccess(w, r, result.Next)
	}
}

func (s *Server) renderLoginPage(w http.ResponseWriter, r *http.Request, status int, email string) {
	s.renderPage(w, r, status, "Log in", "login.html", LoginPageData{Email: email})
}

// statusForAuthError maps a gateway failure to the status the re-rendered form is sent with
func statusForAuthError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrOperationInFlight):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrTransportFailure), errors.Is(err, apperrors.ErrInvalidResponse):
		return http.StatusBadGateway
	default:
		return http.StatusUnprocessableEntity
	}
}
