package server

import (
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/project-sync-web/guard"
	"github.com/jrsteele09/project-sync-web/users"
	"github.com/rs/zerolog/log"
)

// SignupPageData preserves the submitted fields when the form is re-rendered
type SignupPageData struct {
	Username string
	Email    string
	Role     string
	Roles    []users.Role
}

// SignupGetHandler renders the signup page (GET /signup)
func (s *Server) SignupGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if snap := s.session.Snapshot(); snap.LoggedIn && snap.Role.Known() {
			redirectSuccess(w, r, guard.LandingPath(snap.Role))
			return
		}
		s.renderSignupPage(w, r, http.StatusOK, SignupPageData{Role: users.RoleDeveloper.String()})
	}
}

// SignupPostHandler registers the account and then logs in with the same
// credentials (POST /signup).
func (s *Server) SignupPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		req := users.SignupRequest{
			Username: strings.TrimSpace(r.FormValue("username")),
			Email:    strings.TrimSpace(r.FormValue("email")),
			Password: r.FormValue("password"),
			Role:     strings.ToLower(strings.TrimSpace(r.FormValue("role"))),
		}

		if err := s.gateway.Signup(r.Context(), req); err != nil {
			log.Err(err).Msg("Signup failed")
			s.renderSignupPage(w, r, statusForAuthError(err), SignupPageData{
				Username: req.Username,
				Email:    req.Email,
				Role:     req.Role,
			})
			return
		}

		result, err := s.gateway.Login(r.Context(), req.Credentials())
		if err != nil {
			// The account exists; let the user retry from the login page
			log.Err(err).Msg("Login after signup failed")
			redirectSuccess(w, r, RouteLogin+"?email="+url.QueryEscape(req.Email))
			return
		}

		redirectSuccess(w, r, result.Next)
	}
}

// ValidatePasswordHandler validates password strength for the signup form via HTMX
func (s *Server) ValidatePasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		password := r.FormValue("password")

		w.Header().Set("Content-Type", contentTypeHTML)
		if password == "" {
			w.WriteHeader(http.StatusOK)
			return
		}

		if err := users.ValidatePasswordStrength(password); err != nil {
			w.Header().Set("HX-Trigger", `{"passwordInvalid": ""}`)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, `<span class="text-danger">%s</span>`, html.EscapeString(err.Error()))
			return
		}

		w.Header().Set("HX-Trigger", `{"passwordValid": ""}`)
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `<span class="text-success">Strong password</span>`)
	}
}

func (s *Server) renderSignupPage(w http.ResponseWriter, r *http.Request, status int, data SignupPageData) {
	data.Roles = users.KnownRoles()
	s.renderPage(w, r, status, "Sign up", "signup.html", data)
}
