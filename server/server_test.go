package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jrsteele09/project-sync-web/auth"
	"github.com/jrsteele09/project-sync-web/guard"
	"github.com/jrsteele09/project-sync-web/internal/config"
	apperrors "github.com/jrsteele09/project-sync-web/internal/errors"
	"github.com/jrsteele09/project-sync-web/notify"
	"github.com/jrsteele09/project-sync-web/server"
	"github.com/jrsteele09/project-sync-web/session"
	"github.com/jrsteele09/project-sync-web/users"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// fakeGateway stands in for auth.Gateway and mutates the session the way it would
type fakeGateway struct {
	writer *session.Writer

	loginErr    error
	loginRole   users.Role
	loginNext   string
	signupErr   error
	logoutErr   error
	loginCalls  []users.Credentials
	signupCalls []users.SignupRequest
	logoutCalls int
}

func (f *fakeGateway) Login(_ context.Context, creds users.Credentials) (auth.LoginResult, error) {
	f.loginCalls = append(f.loginCalls, creds)
	if f.loginErr != nil {
		return auth.LoginResult{Next: f.loginNext}, f.loginErr
	}
	user := &users.User{Email: creds.Email}
	if err := f.writer.Establish(user, f.loginRole); err != nil {
		return auth.LoginResult{}, err
	}
	return auth.LoginResult{User: user, Role: f.loginRole, Next: guard.LandingPath(f.loginRole)}, nil
}

func (f *fakeGateway) Signup(_ context.Context, req users.SignupRequest) error {
	f.signupCalls = append(f.signupCalls, req)
	return f.signupErr
}

func (f *fakeGateway) Logout(_ context.Context) (auth.LogoutResult, error) {
	f.logoutCalls++
	if f.logoutErr != nil {
		return auth.LogoutResult{}, f.logoutErr
	}
	f.writer.Reset()
	return auth.LogoutResult{Next: guard.PathLogin}, nil
}

type testServer struct {
	srv     *server.Server
	writer  *session.Writer
	gateway *fakeGateway
	notices *notify.Center
	metrics *server.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("PROJECT_SYNC_CORS_ALLOWED_ORIGINS", "https://app.example.com")

	cfg, err := config.New("")
	require.NoError(t, err)

	store, writer := session.New()
	gw := &fakeGateway{writer: writer, loginRole: users.RoleManager}
	notices := notify.NewCenter()
	metrics := server.NewMetrics()

	srv, err := server.New(cfg, gw, store, notices, metrics)
	require.NoError(t, err)

	return &testServer{srv: srv, writer: writer, gateway: gw, notices: notices, metrics: metrics}
}

// loggedOut finishes the startup restore with no session
func (ts *testServer) loggedOut(t *testing.T) {
	t.Helper()
	require.NoError(t, ts.writer.Begin())
	ts.writer.Reset()
	ts.writer.End()
}

// loggedInAs finishes the startup restore with an established session
func (ts *testServer) loggedInAs(t *testing.T, role users.Role) {
	t.Helper()
	require.NoError(t, ts.writer.Begin())
	require.NoError(t, ts.writer.Establish(&users.User{Username: "alice", Name: "Alice"}, role))
	ts.writer.End()
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.srv.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) get(path string) *httptest.ResponseRecorder {
	return ts.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (ts *testServer) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.do(req)
}

func requireRedirect(t *testing.T, rec *httptest.ResponseRecorder, target string) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, target, rec.Header().Get("Location"))
}

func TestGuardedRoute_PendingWhileLoading(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/", "/dashboard", "/manager/dashboard", "/developer/tasks", "/projects/7"} {
		rec := ts.get(path)
		require.Equal(t, http.StatusOK, rec.Code, path)
		require.Empty(t, rec.Header().Get("Location"), path)
		require.Contains(t, rec.Body.String(), "Checking your session", path)
		require.Contains(t, rec.Body.String(), `http-equiv="refresh"`, path)
	}
	require.Equal(t, 5.0, testutil.ToFloat64(ts.metrics.GuardDecisions.WithLabelValues("pending")))
}

func TestGuardedRoute_LoggedOutRedirectsToLoginWithNotice(t *testing.T) {
	ts := newTestServer(t)
	ts.loggedOut(t)

	requireRedirect(t, ts.get("/manager/teams"), "/login")

	rec := ts.get("/login")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), guard.MsgLoginRequired)

	// Notices are shown once
	require.NotContains(t, ts.get("/login").Body.String(), guard.MsgLoginRequired)
}

func TestGuardedRoute_WrongRoleGoesToOwnDashboard(t *testing.T) {
	ts := newTestServer(t)
	ts.loggedInAs(t, users.RoleDeveloper)

	requireRedirect(t, ts.get("/manager/projects"), "/developer/dashboard")

	rec := ts.get("/developer/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "You don&#39;t have permission to access this page")
	require.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.GuardDecisions.WithLabelValues("redirect_dashboard")))
}

func TestGuardedRoute_RendersForPermittedRole(t *testing.T) {
	ts := newTestServer(t)
	ts.loggedInAs(t, users.RoleManager)

	rec := ts.get("/manager/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Welcome, Alice")
	require.Contains(t, body, `href="/manager/teams"`)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	rec = ts.get("/manager/clients")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Clients")
}

func TestGuardedRoute_HTMXRedirect(t *testing.T) {
	ts := newTestServer(t)
	ts.loggedOut(t)

	req := httptest.NewRequest(http.MethodGet, "/developer/bugs", nil)
	req.Header.Set("HX-Request", "true")
	rec := ts.do(req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("HX-Redirect"))
}

func TestProjectDetail_AnyRole(t *testing.T) {
	for _, role := range users.KnownRoles() {
		ts := newTestServer(t)
		ts.loggedInAs(t, role)

		rec := ts.get("/projects/42")
		require.Equal(t, http.StatusOK, rec.Code, role.String())
		require.Contains(t, rec.Body.String(), "Project 42")
	}
}

func TestHome(t *testing.T) {
	t.Run("logged out renders landing", func(t *testing.T) {
		ts := newTestServer(t)
		ts.loggedOut(t)

		rec := ts.get("/")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Create an account")
	})

	t.Run("logged in goes to own dashboard", func(t *testing.T) {
		ts := newTestServer(t)
		ts.loggedInAs(t, users.RoleDeveloper)

		requireRedirect(t, ts.get("/"), "/developer/dashboard")
		require.Empty(t, ts.notices.Drain())
	})
}

func TestDashboardResolver(t *testing.T) {
	t.Run("logged out", func(t *testing.T) {
		ts := newTestServer(t)
		ts.loggedOut(t)
		requireRedirect(t, ts.get("/dashboard"), "/login")
	})

	t.Run("manager", func(t *testing.T) {
		ts := newTestServer(t)
		ts.loggedInAs(t, users.RoleManager)
		requireRedirect(t, ts.get("/dashboard"), "/manager/dashboard")
	})

	t.Run("developer", func(t *testing.T) {
		ts := newTestServer(t)
		ts.loggedInAs(t, users.RoleDeveloper)
		requireRedirect(t, ts.get("/dashboard"), "/developer/dashboard")
	})
}

func TestLogin(t *testing.T) {
	t.Run("success redirects to landing path", func(t *testing.T) {
		ts := newTestServer(t)
		ts.loggedOut(t)

		rec := ts.postForm("/login", url.Values{"email": {" m@x.com "}, "password": {"pw"}})
		requireRedirect(t, rec, "/manager/dashboard")
		require.Equal(t, []users.Credentials{{Email: "m@x.com", Password: "pw"}}, ts.gateway.loginCalls)

		require.Equal(t, http.StatusOK, ts.get("/manager/dashboard").Code)
	})

	t.Run("rejected re-renders the form", func(t *testing.T) {
		ts := newTestServer(t)
		ts.loggedOut(t)
		ts.gateway.loginErr = apperrors.ErrInvalidCredentials

		rec := ts.postForm("/login", url.Values{"email": {"m@x.com"}, "password": {"bad"}})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), `value="m@x.com"`)
	})

	t.Run("unknown role lands on login", func(t *testing.T) {
		ts := newTestServer(t)
		ts.loggedOut(t)
		ts.gateway.loginErr = apperrors.ErrUnknownRole
		ts.gateway.loginNext = guard.PathLogin

		rec := ts.postForm("/login", url.Values{"email": {"m@x.com"}, "password": {"pw"}})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Contains(t, rec.Body.String(), `action="/login"`)
	})

	t.Run("logged in user skips the form", func(t *testing.T) {
		ts := newTestServer(t)
		ts.loggedInAs(t, users.RoleDeveloper)
		requireRedirect(t, ts.get("/login"), "/developer/dashboard")
	})
}

func TestSignup(t *testing.T) {
	t.Run("signs up then logs in", func(t *testing.T) {
		ts := newTestServer(t)
		ts.loggedOut(t)
		ts.gateway.loginRole = users.RoleDeveloper

		rec := ts.postForm("/signup", url.Values{
			"username": {"dev1"},
			"email":    {"d@x.com"},
			"password": {"Secret123"},
			"role":     {"Developer"},
		})
		requireRedirect(t, rec, "/developer/dashboard")
		require.Len(t, ts.gateway.signupCalls, 1)
		require.Equal(t, "developer", ts.gateway.signupCalls[0].Role)
		require.Equal(t, []users.Credentials{{Email: "d@x.com", Password: "Secret123"}}, ts.gateway.loginCalls)
	})

	t.Run("failed signup keeps the fields", func(t *testing.T) {
		ts := newTestServer(t)
		ts.loggedOut(t)
		ts.gateway.signupErr = &auth.FormError{Err: apperrors.ErrInvalidRequest}

		rec := ts.postForm("/signup", url.Values{"username": {"dev1"}, "email": {"d@x.com"}, "role": {"manager"}})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := rec.Body.String()
		require.Contains(t, body, `value="dev1"`)
		require.Contains(t, body, `<option value="manager" selected>`)
		require.Empty(t, ts.gateway.loginCalls)
	})

	t.Run("failed login after signup goes to login page", func(t *testing.T) {
		ts := newTestServer(t)
		ts.loggedOut(t)
		ts.gateway.loginErr = apperrors.ErrTransportFailure

		rec := ts.postForm("/signup", url.Values{
			"username": {"dev1"},
			"email":    {"d@x.com"},
			"password": {"Secret123"},
			"role":     {"developer"},
		})
		requireRedirect(t, rec, "/login?email=d%40x.com")
	})
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	ts.loggedInAs(t, users.RoleManager)

	requireRedirect(t, ts.postForm("/logout", nil), "/login")
	require.Equal(t, 1, ts.gateway.logoutCalls)
	requireRedirect(t, ts.get("/manager/dashboard"), "/login")

	ts.gateway.logoutErr = apperrors.ErrOperationInFlight
	requireRedirect(t, ts.postForm("/logout", nil), "/")
}

func TestSessionAPI(t *testing.T) {
	ts := newTestServer(t)
	ts.loggedInAs(t, users.RoleManager)

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := ts.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "manager", got["role"])
	require.Equal(t, true, got["isLoggedIn"])
	require.Equal(t, false, got["loading"])

	t.Run("unlisted origin gets no cors headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := ts.do(req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/session", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := ts.do(req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	})
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get("/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok","ready":false}`, rec.Body.String())

	ts.loggedOut(t)
	ts.get("/manager/dashboard")
	ts.metrics.AuthOutcome(auth.OpLogin, apperrors.ErrInvalidCredentials)

	rec = ts.get("/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `projectsync_guard_decisions_total{outcome="redirect_login"} 1`)
	require.Contains(t, body, `projectsync_auth_operations_total{op="login",result="invalid_credentials"} 1`)
}

func TestValidatePassword(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.postForm("/api/validate-password", url.Values{"password": {"short"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "at least 8 characters")

	rec = ts.postForm("/api/validate-password", url.Values{"password": {"Secret123"}})
	require.Contains(t, rec.Body.String(), "Strong password")
}

func TestStaticAndNotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get("/static/css/app.css")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), ".toast")

	require.Equal(t, http.StatusNotFound, ts.get("/nope").Code)
}
