package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrsteele09/project-sync-web/backend"
	"github.com/jrsteele09/project-sync-web/guard"
	apperrors "github.com/jrsteele09/project-sync-web/internal/errors"
	"github.com/jrsteele09/project-sync-web/notify"
	"github.com/jrsteele09/project-sync-web/session"
	"github.com/jrsteele09/project-sync-web/token"
	"github.com/jrsteele09/project-sync-web/users"
	"github.com/rs/zerolog/log"
)

const defaultRestoreTimeout = 10 * time.Second

// Operation names reported to a Recorder
const (
	OpRestore = "restore"
	OpLogin   = "login"
	OpSignup  = "signup"
	OpLogout  = "logout"
)

// Backend is the REST credential service the gateway wraps
type Backend interface {
	Profile(ctx context.Context) (*backend.ProfileResponse, error)
	Login(ctx context.Context, req backend.LoginRequest) (*backend.LoginResponse, error)
	Signup(ctx context.Context, req backend.SignupRequest) (*backend.SignupResponse, error)
	Logout(ctx context.Context) error
	SetToken(raw string)
	ClearToken()
}

// Recorder observes the outcome of every gateway operation
type Recorder interface {
	AuthOutcome(op string, err error)
}

// LoginResult says who logged in and where they should go next
type LoginResult struct {
	User *users.User
	Role users.Role
	Next string
}

// LogoutResult carries the post-logout destination. BackendErr is the
// failure of the best-effort backend call, if any; the local session is
// reset regardless.
type LogoutResult struct {
	Next       string
	BackendErr error
}

// Gateway is the only component that mutates the session.
type Gateway struct {
	backend        Backend
	session        *session.Writer
	tokens         token.Repo
	notifier       notify.Notifier
	recorder       Recorder
	restoreTimeout time.Duration
	nowTime        func() time.Time
}

// GatewayOption defines a function type to modify the Gateway instance.
type GatewayOption func(*Gateway)

// WithTokenRepo enables the credential token cache
func WithTokenRepo(repo token.Repo) GatewayOption {
	return func(g *Gateway) {
		g.tokens = repo
	}
}

func WithNotifier(n notify.Notifier) GatewayOption {
	return func(g *Gateway) {
		g.notifier = n
	}
}

func WithRecorder(r Recorder) GatewayOption {
	return func(g *Gateway) {
		g.recorder = r
	}
}

// WithRestoreTimeout bounds RestoreSession's backend call
func WithRestoreTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) {
		if d > 0 {
			g.restoreTimeout = d
		}
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) GatewayOption {
	return func(g *Gateway) {
		g.nowTime = nowFunc
	}
}

// NewGateway wires the gateway to its backend and to the session's writer.
func NewGateway(b Backend, w *session.Writer, options ...GatewayOption) (*Gateway, error) {
	if b == nil {
		return nil, errors.New("[NewGateway] backend is required")
	}
	if w == nil {
		return nil, errors.New("[NewGateway] session writer is required")
	}

	g := &Gateway{
		backend:        b,
		session:        w,
		notifier:       notify.Discard,
		restoreTimeout: defaultRestoreTimeout,
		nowTime:        time.Now,
	}
	for _, opt := range options {
		opt(g)
	}
	return g, nil
}

// RestoreSession asks the backend whether this client already has a valid
// session. It never fails: any problem leaves the session logged out.
// Loading is always false when it returns.
func (g *Gateway) RestoreSession(ctx context.Context) {
	if err := g.session.Begin(); err != nil {
		// Whoever holds the slot will clear the loading flag
		log.Warn().Err(err).Msg("Restore skipped")
		return
	}
	defer g.session.End()

	ctx, cancel := context.WithTimeout(ctx, g.restoreTimeout)
	defer cancel()

	g.loadCachedToken()

	err := g.restore(ctx)
	g.record(OpRestore, err)
	if err == nil {
		return
	}

	g.session.Reset()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		log.Warn().Dur("timeout", g.restoreTimeout).Msg("Session restore timed out, continuing logged out")
		return
	}
	log.Debug().Err(err).Msg("No session restored")
}

func (g *Gateway) restore(ctx context.Context) error {
	profile, err := g.backend.Profile(ctx)
	if err != nil {
		var se *backend.StatusError
		if errors.As(err, &se) && se.Unauthenticated() {
			g.forgetToken()
		}
		return fmt.Errorf("[Gateway.RestoreSession] %w", err)
	}
	if profile.User == nil || profile.User.Role == nil {
		return fmt.Errorf("[Gateway.RestoreSession] %w: profile without user role", apperrors.ErrInvalidResponse)
	}

	role := users.ParseRole(*profile.User.Role)
	if err := g.session.Establish(profile.User.Identity(), role); err != nil {
		return fmt.Errorf("[Gateway.RestoreSession] %w", err)
	}
	log.Info().Str("role", role.String()).Msg("Session restored")
	return nil
}

// Login authenticates and, on success, establishes the session. The session
// is untouched on every failure path.
func (g *Gateway) Login(ctx context.Context, creds users.Credentials) (result LoginResult, err error) {
	defer func() {
		g.record(OpLogin, err)
		if err != nil {
			g.notifier.Notify(notify.LevelError, UserMessage(err))
		}
	}()

	if verr := creds.Validate(); verr != nil {
		return LoginResult{}, fmt.Errorf("[Gateway.Login] %w", &FormError{Err: verr})
	}
	if err := g.session.Begin(); err != nil {
		return LoginResult{}, fmt.Errorf("[Gateway.Login] %w", err)
	}
	defer g.session.End()

	resp, err := g.backend.Login(ctx, backend.LoginRequest{Email: creds.Email, Password: creds.Password})
	if err != nil {
		var se *backend.StatusError
		if errors.As(err, &se) && se.Rejected() {
			return LoginResult{}, fmt.Errorf("[Gateway.Login] %w: %w", apperrors.ErrInvalidCredentials, err)
		}
		return LoginResult{}, fmt.Errorf("[Gateway.Login] %w", err)
	}

	if resp.Role == nil {
		return LoginResult{}, fmt.Errorf("[Gateway.Login] %w: no role in login response", apperrors.ErrInvalidResponse)
	}
	role := users.ParseRole(*resp.Role)
	if !role.Known() {
		log.Warn().Str("role", *resp.Role).Msg("Login returned an unrecognised role")
		return LoginResult{Next: guard.PathLogin}, fmt.Errorf("[Gateway.Login] %w: %q", apperrors.ErrUnknownRole, *resp.Role)
	}

	user := resp.Identity()
	if user == nil {
		user = &users.User{Email: creds.Email}
	}
	if err := g.session.Establish(user, role); err != nil {
		return LoginResult{}, fmt.Errorf("[Gateway.Login] %w", err)
	}
	if resp.Token != "" {
		g.rememberToken(resp.Token)
	}

	g.notifier.Notify(notify.LevelSuccess, "Welcome back, "+user.DisplayName())
	log.Info().Str("role", role.String()).Msg("Logged in")

	return LoginResult{User: user, Role: role, Next: guard.LandingPath(role)}, nil
}

// Signup registers an account. It never logs the user in; callers follow up
// with Login using the same credentials.
func (g *Gateway) Signup(ctx context.Context, req users.SignupRequest) (err error) {
	defer func() {
		g.record(OpSignup, err)
		if err != nil {
			g.notifier.Notify(notify.LevelError, UserMessage(err))
		}
	}()

	if verr := req.Validate(); verr != nil {
		return fmt.Errorf("[Gateway.Signup] %w", &FormError{Err: verr})
	}
	if err := g.session.Begin(); err != nil {
		return fmt.Errorf("[Gateway.Signup] %w", err)
	}
	defer g.session.End()

	_, err = g.backend.Signup(ctx, backend.SignupRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return fmt.Errorf("[Gateway.Signup] %w", err)
	}

	g.notifier.Notify(notify.LevelSuccess, "Account created")
	return nil
}

// Logout ends the session. The backend call is best effort; the local
// session is reset whatever it returns. The only error is
// ErrOperationInFlight, in which case nothing happened.
func (g *Gateway) Logout(ctx context.Context) (LogoutResult, error) {
	if err := g.session.Begin(); err != nil {
		g.notifier.Notify(notify.LevelError, UserMessage(err))
		return LogoutResult{}, fmt.Errorf("[Gateway.Logout] %w", err)
	}
	defer g.session.End()

	backendErr := g.backend.Logout(ctx)
	if backendErr != nil {
		log.Warn().Err(backendErr).Msg("Backend logout failed, clearing local session anyway")
	}
	g.record(OpLogout, backendErr)

	g.forgetToken()
	g.session.Reset()
	g.notifier.Notify(notify.LevelSuccess, "You have been logged out")

	return LogoutResult{Next: guard.PathLogin, BackendErr: backendErr}, nil
}

func (g *Gateway) loadCachedToken() {
	if g.tokens == nil {
		return
	}
	raw, err := g.tokens.Load()
	if errors.Is(err, apperrors.ErrNotFound) {
		return
	}
	if err != nil {
		log.Err(err).Msg("Discarding unreadable token cache")
		g.forgetToken()
		return
	}
	if token.Inspect(raw).Expired(g.nowTime()) {
		log.Debug().Msg("Cached token expired")
		g.forgetToken()
		return
	}
	g.backend.SetToken(raw)
}

func (g *Gateway) rememberToken(raw string) {
	g.backend.SetToken(raw)
	if g.tokens == nil {
		return
	}
	if err := g.tokens.Save(raw); err != nil {
		log.Err(err).Msg("Failed to cache credential token")
	}
}

func (g *Gateway) forgetToken() {
	g.backend.ClearToken()
	if g.tokens == nil {
		return
	}
	if err := g.tokens.Delete(); err != nil {
		log.Err(err).Msg("Failed to clear credential token cache")
	}
}

func (g *Gateway) record(op string, err error) {
	if g.recorder != nil {
		g.recorder.AuthOutcome(op, err)
	}
}
