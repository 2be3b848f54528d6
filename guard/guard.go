// Package guard decides, for one navigation, whether the current session may
// see a page. Every function here is pure: callers perform the redirect and
// deliver the notice.
package guard

import (
	apperrors "github.com/jrsteele09/project-sync-web/internal/errors"
	"github.com/jrsteele09/project-sync-web/notify"
	"github.com/jrsteele09/project-sync-web/session"
	"github.com/jrsteele09/project-sync-web/users"
)

// Page paths the guard redirects to
const (
	PathLogin              = "/login"
	PathManagerDashboard   = "/manager/dashboard"
	PathDeveloperDashboard = "/developer/dashboard"
)

const (
	MsgLoginRequired = "Please log in to access this page"
	MsgNoPermission  = "You don't have permission to access this page"
	MsgUnknownRole   = "Your account has an unrecognised role. Please log in again"
)

type Outcome uint8

const (
	Pending Outcome = iota
	RedirectToLogin
	RedirectToOwnDashboard
	Render
	RenderLanding
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToOwnDashboard:
		return "redirect_dashboard"
	case Render:
		return "render"
	case RenderLanding:
		return "render_landing"
	default:
		return "invalid"
	}
}

// Notice is the message that must accompany a redirect
type Notice struct {
	Level   notify.Level
	Message string
}

// Decision is the result of evaluating one navigation
type Decision struct {
	Outcome Outcome
	Target  string // Redirect target, empty for Pending and Render
	Notice  *Notice
	Err     error // Why a redirect was a denial, nil otherwise
}

// Redirects reports whether the decision sends the user elsewhere
func (d Decision) Redirects() bool {
	return d.Target != ""
}

// RoleSet is the set of roles permitted on a route
type RoleSet map[users.Role]struct{}

// Roles builds a RoleSet. No roles means any known role.
func Roles(roles ...users.Role) RoleSet {
	if len(roles) == 0 {
		return AnyRole()
	}
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// AnyRole permits every known role, for routes that only need a login
func AnyRole() RoleSet {
	return Roles(users.KnownRoles()...)
}

func (s RoleSet) Contains(r users.Role) bool {
	_, ok := s[r]
	return ok
}

type options struct {
	redirect string
}

type Option func(*options)

// WithRedirect overrides the role-default dashboard as the target for a role mismatch
func WithRedirect(path string) Option {
	return func(o *options) {
		o.redirect = path
	}
}

// LandingPath is where a user with role r belongs. Unknown roles land on login.
func LandingPath(r users.Role) string {
	switch r {
	case users.RoleManager:
		return PathManagerDashboard
	case users.RoleDeveloper:
		return PathDeveloperDashboard
	default:
		return PathLogin
	}
}

// Evaluate gates a protected route on the session and the roles it permits.
func Evaluate(snap session.Snapshot, required RoleSet, opts ...Option) Decision {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if len(required) == 0 {
		required = AnyRole()
	}

	switch {
	case snap.Loading:
		return Decision{Outcome: Pending}
	case !snap.LoggedIn:
		return loginRequired()
	case !snap.Role.Known():
		return unknownRole()
	case !required.Contains(snap.Role):
		target := LandingPath(snap.Role)
		if o.redirect != "" {
			target = o.redirect
		}
		return Decision{
			Outcome: RedirectToOwnDashboard,
			Target:  target,
			Notice:  &Notice{Level: notify.LevelError, Message: MsgNoPermission},
			Err:     apperrors.ErrGuardDenied,
		}
	default:
		return Decision{Outcome: Render}
	}
}

// ResolveHome decides what "/" shows: the user's dashboard when logged in,
// the public landing page otherwise.
func ResolveHome(snap session.Snapshot) Decision {
	switch {
	case snap.Loading:
		return Decision{Outcome: Pending}
	case !snap.LoggedIn:
		return Decision{Outcome: RenderLanding}
	case !snap.Role.Known():
		return unknownRole()
	default:
		return Decision{Outcome: RedirectToOwnDashboard, Target: LandingPath(snap.Role)}
	}
}

// ResolveDashboard decides where "/dashboard" goes. It never renders.
func ResolveDashboard(snap session.Snapshot) Decision {
	switch {
	case snap.Loading:
		return Decision{Outcome: Pending}
	case !snap.LoggedIn:
		return loginRequired()
	case !snap.Role.Known():
		return unknownRole()
	default:
		return Decision{Outcome: RedirectToOwnDashboard, Target: LandingPath(snap.Role)}
	}
}

func loginRequired() Decision {
	return Decision{
		Outcome: RedirectToLogin,
		Target:  PathLogin,
		Notice:  &Notice{Level: notify.LevelError, Message: MsgLoginRequired},
		Err:     apperrors.ErrNotLoggedIn,
	}
}

func unknownRole() Decision {
	return Decision{
		Outcome: RedirectToLogin,
		Target:  PathLogin,
		Notice:  &Notice{Level: notify.LevelError, Message: MsgUnknownRole},
		Err:     apperrors.ErrUnknownRole,
	}
}
