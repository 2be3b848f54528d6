package users

import "strings"

// Role is the closed set of roles a Project Sync user can hold.
// The zero value is RoleUnknown so an unset or unrecognised role never grants access.
type Role uint8

const (
	RoleUnknown   Role = iota
	RoleManager        // Manages teams, clients and projects
	RoleDeveloper      // Works on assigned tasks and bugs
)

const (
	managerWire   = "manager"
	developerWire = "developer"
)

// ParseRole maps a backend role string onto a Role. Anything that is not
// "manager" or "developer" (after trimming and lower-casing) is RoleUnknown.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case managerWire:
		return RoleManager
	case developerWire:
		return RoleDeveloper
	default:
		return RoleUnknown
	}
}

// KnownRoles lists every role other than RoleUnknown.
func KnownRoles() []Role {
	return []Role{RoleManager, RoleDeveloper}
}

func (r Role) Known() bool {
	return r == RoleManager || r == RoleDeveloper
}

func (r Role) String() string {
	switch r {
	case RoleManager:
		return managerWire
	case RoleDeveloper:
		return developerWire
	default:
		return "unknown"
	}
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	*r = ParseRole(string(text))
	return nil
}
