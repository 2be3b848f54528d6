package backend

import (
	"encoding/json"
	"strings"

	"github.com/jrsteele09/project-sync-web/users"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginResponse is the backend's answer to POST /user/login. Role is a
// pointer so a missing field can be told apart from an empty one.
type LoginResponse struct {
	Role    *string         `json:"role"`
	User    json.RawMessage `json:"user,omitempty"`
	UserID  string          `json:"userId,omitempty"`
	Token   string          `json:"token,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Identity extracts the user record from whichever of user/userId the backend sent.
// It returns nil when neither identifies anyone.
func (l *LoginResponse) Identity() *users.User {
	if u := decodeUser(l.User); u.Valid() {
		return u
	}
	if l.UserID != "" {
		return &users.User{ID: l.UserID}
	}
	return nil
}

type ProfileResponse struct {
	User *ProfileUser `json:"user"`
}

// ProfileUser mirrors the backend's user document
type ProfileUser struct {
	ID       string  `json:"id,omitempty"`
	MongoID  string  `json:"_id,omitempty"`
	Username string  `json:"username,omitempty"`
	Email    string  `json:"email,omitempty"`
	Name     string  `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// Identity returns the user record without the role
func (p *ProfileUser) Identity() *users.User {
	if p == nil {
		return nil
	}
	id := p.ID
	if id == "" {
		id = p.MongoID
	}
	return &users.User{ID: id, Username: p.Username, Email: p.Email, Name: p.Name}
}

type SignupResponse struct {
	Message string `json:"message,omitempty"`
}

// decodeUser accepts either a user object or a bare identifier string
func decodeUser(raw json.RawMessage) *users.User {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		if strings.Contains(name, "@") {
			return &users.User{Email: name}
		}
		return &users.User{Username: name}
	}

	var pu ProfileUser
	if err := json.Unmarshal(raw, &pu); err != nil {
		return nil
	}
	return pu.Identity()
}
