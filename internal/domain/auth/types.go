// Package auth contains domain-level types for the client-side session.
// It is pure and free of storage/transport concerns.
package auth

import "strings"

// Role is the coarse authorization tag carried by the user summary.
// It is used for UI gating only; the backend re-authorizes every call.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Storage keys used to persist the session.
const (
	TokenKey = "auth_token"
	UserKey  = "auth_user"
)

// Normalize returns the canonical lower-case form of the role.
func (r Role) Normalize() Role {
	return Role(strings.ToLower(strings.TrimSpace(string(r))))
}

// Satisfies reports whether r meets the required role.
// Role hierarchy: Member < Admin. Unknown roles satisfy nothing but themselves.
func (r Role) Satisfies(required Role) bool {
	hierarchy := map[Role]int{
		RoleMember: 1,
		RoleAdmin:  2,
	}

	have, haveOK := hierarchy[r.Normalize()]
	want, wantOK := hierarchy[required.Normalize()]
	if !haveOK || !wantOK {
		return r.Normalize() == required.Normalize()
	}
	return have >= want
}

// UserSummary is the user record returned by the backend at login.
// Field names follow the backend's JSON payload.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"nom"`
	Email string `json:"email,omitempty"`
	Team  string `json:"equipe,omitempty"`
	Role  Role   `json:"type"`
}

// IsAdmin reports whether the cached role is admin.
func (u UserSummary) IsAdmin() bool { return u.Role.Normalize() == RoleAdmin }

// Session is the client-held authentication state.
type Session struct {
	Token string       `json:"token"`
	User  *UserSummary `json:"user,omitempty"`
}

// LoggedIn reports whether the session carries a token.
func (s Session) LoggedIn() bool { return s.Token != "" }
