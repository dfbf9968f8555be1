package auth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Satisfies(t *testing.T) {
	tests := []struct {
		name     string
		have     Role
		required Role
		want     bool
	}{
		{name: "admin meets admin", have: RoleAdmin, required: RoleAdmin, want: true},
		{name: "admin meets member", have: RoleAdmin, required: RoleMember, want: true},
		{name: "member does not meet admin", have: RoleMember, required: RoleAdmin, want: false},
		{name: "case insensitive", have: Role(" Admin "), required: RoleAdmin, want: true},
		{name: "unknown role exact match", have: Role("editor"), required: Role("editor"), want: true},
		{name: "unknown role vs admin", have: Role("editor"), required: RoleAdmin, want: false},
		{name: "empty role", have: "", required: RoleMember, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.have.Satisfies(tt.required))
		})
	}
}

func TestUserSummary_BackendPayload(t *testing.T) {
	raw := `{"id": 7, "nom": "Alice", "email": "alice@example.com", "equipe": "A", "type": "admin"}`

	var u UserSummary
	require.NoError(t, json.Unmarshal([]byte(raw), &u))

	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "A", u.Team)
	assert.True(t, u.IsAdmin())
}

func TestSession_LoggedIn(t *testing.T) {
	assert.False(t, Session{}.LoggedIn())
	assert.True(t, Session{Token: "abc"}.LoggedIn())
}
