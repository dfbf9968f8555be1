//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// UserSort orders user listings.
type UserSort string

const (
	UserSortNameAsc  UserSort = "nom_asc"
	UserSortNameDesc UserSort = "nom_desc"
	UserSortDateAsc  UserSort = "date_asc"
	UserSortDateDesc UserSort = "date_desc"
)

// Valid reports whether the sort order is supported by the backend.
func (s UserSort) Valid() bool {
	switch s {
	case UserSortNameAsc, UserSortNameDesc, UserSortDateAsc, UserSortDateDesc:
		return true
	default:
		return false
	}
}

// User is an account record as returned by the user directory.
type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"nom"`
	Email     string     `json:"email"`
	Team      *string    `json:"equipe,omitempty"`
	Type      *string    `json:"type,omitempty"`
	Position  *string    `json:"poste,omitempty"`
	Phone     *string    `json:"telephone,omitempty"`
	CreatedAt *time.Time `json:"date,omitempty"`
	AvatarURL *string    `json:"avatar_url,omitempty"`
	Active    bool       `json:"is_active"`
}

// UsersPage is one page of a user listing.
type UsersPage struct {
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Users []User `json:"users"`
}

// UserListOptions controls filtering and paging for user listings.
type UserListOptions struct {
	Name  string
	Email string
	Team  string
	Type  string
	Sort  UserSort
	Page  int
	Limit int
}

// Normalize applies defaults and clamps paging to the backend's bounds.
func (o UserListOptions) Normalize() UserListOptions {
	o.Name = strings.TrimSpace(o.Name)
	o.Email = strings.TrimSpace(o.Email)
	o.Team = strings.TrimSpace(o.Team)
	o.Type = strings.TrimSpace(o.Type)
	o.Sort = UserSort(strings.ToLower(strings.TrimSpace(string(o.Sort))))
	if !o.Sort.Valid() {
		o.Sort = UserSortNameAsc
	}
	o.Page, o.Limit = clampPaging(o.Page, o.Limit)
	return o
}

// Query encodes the options as backend query parameters.
func (o UserListOptions) Query() url.Values {
	o = o.Normalize()
	q := url.Values{}
	for k, v := range map[string]string{"nom": o.Name, "email": o.Email, "equipe": o.Team, "type": o.Type} {
		if v != "" {
			q.Set(k, v)
		}
	}
	q.Set("sort", string(o.Sort))
	q.Set("page", strconv.Itoa(o.Page))
	q.Set("limit", strconv.Itoa(o.Limit))
	return q
}
