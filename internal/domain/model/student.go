//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"net/url"
	"strconv"
	"time"
)

const defaultStudentLimit = 50

// Student is a student record tracked by the backend.
type Student struct {
	ID        int64      `json:"id"`
	LastName  string     `json:"nom"`
	FirstName string     `json:"prenom"`
	Address   *string    `json:"adresse,omitempty"`
	Pending   bool       `json:"en_attente"`
	Active    bool       `json:"actif"`
	Closed    bool       `json:"ferme"`
	NoteID    *int64     `json:"note_id,omitempty"`
	CreatedBy int64      `json:"created_by"`
	UpdatedBy *int64     `json:"updated_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// FullName returns "FirstName LastName".
func (s Student) FullName() string {
	switch {
	case s.FirstName == "":
		return s.LastName
	case s.LastName == "":
		return s.FirstName
	default:
		return s.FirstName + " " + s.LastName
	}
}

// StudentListOptions pages the student listing by offset.
type StudentListOptions struct {
	Skip  int
	Limit int
}

// Query encodes the options as backend query parameters.
func (o StudentListOptions) Query() url.Values {
	if o.Skip < 0 {
		o.Skip = 0
	}
	if o.Limit <= 0 {
		o.Limit = defaultStudentLimit
	}
	q := url.Values{}
	q.Set("skip", strconv.Itoa(o.Skip))
	q.Set("limit", strconv.Itoa(o.Limit))
	return q
}
