//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// NoteSort orders note listings by creation date.
type NoteSort string

const (
	NoteSortDateDesc NoteSort = "date_desc"
	NoteSortDateAsc  NoteSort = "date_asc"
)

// Valid reports whether the sort order is supported by the backend.
func (s NoteSort) Valid() bool {
	return s == NoteSortDateDesc || s == NoteSortDateAsc
}

// Note is a shared note as returned by the backend.
type Note struct {
	ID        int64      `json:"id"`
	Title     string     `json:"titre"`
	Content   string     `json:"contenu"`
	Team      *string    `json:"equipe,omitempty"`
	Category  *string    `json:"categorie,omitempty"`
	Priority  *string    `json:"priorite,omitempty"`
	Summary   *string    `json:"resume_ia,omitempty"`
	Likes     int        `json:"likes"`
	Views     int        `json:"nb_vues"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Author    *User      `json:"auteur,omitempty"`
}

// AuthorName returns the author's display name, or "" when unknown.
func (n Note) AuthorName() string {
	if n.Author == nil {
		return ""
	}
	return n.Author.Name
}

// NotesPage is one page of a note listing.
type NotesPage struct {
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Notes []Note `json:"notes"`
}

// NoteListOptions controls filtering and paging for note listings.
// Search matches title or content; Author matches the author's name.
type NoteListOptions struct {
	Search string
	Author string
	Sort   NoteSort
	Page   int
	Limit  int
}

// Normalize applies defaults and clamps paging to the backend's bounds.
func (o NoteListOptions) Normalize() NoteListOptions {
	o.Search = strings.TrimSpace(o.Search)
	o.Author = strings.TrimSpace(o.Author)
	o.Sort = NoteSort(strings.ToLower(strings.TrimSpace(string(o.Sort))))
	if !o.Sort.Valid() {
		o.Sort = NoteSortDateDesc
	}
	o.Page, o.Limit = clampPaging(o.Page, o.Limit)
	return o
}

// Query encodes the options as backend query parameters.
func (o NoteListOptions) Query() url.Values {
	o = o.Normalize()
	q := url.Values{}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Author != "" {
		q.Set("author", o.Author)
	}
	q.Set("sort", string(o.Sort))
	q.Set("page", strconv.Itoa(o.Page))
	q.Set("limit", strconv.Itoa(o.Limit))
	return q
}

func clampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}
	return page, limit
}
