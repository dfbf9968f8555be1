// Package listing filters, sorts and pages collections held client-side,
// such as the student list which the backend returns unpaged.
package listing

import (
	"cmp"
	"slices"
	"strings"
)

// DefaultPageSize is used when a non-positive page size is requested.
const DefaultPageSize = 10

// Filter keeps items for which every non-empty term is a case-insensitive
// substring of the field at the same index returned by fields.
func Filter[T any](items []T, fields func(T) []string, terms ...string) []T {
	needles := make([]string, len(terms))
	active := false
	for i, t := range terms {
		needles[i] = strings.ToLower(strings.TrimSpace(t))
		if needles[i] != "" {
			active = true
		}
	}
	if !active {
		return slices.Clone(items)
	}

	out := make([]T, 0, len(items))
	for _, it := range items {
		if matches(fields(it), needles) {
			out = append(out, it)
		}
	}
	return out
}

func matches(values, needles []string) bool {
	for i, n := range needles {
		if n == "" {
			continue
		}
		if i >= len(values) || !strings.Contains(strings.ToLower(values[i]), n) {
			return false
		}
	}
	return true
}

// SortBy returns a copy of items stably ordered by key.
func SortBy[T any, K cmp.Ordered](items []T, key func(T) K, desc bool) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		c := cmp.Compare(key(a), key(b))
		if desc {
			return -c
		}
		return c
	})
	return out
}

// Page is one page of a client-side listing.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	// StartIndex and EndIndex are 1-based and inclusive; both are zero for
	// an empty listing.
	StartIndex int
	EndIndex   int
}

// Paginate slices items into the requested page. Out-of-range pages are
// clamped to the nearest valid page.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	pages := (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	page = max(1, min(page, pages))

	start := (page - 1) * size
	end := min(start+size, total)

	p := Page[T]{
		Items:      items[start:end:end],
		Page:       page,
		PageSize:   size,
		TotalCount: total,
		TotalPages: pages,
		HasPrev:    page > 1,
		HasNext:    page < pages,
	}
	if total > 0 {
		p.StartIndex = start + 1
		p.EndIndex = end
	}
	return p
}
