package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type person struct {
	Name  string
	Email string
	Team  string
}

func personFields(p person) []string { return []string{p.Name, p.Email, p.Team} }

var people = []person{
	{"Alice", "alice@example.com", "Ops"},
	{"bob", "bob@example.com", ""},
	{"Carol", "carol@corp.io", "Dev"},
	{"alan", "alan@corp.io", "Ops"},
}

func TestFilter(t *testing.T) {
	assert.Len(t, Filter(people, personFields), 4)
	assert.Len(t, Filter(people, personFields, "", " "), 4)

	got := Filter(people, personFields, "AL")
	assert.Equal(t, []person{people[0], people[3]}, got)

	got = Filter(people, personFields, "", "corp")
	assert.Equal(t, []person{people[2], people[3]}, got)

	got = Filter(people, personFields, "a", "", "ops")
	assert.Equal(t, []person{people[0], people[3]}, got)

	// Empty team never matches a team filter.
	assert.Empty(t, Filter(people, personFields, "bob", "", "x"))
}

func TestFilter_DoesNotAlias(t *testing.T) {
	got := Filter(people, personFields)
	got[0].Name = "changed"
	assert.Equal(t, "Alice", people[0].Name)
}

func TestSortBy_Stable(t *testing.T) {
	byTeam := SortBy(people, func(p person) string { return p.Team }, false)
	assert.Equal(t, []string{"bob", "Carol", "Alice", "alan"}, names(byTeam))

	desc := SortBy(people, func(p person) string { return p.Team }, true)
	assert.Equal(t, []string{"Alice", "alan", "Carol", "bob"}, names(desc))

	assert.Equal(t, "Alice", people[0].Name)
}

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i + 1
	}

	p := Paginate(items, 1, 0)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 1, p.StartIndex)
	assert.Equal(t, 10, p.EndIndex)
	assert.False(t, p.HasPrev)
	assert.True(t, p.HasNext)

	p = Paginate(items, 3, 10)
	assert.Equal(t, []int{21, 22, 23}, p.Items)
	assert.Equal(t, 21, p.StartIndex)
	assert.Equal(t, 23, p.EndIndex)
	assert.False(t, p.HasNext)

	p = Paginate(items, 99, 10)
	assert.Equal(t, 3, p.Page)

	p = Paginate(items, -4, 10)
	assert.Equal(t, 1, p.Page)
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]int{}, 2, 5)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.TotalPages)
	assert.Empty(t, p.Items)
	assert.Zero(t, p.StartIndex)
	assert.Zero(t, p.EndIndex)
}

func names(ps []person) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}
