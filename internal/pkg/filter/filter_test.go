package filter

import (
	"slices"
	"strings"
	"testing"

	"github.com/search-team-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	name string
	n    int
}

var items = []item{
	{"Alpha", 1}, {"beta", 2}, {"ALPHABET", 3}, {"gamma", 4}, {"alphorn", 5},
}

func TestChain_EmptyIsIdentity(t *testing.T) {
	var c Chain[item]
	got := slices.Collect(c.Filter(slices.Values(items)))

	assert.Equal(t, items, got)
	assert.Zero(t, c.Len())
}

func TestChain_WhenSkipsAbsentCriteria(t *testing.T) {
	var c Chain[item]
	c.When(false, "never", func(item) bool { return false }).
		When(true, "even", func(x item) bool { return x.n%2 == 0 })

	assert.Equal(t, []string{"even"}, c.Names())
	assert.Equal(t, []item{{"beta", 2}, {"gamma", 4}}, slices.Collect(c.Filter(slices.Values(items))))
}

func TestChain_ShortCircuits(t *testing.T) {
	calls := 0
	var c Chain[item]
	c.When(true, "first", func(item) bool { return false }).
		When(true, "second", func(item) bool { calls++; return true })

	assert.False(t, c.Matches(items[0]))
	assert.Zero(t, calls)
}

func TestChain_FilterIsIdempotentAndOrderPreserving(t *testing.T) {
	var c Chain[item]
	c.When(true, "name", func(x item) bool { return ContainsFold(x.name, "alph") })

	once := slices.Collect(c.Filter(slices.Values(items)))
	twice := slices.Collect(c.Filter(slices.Values(once)))

	assert.Equal(t, []item{{"Alpha", 1}, {"ALPHABET", 3}, {"alphorn", 5}}, once)
	assert.Equal(t, once, twice)
}

func TestChain_FilterIsLazy(t *testing.T) {
	pulled := 0
	src := func(yield func(item) bool) {
		for _, x := range items {
			pulled++
			if !yield(x) {
				return
			}
		}
	}
	var c Chain[item]
	for range c.Filter(src) {
		break
	}
	assert.Equal(t, 1, pulled)
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("bob_ALICE", "alice"))
	assert.True(t, ContainsFold("École Team", "éCOLE"))
	assert.True(t, ContainsFold("anything", ""))
	assert.False(t, ContainsFold("bob", "alice"))
}

func TestAnyContainsFold(t *testing.T) {
	assert.True(t, AnyContainsFold("Frontend", []string{"back", "FRONT"}))
	assert.False(t, AnyContainsFold("Frontend", []string{"back", "ops"}))
	assert.False(t, AnyContainsFold("Frontend", nil))
}

func TestNonBlank(t *testing.T) {
	assert.Equal(t, []string{"a", " b "}, NonBlank([]string{"", "a", "  ", " b "}))
	assert.Empty(t, NonBlank([]string{"", "\t"}))
}

func TestPaginate(t *testing.T) {
	seq := slices.Values(items)

	got, err := Paginate(seq, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []item{{"beta", 2}, {"ALPHABET", 3}}, got)

	got, err = Paginate(seq, 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = Paginate(seq, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Paginate(seq, 3, 100)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestPaginate_NegativeIsBadRequest(t *testing.T) {
	_, err := Paginate(slices.Values(items), -1, 10)
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = Paginate(slices.Values(items), 0, -1)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestPaginate_AppliesAfterFilter(t *testing.T) {
	var c Chain[item]
	c.When(true, "name", func(x item) bool { return strings.HasPrefix(strings.ToLower(x.name), "alph") })

	got, err := Paginate(c.Filter(slices.Values(items)), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []item{{"ALPHABET", 3}, {"alphorn", 5}}, got)
}
