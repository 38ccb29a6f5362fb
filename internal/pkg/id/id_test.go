package id

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAt_SortsByTime(t *testing.T) {
	t0 := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	a := NewAt(t0)
	b := NewAt(t0.Add(time.Millisecond))

	assert.Less(t, a, b)
	parsed, err := ulid.Parse(a)
	require.NoError(t, err)
	assert.True(t, t0.Equal(ulid.Time(parsed.Time())))
}

func TestNew_Unique(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		v := New()
		assert.Len(t, v, 26)
		assert.False(t, seen[v])
		seen[v] = true
	}
}
