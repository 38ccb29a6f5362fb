// Package filter composes independently optional predicates into an AND
// chain and applies it lazily to a sequence of candidates.
package filter

import (
	"fmt"
	"iter"
	"strings"

	"github.com/search-team-api/internal/domain"
	"golang.org/x/text/cases"
)

// Criterion is one named constraint over a candidate.
type Criterion[T any] struct {
	Name  string
	Match func(T) bool
}

// Chain is an ordered list of present criteria. The zero value matches
// every candidate.
type Chain[T any] struct {
	criteria []Criterion[T]
}

// When appends pred under name only if the criterion is present. Absent
// criteria impose no restriction.
func (c *Chain[T]) When(present bool, name string, pred func(T) bool) *Chain[T] {
	if present {
		c.criteria = append(c.criteria, Criterion[T]{Name: name, Match: pred})
	}
	return c
}

func (c *Chain[T]) Len() int { return len(c.criteria) }

// Names lists the active criteria in evaluation order.
func (c *Chain[T]) Names() []string {
	names := make([]string, len(c.criteria))
	for i, cr := range c.criteria {
		names[i] = cr.Name
	}
	return names
}

// Matches ANDs the chain and stops at the first failing criterion.
func (c *Chain[T]) Matches(x T) bool {
	for _, cr := range c.criteria {
		if !cr.Match(x) {
			return false
		}
	}
	return true
}

// Filter yields the candidates of seq that match, in input order.
func (c *Chain[T]) Filter(seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for x := range seq {
			if c.Matches(x) && !yield(x) {
				return
			}
		}
	}
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether substr is within s under Unicode case folding.
func ContainsFold(s, substr string) bool {
	return strings.Contains(fold(s), fold(substr))
}

// AnyContainsFold reports whether any needle is a case-insensitive
// substring of s.
func AnyContainsFold(s string, needles []string) bool {
	if len(needles) == 0 {
		return false
	}
	hay := fold(s)
	for _, n := range needles {
		if strings.Contains(hay, fold(n)) {
			return true
		}
	}
	return false
}

// NonBlank drops empty and whitespace-only entries. A list with nothing
// left is treated as an absent criterion by callers.
func NonBlank(list []string) []string {
	var out []string
	for _, s := range list {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// Paginate skips the first skip matches and collects at most limit more.
// A skip beyond the end or a zero limit gives an empty, non-nil slice.
func Paginate[T any](seq iter.Seq[T], skip, limit int) ([]T, error) {
	if skip < 0 {
		return nil, fmt.Errorf("skip must not be negative: %w", domain.ErrBadRequest)
	}
	if limit < 0 {
		return nil, fmt.Errorf("limit must not be negative: %w", domain.ErrBadRequest)
	}
	out := make([]T, 0, min(limit, 64))
	if limit == 0 {
		return out, nil
	}
	i := 0
	for x := range seq {
		if i >= skip {
			out = append(out, x)
			if len(out) == limit {
				break
			}
		}
		i++
	}
	return out, nil
}
