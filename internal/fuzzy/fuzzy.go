// Package fuzzy ranks a candidate pool against a typed query by edit
// distance and keeps a wrapping cursor over the ranked result.
package fuzzy

import (
	"slices"

	"github.com/agnivade/levenshtein"
)

// MaxDistance is the largest edit distance a candidate may have and still
// be ranked.
const MaxDistance = 5

type match struct {
	value    string
	distance int
}

// Matcher holds the query, the pool and the ranked view of the pool.
type Matcher struct {
	pool   []string
	query  []rune
	ranked []string
	cursor int
}

// New creates a Matcher over pool and ranks it against the empty query.
func New(pool []string) *Matcher {
	m := &Matcher{pool: slices.Clone(pool)}
	m.rank()
	return m
}

// Rank returns the candidates within MaxDistance of query, ordered by
// ascending distance. Ties keep pool order.
func Rank(query string, pool []string) []string {
	matches := make([]match, 0, len(pool))
	for _, candidate := range pool {
		d := levenshtein.ComputeDistance(query, candidate)
		if d <= MaxDistance {
			matches = append(matches, match{value: candidate, distance: d})
		}
	}

	slices.SortStableFunc(matches, func(a, b match) int {
		return a.distance - b.distance
	})

	ranked := make([]string, len(matches))
	for i, m := range matches {
		ranked[i] = m.value
	}
	return ranked
}

func (m *Matcher) rank() {
	m.ranked = Rank(string(m.query), m.pool)
	m.cursor = 0
}

// Insert appends r to the query and re-ranks.
func (m *Matcher) Insert(r rune) {
	m.query = append(m.query, r)
	m.rank()
}

// Backspace drops the last rune of the query and re-ranks. It is a no-op on
// an empty query.
func (m *Matcher) Backspace() {
	if len(m.query) == 0 {
		return
	}
	m.query = m.query[:len(m.query)-1]
	m.rank()
}

func (m *Matcher) Query() string {
	return string(m.query)
}

// Ranked returns the current ranked view. The slice must not be modified.
func (m *Matcher) Ranked() []string {
	return m.ranked
}

// Cursor returns the highlighted index, or -1 when nothing is ranked.
func (m *Matcher) Cursor() int {
	if len(m.ranked) == 0 {
		return -1
	}
	return m.cursor
}

// Next moves the cursor forward, wrapping to the first entry.
func (m *Matcher) Next() {
	if len(m.ranked) == 0 {
		return
	}
	m.cursor = (m.cursor + 1) % len(m.ranked)
}

// Prev moves the cursor back, wrapping to the last entry.
func (m *Matcher) Prev() {
	if len(m.ranked) == 0 {
		return
	}
	m.cursor = (m.cursor - 1 + len(m.ranked)) % len(m.ranked)
}

// Selection returns the highlighted entry.
func (m *Matcher) Selection() (string, bool) {
	if len(m.ranked) == 0 {
		return "", false
	}
	return m.ranked[m.cursor], true
}
