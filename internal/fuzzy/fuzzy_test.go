package fuzzy

import (
	"reflect"
	"testing"
)

func TestRank(t *testing.T) {
	tests := []struct {
		name  string
		query string
		pool  []string
		want  []string
	}{
		{
			name:  "ascending distance",
			query: "Alph",
			pool:  []string{"Alpha", "Beta", "Alphb"},
			want:  []string{"Alpha", "Alphb", "Beta"},
		},
		{
			name:  "ties keep pool order",
			query: "ab",
			pool:  []string{"xb", "ax", "ab"},
			want:  []string{"ab", "xb", "ax"},
		},
		{
			name:  "distance above threshold dropped",
			query: "a",
			pool:  []string{"abcdef", "abcdefg", "a"},
			want:  []string{"a", "abcdef"},
		},
		{
			name:  "empty query keeps short names",
			query: "",
			pool:  []string{"chill", "workout mix"},
			want:  []string{"chill"},
		},
		{
			name:  "empty pool",
			query: "x",
			pool:  nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(tt.query, tt.pool)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Rank(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestRankDeterministic(t *testing.T) {
	pool := []string{"Alpha", "Beta", "Alphb"}
	first := Rank("Alph", pool)

	for i := 0; i < 20; i++ {
		if got := Rank("Alph", pool); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: Rank() = %v, want %v", i, got, first)
		}
	}
}

func typeQuery(m *Matcher, q string) {
	for _, r := range q {
		m.Insert(r)
	}
}

func TestMatcherCursorWraps(t *testing.T) {
	m := New([]string{"Alpha", "Beta", "Alphb"})
	typeQuery(m, "Alph")

	if sel, _ := m.Selection(); sel != "Alpha" {
		t.Fatalf("initial Selection() = %q, want Alpha", sel)
	}

	m.Next()
	m.Next()
	if sel, _ := m.Selection(); sel != "Beta" {
		t.Errorf("Selection() after 2x Next = %q, want Beta", sel)
	}

	m.Next()
	if m.Cursor() != 0 {
		t.Errorf("Next() past the end: Cursor() = %d, want 0", m.Cursor())
	}

	m.Prev()
	if m.Cursor() != 2 {
		t.Errorf("Prev() from 0: Cursor() = %d, want 2", m.Cursor())
	}
}

func TestMatcherEditResetsCursor(t *testing.T) {
	m := New([]string{"rock", "rocks", "pop"})
	typeQuery(m, "roc")
	m.Next()

	m.Insert('k')
	if m.Cursor() != 0 {
		t.Errorf("Cursor() after Insert = %d, want 0", m.Cursor())
	}
	if m.Query() != "rock" {
		t.Errorf("Query() = %q, want rock", m.Query())
	}

	m.Next()
	m.Backspace()
	if m.Cursor() != 0 {
		t.Errorf("Cursor() after Backspace = %d, want 0", m.Cursor())
	}
	if m.Query() != "roc" {
		t.Errorf("Query() = %q, want roc", m.Query())
	}
}

func TestMatcherEmpty(t *testing.T) {
	m := New([]string{"abcdefghijk"})

	if _, ok := m.Selection(); ok {
		t.Error("Selection() on empty ranking should report false")
	}
	if m.Cursor() != -1 {
		t.Errorf("Cursor() = %d, want -1", m.Cursor())
	}

	m.Next()
	m.Prev()
	m.Backspace()

	if _, ok := m.Selection(); ok {
		t.Error("Selection() should still report false")
	}
}

func TestMatcherUnicodeBackspace(t *testing.T) {
	m := New([]string{"café"})
	typeQuery(m, "café")
	m.Backspace()

	if m.Query() != "caf" {
		t.Errorf("Query() = %q, want caf", m.Query())
	}
}
