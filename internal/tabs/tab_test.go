package tabs

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/codetabs/internal/highlight"
)

func tokens(s string) *highlight.Code {
	return &highlight.Code{
		Spans: []highlight.Span{
			&highlight.TokenSpan{
				Tokens: []chroma.Token{{Type: chroma.Text, Value: s}},
			},
		},
	}
}

// twoTabs is the A/B collection with A selected.
func twoTabs(t *testing.T) Set {
	s, err := New(
		Tab{Title: "A", Tokens: tokens("t1"), Selected: true},
		Tab{Title: "B", Tokens: tokens("t2")},
	)
	require.NoError(t, err)
	return s
}

func selectedFlags(s Set) []bool {
	flags := make([]bool, s.Len())
	for i, t := range s.Tabs() {
		flags[i] = t.Selected
	}
	return flags
}

func assertOneSelected(t *testing.T, s Set) {
	t.Helper()

	var n int
	for _, tab := range s.Tabs() {
		if tab.Selected {
			n++
		}
	}
	assert.Equal(t, 1, n, "exactly one tab must be selected: %v", selectedFlags(s))
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give []Tab
		want []bool
	}{
		{
			desc: "first selected by default",
			give: []Tab{{Title: "a"}, {Title: "b"}, {Title: "c"}},
			want: []bool{true, false, false},
		},
		{
			desc: "explicit selection",
			give: []Tab{{Title: "a"}, {Title: "b", Selected: true}},
			want: []bool{false, true},
		},
		{
			desc: "single tab",
			give: []Tab{{Title: "a"}},
			want: []bool{true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			s, err := New(tt.give...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, selectedFlags(s))
			assertOneSelected(t, s)
		})
	}
}

func TestNew_errors(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		_, err := New()
		assert.ErrorIs(t, err, ErrNoTabs)
	})

	t.Run("multiple selected", func(t *testing.T) {
		t.Parallel()

		_, err := New(
			Tab{Title: "a", Selected: true},
			Tab{Title: "b"},
			Tab{Title: "c", Selected: true},
		)
		assert.ErrorIs(t, err, ErrMultipleSelected)
		assert.ErrorContains(t, err, `"a" and "c"`)
	})
}

func TestNew_copiesInput(t *testing.T) {
	t.Parallel()

	give := []Tab{{Title: "a"}, {Title: "b"}}
	s, err := New(give...)
	require.NoError(t, err)

	give[0].Title = "changed"
	assert.Equal(t, "a", s.At(0).Title)
	assert.False(t, give[0].Selected, "input must not be modified")
}

func TestSet_Select(t *testing.T) {
	t.Parallel()

	s := twoTabs(t)
	got := s.Select(1)

	assert.Equal(t, []bool{false, true}, selectedFlags(got))
	assert.Equal(t, "A", got.At(0).Title)
	assert.Equal(t, "B", got.At(1).Title)

	idx, tab := got.Selected()
	assert.Equal(t, 1, idx)
	assert.Equal(t, tokens("t2"), tab.Tokens)

	// The original is unchanged.
	assert.Equal(t, []bool{true, false}, selectedFlags(s))
}

func TestSet_Select_outOfRange(t *testing.T) {
	t.Parallel()

	s := twoTabs(t)
	for _, idx := range []int{-1, 2, 5} {
		got := s.Select(idx)
		assert.Equal(t, s, got, "Select(%d)", idx)
		assertOneSelected(t, got)
	}
}

func TestSet_Select_idempotent(t *testing.T) {
	t.Parallel()

	s := twoTabs(t)
	for i := range s.Len() {
		once := s.Select(i)
		twice := once.Select(i)
		assert.Equal(t, once, twice, "Select(%d)", i)
	}
}

func TestSet_Select_invariant(t *testing.T) {
	t.Parallel()

	s, err := New(Tab{Title: "a"}, Tab{Title: "b"}, Tab{Title: "c"}, Tab{Title: "d"})
	require.NoError(t, err)

	// Walk a sequence of valid and invalid selections.
	for _, idx := range []int{2, 9, 0, -3, 3, 3, 1, 4} {
		prev, _ := s.Selected()
		s = s.Select(idx)
		assertOneSelected(t, s)

		got, _ := s.Selected()
		if s.InRange(idx) {
			assert.Equal(t, idx, got)
		} else {
			assert.Equal(t, prev, got)
		}
	}
}

func TestSet_Lookup(t *testing.T) {
	t.Parallel()

	s := twoTabs(t)

	got, err := s.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, selectedFlags(got))

	got, err = s.Lookup(5)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	assert.ErrorContains(t, err, "select 5 of 2")
	assert.Equal(t, s, got)
}

func TestSet_SelectTitle(t *testing.T) {
	t.Parallel()

	s, err := New(
		Tab{Title: "mutations/createProject.ts", ShortTitle: "createProject.ts"},
		Tab{Title: "pages/projects/new.tsx"},
	)
	require.NoError(t, err)

	tests := []struct {
		desc string
		give string
		want int
	}{
		{desc: "title", give: "pages/projects/new.tsx", want: 1},
		{desc: "short title", give: "createProject.ts", want: 0},
		{desc: "unknown", give: "nope.ts", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			got, _ := s.Select(1).Select(0).SelectTitle(tt.give).Selected()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSet_NextPrev(t *testing.T) {
	t.Parallel()

	s, err := New(Tab{Title: "a"}, Tab{Title: "b"}, Tab{Title: "c"})
	require.NoError(t, err)

	idx := func(s Set) int {
		i, _ := s.Selected()
		return i
	}

	assert.Equal(t, 1, idx(s.Next()))
	assert.Equal(t, 0, idx(s.Next().Next().Next()))
	assert.Equal(t, 2, idx(s.Prev()))
	assert.Equal(t, 0, idx(s.Prev().Next()))
}

func TestTab_CompactTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "b.ts", Tab{Title: "a/b.ts", ShortTitle: "b.ts"}.CompactTitle())
	assert.Equal(t, "a/b.ts", Tab{Title: "a/b.ts"}.CompactTitle())
}
