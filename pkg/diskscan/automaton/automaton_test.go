package automaton_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/mdemirhan/dux/pkg/diskscan/automaton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomaton_FindMatchesNaiveReference(t *testing.T) {
	keys := map[string]string{
		"he":  "he",
		"she": "she",
		"his": "his",
		"hers": "hers",
	}

	a := automaton.New()
	for k, v := range keys {
		require.NoError(t, a.AddKey([]byte(k), v))
	}
	a.Finalize()

	text := "ushers"
	matches, err := a.Find([]byte(text))
	require.NoError(t, err)

	got := map[string]bool{}
	for _, m := range matches {
		got[m.Value.(string)] = true
	}

	want := map[string]bool{}
	for k := range keys {
		if strings.Contains(text, k) {
			want[k] = true
		}
	}
	assert.Equal(t, want, got)
}

func TestAutomaton_EndIndexIsLastByteOfMatch(t *testing.T) {
	a := automaton.New()
	require.NoError(t, a.AddKey([]byte(".log"), "endswith:.log"))
	a.Finalize()

	text := "/r/tmp/a.log"
	matches, err := a.Find([]byte(text))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, len(text)-1, matches[0].EndIndex)
}

func TestAutomaton_AddKeyAfterFinalizeFails(t *testing.T) {
	a := automaton.New()
	a.Finalize()
	err := a.AddKey([]byte("x"), 1)
	assert.ErrorIs(t, err, automaton.ErrBuildLocked)
}

func TestAutomaton_FindBeforeFreezeFails(t *testing.T) {
	a := automaton.New()
	_, err := a.Find([]byte("x"))
	assert.ErrorIs(t, err, automaton.ErrQueryBeforeFreeze)
}

func TestAutomaton_InsertionOrderDoesNotAffectMatches(t *testing.T) {
	text := "/r/node_modules/react/index.js"
	keys := []string{"node_modules", "index.js", ".js"}

	var first []int
	for _, order := range [][]string{
		{keys[0], keys[1], keys[2]},
		{keys[2], keys[0], keys[1]},
		{keys[1], keys[2], keys[0]},
	} {
		a := automaton.New()
		for _, k := range order {
			require.NoError(t, a.AddKey([]byte(k), k))
		}
		a.Finalize()

		matches, err := a.Find([]byte(text))
		require.NoError(t, err)

		ends := make([]int, len(matches))
		for i, m := range matches {
			ends[i] = m.EndIndex
		}
		sort.Ints(ends)

		if first == nil {
			first = ends
		} else {
			assert.Equal(t, first, ends)
		}
	}
}
