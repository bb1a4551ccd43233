package trie_test

import (
	"testing"

	"github.com/mdemirhan/dux/pkg/diskscan/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrie_FindReturnsAllPrefixMatches(t *testing.T) {
	tr := trie.New()
	require.NoError(t, tr.AddKey([]byte("homebrew"), "homebrew"))
	require.NoError(t, tr.AddKey([]byte("home"), "home"))
	tr.Finalize()

	values, err := tr.Find([]byte("homebrewcellar"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{"home", "homebrew"}, values)
}

func TestTrie_NoMatchStopsAtFirstMissingEdge(t *testing.T) {
	tr := trie.New()
	require.NoError(t, tr.AddKey([]byte("cache"), "cache"))
	tr.Finalize()

	values, err := tr.Find([]byte("cold"))
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestTrie_AddKeyAfterFinalizeFails(t *testing.T) {
	tr := trie.New()
	tr.Finalize()
	err := tr.AddKey([]byte("x"), 1)
	assert.ErrorIs(t, err, trie.ErrBuildLocked)
}

func TestTrie_FindBeforeFreezeFails(t *testing.T) {
	tr := trie.New()
	_, err := tr.Find([]byte("x"))
	assert.ErrorIs(t, err, trie.ErrQueryBeforeFreeze)
}
