// Package trie implements a 256-wide prefix trie answering "which stored
// keys are prefixes of the input?". It shares the automaton package's
// two-phase build/freeze lifecycle but carries no failure or
// dictionary-suffix links, since prefix matching only ever walks forward
// from the root.
package trie

import "errors"

const none = -1

// ErrBuildLocked is returned by AddKey after Finalize has been called.
var ErrBuildLocked = errors.New("trie: build locked after finalize")

// ErrQueryBeforeFreeze is returned by Find before Finalize has been called.
var ErrQueryBeforeFreeze = errors.New("trie: query before freeze")

type node struct {
	children [256]int32
	output   int32
}

func newNode() node {
	n := node{output: none}
	for i := range n.children {
		n.children[i] = none
	}
	return n
}

// Trie is a set of byte-string keys mapped to arbitrary values.
type Trie struct {
	nodes  []node
	values []any
	frozen bool
}

// New returns an empty, unfrozen trie.
func New() *Trie {
	return &Trie{nodes: []node{newNode()}}
}

// AddKey inserts key with the given value.
func (t *Trie) AddKey(key []byte, value any) error {
	if t.frozen {
		return ErrBuildLocked
	}
	cur := int32(0)
	for _, b := range key {
		child := t.nodes[cur].children[b]
		if child == none {
			t.nodes = append(t.nodes, newNode())
			child = int32(len(t.nodes) - 1)
			t.nodes[cur].children[b] = child
		}
		cur = child
	}
	t.values = append(t.values, value)
	t.nodes[cur].output = int32(len(t.values) - 1)
	return nil
}

// Finalize locks the trie against further AddKey calls. Idempotent.
func (t *Trie) Finalize() {
	t.frozen = true
}

// Find walks text from the root and returns the value of every stored key
// that is a prefix of text, in the order their prefixes are consumed
// (shortest first). It stops at the first missing edge.
func (t *Trie) Find(text []byte) ([]any, error) {
	if !t.frozen {
		return nil, ErrQueryBeforeFreeze
	}

	var values []any
	cur := int32(0)
	for _, b := range text {
		if t.nodes[cur].output != none {
			values = append(values, t.values[t.nodes[cur].output])
		}
		child := t.nodes[cur].children[b]
		if child == none {
			return values, nil
		}
		cur = child
	}
	if t.nodes[cur].output != none {
		values = append(values, t.values[t.nodes[cur].output])
	}
	return values, nil
}
