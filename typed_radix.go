package depsolver

import (
	"github.com/armon/go-radix"
)

// Typed wrapper around the radix tree that backs the dependency graph.
// It keeps type assertions out of the rest of the code, and its in-order
// walk supplies the stable, sorted iteration that package-index
// assignment and the solver's preference heuristic rely on.

type packageTrie struct {
	t *radix.Tree
}

func newPackageTrie() packageTrie {
	return packageTrie{
		t: radix.New(),
	}
}

// Get is used to look up a specific key, returning the entry and whether
// it was found.
func (t packageTrie) Get(s string) (*packageEntry, bool) {
	if v, has := t.t.Get(s); has {
		return v.(*packageEntry), has
	}
	return nil, false
}

// Insert adds a new entry to the trie, returning whether a previous entry
// was displaced.
func (t packageTrie) Insert(s string, pe *packageEntry) bool {
	_, had := t.t.Insert(s, pe)
	return had
}

// Len returns the number of packages in the trie.
func (t packageTrie) Len() int {
	return t.t.Len()
}

// Walk visits every entry in lexical key order. Returning true from the
// callback terminates the walk.
func (t packageTrie) Walk(fn func(name string, pe *packageEntry) bool) {
	t.t.Walk(func(s string, v interface{}) bool {
		return fn(s, v.(*packageEntry))
	})
}
