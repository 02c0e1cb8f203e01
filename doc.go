/*
Package acdat implements multi-pattern string matching with an
Aho-Corasick automaton compacted into a double-array trie (DAT).

Construction takes a finite keyword set (strings or byte slices) with
one payload value per keyword, builds an intermediate trie, places it
into the classic base/check double array, and derives failure links and
merged output sets by breadth-first traversal. The result is a frozen
automaton answering exact-match lookups in O(len(key)) and reporting
every keyword occurrence in arbitrary input in a single left-to-right
pass without backtracking.

Character-keyed automata map runes to dense symbol codes, so the double
array stays compact regardless of which scripts the keywords use.
Byte-keyed automata work on raw bytes and can additionally be hydrated
from a previously serialized state (see package dat for the format and
package store for a bbolt-backed container).

A built automaton is immutable apart from its value table: concurrent
queries from any number of goroutines are safe without locking, while
callers mixing Set with concurrent reads must synchronize themselves.

Further Reading

	https://dl.acm.org/doi/10.1145/360825.360855   (Aho, Corasick 1975)
	https://doi.org/10.1016/0020-0190(89)90130-7   (Aoe, double-array structure)
*/
package acdat

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'acdat'
func tracer() tracing.Trace {
	return tracing.Select("acdat")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
