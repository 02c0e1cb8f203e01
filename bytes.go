package acdat

import (
	"fmt"

	"github.com/dartslab/acdat/dat"
)

// byteCode is the fixed symbol encoding of the byte-keyed variant:
// code = b + 1, so that 0 stays reserved for the synthetic accept edge.
func byteCode(b byte) int32 { return int32(b) + 1 }

const byteSigma = 256

// ByteAutomaton is the byte-keyed twin of Automaton. It matches raw
// byte sequences with a fixed 256-symbol alphabet and shares the whole
// construction and query machinery; only the symbol extraction differs.
// Hit offsets count bytes.
type ByteAutomaton[V any] struct {
	d      *dat.Automaton
	values []V
}

// BuildBytes constructs a byte-keyed automaton from parallel keyword
// and value slices.
func BuildBytes[V any](keys [][]byte, values []V) (*ByteAutomaton[V], error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("acdat: %d keys but %d values", len(keys), len(values))
	}
	arena := newTrieArena()
	lengths := make([]int32, len(keys))
	codes := make([]int32, 0, 16)
	for i, key := range keys {
		codes = codes[:0]
		for _, c := range key {
			codes = append(codes, byteCode(c))
		}
		lengths[i] = int32(len(key))
		arena.insert(codes, int32(i))
	}
	b := newBuilder(arena, len(keys))
	b.auto.Sigma = byteSigma
	b.auto.Lengths = lengths
	d, err := b.build()
	if err != nil {
		return nil, err
	}
	return &ByteAutomaton[V]{d: d, values: values}, nil
}

// LoadBytes hydrates a byte-keyed automaton from a state blob produced
// by EncodeState instead of rebuilding it from keywords. Values are
// supplied by the caller; the blob carries only the structural arrays.
func LoadBytes[V any](state []byte, values []V) (*ByteAutomaton[V], error) {
	d, err := dat.Decode(state)
	if err != nil {
		return nil, err
	}
	if d.Keywords() != len(values) {
		return nil, fmt.Errorf("acdat: state has %d keywords but %d values given", d.Keywords(), len(values))
	}
	return &ByteAutomaton[V]{d: d, values: values}, nil
}

// EncodeState serializes the structural arrays (not the values).
func (a *ByteAutomaton[V]) EncodeState() []byte { return a.d.Encode() }

// Size returns the number of keywords the automaton was built from.
func (a *ByteAutomaton[V]) Size() int { return len(a.values) }

// Values returns a copy of the value table, indexed by keyword.
func (a *ByteAutomaton[V]) Values() []V {
	values := make([]V, len(a.values))
	copy(values, a.values)
	return values
}

// Stats reports double-array density metrics.
func (a *ByteAutomaton[V]) Stats() dat.Stats { return a.d.Stats() }

// Get looks up the value stored for an exact keyword.
func (a *ByteAutomaton[V]) Get(key []byte) (V, bool) {
	idx := a.exactIndex(key)
	if idx < 0 {
		var zero V
		return zero, false
	}
	return a.values[idx], true
}

// Set replaces the value of an existing keyword. It reports false if
// key was not part of the built keyword set.
func (a *ByteAutomaton[V]) Set(key []byte, value V) bool {
	idx := a.exactIndex(key)
	if idx < 0 {
		return false
	}
	a.values[idx] = value
	return true
}

func (a *ByteAutomaton[V]) exactIndex(key []byte) int32 {
	s := a.d.Root
	for _, c := range key {
		t, ok := a.d.Transition(s, byteCode(c))
		if !ok {
			return -1
		}
		s = t
	}
	if idx, ok := a.d.Terminal(s); ok {
		return idx
	}
	return -1
}

// PartialMatch scans text and returns every keyword occurrence,
// overlapping ones included, ordered by end position. Offsets count
// bytes.
func (a *ByteAutomaton[V]) PartialMatch(text []byte) []Hit[V] {
	var hits []Hit[V]
	s := a.d.Root
	for i, c := range text {
		s = a.d.NextState(s, byteCode(c))
		for _, idx := range a.d.Output[s] {
			hits = append(hits, Hit[V]{
				Begin: i + 1 - int(a.d.Lengths[idx]),
				End:   i + 1,
				Index: int(idx),
				Value: a.values[idx],
			})
		}
	}
	return hits
}

// Matches reports whether text contains at least one keyword,
// short-circuiting on the first hit.
func (a *ByteAutomaton[V]) Matches(text []byte) bool {
	s := a.d.Root
	for _, c := range text {
		s = a.d.NextState(s, byteCode(c))
		if len(a.d.Output[s]) > 0 {
			return true
		}
	}
	return false
}

// CommonPrefixSearch returns the indices of all keywords that are
// prefixes of key, shortest first.
func (a *ByteAutomaton[V]) CommonPrefixSearch(key []byte) []int {
	var result []int
	s := a.d.Root
	for _, c := range key {
		t, ok := a.d.Transition(s, byteCode(c))
		if !ok {
			return result
		}
		s = t
		if idx, ok := a.d.Terminal(s); ok {
			result = append(result, int(idx))
		}
	}
	return result
}
