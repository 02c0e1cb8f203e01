package acdat

import (
	"fmt"
	"sort"

	"github.com/dartslab/acdat/dat"
)

// Hit is one keyword occurrence reported by a partial-match scan.
// Begin/End span the match in the scanned input, half-open, counted in
// the automaton's symbols (runes for Automaton, bytes for
// ByteAutomaton).
type Hit[V any] struct {
	Begin int
	End   int
	Index int
	Value V
}

// Automaton is a character-keyed Aho-Corasick double-array automaton.
// Runes are translated to dense symbol codes, so the double array stays
// compact for any mix of scripts.
//
// The structure is immutable after construction; Set only replaces
// entries of the value table. Concurrent queries need no locking,
// callers combining Set with concurrent reads synchronize themselves.
type Automaton[V any] struct {
	d      *dat.Automaton
	values []V
}

// Build constructs an automaton from parallel keyword and value slices.
// Keyword i gets insertion index i; a duplicate keyword re-marks the
// same terminal, and its latest index wins for exact lookups.
func Build[V any](keys []string, values []V) (*Automaton[V], error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("acdat: %d keys but %d values", len(keys), len(values))
	}
	arena := newTrieArena()
	var alphabet dat.PagedRuneMap
	lengths := make([]int32, len(keys))
	var nextDense uint16
	codes := make([]int32, 0, 16)
	for i, key := range keys {
		codes = codes[:0]
		for _, r := range key {
			dense := alphabet.Dense(r)
			if dense == 0 {
				if nextDense == ^uint16(0) {
					return nil, fmt.Errorf("acdat: alphabet exceeds %d distinct symbols", ^uint16(0))
				}
				nextDense++
				dense = nextDense
				alphabet.Set(r, dense)
			}
			codes = append(codes, int32(dense))
		}
		lengths[i] = int32(len(codes))
		arena.insert(codes, int32(i))
	}
	b := newBuilder(arena, len(keys))
	b.auto.Map = alphabet
	b.auto.Sigma = int32(nextDense)
	b.auto.Lengths = lengths
	d, err := b.build()
	if err != nil {
		return nil, err
	}
	return &Automaton[V]{d: d, values: values}, nil
}

// BuildKeys constructs an automaton whose values default to the
// keywords themselves.
func BuildKeys(keys []string) (*Automaton[string], error) {
	return Build(keys, keys)
}

// BuildMap constructs an automaton from a key→value mapping. Keys are
// ordered lexicographically so that the same mapping always yields the
// same insertion indices.
func BuildMap[V any](m map[string]V) (*Automaton[V], error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make([]V, len(keys))
	for i, k := range keys {
		values[i] = m[k]
	}
	return Build(keys, values)
}

// Load hydrates a character-keyed automaton from a state blob produced
// by EncodeState, with values supplied by the caller (the blob carries
// only the structural arrays).
func Load[V any](state []byte, values []V) (*Automaton[V], error) {
	d, err := dat.Decode(state)
	if err != nil {
		return nil, err
	}
	if d.Keywords() != len(values) {
		return nil, fmt.Errorf("acdat: state has %d keywords but %d values given", d.Keywords(), len(values))
	}
	return &Automaton[V]{d: d, values: values}, nil
}

// EncodeState serializes the structural arrays (not the values).
func (a *Automaton[V]) EncodeState() []byte { return a.d.Encode() }

// Size returns the number of keywords the automaton was built from.
func (a *Automaton[V]) Size() int { return len(a.values) }

// Values returns a copy of the value table, indexed by keyword.
func (a *Automaton[V]) Values() []V {
	values := make([]V, len(a.values))
	copy(values, a.values)
	return values
}

// Stats reports double-array density metrics.
func (a *Automaton[V]) Stats() dat.Stats { return a.d.Stats() }

// Get looks up the value stored for an exact keyword.
func (a *Automaton[V]) Get(key string) (V, bool) {
	idx := a.exactIndex(key)
	if idx < 0 {
		var zero V
		return zero, false
	}
	return a.values[idx], true
}

// Set replaces the value of an existing keyword. It reports false if
// key was not part of the built keyword set; the structural arrays are
// never touched.
func (a *Automaton[V]) Set(key string, value V) bool {
	idx := a.exactIndex(key)
	if idx < 0 {
		return false
	}
	a.values[idx] = value
	return true
}

// exactIndex walks the key's symbols through the double array and
// decodes the terminal encoding, or returns -1.
func (a *Automaton[V]) exactIndex(key string) int32 {
	s := a.d.Root
	for _, r := range key {
		t, ok := a.d.Transition(s, int32(a.d.Map.Dense(r)))
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
// runes.
func (a *Automaton[V]) PartialMatch(text string) []Hit[V] {
	var hits []Hit[V]
	s := a.d.Root
	pos := 0
	for _, r := range text {
		pos++
		s = a.d.NextState(s, int32(a.d.Map.Dense(r)))
		for _, idx := range a.d.Output[s] {
			hits = append(hits, Hit[V]{
				Begin: pos - int(a.d.Lengths[idx]),
				End:   pos,
				Index: int(idx),
				Value: a.values[idx],
			})
		}
	}
	return hits
}

// Matches reports whether text contains at least one keyword,
// short-circuiting on the first hit.
func (a *Automaton[V]) Matches(text string) bool {
	s := a.d.Root
	for _, r := range text {
		s = a.d.NextState(s, int32(a.d.Map.Dense(r)))
		if len(a.d.Output[s]) > 0 {
			return true
		}
	}
	return false
}

// CommonPrefixSearch returns the indices of all keywords that are
// prefixes of key, shortest first.
func (a *Automaton[V]) CommonPrefixSearch(key string) []int {
	var result []int
	s := a.d.Root
	for _, r := range key {
		t, ok := a.d.Transition(s, int32(a.d.Map.Dense(r)))
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
