package dat

// Automaton is a frozen Aho-Corasick automaton over a double-array trie.
//   - States are indices into Base/Check (0 is unused; Root is 1).
//   - Transition: t := Base[s] + c; valid if Check[t] == s; next state is t.
//   - c is a symbol code >= 1. Code 0 is reserved for the synthetic
//     "accept" edge a terminal state carries next to its real children.
//
// Terminal states:
//   - A state with no outgoing edges stores its keyword index directly
//     as Base[s] = -(index) - 1.
//   - A terminal state that does have children instead owns a code-0
//     child slot whose Base carries the same negative encoding.
//
// Fail and Output are the classic Aho-Corasick failure links and merged
// emit sets, indexed by state. Output[s] is nil unless s or a state on
// its failure chain terminates a keyword; entries are keyword indices in
// ascending order.
//
// Once built, everything here is read-only; concurrent readers need no
// locking.
type Automaton struct {
	// Root state index (always 1; slot 0 stays free so that
	// Check[i] == 0 can mean "unclaimed").
	Root int32

	// Sigma is the size of the dense alphabet (maximum symbol code).
	Sigma int32

	// Base and Check are the classic double-array.
	Base  []int32 // len == NStates
	Check []int32 // len == NStates

	// Fail is the failure-link target per state. Fail[Root] == Root.
	Fail []int32 // len == NStates

	// Output holds the merged keyword-index list per state, or nil.
	Output [][]int32 // len == NStates

	// Lengths is the per-keyword symbol count, indexed by keyword.
	Lengths []int32

	// Map translates runes to dense symbol codes for character-keyed
	// automata. Byte-keyed automata leave it empty and use code b+1.
	Map PagedRuneMap
}

// NStates returns the number of allocated state slots.
func (a *Automaton) NStates() int { return len(a.Base) }

// Keywords returns the number of keywords the automaton was built from.
func (a *Automaton) Keywords() int { return len(a.Lengths) }

// Transition returns (nextState, ok) for symbol code c taken from state s.
func (a *Automaton) Transition(s, c int32) (int32, bool) {
	if c <= 0 || int(s) >= len(a.Base) {
		return 0, false
	}
	b := a.Base[s]
	if b < 0 {
		return 0, false // leaf state, no outgoing edges
	}
	t := b + c
	if int(t) >= len(a.Check) || a.Check[t] != s {
		return 0, false
	}
	return t, true
}

// NextState is the scanning transition: it follows failure links until a
// valid forward transition exists, falling back to the root, which has
// an implicit self-loop for unmatched symbols. Code 0 ("not in
// alphabet") always lands on the root.
func (a *Automaton) NextState(s, c int32) int32 {
	if c <= 0 {
		return a.Root
	}
	for {
		if t, ok := a.Transition(s, c); ok {
			return t
		}
		if s == a.Root {
			return a.Root
		}
		s = a.Fail[s]
	}
}

// Terminal reports whether state s terminates a keyword and, if so,
// which one. It decodes both leaf forms (negative Base and the code-0
// child slot).
func (a *Automaton) Terminal(s int32) (int32, bool) {
	if int(s) >= len(a.Base) {
		return 0, false
	}
	b := a.Base[s]
	if b < 0 {
		return -b - 1, true
	}
	t := b // + code 0
	if t > 0 && int(t) < len(a.Check) && a.Check[t] == s && a.Base[t] < 0 {
		return -a.Base[t] - 1, true
	}
	return 0, false
}

// Stats reports slot-usage metrics of the double array.
type Stats struct {
	UsedSlots  int
	TotalSlots int
	MaxStateID int
}

// FillRatio is UsedSlots over TotalSlots, or 0 for an empty automaton.
func (s Stats) FillRatio() float64 {
	if s.TotalSlots == 0 {
		return 0
	}
	return float64(s.UsedSlots) / float64(s.TotalSlots)
}

// Stats scans Check and returns density metrics.
func (a *Automaton) Stats() Stats {
	stats := Stats{TotalSlots: a.NStates()}
	if stats.TotalSlots == 0 {
		return stats
	}
	maxID := int(a.Root)
	for i := range a.Check {
		if int32(i) == a.Root || a.Check[i] != 0 {
			stats.UsedSlots++
			if i > maxID {
				maxID = i
			}
		}
	}
	stats.MaxStateID = maxID
	return stats
}
