package dat

import (
	"reflect"
	"testing"
)

// tinyAutomaton is the hand-placed double array for the single keyword
// "ab" (codes a=1, b=2): root=1, Base[1]=2 so 'a' lands on state 3,
// Base[3]=4 so 'b' lands on state 6, which is a childless terminal for
// keyword 0.
func tinyAutomaton() *Automaton {
	a := &Automaton{
		Root:    1,
		Sigma:   2,
		Base:    []int32{0, 2, 0, 4, 0, 0, -1},
		Check:   []int32{0, 0, 0, 1, 0, 0, 3},
		Fail:    []int32{0, 1, 0, 1, 0, 0, 1},
		Output:  [][]int32{nil, nil, nil, nil, nil, nil, {0}},
		Lengths: []int32{2},
	}
	a.Map.Set('a', 1)
	a.Map.Set('b', 2)
	return a
}

func TestTransition(t *testing.T) {
	a := tinyAutomaton()
	s, ok := a.Transition(a.Root, 1)
	if !ok || s != 3 {
		t.Fatalf("Transition(root,a) = %d,%v", s, ok)
	}
	s, ok = a.Transition(3, 2)
	if !ok || s != 6 {
		t.Fatalf("Transition(a,b) = %d,%v", s, ok)
	}
	if _, ok := a.Transition(a.Root, 2); ok {
		t.Fatal("root has no b-transition")
	}
	if _, ok := a.Transition(6, 1); ok {
		t.Fatal("leaf state has no transitions")
	}
	if _, ok := a.Transition(3, 0); ok {
		t.Fatal("code 0 is never a forward transition")
	}
}

func TestNextStateFallsBack(t *testing.T) {
	a := tinyAutomaton()
	// from the terminal, 'a' restarts the only path via the root
	if s := a.NextState(6, 1); s != 3 {
		t.Fatalf("NextState(terminal,a) = %d, want 3", s)
	}
	if s := a.NextState(3, 1); s != 3 {
		t.Fatalf("NextState(a,a) = %d, want 3", s)
	}
	if s := a.NextState(3, 0); s != a.Root {
		t.Fatalf("NextState(a,<not in alphabet>) = %d, want root", s)
	}
}

func TestTerminalDecoding(t *testing.T) {
	a := tinyAutomaton()
	if idx, ok := a.Terminal(6); !ok || idx != 0 {
		t.Fatalf("Terminal(6) = %d,%v", idx, ok)
	}
	if _, ok := a.Terminal(3); ok {
		t.Fatal("state 3 is not terminal")
	}
	if _, ok := a.Terminal(a.Root); ok {
		t.Fatal("root is not terminal")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	a := tinyAutomaton()
	blob := a.Encode()
	decoded, err := Decode(blob)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, decoded) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", decoded, a)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("definitely not a blob")); err == nil {
		t.Fatal("garbage must be rejected")
	}
	if _, err := Decode(nil); err == nil {
		t.Fatal("empty input must be rejected")
	}
	blob := tinyAutomaton().Encode()
	if _, err := Decode(blob[:len(blob)-3]); err == nil {
		t.Fatal("truncated blob must be rejected")
	}
}

func TestPagedRuneMap(t *testing.T) {
	var m PagedRuneMap
	if m.Dense('x') != 0 {
		t.Fatal("empty map must answer 0")
	}
	m.Set('a', 1)
	m.Set('ü', 2)
	m.Set('日', 3)
	m.Set('🙂', 4) // beyond the BMP
	for r, want := range map[rune]uint16{'a': 1, 'ü': 2, '日': 3, '🙂': 4, 'b': 0, '本': 0} {
		if got := m.Dense(r); got != want {
			t.Fatalf("Dense(%q) = %d, want %d", r, got, want)
		}
	}
	// clearing an absent entry must not allocate a page
	pages := m.NumPages()
	m.Set(0x4F000, 0)
	if m.NumPages() != pages {
		t.Fatal("clearing an absent mapping allocated a page")
	}
	m.Set('a', 0)
	if m.Dense('a') != 0 {
		t.Fatal("clearing must take effect")
	}
}
