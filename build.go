package acdat

import (
	"fmt"
	"slices"

	"github.com/dartslab/acdat/dat"
)

const (
	initialCapacity = 4096

	// maxCapacity bounds double-array growth. A pathological key set
	// fails the build with an explicit error instead of growing without
	// limit.
	maxCapacity = 1 << 30

	// fillThreshold advances nextCheckPos past regions that are at
	// least 95% occupied, so placement search stops re-scanning them.
	fillThreshold = 0.95
)

// builder compacts a keyword trie into the double array and then
// derives failure links and merged output sets. Single-threaded; the
// automaton is published only after build returns.
type builder struct {
	arena *trieArena
	auto  *dat.Automaton

	used         []bool
	allocSize    int32
	size         int32 // highest claimed slot + 1
	nextCheckPos int32
	progress     int32 // terminal slots encoded so far
	keyCount     int32
}

func newBuilder(arena *trieArena, keyCount int) *builder {
	return &builder{
		arena:    arena,
		auto:     &dat.Automaton{Root: 1},
		keyCount: int32(keyCount),
	}
}

func (b *builder) build() (*dat.Automaton, error) {
	if err := b.compact(); err != nil {
		return nil, err
	}
	b.trim()
	b.failures()
	stats := b.auto.Stats()
	tracer().Infof("double array built: keywords=%d states=%d used=%d fill=%.2f",
		b.keyCount, stats.TotalSlots, stats.UsedSlots, stats.FillRatio())
	return b.auto, nil
}

// compact places sibling batches breadth-first. The children of one
// parent, plus a synthetic code-0 sibling when the parent itself
// accepts, are claimed as one block at a common begin offset, so that
// Base[parent]+code addresses each child in O(1).
func (b *builder) compact() error {
	if err := b.resize(initialCapacity); err != nil {
		return err
	}
	root := b.arena.node(trieRoot)
	root.state = b.auto.Root
	b.size = b.auto.Root + 1

	queue := []int32{trieRoot}
	for q := 0; q < len(queue); q++ {
		id := queue[q]
		n := b.arena.node(id)
		if len(n.children) == 0 {
			if !n.acceptable {
				continue
			}
			if id != trieRoot {
				// Childless terminal: the keyword index is encoded
				// directly in Base, no child block is allocated.
				b.auto.Base[n.state] = -n.index - 1
				b.progress++
				continue
			}
			// Root accepting the empty keyword still needs its code-0
			// slot placed below.
		}
		labels := b.arena.sortedCodes(id)
		if n.acceptable {
			labels = append([]int32{0}, labels...)
		}
		begin, err := b.place(labels)
		if err != nil {
			return err
		}
		b.auto.Base[n.state] = begin
		for _, label := range labels {
			t := begin + label
			b.auto.Check[t] = n.state
			if label == 0 {
				b.auto.Base[t] = -n.index - 1
				b.progress++
				continue
			}
			child := n.children[label]
			b.arena.node(child).state = t
			queue = append(queue, child)
		}
		if claimed := begin + labels[len(labels)-1] + 1; claimed > b.size {
			b.size = claimed
		}
	}
	return nil
}

// place finds the first begin offset such that every begin+label slot is
// unclaimed and used[begin] is false, claiming begin on success. The
// search starts at the rolling nextCheckPos cursor and advances it past
// densely occupied stretches (fillThreshold).
func (b *builder) place(labels []int32) (int32, error) {
	first := labels[0]
	last := labels[len(labels)-1]
	pos := max(first+1, b.nextCheckPos) - 1
	var nonzero int32
	firstFree := false
	var begin int32
outer:
	for {
		pos++
		if pos >= b.allocSize {
			if err := b.grow(pos + 1); err != nil {
				return 0, err
			}
		}
		if pos == b.auto.Root || b.auto.Check[pos] != 0 {
			nonzero++
			continue
		}
		if !firstFree {
			b.nextCheckPos = pos
			firstFree = true
		}
		begin = pos - first
		if need := begin + last + 1; need > b.allocSize {
			if err := b.grow(need); err != nil {
				return 0, err
			}
		}
		if b.used[begin] {
			continue
		}
		for _, label := range labels[1:] {
			t := begin + label
			if t == b.auto.Root || b.auto.Check[t] != 0 {
				continue outer
			}
		}
		break
	}
	if scanned := pos - b.nextCheckPos + 1; scanned > 0 &&
		float64(nonzero)/float64(scanned) >= fillThreshold {
		// the stretch behind pos is saturated, skip it from now on
		b.nextCheckPos = pos
	}
	b.used[begin] = true
	return begin, nil
}

// grow resizes geometrically, with the factor tied to the number of
// keywords still to be placed (many remaining keywords mean more
// aggressive growth). The speculative target is computed in 64 bits and
// clamped; only the genuinely required size can fail the build.
func (b *builder) grow(min int32) error {
	if min > maxCapacity {
		return fmt.Errorf("acdat: double array would exceed %d slots", maxCapacity)
	}
	factor := float64(b.keyCount) / float64(b.progress+1)
	if factor < 1.05 {
		factor = 1.05
	}
	target := int64(float64(b.allocSize) * factor)
	// the remaining-keyword estimate is wildly pessimistic before many
	// terminals have been placed; never grow more than 8x in one step
	if limit := int64(b.allocSize) * 8; target > limit {
		target = limit
	}
	if target < int64(min) {
		target = int64(min)
	}
	if target > maxCapacity {
		target = maxCapacity
	}
	return b.resize(int32(target))
}

func (b *builder) resize(newSize int32) error {
	if newSize > maxCapacity {
		return fmt.Errorf("acdat: double array would exceed %d slots", maxCapacity)
	}
	base := make([]int32, newSize)
	check := make([]int32, newSize)
	used := make([]bool, newSize)
	if b.allocSize > 0 {
		copy(base, b.auto.Base)
		copy(check, b.auto.Check)
		copy(used, b.used)
	}
	b.auto.Base = base
	b.auto.Check = check
	b.used = used
	b.allocSize = newSize
	return nil
}

// trim releases over-allocation: the arrays shrink to the claimed size
// and the construction-only used markers are dropped. Query paths
// bounds-check, so no slack is kept.
func (b *builder) trim() {
	b.auto.Base = slices.Clone(b.auto.Base[:b.size])
	b.auto.Check = slices.Clone(b.auto.Check[:b.size])
	b.used = nil
	b.allocSize = b.size
}

// failures assigns failure links and merged outputs breadth-first. The
// ordering matters: a state's failure link is resolved before any of
// its children are processed, since children inherit through it.
func (b *builder) failures() {
	n := b.size
	b.auto.Fail = make([]int32, n)
	b.auto.Output = make([][]int32, n)
	b.auto.Fail[b.auto.Root] = b.auto.Root

	root := b.arena.node(trieRoot)
	root.fail = trieRoot
	queue := make([]int32, 0, len(b.arena.nodes))
	for _, c := range b.arena.sortedCodes(trieRoot) {
		id := root.children[c]
		child := b.arena.node(id)
		child.fail = trieRoot
		b.auto.Fail[child.state] = b.auto.Root
		if len(child.emits) > 0 {
			b.auto.Output[child.state] = slices.Clone(child.emits)
		}
		queue = append(queue, id)
	}
	for q := 0; q < len(queue); q++ {
		id := queue[q]
		node := b.arena.node(id)
		for _, c := range b.arena.sortedCodes(id) {
			childID := node.children[c]
			child := b.arena.node(childID)

			// Walk the failure chain until some state has a transition
			// on c; the root terminates the walk.
			f := node.fail
			failID := int32(trieRoot)
			for {
				if t, ok := b.arena.node(f).children[c]; ok {
					failID = t
					break
				}
				if f == trieRoot {
					break
				}
				f = b.arena.node(f).fail
			}
			child.fail = failID
			failState := b.arena.node(failID).state
			assert(b.arena.node(failID).depth <= node.depth, "failure link must not deepen")
			b.auto.Fail[child.state] = failState
			if merged := mergeOutputs(child.emits, b.auto.Output[failState]); len(merged) > 0 {
				b.auto.Output[child.state] = merged
			}
			queue = append(queue, childID)
		}
	}
}

// mergeOutputs unions two ascending keyword-index lists.
func mergeOutputs(own, inherited []int32) []int32 {
	if len(inherited) == 0 {
		if len(own) == 0 {
			return nil
		}
		return slices.Clone(own)
	}
	if len(own) == 0 {
		return inherited
	}
	merged := make([]int32, 0, len(own)+len(inherited))
	i, j := 0, 0
	for i < len(own) && j < len(inherited) {
		switch {
		case own[i] < inherited[j]:
			merged = append(merged, own[i])
			i++
		case own[i] > inherited[j]:
			merged = append(merged, inherited[j])
			j++
		default:
			merged = append(merged, own[i])
			i, j = i+1, j+1
		}
	}
	merged = append(merged, own[i:]...)
	merged = append(merged, inherited[j:]...)
	return merged
}
