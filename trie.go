package acdat

import "slices"

// The intermediate keyword trie lives in an arena: nodes are addressed
// by int32 id, child edges are per-node code→id maps, and failure and
// double-array state references are plain integers. The whole arena is
// discarded once the double array and failure tables are built.

const trieRoot = 0

type trieNode struct {
	depth      int32
	children   map[int32]int32 // symbol code -> arena id
	acceptable bool
	index      int32   // most recent keyword index terminating here
	emits      []int32 // keyword indices, ascending
	fail       int32   // arena id, resolved during failure construction
	state      int32   // double-array state index, assigned during placement
}

func (n *trieNode) addEmit(index int32) {
	i, found := slices.BinarySearch(n.emits, index)
	if found {
		return
	}
	n.emits = slices.Insert(n.emits, i, index)
}

type trieArena struct {
	nodes []trieNode
}

func newTrieArena() *trieArena {
	return &trieArena{nodes: []trieNode{{children: make(map[int32]int32)}}}
}

func (a *trieArena) node(id int32) *trieNode { return &a.nodes[id] }

// insert walks codes from the root, creating nodes on demand, and marks
// the terminal node as accepting keyword index. A duplicate key simply
// re-marks the same terminal; last write wins for the index.
func (a *trieArena) insert(codes []int32, index int32) {
	cur := int32(trieRoot)
	for _, c := range codes {
		assert(c > 0, "symbol code must be positive")
		child, ok := a.nodes[cur].children[c]
		if !ok {
			depth := a.nodes[cur].depth + 1
			a.nodes = append(a.nodes, trieNode{depth: depth, children: make(map[int32]int32)})
			child = int32(len(a.nodes) - 1)
			a.nodes[cur].children[c] = child
		}
		cur = child
	}
	terminal := a.node(cur)
	terminal.acceptable = true
	terminal.index = index
	terminal.addEmit(index)
}

// sortedCodes returns the outgoing edge labels of a node in ascending
// order, the processing order for sibling placement.
func (a *trieArena) sortedCodes(id int32) []int32 {
	n := a.node(id)
	codes := make([]int32, 0, len(n.children))
	for c := range n.children {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}
