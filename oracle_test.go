package acdat

import (
	"strings"
	"testing"

	dptrie "github.com/derekparker/trie"
)

// Exact-match lookups cross-checked against an independent trie
// implementation over a word list with plenty of shared prefixes.
func TestExactMatchAgainstTrieOracle(t *testing.T) {
	words := strings.Fields(`
		a an and ant antenna ape app apple apply
		be bee been beer bet beta
		car card care career carpet cart
		in inn inner input insert inside
		zoo zoom`)

	oracle := dptrie.New()
	values := make([]int, len(words))
	for i, w := range words {
		oracle.Add(w, i)
		values[i] = i
	}
	a, err := Build(words, values)
	if err != nil {
		t.Fatal(err)
	}

	probes := append([]string{}, words...)
	probes = append(probes, "ap", "appl", "applez", "carpets", "bees", "", "q", "inputs")
	for _, probe := range probes {
		node, found := oracle.Find(probe)
		got, ok := a.Get(probe)
		if found != ok {
			t.Fatalf("Get(%q) = _,%v but oracle says %v", probe, ok, found)
		}
		if found && got != node.Meta().(int) {
			t.Fatalf("Get(%q) = %d, oracle says %d", probe, got, node.Meta().(int))
		}
	}
}
