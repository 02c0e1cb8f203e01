package acdat

import (
	"reflect"
	"testing"
)

func TestByteAutomatonScan(t *testing.T) {
	keys := [][]byte{[]byte("he"), []byte("she"), []byte("his"), []byte("hers")}
	a, err := BuildBytes(keys, []int{0, 1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	hits := a.PartialMatch([]byte("ushers"))
	want := []Hit[int]{
		{Begin: 2, End: 4, Index: 0, Value: 0},
		{Begin: 1, End: 4, Index: 1, Value: 1},
		{Begin: 2, End: 6, Index: 3, Value: 3},
	}
	if !reflect.DeepEqual(hits, want) {
		t.Fatalf("PartialMatch = %+v, want %+v", hits, want)
	}
	if !a.Matches([]byte("zishz")) {
		t.Fatal("his should match")
	}
	if a.Matches([]byte("zzz")) {
		t.Fatal("zzz should not match")
	}
}

func TestByteAutomatonGetSet(t *testing.T) {
	a, err := BuildBytes([][]byte{[]byte("abc"), []byte("ab")}, []string{"long", "short"})
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := a.Get([]byte("ab")); !ok || v != "short" {
		t.Fatalf("Get(ab) = %q,%v", v, ok)
	}
	if v, ok := a.Get([]byte("abc")); !ok || v != "long" {
		t.Fatalf("Get(abc) = %q,%v", v, ok)
	}
	if _, ok := a.Get([]byte("a")); ok {
		t.Fatal("Get(a) should miss")
	}
	if !a.Set([]byte("ab"), "changed") {
		t.Fatal("Set(ab) should succeed")
	}
	if v, _ := a.Get([]byte("ab")); v != "changed" {
		t.Fatalf("Get after Set = %q", v)
	}
	if a.Set([]byte("zz"), "nope") {
		t.Fatal("Set on unknown keyword must report false")
	}
}

func TestByteAutomatonBinaryKeys(t *testing.T) {
	// raw bytes, including NUL and high bytes
	keys := [][]byte{{0x00, 0x01}, {0xFF, 0xFE, 0xFD}, {0x00}}
	a, err := BuildBytes(keys, []int{10, 20, 30})
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := a.Get([]byte{0x00, 0x01}); !ok || v != 10 {
		t.Fatalf("Get = %d,%v", v, ok)
	}
	hits := a.PartialMatch([]byte{0xAA, 0x00, 0x01, 0xFF, 0xFE, 0xFD})
	// {0x00}@[1,2), {0x00,0x01}@[1,3), {0xFF,0xFE,0xFD}@[3,6)
	want := []Hit[int]{
		{Begin: 1, End: 2, Index: 2, Value: 30},
		{Begin: 1, End: 3, Index: 0, Value: 10},
		{Begin: 3, End: 6, Index: 1, Value: 20},
	}
	if !reflect.DeepEqual(hits, want) {
		t.Fatalf("PartialMatch = %+v, want %+v", hits, want)
	}
}

func TestByteAutomatonHydration(t *testing.T) {
	keys := [][]byte{[]byte("he"), []byte("she"), []byte("his"), []byte("hers")}
	values := []string{"HE", "SHE", "HIS", "HERS"}
	built, err := BuildBytes(keys, values)
	if err != nil {
		t.Fatal(err)
	}
	state := built.EncodeState()
	loaded, err := LoadBytes(state, values)
	if err != nil {
		t.Fatal(err)
	}
	inputs := [][]byte{[]byte("ushers"), []byte("hishers"), []byte(""), []byte("xyz")}
	for _, in := range inputs {
		if !reflect.DeepEqual(built.PartialMatch(in), loaded.PartialMatch(in)) {
			t.Fatalf("hydrated automaton disagrees on %q", in)
		}
	}
	for _, k := range keys {
		v1, ok1 := built.Get(k)
		v2, ok2 := loaded.Get(k)
		if v1 != v2 || ok1 != ok2 {
			t.Fatalf("hydrated automaton disagrees on Get(%q)", k)
		}
	}

	if _, err := LoadBytes(state, []string{"too", "few"}); err == nil {
		t.Fatal("value-count mismatch must fail")
	}
	if _, err := LoadBytes([]byte("garbage"), values); err == nil {
		t.Fatal("garbage state must fail")
	}
}
