// Binary encoding for frozen automata.
//
// The arrays serialize as one flat little-endian blob so that a saved
// automaton can be hydrated without rebuilding:
//
//	magic:    "ACDA" (4 bytes)
//	version:  uint16 (currently 1)
//	root:     uint32
//	sigma:    uint32
//	nStates:  uint32
//	nKeys:    uint32
//	base:     nStates × int32
//	check:    nStates × int32
//	fail:     nStates × int32
//	outCount: uint32
//	per output record:
//	  state:  uint32
//	  count:  uint32
//	  ids:    count × int32
//	lengths:  nKeys × int32
//	topLen:   uint32, top:   topLen × uint16
//	pageLen:  uint32, pages: pageLen × uint16
package dat

import (
	"encoding/binary"
	"fmt"
)

var magic = [4]byte{'A', 'C', 'D', 'A'}

const version = 1

// Encode serializes the automaton into a single buffer.
// The buffer size is computed up front so the blob is built with one
// allocation.
func (a *Automaton) Encode() []byte {
	n := a.NStates()
	total := 4 + 2 + 4*4 // magic, version, root/sigma/nStates/nKeys
	total += 3 * 4 * n   // base, check, fail
	total += 4           // outCount
	for _, out := range a.Output {
		if out != nil {
			total += 8 + 4*len(out)
		}
	}
	total += 4 * len(a.Lengths)
	total += 4 + 2*len(a.Map.Top)
	total += 4 + 2*len(a.Map.Pages)

	buf := make([]byte, total)
	off := 0
	off += copy(buf, magic[:])
	binary.LittleEndian.PutUint16(buf[off:], version)
	off += 2
	for _, v := range []uint32{uint32(a.Root), uint32(a.Sigma), uint32(n), uint32(len(a.Lengths))} {
		binary.LittleEndian.PutUint32(buf[off:], v)
		off += 4
	}
	off = putInt32s(buf, off, a.Base)
	off = putInt32s(buf, off, a.Check)
	off = putInt32s(buf, off, a.Fail)

	outCount := 0
	for _, out := range a.Output {
		if out != nil {
			outCount++
		}
	}
	binary.LittleEndian.PutUint32(buf[off:], uint32(outCount))
	off += 4
	for s, out := range a.Output {
		if out == nil {
			continue
		}
		binary.LittleEndian.PutUint32(buf[off:], uint32(s))
		off += 4
		binary.LittleEndian.PutUint32(buf[off:], uint32(len(out)))
		off += 4
		off = putInt32s(buf, off, out)
	}
	off = putInt32s(buf, off, a.Lengths)
	off = putUint16s(buf, off, a.Map.Top)
	putUint16s(buf, off, a.Map.Pages)
	return buf
}

// Decode hydrates an automaton from a blob produced by Encode.
func Decode(data []byte) (*Automaton, error) {
	r := reader{data: data}
	var m [4]byte
	copy(m[:], r.bytes(4))
	if r.err != nil || m != magic {
		return nil, fmt.Errorf("dat: not an automaton blob")
	}
	if v := r.uint16(); v != version {
		return nil, fmt.Errorf("dat: unsupported blob version %d", v)
	}
	a := &Automaton{}
	a.Root = int32(r.uint32())
	a.Sigma = int32(r.uint32())
	nStates := int(r.uint32())
	nKeys := int(r.uint32())
	if r.err == nil && (nStates < 0 || nStates > maxStates || nKeys > maxStates) {
		return nil, fmt.Errorf("dat: implausible state count %d", nStates)
	}
	a.Base = r.int32s(nStates)
	a.Check = r.int32s(nStates)
	a.Fail = r.int32s(nStates)
	a.Output = make([][]int32, nStates)
	outCount := int(r.uint32())
	for i := 0; i < outCount && r.err == nil; i++ {
		s := int(r.uint32())
		count := int(r.uint32())
		ids := r.int32s(count)
		if r.err == nil && s < nStates {
			a.Output[s] = ids
		} else if r.err == nil {
			return nil, fmt.Errorf("dat: output record for state %d out of range", s)
		}
	}
	a.Lengths = r.int32s(nKeys)
	a.Map.Top = r.uint16s(int(r.uint32()))
	a.Map.Pages = r.uint16s(int(r.uint32()))
	if r.err != nil {
		return nil, fmt.Errorf("dat: decode: %w", r.err)
	}
	if a.Root != 1 && nStates > 0 {
		return nil, fmt.Errorf("dat: unexpected root state %d", a.Root)
	}
	if len(a.Map.Top) != 0 && len(a.Map.Top) != numBlocks {
		return nil, fmt.Errorf("dat: rune map top has %d blocks, want %d", len(a.Map.Top), numBlocks)
	}
	if len(a.Map.Pages)%256 != 0 {
		return nil, fmt.Errorf("dat: rune map pages not block aligned")
	}
	return a, nil
}

const maxStates = 1 << 30

func putInt32s(buf []byte, off int, vals []int32) int {
	for _, v := range vals {
		binary.LittleEndian.PutUint32(buf[off:], uint32(v))
		off += 4
	}
	return off
}

func putUint16s(buf []byte, off int, vals []uint16) int {
	binary.LittleEndian.PutUint32(buf[off:], uint32(len(vals)))
	off += 4
	for _, v := range vals {
		binary.LittleEndian.PutUint16(buf[off:], v)
		off += 2
	}
	return off
}

// reader is a bounds-checked cursor over an encoded blob. The first
// overrun latches err and subsequent reads return zero values.
type reader struct {
	data []byte
	off  int
	err  error
}

func (r *reader) bytes(n int) []byte {
	if r.err != nil || n < 0 || r.off+n > len(r.data) {
		if r.err == nil {
			r.err = fmt.Errorf("truncated at offset %d", r.off)
		}
		return make([]byte, n)
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) uint16() uint16 {
	return binary.LittleEndian.Uint16(r.bytes(2))
}

func (r *reader) uint32() uint32 {
	return binary.LittleEndian.Uint32(r.bytes(4))
}

func (r *reader) int32s(n int) []int32 {
	if r.err != nil || n < 0 || r.off+4*n > len(r.data) {
		if r.err == nil {
			r.err = fmt.Errorf("truncated at offset %d", r.off)
		}
		return nil
	}
	vals := make([]int32, n)
	for i := range vals {
		vals[i] = int32(binary.LittleEndian.Uint32(r.data[r.off:]))
		r.off += 4
	}
	return vals
}

func (r *reader) uint16s(n int) []uint16 {
	if r.err != nil || n < 0 || r.off+2*n > len(r.data) {
		if r.err == nil {
			r.err = fmt.Errorf("truncated at offset %d", r.off)
		}
		return nil
	}
	if n == 0 {
		return nil
	}
	vals := make([]uint16, n)
	for i := range vals {
		vals[i] = binary.LittleEndian.Uint16(r.data[r.off:])
		r.off += 2
	}
	return vals
}
