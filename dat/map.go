package dat

import "unicode/utf8"

// numBlocks covers the full Unicode range in 256-rune blocks.
const numBlocks = (utf8.MaxRune >> 8) + 1

// PagedRuneMap maps runes to dense symbol codes (uint16).
// It's a two-level page table:
//   - Top[r>>8] = page index (1-based), or 0 meaning "page absent".
//   - Pages is a flat array of NumPages*256 entries.
//
// Lookup is O(1) with two array reads.
//
// Memory:
//   - Top: 4352 * 2 bytes = 8.5 KB (allocated on first Set)
//   - Each populated page: 256 * 2 = 512 bytes
//
// Keyword sets touch few blocks in practice, so the populated pages stay
// in the tens of kilobytes even for mixed-script alphabets.
type PagedRuneMap struct {
	Top   []uint16 // page index (1-based); 0 means none; len 0 or numBlocks
	Pages []uint16 // flat: NumPages*256
}

// Dense returns the dense symbol code for a rune.
// Returns 0 if the rune is not in the alphabet.
func (m *PagedRuneMap) Dense(r rune) uint16 {
	if r < 0 || r > utf8.MaxRune {
		return 0
	}
	hi := r >> 8
	if int(hi) >= len(m.Top) {
		return 0
	}
	pi := m.Top[hi]
	if pi == 0 {
		return 0
	}
	base := int(pi-1) << 8 // *256
	return m.Pages[base+int(r&0xFF)]
}

// NumPages returns the number of allocated pages.
func (m *PagedRuneMap) NumPages() int { return len(m.Pages) >> 8 }

// EnsurePage ensures that the page for block hi exists.
// Returns the 1-based page index.
func (m *PagedRuneMap) EnsurePage(hi int) uint16 {
	if len(m.Top) == 0 {
		m.Top = make([]uint16, numBlocks)
	}
	pi := m.Top[hi]
	if pi != 0 {
		return pi
	}
	m.Pages = append(m.Pages, make([]uint16, 256)...)
	pi = uint16(len(m.Pages) >> 8) // number of pages, 1-based index
	m.Top[hi] = pi
	return pi
}

// Set sets mapping r -> dense (dense may be 0 to clear).
func (m *PagedRuneMap) Set(r rune, dense uint16) {
	if r < 0 || r > utf8.MaxRune {
		return
	}
	hi := int(r >> 8)
	var pi uint16
	if hi < len(m.Top) {
		pi = m.Top[hi]
	}
	if pi == 0 {
		if dense == 0 {
			return
		}
		pi = m.EnsurePage(hi)
	}
	base := int(pi-1) << 8
	m.Pages[base+int(r&0xFF)] = dense
}
