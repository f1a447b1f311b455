package sokoban

import (
	"sort"
	"strings"
)

// BoxSet is an unordered set of box cells kept in a canonical sorted order.
// Boxes carry no identity: two configurations with boxes swapped among
// themselves compare equal. The zero value is an empty set.
type BoxSet struct {
	cells []Cell // sorted by (Row, Col), no duplicates
}

// NewBoxSet builds a set from the given cells, deduplicating as needed.
func NewBoxSet(cells ...Cell) BoxSet {
	sorted := make([]Cell, len(cells))
	copy(sorted, cells)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	out := sorted[:0]
	for i, c := range sorted {
		if i == 0 || c != sorted[i-1] {
			out = append(out, c)
		}
	}
	return BoxSet{cells: out}
}

// Len returns the number of boxes.
func (b BoxSet) Len() int {
	return len(b.cells)
}

// Has reports whether the set contains the given cell.
func (b BoxSet) Has(c Cell) bool {
	i := b.search(c)
	return i < len(b.cells) && b.cells[i] == c
}

// search returns the insertion index of c in the sorted slice.
func (b BoxSet) search(c Cell) int {
	return sort.Search(len(b.cells), func(i int) bool {
		return !b.cells[i].Less(c)
	})
}

// Cells returns the boxes in canonical order. The returned slice is shared;
// callers must not modify it.
func (b BoxSet) Cells() []Cell {
	return b.cells
}

// With returns a new set with the given cell added.
func (b BoxSet) With(c Cell) BoxSet {
	i := b.search(c)
	if i < len(b.cells) && b.cells[i] == c {
		return b
	}
	cells := make([]Cell, 0, len(b.cells)+1)
	cells = append(cells, b.cells[:i]...)
	cells = append(cells, c)
	cells = append(cells, b.cells[i:]...)
	return BoxSet{cells: cells}
}

// Without returns a new set with the given cell removed.
func (b BoxSet) Without(c Cell) BoxSet {
	i := b.search(c)
	if i >= len(b.cells) || b.cells[i] != c {
		return b
	}
	cells := make([]Cell, 0, len(b.cells)-1)
	cells = append(cells, b.cells[:i]...)
	cells = append(cells, b.cells[i+1:]...)
	return BoxSet{cells: cells}
}

// Moved returns a new set with one box relocated from one cell to another.
func (b BoxSet) Moved(from, to Cell) BoxSet {
	return b.Without(from).With(to)
}

// Equal reports whether two sets contain the same cells.
func (b BoxSet) Equal(other BoxSet) bool {
	if len(b.cells) != len(other.cells) {
		return false
	}
	for i, c := range b.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}

// Key returns a canonical string encoding of the set, usable as a map key.
// Equal sets always produce equal keys regardless of construction order.
func (b BoxSet) Key() string {
	var sb strings.Builder
	sb.Grow(len(b.cells) * 8)
	for _, c := range b.cells {
		writeCoord(&sb, c.Row)
		writeCoord(&sb, c.Col)
	}
	return sb.String()
}

// writeCoord appends a 16-bit big-endian encoding of v.
// Level coordinates never approach the 16-bit range.
func writeCoord(sb *strings.Builder, v int) {
	sb.WriteByte(byte(v >> 8))
	sb.WriteByte(byte(v))
}
