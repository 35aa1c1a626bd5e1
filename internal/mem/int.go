package mem

// GrowChunk is the granularity by which Ints grows its backing capacity.
const GrowChunk = 256

// Ints implements a flat, growable memory of int64 cells.
// Cells past Size() read as 0; storing past Size() grows memory, zero filling
// any newly created cells.
type Ints struct {
	// Limit specifies a size, past which any store or load should result in an error.
	Limit uint

	cells []int64
}

// Size returns an address one position higher than the last allocated cell.
func (m *Ints) Size() uint { return uint(len(m.cells)) }

// At returns the value at addr, or 0 if addr is past Size(); it ignores Limit.
func (m *Ints) At(addr uint) int64 {
	if addr < uint(len(m.cells)) {
		return m.cells[addr]
	}
	return 0
}

// Load returns a single value from the given address.
// Addresses past Size() are not allocated, resulting in implicit 0 values.
// Returns an error if addr exceeds any Limit.
func (m *Ints) Load(addr uint) (int64, error) {
	if err := checkLimit(m.Limit, addr, "load"); err != nil {
		return 0, err
	}
	return m.At(addr), nil
}

// Stor stores any values at addr, growing memory if necessary.
// Returns an error if Limit would be exceeded; no partial store is done.
func (m *Ints) Stor(addr uint, values ...int64) error {
	if len(values) == 0 {
		return nil
	}
	end := addr + uint(len(values))
	if err := m.Grow(end); err != nil {
		return err
	}
	copy(m.cells[addr:end], values)
	return nil
}

// Grow ensures that Size() is at least size, zero filling new cells.
// Backing capacity is allocated in GrowChunk multiples.
func (m *Ints) Grow(size uint) error {
	if size <= uint(len(m.cells)) {
		return nil
	}
	if err := checkLimit(m.Limit, size-1, "stor"); err != nil {
		return err
	}
	if size > uint(cap(m.cells)) {
		capSize := (size + GrowChunk - 1) / GrowChunk * GrowChunk
		cells := make([]int64, size, capSize)
		copy(cells, m.cells)
		m.cells = cells
		return nil
	}
	old := len(m.cells)
	m.cells = m.cells[:size]
	for i := old; i < len(m.cells); i++ {
		m.cells[i] = 0
	}
	return nil
}

// Reset replaces all memory contents with a copy of values.
// Limit is retained, but not enforced against values.
func (m *Ints) Reset(values []int64) {
	m.cells = append(m.cells[:0], values...)
}

// Clone returns an independent copy of m.
func (m *Ints) Clone() Ints {
	return Ints{
		Limit: m.Limit,
		cells: append([]int64(nil), m.cells...),
	}
}

// Values returns a copy of all allocated cells.
func (m *Ints) Values() []int64 {
	return append([]int64(nil), m.cells...)
}
