package mem

// IntsDump provides data for testing.
type IntsDump struct {
	Size  uint
	Cap   int
	Cells []int64
}

// Dump memory data for testing.
func (m *Ints) Dump() (d IntsDump) {
	d.Size = m.Size()
	d.Cap = cap(m.cells)
	d.Cells = m.cells
	return d
}
