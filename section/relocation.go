package section

// RelocationMap maps the original absolute offset of each label to the absolute
// offset it was written at during export.
//
// A map is built once per export pass by the label encoder and consumed once by
// the bytecode relocator. Unchanged labels written at their original position map
// to themselves.
type RelocationMap map[uint32]uint32

// Lookup returns the new offset recorded for an original label offset.
func (m RelocationMap) Lookup(original uint32) (uint32, bool) {
	off, ok := m[original]
	return off, ok
}

// Moved returns the number of labels whose offset changed.
func (m RelocationMap) Moved() int {
	n := 0
	for from, to := range m {
		if from != to {
			n++
		}
	}

	return n
}
