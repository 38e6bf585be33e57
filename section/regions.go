package section

import (
	"fmt"

	"github.com/arloliu/malie/errs"
)

// Regions holds the four discovered boundaries of a container.
//
// Layout:
//
//	[0, LabelStart)                 opaque header
//	[LabelStart, LabelEnd)          label block
//	[LabelEnd, OffsetTablePos)      bytecode block
//	[OffsetTablePos, StringTablePos) count + offset/length entries
//	[StringTablePos, len)           payload length field + payload
type Regions struct {
	LabelStart     int
	LabelEnd       int
	OffsetTablePos int
	StringTablePos int
}

// Validate checks 0 <= LabelStart <= LabelEnd <= OffsetTablePos <= StringTablePos <= size.
func (r Regions) Validate(size int) error {
	if r.LabelStart < 0 ||
		r.LabelStart > r.LabelEnd ||
		r.LabelEnd > r.OffsetTablePos ||
		r.OffsetTablePos > r.StringTablePos ||
		r.StringTablePos > size {
		return fmt.Errorf("%w: %s (size %d)", errs.ErrInvalidRegions, r, size)
	}

	return nil
}

// ContainsLabelOffset reports whether off lies inside [LabelStart, LabelEnd).
func (r Regions) ContainsLabelOffset(off uint32) bool {
	return int64(off) >= int64(r.LabelStart) && int64(off) < int64(r.LabelEnd)
}

// HeaderSize returns the size of the opaque header.
func (r Regions) HeaderSize() int {
	return r.LabelStart
}

// LabelSize returns the size of the label block.
func (r Regions) LabelSize() int {
	return r.LabelEnd - r.LabelStart
}

// BytecodeSize returns the size of the bytecode block.
func (r Regions) BytecodeSize() int {
	return r.OffsetTablePos - r.LabelEnd
}

func (r Regions) String() string {
	return fmt.Sprintf("labels=[0x%X,0x%X) bytecode=[0x%X,0x%X) table=0x%X payload=0x%X",
		r.LabelStart, r.LabelEnd, r.LabelEnd, r.OffsetTablePos, r.OffsetTablePos, r.StringTablePos)
}
