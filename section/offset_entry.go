package section

import (
	"github.com/arloliu/malie/endian"
	"github.com/arloliu/malie/errs"
)

// OffsetEntry locates one string in the payload. It is a fixed size of 8 bytes.
//
// Offset is relative to the first payload byte (StringTablePos + 4), Length is the
// byte length of the string body, not counting its 0x0000 terminator.
//
// Example with two strings "hello" and "world":
//
//	Entry 0: Offset=0,  Length=10
//	Entry 1: Offset=12, Length=10   (10 bytes of text + 2 byte terminator)
type OffsetEntry struct {
	Offset uint32 // 4 bytes, offset 0-3
	Length uint32 // 4 bytes, offset 4-7
}

// WriteToSlice writes the entry into b, which must be at least 8 bytes long.
func (e OffsetEntry) WriteToSlice(b []byte, engine endian.EndianEngine) error {
	if len(b) < OffsetEntrySize {
		return errs.ErrInvalidOffsetEntrySize
	}

	engine.PutUint32(b[0:4], e.Offset)
	engine.PutUint32(b[4:8], e.Length)

	return nil
}

// AppendTo appends the 8-byte encoding of the entry to buf.
func (e OffsetEntry) AppendTo(buf []byte, engine endian.EndianEngine) []byte {
	buf = engine.AppendUint32(buf, e.Offset)
	return engine.AppendUint32(buf, e.Length)
}

// ParseOffsetEntry parses an offset table entry from a byte slice.
func ParseOffsetEntry(data []byte, engine endian.EndianEngine) (OffsetEntry, error) {
	if len(data) < OffsetEntrySize {
		return OffsetEntry{}, errs.ErrInvalidOffsetEntrySize
	}

	return OffsetEntry{
		Offset: engine.Uint32(data[0:4]),
		Length: engine.Uint32(data[4:8]),
	}, nil
}

// End returns the exclusive end of the string body relative to the payload start.
func (e OffsetEntry) End() uint64 {
	return uint64(e.Offset) + uint64(e.Length)
}
