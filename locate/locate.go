// Package locate discovers the region boundaries of a Malie script container.
//
// Containers carry no directory of their own layout. The scanners in this package
// recover it from structural patterns:
//
//   - the string payload length field is self-referential (it equals the number of
//     bytes that follow it), so it can be found by scanning backward from the end;
//   - offset table entries are 8-byte (offset, length) pairs whose first offset is
//     always zero, so the entry count sits 4 bytes before that zero;
//   - the label block contains the UTF-16LE "MALIE_LABEL" signature and is
//     separated from the bytecode that follows it by a run of empty entries or by
//     a chunk that scores as bytecode.
//
// Every scanner is a pure function over a byte slice and never panics on
// malformed input.
package locate

import (
	"fmt"

	"github.com/arloliu/malie/endian"
	"github.com/arloliu/malie/errs"
	"github.com/arloliu/malie/format"
	"github.com/arloliu/malie/section"
)

// Locator discovers region boundaries with a given strategy.
type Locator interface {
	Locate(data []byte, strategy format.LocateStrategy) (section.Regions, error)
}

// Heuristic is the default Locator. It runs the structural scanners of this package.
type Heuristic struct{}

var _ Locator = Heuristic{}

// Locate implements Locator.
func (Heuristic) Locate(data []byte, strategy format.LocateStrategy) (section.Regions, error) {
	return Locate(data, strategy)
}

// Fixed is a Locator that returns known region bounds regardless of strategy.
// It is used for containers whose layout was recorded earlier.
type Fixed struct {
	Regions section.Regions
}

var _ Locator = Fixed{}

// Locate implements Locator.
func (f Fixed) Locate(data []byte, _ format.LocateStrategy) (section.Regions, error) {
	if err := f.Regions.Validate(len(data)); err != nil {
		return section.Regions{}, err
	}

	return f.Regions, nil
}

// Locate runs the string table, offset table and label scanners in dependency
// order and validates the result.
func Locate(data []byte, strategy format.LocateStrategy) (section.Regions, error) {
	var r section.Regions
	var err error

	if r.StringTablePos, err = FindStringTable(data, strategy); err != nil {
		return section.Regions{}, err
	}
	if r.OffsetTablePos, err = FindOffsetTable(data, r.StringTablePos); err != nil {
		return section.Regions{}, err
	}
	if r.LabelStart, r.LabelEnd, err = FindLabelRegion(data, r.OffsetTablePos); err != nil {
		return section.Regions{}, err
	}

	if err := r.Validate(len(data)); err != nil {
		return section.Regions{}, err
	}

	return r, nil
}

// FindStringTable returns the position of the total payload length field.
func FindStringTable(data []byte, strategy format.LocateStrategy) (int, error) {
	switch strategy {
	case format.StrategyTrailingLength:
		return findByTrailingLength(data)
	case format.StrategyTerminatorScan:
		return findByTerminator(data)
	default:
		return 0, fmt.Errorf("%w: unknown strategy %s", errs.ErrStringTableNotFound, strategy)
	}
}

// findByTrailingLength scans backward in 2-byte steps for a u32 equal to the
// number of bytes following it.
func findByTrailingLength(data []byte) (int, error) {
	engine := endian.GetLittleEndianEngine()
	size := len(data)

	for pos := size - section.PayloadFieldSize; pos >= 0; pos -= section.CodeUnitSize {
		v, _ := endian.PeekUint32(engine, data, pos)
		if int64(v) == int64(size-pos-section.PayloadFieldSize) {
			return pos, nil
		}
	}

	return 0, fmt.Errorf("%w: no trailing length field", errs.ErrStringTableNotFound)
}

// findByTerminator finds the terminator preceding the last string, derives the
// last string's byte length from it, then scans backward byte by byte for the
// last offset entry whose length field matches and which is directly followed by
// a self-referential payload length field.
func findByTerminator(data []byte) (int, error) {
	engine := endian.GetLittleEndianEngine()
	size := len(data)

	dist := 2 * section.CodeUnitSize
	for {
		v, ok := endian.PeekUint16(engine, data, size-dist)
		if !ok {
			return 0, fmt.Errorf("%w: no string terminator", errs.ErrStringTableNotFound)
		}
		if v == 0 {
			break
		}
		dist += section.CodeUnitSize
	}
	lastLen := uint32(dist - 2*section.CodeUnitSize) //nolint:gosec

	for c := size - dist - 5; c >= 0; c-- {
		length, _ := endian.PeekUint32(engine, data, c)
		if length != lastLen {
			continue
		}

		pos := c + 4 // length is the last word of the final entry
		total, ok := endian.PeekUint32(engine, data, pos)
		if ok && int64(total) == int64(size-pos-section.PayloadFieldSize) {
			return pos, nil
		}
	}

	return 0, fmt.Errorf("%w: no entry with length %d", errs.ErrStringTableNotFound, lastLen)
}

// FindOffsetTable walks backward from the payload length field over 8-byte
// entries until it reaches the zero offset of the first entry, and returns the
// position of the entry count field in front of it.
func FindOffsetTable(data []byte, stringTablePos int) (int, error) {
	engine := endian.GetLittleEndianEngine()

	pos := stringTablePos
	for {
		v, ok := endian.PeekUint32(engine, data, pos)
		if !ok {
			return 0, fmt.Errorf("%w: scan left the stream at %d", errs.ErrOffsetTableNotFound, pos)
		}
		if v == 0 {
			break
		}
		pos -= section.OffsetEntrySize
	}

	pos -= section.CountFieldSize
	if pos < 0 {
		return 0, fmt.Errorf("%w: count field before stream start", errs.ErrOffsetTableNotFound)
	}

	return pos, nil
}

// SignatureBytes returns the UTF-16LE encoding of the label signature.
func SignatureBytes() []byte {
	sig := make([]byte, 0, len(section.LabelSignature)*section.CodeUnitSize)
	for i := 0; i < len(section.LabelSignature); i++ {
		sig = append(sig, section.LabelSignature[i], 0)
	}

	return sig
}

// FindSignature returns the first even offset holding the label signature.
func FindSignature(data []byte) (int, error) {
	sig := SignatureBytes()
	for pos := 0; pos < len(data)-len(sig); pos += section.CodeUnitSize {
		if string(data[pos:pos+len(sig)]) == string(sig) {
			return pos, nil
		}
	}

	return 0, errs.ErrSignatureNotFound
}

// FindLabelStart returns the position right after the nearest 0x0000 unit in the
// LabelStartWindow bytes before sigPos, or sigPos itself when there is none.
func FindLabelStart(data []byte, sigPos int) int {
	floor := max(0, sigPos-section.LabelStartWindow)
	for pos := sigPos - section.CodeUnitSize; pos >= floor; pos -= section.CodeUnitSize {
		if endian.IsNullUnit(data, pos) {
			return pos + section.CodeUnitSize
		}
	}

	return sigPos
}

// FindLabelRegion returns the [start, end) bounds of the label block.
//
// The forward scan splits on 0x0000 units and stops at the first of:
//   - LabelEndNullRun consecutive empty entries (end excludes them),
//   - a chunk that LooksLikeBytecode (end is the chunk start),
//   - OffsetTableMargin bytes before the offset table or MaxLabelScanEntries
//     entries (end is the scan position).
func FindLabelRegion(data []byte, offsetTablePos int) (int, int, error) {
	sigPos, err := FindSignature(data)
	if err != nil {
		return 0, 0, err
	}

	start := FindLabelStart(data, sigPos)
	end, err := scanLabelEnd(data, start, offsetTablePos-section.OffsetTableMargin)
	if err != nil {
		return 0, 0, err
	}

	return start, end, nil
}

func scanLabelEnd(data []byte, start, bound int) (int, error) {
	pos := start
	nulls := 0

	for entries := 0; pos < bound && entries < section.MaxLabelScanEntries; {
		chunkStart := pos
		n := 0
		for pos < bound {
			if pos+section.CodeUnitSize > len(data) {
				return 0, fmt.Errorf("%w: label scan at %d", errs.ErrTruncatedStream, pos)
			}
			null := data[pos] == 0 && data[pos+1] == 0
			pos += section.CodeUnitSize
			if null {
				break
			}
			n += section.CodeUnitSize
			if n > section.MaxLabelChunkBytes {
				break
			}
		}

		if n == 0 {
			nulls++
			if nulls >= section.LabelEndNullRun {
				return pos - nulls*section.CodeUnitSize, nil
			}

			continue
		}
		nulls = 0

		if LooksLikeBytecode(data[chunkStart : chunkStart+n]) {
			return chunkStart, nil
		}
		entries++
	}

	return pos, nil
}
