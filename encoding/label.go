package encoding

import (
	"fmt"

	"github.com/arloliu/malie/endian"
	"github.com/arloliu/malie/errs"
	"github.com/arloliu/malie/internal/pool"
	"github.com/arloliu/malie/locate"
	"github.com/arloliu/malie/section"
)

// LabelEntry is one decoded label.
type LabelEntry struct {
	// Index is the position of the entry within its block.
	Index int
	// Offset is the absolute offset of the first code unit in the source container.
	Offset uint32
	// Raw holds the original code units without the terminator.
	Raw []byte
	// Text is Raw decoded from UTF-16LE.
	Text string
	// Padded is set when one extra 0x0000 unit followed the terminator.
	Padded bool
	// Filler counts further empty units that followed the entry.
	Filler int
	// Unterminated is set when the entry ran into the block end without a terminator.
	Unterminated bool
}

// LabelBlock is a decoded label block.
type LabelBlock struct {
	Entries []LabelEntry
	// Lead counts empty units before the first entry.
	Lead int
	// Start and End are the absolute bounds actually consumed.
	Start int
	End   int
	// Truncated reports that decoding stopped at a chunk that looked like bytecode,
	// so End was moved back to that chunk.
	Truncated bool
}

// Len returns the number of entries.
func (b *LabelBlock) Len() int {
	return len(b.Entries)
}

// Texts returns the decoded text of every entry in order.
func (b *LabelBlock) Texts() []string {
	texts := make([]string, len(b.Entries))
	for i := range b.Entries {
		texts[i] = b.Entries[i].Text
	}

	return texts
}

// DecodeLabels decodes the label block in data[start:end].
//
// Entries are split on 0x0000 units. Raw slices alias data.
func DecodeLabels(data []byte, start, end int) (LabelBlock, error) {
	block := LabelBlock{Start: start, End: end}
	if start < 0 || end < start {
		return block, fmt.Errorf("%w: label block [%d,%d)", errs.ErrInvalidRegions, start, end)
	}
	if (end-start)%section.CodeUnitSize != 0 {
		return block, fmt.Errorf("%w: odd label block length %d", errs.ErrTruncatedStream, end-start)
	}
	if end > len(data) {
		return block, fmt.Errorf("%w: label block ends at %d, stream has %d bytes", errs.ErrTruncatedStream, end, len(data))
	}

	pos := start
	for pos < end {
		chunkStart := pos
		terminated := false
		for pos < end {
			null := endian.IsNullUnit(data, pos)
			pos += section.CodeUnitSize
			if null {
				terminated = true
				break
			}
		}

		n := pos - chunkStart
		if terminated {
			n -= section.CodeUnitSize
		}

		if n == 0 {
			if len(block.Entries) == 0 {
				block.Lead++
			} else {
				block.Entries[len(block.Entries)-1].Filler++
			}

			continue
		}

		raw := data[chunkStart : chunkStart+n : chunkStart+n]
		if locate.LooksLikeBytecode(raw) {
			block.End = chunkStart
			block.Truncated = true

			break
		}

		text, err := DecodeText(raw)
		if err != nil {
			return block, fmt.Errorf("label %d at 0x%X: %w", len(block.Entries), chunkStart, err)
		}

		entry := LabelEntry{
			Index:        len(block.Entries),
			Offset:       uint32(chunkStart), //nolint:gosec
			Raw:          raw,
			Text:         text,
			Unterminated: !terminated,
		}
		if terminated && pos < end-section.CodeUnitSize && endian.IsNullUnit(data, pos) {
			entry.Padded = true
			pos += section.CodeUnitSize
		}
		block.Entries = append(block.Entries, entry)
	}

	return block, nil
}

// LabelEncoder re-encodes a label block and records where each label moved.
//
// The encoder writes into a pooled buffer; call Reset when done.
type LabelEncoder struct {
	buf         *pool.ByteBuffer
	base        int
	relocations section.RelocationMap
	count       int
}

// NewLabelEncoder creates an encoder for a block that starts at the absolute
// offset base and opens with lead empty units.
func NewLabelEncoder(base int, lead int) *LabelEncoder {
	e := &LabelEncoder{
		buf:         pool.GetSectionBuffer(),
		base:        base,
		relocations: make(section.RelocationMap),
	}
	e.buf.WriteNullUnits(lead)

	return e
}

// Write appends one label. The original code units are reused when text equals
// the decoded text, so unchanged labels are byte-identical.
func (e *LabelEncoder) Write(entry LabelEntry, text string) error {
	e.relocations[entry.Offset] = uint32(e.base + e.buf.Len()) //nolint:gosec

	if text == entry.Text {
		e.buf.MustWrite(entry.Raw)
	} else {
		encoded, err := EncodeText(text)
		if err != nil {
			return fmt.Errorf("label %d: %w", entry.Index, err)
		}
		e.buf.MustWrite(encoded)
	}

	if !entry.Unterminated {
		e.buf.WriteNullUnits(1)
	}
	if entry.Padded {
		e.buf.WriteNullUnits(1)
	}
	e.buf.WriteNullUnits(entry.Filler)
	e.count++

	return nil
}

// Bytes returns the encoded block. The slice shares the encoder buffer.
func (e *LabelEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Relocations returns the original → new offset map of the labels written so far.
func (e *LabelEncoder) Relocations() section.RelocationMap {
	return e.relocations
}

// Len returns the number of labels written.
func (e *LabelEncoder) Len() int {
	return e.count
}

// Size returns the encoded size in bytes.
func (e *LabelEncoder) Size() int {
	return e.buf.Len()
}

// Reset returns the buffer to the pool. The encoder must not be used afterwards.
func (e *LabelEncoder) Reset() {
	if e.buf != nil {
		pool.PutSectionBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// EncodeLabels re-encodes block with texts, one per entry.
func EncodeLabels(block *LabelBlock, texts []string) ([]byte, section.RelocationMap, error) {
	if len(texts) != len(block.Entries) {
		return nil, nil, fmt.Errorf("%w: %d label texts for %d labels", errs.ErrPartitionMismatch, len(texts), len(block.Entries))
	}

	enc := NewLabelEncoder(block.Start, block.Lead)
	defer enc.Reset()

	for i := range block.Entries {
		if err := enc.Write(block.Entries[i], texts[i]); err != nil {
			return nil, nil, err
		}
	}

	out := make([]byte, enc.Size())
	copy(out, enc.Bytes())

	return out, enc.Relocations(), nil
}
