package encoding

import (
	"fmt"

	"github.com/arloliu/malie/endian"
	"github.com/arloliu/malie/errs"
	"github.com/arloliu/malie/internal/pool"
	"github.com/arloliu/malie/section"
)

// StringEntry is one decoded string table entry.
type StringEntry struct {
	Index int
	// Offset is relative to the first payload byte.
	Offset uint32
	// Length is the declared byte length of the body.
	Length uint32
	// Raw holds the body without its terminator.
	Raw  []byte
	Text string
}

// DecodeStringTable decodes the offset table at offsetTablePos and the strings it
// points to in the payload following the length field at stringTablePos.
//
// Raw slices alias data.
func DecodeStringTable(data []byte, offsetTablePos, stringTablePos int) ([]StringEntry, error) {
	engine := endian.GetLittleEndianEngine()

	count, ok := endian.PeekUint32(engine, data, offsetTablePos)
	if !ok {
		return nil, fmt.Errorf("%w: string count at %d", errs.ErrTruncatedStream, offsetTablePos)
	}

	entriesPos := offsetTablePos + section.CountFieldSize
	if want := int64(entriesPos) + int64(count)*section.OffsetEntrySize; want != int64(stringTablePos) {
		return nil, fmt.Errorf("%w: %d entries end at %d, length field at %d",
			errs.ErrInvalidOffsetEntrySize, count, want, stringTablePos)
	}

	if _, ok := endian.PeekUint32(engine, data, stringTablePos); !ok {
		return nil, fmt.Errorf("%w: payload length at %d", errs.ErrTruncatedStream, stringTablePos)
	}
	payloadStart := stringTablePos + section.PayloadFieldSize

	entries := make([]StringEntry, 0, count)
	for i := range int(count) {
		at := entriesPos + i*section.OffsetEntrySize
		oe, err := section.ParseOffsetEntry(data[at:], engine)
		if err != nil {
			return nil, fmt.Errorf("string %d: %w", i, err)
		}

		bodyEnd := int64(payloadStart) + int64(oe.End())
		if bodyEnd > int64(len(data)) {
			return nil, fmt.Errorf("%w: string %d ends at %d, stream has %d bytes",
				errs.ErrTruncatedStream, i, bodyEnd, len(data))
		}

		lo := payloadStart + int(oe.Offset)
		hi := int(bodyEnd)
		raw := data[lo:hi:hi]
		text, err := DecodeText(raw)
		if err != nil {
			return nil, fmt.Errorf("string %d: %w", i, err)
		}

		entries = append(entries, StringEntry{
			Index:  i,
			Offset: oe.Offset,
			Length: oe.Length,
			Raw:    raw,
			Text:   text,
		})
	}

	return entries, nil
}

// StringTableEncoder rebuilds the offset table and payload.
//
// Strings are laid out back to back, each followed by a 0x0000 terminator.
type StringTableEncoder struct {
	engine  endian.EndianEngine
	table   []byte
	payload *pool.ByteBuffer
	count   int
}

// NewStringTableEncoder creates an encoder expecting about n strings.
func NewStringTableEncoder(n int) *StringTableEncoder {
	return &StringTableEncoder{
		engine:  endian.GetLittleEndianEngine(),
		table:   make([]byte, 0, n*section.OffsetEntrySize),
		payload: pool.GetSectionBuffer(),
	}
}

// Write appends one string. The original body is reused when text equals the
// decoded text.
func (e *StringTableEncoder) Write(entry StringEntry, text string) error {
	body := entry.Raw
	if text != entry.Text {
		encoded, err := EncodeText(text)
		if err != nil {
			return fmt.Errorf("string %d: %w", entry.Index, err)
		}
		body = encoded
	}

	e.table = section.OffsetEntry{
		Offset: uint32(e.payload.Len()), //nolint:gosec
		Length: uint32(len(body)),       //nolint:gosec
	}.AppendTo(e.table, e.engine)

	e.payload.Grow(len(body) + section.CodeUnitSize)
	e.payload.MustWrite(body)
	e.payload.WriteNullUnits(1)
	e.count++

	return nil
}

// Len returns the number of strings written.
func (e *StringTableEncoder) Len() int {
	return e.count
}

// Size returns the encoded size of the whole table in bytes.
func (e *StringTableEncoder) Size() int {
	return section.CountFieldSize + len(e.table) + section.PayloadFieldSize + e.payload.Len()
}

// AppendTo appends count · entries · payload length · payload to dst.
func (e *StringTableEncoder) AppendTo(dst []byte) []byte {
	dst = e.engine.AppendUint32(dst, uint32(e.count)) //nolint:gosec
	dst = append(dst, e.table...)
	dst = e.engine.AppendUint32(dst, uint32(e.payload.Len())) //nolint:gosec

	return append(dst, e.payload.Bytes()...)
}

// Bytes returns a freshly allocated copy of the encoded table.
func (e *StringTableEncoder) Bytes() []byte {
	return e.AppendTo(make([]byte, 0, e.Size()))
}

// Reset returns the payload buffer to the pool. The encoder must not be used afterwards.
func (e *StringTableEncoder) Reset() {
	if e.payload != nil {
		pool.PutSectionBuffer(e.payload)
		e.payload = nil
	}
	e.table = nil
	e.count = 0
}

// EncodeStringTable re-encodes entries with texts, one per entry.
func EncodeStringTable(entries []StringEntry, texts []string) ([]byte, error) {
	if len(texts) != len(entries) {
		return nil, fmt.Errorf("%w: %d string texts for %d strings", errs.ErrPartitionMismatch, len(texts), len(entries))
	}

	enc := NewStringTableEncoder(len(entries))
	defer enc.Reset()

	for i := range entries {
		if err := enc.Write(entries[i], texts[i]); err != nil {
			return nil, err
		}
	}

	return enc.Bytes(), nil
}
