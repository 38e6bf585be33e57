// Package testutil builds synthetic Malie containers for tests.
package testutil

import (
	"unicode/utf16"

	"github.com/arloliu/malie/endian"
	"github.com/arloliu/malie/section"
)

// DefaultHeader ends with a 0x0000 unit so a signature label placed right after
// it starts the label block.
var DefaultHeader = []byte{'M', 'L', 'H', 'D', 0x01, 0x00, 0x00, 0x00}

// Prologue is a bytecode opening that scores as bytecode:
// five push.r32/pop pairs.
var Prologue = []byte{0x06, 0x0E, 0x06, 0x0E, 0x06, 0x0E, 0x06, 0x0E, 0x06, 0x0E}

// MinBytecodeSize keeps the label scan clear of the offset table margin.
const MinBytecodeSize = 128

// Label is one label block entry.
type Label struct {
	Text   string
	Padded bool
}

// Container describes a synthetic container.
type Container struct {
	Header   []byte
	Labels   []Label
	Bytecode []byte // appended after Prologue, padded with push.0 to MinBytecodeSize
	Strings  []string
	// NoPrologue omits Prologue, for tests that place their own block separator.
	NoPrologue bool
}

// Layout reports where the builder placed things.
type Layout struct {
	Regions      section.Regions
	LabelOffsets []int
	// CodeStart is the absolute offset of the first byte after the prologue.
	CodeStart int
}

// UTF16 encodes s as UTF-16LE.
func UTF16(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, len(units)*2)
	for _, u := range units {
		out = append(out, byte(u), byte(u>>8))
	}

	return out
}

// Jump returns a jump-class instruction targeting an absolute offset.
func Jump(op byte, target uint32) []byte {
	return endian.GetLittleEndianEngine().AppendUint32([]byte{op}, target)
}

// Build serializes the container.
func (c Container) Build() ([]byte, Layout) {
	engine := endian.GetLittleEndianEngine()
	header := c.Header
	if header == nil {
		header = DefaultHeader
	}

	var layout Layout
	out := append([]byte{}, header...)
	layout.Regions.LabelStart = len(out)

	for _, l := range c.Labels {
		layout.LabelOffsets = append(layout.LabelOffsets, len(out))
		out = append(out, UTF16(l.Text)...)
		out = append(out, 0, 0)
		if l.Padded {
			out = append(out, 0, 0)
		}
	}
	layout.Regions.LabelEnd = len(out)

	code := []byte{}
	if !c.NoPrologue {
		code = append(code, Prologue...)
	}
	layout.CodeStart = len(out) + len(code)
	code = append(code, c.Bytecode...)
	for len(code) < MinBytecodeSize {
		code = append(code, 0x0F)
	}
	out = append(out, code...)
	layout.Regions.OffsetTablePos = len(out)

	payload := []byte{}
	entries := engine.AppendUint32(nil, uint32(len(c.Strings))) //nolint:gosec
	for _, s := range c.Strings {
		body := UTF16(s)
		entries = section.OffsetEntry{
			Offset: uint32(len(payload)), //nolint:gosec
			Length: uint32(len(body)),    //nolint:gosec
		}.AppendTo(entries, engine)
		payload = append(payload, body...)
		payload = append(payload, 0, 0)
	}
	out = append(out, entries...)
	layout.Regions.StringTablePos = len(out)
	out = engine.AppendUint32(out, uint32(len(payload))) //nolint:gosec
	out = append(out, payload...)

	return out, layout
}
