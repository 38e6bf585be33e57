package container

import (
	"github.com/arloliu/malie/encoding"
	"github.com/arloliu/malie/format"
	"github.com/arloliu/malie/section"
)

// Session is the decoded state of one imported container. It is not modified
// after Import returns; Export reads it and never re-derives regions.
type Session struct {
	data     []byte
	regions  section.Regions
	located  section.Regions
	strategy format.LocateStrategy
	labels   encoding.LabelBlock
	strings  []encoding.StringEntry
}

// Size returns the size of the source container.
func (s *Session) Size() int {
	return len(s.data)
}

// Source returns the engine's copy of the source container. Callers must not modify it.
func (s *Session) Source() []byte {
	return s.data
}

// Regions returns the region bounds in effect. LabelEnd reflects where label
// decoding actually stopped.
func (s *Session) Regions() section.Regions {
	return s.regions
}

// Located returns the region bounds as reported by the locator.
func (s *Session) Located() section.Regions {
	return s.located
}

// Strategy returns the locate strategy that succeeded.
func (s *Session) Strategy() format.LocateStrategy {
	return s.strategy
}

// Labels returns the decoded label block.
func (s *Session) Labels() *encoding.LabelBlock {
	return &s.labels
}

// Strings returns the decoded string table entries.
func (s *Session) Strings() []encoding.StringEntry {
	return s.strings
}

// LabelCount returns the number of labels.
func (s *Session) LabelCount() int {
	return s.labels.Len()
}

// StringCount returns the number of string table entries.
func (s *Session) StringCount() int {
	return len(s.strings)
}

// Truncated reports whether label decoding stopped early at bytecode-like data.
func (s *Session) Truncated() bool {
	return s.labels.Truncated
}

// Header returns the opaque bytes before the label block.
func (s *Session) Header() []byte {
	return s.data[:s.regions.LabelStart]
}

// Bytecode returns the original bytecode block.
func (s *Session) Bytecode() []byte {
	return s.data[s.regions.LabelEnd:s.regions.OffsetTablePos]
}

// Texts returns every label text followed by every string text.
func (s *Session) Texts() []string {
	texts := make([]string, 0, s.LabelCount()+s.StringCount())
	texts = append(texts, s.labels.Texts()...)
	for i := range s.strings {
		texts = append(texts, s.strings[i].Text)
	}

	return texts
}
