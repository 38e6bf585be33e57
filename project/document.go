package project

import (
	"fmt"

	"github.com/arloliu/malie/editor"
	"github.com/arloliu/malie/errs"
	"github.com/arloliu/malie/internal/collision"
	"github.com/arloliu/malie/internal/hash"
)

// DocumentVersion is the document schema version written by this package.
const DocumentVersion = 1

// Document is the translation document of one container.
type Document struct {
	Version int      `yaml:"version" cbor:"1,keyasint"`
	Source  Source   `yaml:"source" cbor:"2,keyasint"`
	Filter  bool     `yaml:"filter" cbor:"3,keyasint"`
	Labels  []Label  `yaml:"labels,omitempty" cbor:"4,keyasint,omitempty"`
	Strings []String `yaml:"strings,omitempty" cbor:"5,keyasint,omitempty"`
}

// Source identifies the container a document was dumped from.
type Source struct {
	Name   string `yaml:"name" cbor:"1,keyasint"`
	Size   int    `yaml:"size" cbor:"2,keyasint"`
	Digest string `yaml:"digest" cbor:"3,keyasint"`
}

// Label is one editable label.
type Label struct {
	Index    int    `yaml:"index" cbor:"1,keyasint"`
	Hash     string `yaml:"hash" cbor:"2,keyasint"`
	Original string `yaml:"original" cbor:"3,keyasint"`
	Text     string `yaml:"text" cbor:"4,keyasint"`
}

// String is one string table entry, cut into segments.
type String struct {
	Index    int      `yaml:"index" cbor:"1,keyasint"`
	Hash     string   `yaml:"hash" cbor:"2,keyasint"`
	Original []string `yaml:"original" cbor:"3,keyasint"`
	Segments []string `yaml:"segments" cbor:"4,keyasint"`
	// Same is the index of an earlier string with identical original text.
	Same *int `yaml:"same,omitempty" cbor:"5,keyasint,omitempty"`
}

func textHash(s string) string {
	return fmt.Sprintf("%016x", hash.ID(s))
}

// New dumps the container currently open in ed. Labels follow the editor's
// filter view; every string table entry is included.
func New(name string, ed *editor.Editor) (*Document, error) {
	src := ed.Source()
	if src == nil {
		return nil, fmt.Errorf("%w: editor has no open container", errs.ErrNotDecoded)
	}

	doc := &Document{
		Version: DocumentVersion,
		Source: Source{
			Name:   name,
			Size:   len(src),
			Digest: hash.Digest(src),
		},
		Filter: ed.FilterMode(),
	}

	labels := ed.Labels()
	for _, i := range ed.View().Indices() {
		doc.Labels = append(doc.Labels, Label{
			Index:    i,
			Hash:     textHash(labels[i]),
			Original: labels[i],
			Text:     labels[i],
		})
	}

	tracker := collision.NewTracker()
	for i, sp := range ed.Splits() {
		text := sp.Join()
		entry := String{
			Index:    i,
			Hash:     textHash(text),
			Original: append([]string(nil), sp.Segments...),
			Segments: append([]string(nil), sp.Segments...),
		}
		if same, dup := tracker.TrackText(i, text); dup {
			entry.Same = &same
		}
		doc.Strings = append(doc.Strings, entry)
	}

	return doc, nil
}

// Apply builds the edited list for ed.Save from the document.
//
// ed must have the document's source container open, with the same filter
// mode. Entries missing from the document keep their original text.
func (d *Document) Apply(ed *editor.Editor) ([]string, error) {
	src := ed.Source()
	if src == nil {
		return nil, fmt.Errorf("%w: editor has no open container", errs.ErrNotDecoded)
	}
	if d.Source.Size != len(src) || d.Source.Digest != hash.Digest(src) {
		return nil, fmt.Errorf("%w: %s", errs.ErrSourceMismatch, d.Source.Name)
	}

	labels := ed.Labels()
	view := ed.View()
	splits := ed.Splits()

	list := view.Select(labels)
	position := make(map[int]int, len(list))
	for pos, i := range view.Indices() {
		position[i] = pos
	}

	starts := make([]int, len(splits))
	for i, sp := range splits {
		starts[i] = len(list)
		list = append(list, sp.Segments...)
	}

	for _, l := range d.Labels {
		if l.Index < 0 || l.Index >= len(labels) {
			return nil, fmt.Errorf("%w: label %d out of range", errs.ErrStaleEntry, l.Index)
		}
		if l.Hash != textHash(labels[l.Index]) {
			return nil, fmt.Errorf("%w: label %d original changed", errs.ErrStaleEntry, l.Index)
		}
		pos, ok := position[l.Index]
		if !ok {
			return nil, fmt.Errorf("%w: label %d is hidden by the filter", errs.ErrPartitionMismatch, l.Index)
		}
		list[pos] = l.Text
	}

	for _, s := range d.Strings {
		if s.Index < 0 || s.Index >= len(splits) {
			return nil, fmt.Errorf("%w: string %d out of range", errs.ErrStaleEntry, s.Index)
		}
		sp := splits[s.Index]
		if s.Hash != textHash(sp.Join()) {
			return nil, fmt.Errorf("%w: string %d original changed", errs.ErrStaleEntry, s.Index)
		}
		if len(s.Segments) != sp.Count() {
			return nil, fmt.Errorf("%w: string %d has %d segments, want %d",
				errs.ErrSegmentCountMismatch, s.Index, len(s.Segments), sp.Count())
		}
		copy(list[starts[s.Index]:], s.Segments)
	}

	return list, nil
}
