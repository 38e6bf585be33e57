// Package malie edits the text of Malie engine script containers.
//
// A container holds a label block, VM bytecode and a string table. malie finds
// those regions heuristically, exposes the labels and strings as one editable
// list, and writes the container back with every label jump in the bytecode
// relocated to the label's new position. Unchanged text is written back byte
// for byte, so opening and saving an untouched container reproduces it exactly.
//
// # Basic Usage
//
// Editing through the flat list:
//
//	ed, _ := malie.NewEditor()
//	list, _ := ed.Open(data)
//	list[2] = "アリス"
//	out, _ := ed.Save(list)
//
// Dumping a translation document and applying it later:
//
//	doc, _ := malie.Dump("scene.dat", data, true)
//	archive, _ := project.Marshal(doc, format.DumpYAML, format.CompressionNone)
//	...
//	doc, _ = project.Unmarshal(archive)
//	out, stats, _ := malie.Apply(data, doc)
//
// # Package Structure
//
// This package provides top-level wrappers for the common flows. The container
// package holds the import/export engine, editor the list view, segment the
// string segmentation and label filtering, and project the translation
// documents.
package malie

import (
	"bytes"
	"fmt"

	"github.com/arloliu/malie/container"
	"github.com/arloliu/malie/editor"
	"github.com/arloliu/malie/internal/hash"
	"github.com/arloliu/malie/project"
)

// NewEditor creates an Editor with the built-in label rules and filtering off.
func NewEditor(opts ...editor.Option) (*editor.Editor, error) {
	return editor.New(opts...)
}

// NewFilteredEditor creates an Editor that hides engine-internal labels.
func NewFilteredEditor(opts ...editor.Option) (*editor.Editor, error) {
	return editor.New(append([]editor.Option{editor.WithFilter(true)}, opts...)...)
}

// Dump opens data and returns its translation document.
func Dump(name string, data []byte, filter bool, opts ...editor.Option) (*project.Document, error) {
	ed, err := editor.New(append(opts, editor.WithFilter(filter))...)
	if err != nil {
		return nil, err
	}
	if _, err := ed.Open(data); err != nil {
		return nil, err
	}

	return project.New(name, ed)
}

// Apply writes doc into data and returns the new container.
func Apply(data []byte, doc *project.Document, opts ...editor.Option) ([]byte, container.ExportStats, error) {
	ed, err := editor.New(append(opts, editor.WithFilter(doc.Filter))...)
	if err != nil {
		return nil, container.ExportStats{}, err
	}
	if _, err := ed.Open(data); err != nil {
		return nil, container.ExportStats{}, err
	}

	list, err := doc.Apply(ed)
	if err != nil {
		return nil, container.ExportStats{}, err
	}

	out, err := ed.Save(list)
	if err != nil {
		return nil, container.ExportStats{}, err
	}

	return out, ed.LastExport(), nil
}

// Verify opens data and saves it unchanged. It returns an error wrapping the
// first differing offset when the output is not identical to the input.
func Verify(data []byte, opts ...editor.Option) error {
	ed, err := editor.New(opts...)
	if err != nil {
		return err
	}

	list, err := ed.Open(data)
	if err != nil {
		return err
	}

	out, err := ed.Save(list)
	if err != nil {
		return err
	}

	if !bytes.Equal(out, data) {
		at := 0
		for at < len(out) && at < len(data) && out[at] == data[at] {
			at++
		}

		return fmt.Errorf("round trip differs at offset 0x%X (%d bytes in, %d bytes out)", at, len(data), len(out))
	}

	return nil
}

// TextID returns the 64-bit hash project documents use to pin an entry's original text.
func TextID(text string) uint64 {
	return hash.ID(text)
}
