// Package editor is the translator-facing view of a container: visible labels
// followed by string table segments, as one flat list.
package editor

import (
	"fmt"

	"github.com/arloliu/malie/container"
	"github.com/arloliu/malie/errs"
	"github.com/arloliu/malie/internal/logging"
	"github.com/arloliu/malie/internal/options"
	"github.com/arloliu/malie/segment"
)

// Editor opens a container into an editable list and saves an edited list back.
//
// The list is the labels selected by the filter view, in order, followed by the
// segments of every string table entry. An Editor is not safe for concurrent use.
type Editor struct {
	*Config
	engine *container.Engine

	opened    bool
	active    bool
	labels    []string
	view      segment.FilterView
	segmenter segment.Segmenter
}

// New creates an Editor.
func New(opts ...Option) (*Editor, error) {
	config := newConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	engineOpts := append([]container.Option{container.WithLogger(config.logger)}, config.engineOptions...)
	engine, err := container.NewEngine(engineOpts...)
	if err != nil {
		return nil, err
	}

	return &Editor{
		Config: config,
		engine: engine,
	}, nil
}

// SetFilterMode turns label filtering on or off. It takes effect at the next Open.
func (ed *Editor) SetFilterMode(enabled bool) {
	ed.filter = enabled
}

// FilterMode reports whether the list returned by the last Open was filtered.
func (ed *Editor) FilterMode() bool {
	return ed.active
}

// Open imports data and returns the editable list.
func (ed *Editor) Open(data []byte) ([]string, error) {
	ed.reset()

	texts, err := ed.engine.Import(data)
	if err != nil {
		return nil, err
	}

	n := ed.engine.Session().LabelCount()
	ed.labels = texts[:n:n]
	ed.active = ed.filter
	if ed.active {
		ed.view = segment.NewFilterView(ed.labels, ed.classifier)
	} else {
		ed.view = segment.IdentityView(n)
	}
	ed.segmenter.Build(texts[n:])
	ed.opened = true

	list := make([]string, 0, ed.view.Len()+ed.segmenter.Total())
	list = append(list, ed.view.Select(ed.labels)...)
	list = append(list, ed.segmenter.Flatten()...)

	logging.Component(ed.logger, "editor").Debug("container opened",
		"labels", n,
		"visible_labels", ed.view.Len(),
		"strings", ed.segmenter.Len(),
		"segments", ed.segmenter.Total(),
		"filter", ed.active)

	return list, nil
}

// reset drops the previous container so a failed Open leaves nothing behind.
func (ed *Editor) reset() {
	ed.opened = false
	ed.active = false
	ed.labels = nil
	ed.view = segment.IdentityView(0)
	ed.segmenter.Build(nil)
}

// Save merges an edited list, laid out like the one Open returned, and exports
// the container. Hidden labels are written back unchanged.
func (ed *Editor) Save(list []string) ([]byte, error) {
	if !ed.opened {
		return nil, fmt.Errorf("%w: editor has no open container", errs.ErrNotDecoded)
	}

	visible := ed.view.Len()
	if want := visible + ed.segmenter.Total(); len(list) != want {
		return nil, fmt.Errorf("%w: got %d entries, want %d labels + %d segments",
			errs.ErrPartitionMismatch, len(list), visible, ed.segmenter.Total())
	}

	labels, err := ed.view.Restore(ed.labels, list[:visible])
	if err != nil {
		return nil, err
	}

	strs, err := ed.segmenter.Merge(list[visible:])
	if err != nil {
		return nil, err
	}

	return ed.engine.Export(append(labels, strs...))
}

// LabelCount returns the number of labels in the container.
func (ed *Editor) LabelCount() int {
	return len(ed.labels)
}

// FilteredLabelCount returns the number of labels in the editable list.
func (ed *Editor) FilteredLabelCount() int {
	return ed.view.Len()
}

// StringCount returns the number of string table entries.
func (ed *Editor) StringCount() int {
	return ed.segmenter.Len()
}

// SegmentCount returns the number of string segments in the editable list.
func (ed *Editor) SegmentCount() int {
	return ed.segmenter.Total()
}

// Labels returns the original text of every label.
func (ed *Editor) Labels() []string {
	return ed.labels
}

// View returns the label filter view of the last Open.
func (ed *Editor) View() segment.FilterView {
	return ed.view
}

// Splits returns the segmentation of every string table entry.
func (ed *Editor) Splits() []segment.Split {
	return ed.segmenter.Splits()
}

// Source returns the container bytes of the last successful Open, or nil.
func (ed *Editor) Source() []byte {
	if s := ed.engine.Session(); s != nil && ed.opened {
		return s.Source()
	}

	return nil
}

// Session returns the engine session of the last successful Open, or nil.
func (ed *Editor) Session() *container.Session {
	if !ed.opened {
		return nil
	}

	return ed.engine.Session()
}

// LastExport returns the statistics of the last successful Save.
func (ed *Editor) LastExport() container.ExportStats {
	return ed.engine.LastExport()
}
