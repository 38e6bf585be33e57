package project

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ChangeKind tells which part of the container a Change belongs to.
type ChangeKind uint8

const (
	ChangeLabel ChangeKind = iota + 1
	ChangeString
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeLabel:
		return "label"
	case ChangeString:
		return "string"
	default:
		return "unknown"
	}
}

// Change is one edited label or segment.
type Change struct {
	Kind  ChangeKind
	Index int
	// Segment is the segment index within a string, or -1 when the segment
	// counts differ and whole entries are compared.
	Segment  int
	Original string
	Text     string
	Diffs    []diffmatchpatch.Diff
}

// Diff lists the entries of doc whose text differs from the original.
func Diff(doc *Document) []Change {
	dmp := diffmatchpatch.New()
	diff := func(a, b string) []diffmatchpatch.Diff {
		diffs := dmp.DiffMain(a, b, false)
		return dmp.DiffCleanupSemantic(diffs)
	}

	var changes []Change
	for _, l := range doc.Labels {
		if l.Text == l.Original {
			continue
		}
		changes = append(changes, Change{
			Kind:     ChangeLabel,
			Index:    l.Index,
			Original: l.Original,
			Text:     l.Text,
			Diffs:    diff(l.Original, l.Text),
		})
	}

	for _, s := range doc.Strings {
		if len(s.Segments) != len(s.Original) {
			a, b := strings.Join(s.Original, " | "), strings.Join(s.Segments, " | ")
			changes = append(changes, Change{
				Kind:     ChangeString,
				Index:    s.Index,
				Segment:  -1,
				Original: a,
				Text:     b,
				Diffs:    diff(a, b),
			})

			continue
		}

		for j := range s.Segments {
			if s.Segments[j] == s.Original[j] {
				continue
			}
			changes = append(changes, Change{
				Kind:     ChangeString,
				Index:    s.Index,
				Segment:  j,
				Original: s.Original[j],
				Text:     s.Segments[j],
				Diffs:    diff(s.Original[j], s.Segments[j]),
			})
		}
	}

	return changes
}
