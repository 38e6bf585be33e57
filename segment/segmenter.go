package segment

import (
	"fmt"

	"github.com/arloliu/malie/errs"
)

type span struct {
	prefix string
	suffix string
	first  int // index of the first segment in the arena
	count  int
	runs   int // index of the first run in the run arena
}

// Segmenter splits a list of strings into one flat list of segments and merges
// an edited flat list back.
//
// Segments and runs of all entries live in two dense arenas; entries refer to
// them by index.
type Segmenter struct {
	spans    []span
	segments []string
	runs     []string
}

// Build splits texts, replacing any previous state.
func (sg *Segmenter) Build(texts []string) {
	sg.spans = make([]span, 0, len(texts))
	sg.segments = sg.segments[:0]
	sg.runs = sg.runs[:0]

	for _, text := range texts {
		sp := SplitText(text)
		sg.spans = append(sg.spans, span{
			prefix: sp.Prefix,
			suffix: sp.Suffix,
			first:  len(sg.segments),
			count:  len(sp.Segments),
			runs:   len(sg.runs),
		})
		sg.segments = append(sg.segments, sp.Segments...)
		sg.runs = append(sg.runs, sp.Runs...)
	}
}

// Len returns the number of entries.
func (sg *Segmenter) Len() int {
	return len(sg.spans)
}

// Total returns the number of segments over all entries.
func (sg *Segmenter) Total() int {
	return len(sg.segments)
}

// Count returns the number of segments of entry i.
func (sg *Segmenter) Count(i int) int {
	return sg.spans[i].count
}

// Split returns entry i. Its slices alias the arenas.
func (sg *Segmenter) Split(i int) Split {
	s := sg.spans[i]
	return Split{
		Prefix:   s.prefix,
		Suffix:   s.suffix,
		Segments: sg.segments[s.first : s.first+s.count : s.first+s.count],
		Runs:     sg.runs[s.runs : s.runs+s.count-1 : s.runs+s.count-1],
	}
}

// Splits returns every entry in order.
func (sg *Segmenter) Splits() []Split {
	out := make([]Split, len(sg.spans))
	for i := range sg.spans {
		out[i] = sg.Split(i)
	}

	return out
}

// Flatten returns a copy of all segments in entry order.
func (sg *Segmenter) Flatten() []string {
	return append([]string(nil), sg.segments...)
}

// Merge rebuilds every entry from a flat segment list laid out like Flatten.
func (sg *Segmenter) Merge(flat []string) ([]string, error) {
	if len(flat) != len(sg.segments) {
		return nil, fmt.Errorf("%w: got %d segments, want %d", errs.ErrSegmentCountMismatch, len(flat), len(sg.segments))
	}

	out := make([]string, len(sg.spans))
	for i, s := range sg.spans {
		out[i] = sg.Split(i).join(flat[s.first : s.first+s.count])
	}

	return out, nil
}

// MergeEntries rebuilds every entry from per-entry segment lists.
func (sg *Segmenter) MergeEntries(entries [][]string) ([]string, error) {
	if len(entries) != len(sg.spans) {
		return nil, fmt.Errorf("%w: got %d entries, want %d", errs.ErrSegmentCountMismatch, len(entries), len(sg.spans))
	}

	out := make([]string, len(sg.spans))
	for i, segs := range entries {
		if len(segs) != sg.spans[i].count {
			return nil, fmt.Errorf("%w: entry %d has %d segments, want %d",
				errs.ErrSegmentCountMismatch, i, len(segs), sg.spans[i].count)
		}
		out[i] = sg.Split(i).join(segs)
	}

	return out, nil
}
