package segment

import (
	"fmt"

	"github.com/arloliu/malie/errs"
)

// FilterView selects the labels shown for editing. Indices are strictly
// increasing positions in the full label list.
type FilterView struct {
	indices []int
	total   int
}

// IdentityView returns a view that shows all n labels.
func IdentityView(n int) FilterView {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	return FilterView{indices: indices, total: n}
}

// NewFilterView shows the labels c marks visible. A nil classifier shows all.
func NewFilterView(labels []string, c Classifier) FilterView {
	if c == nil {
		return IdentityView(len(labels))
	}

	v := FilterView{total: len(labels)}
	for i, label := range labels {
		if c.Visible(label) {
			v.indices = append(v.indices, i)
		}
	}

	return v
}

// Len returns the number of visible labels.
func (v FilterView) Len() int {
	return len(v.indices)
}

// Total returns the number of labels the view was built over.
func (v FilterView) Total() int {
	return v.total
}

// Identity reports whether every label is visible.
func (v FilterView) Identity() bool {
	return len(v.indices) == v.total
}

// Indices returns a copy of the visible label indices.
func (v FilterView) Indices() []int {
	return append([]int(nil), v.indices...)
}

// Select returns the visible labels of labels.
func (v FilterView) Select(labels []string) []string {
	out := make([]string, len(v.indices))
	for i, idx := range v.indices {
		out[i] = labels[idx]
	}

	return out
}

// Restore writes edited, one text per visible label, over a copy of orig.
func (v FilterView) Restore(orig, edited []string) ([]string, error) {
	if len(orig) != v.total {
		return nil, fmt.Errorf("%w: view covers %d labels, got %d", errs.ErrPartitionMismatch, v.total, len(orig))
	}
	if len(edited) != len(v.indices) {
		return nil, fmt.Errorf("%w: view shows %d labels, got %d", errs.ErrPartitionMismatch, len(v.indices), len(edited))
	}

	out := append([]string(nil), orig...)
	for i, idx := range v.indices {
		out[idx] = edited[i]
	}

	return out, nil
}
