// Package segment turns container texts into translator-friendly units and back.
//
// String table entries embed control characters (line breaks, tabs, engine
// escapes below U+0020). A Segmenter cuts each entry at those runs so only the
// text between them is edited, and merges the edited segments back around the
// original runs.
//
// Labels are not segmented. A FilterView hides engine-internal labels behind a
// Classifier and restores them untouched on save.
package segment
