package main

import (
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// palette holds the terminal styles. Markers are printed regardless of color,
// so uncolored output stays readable.
type palette struct {
	heading *color.Color
	removed *color.Color
	added   *color.Color
	warn    *color.Color
	ok      *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		heading: color.New(color.Bold),
		removed: color.New(color.FgRed),
		added:   color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		ok:      color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.heading, p.removed, p.added, p.warn, p.ok} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// renderDiff prints removals as [-text-] and additions as {+text+}.
func (p *palette) renderDiff(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString(p.removed.Sprint("[-" + d.Text + "-]"))
		case diffmatchpatch.DiffInsert:
			b.WriteString(p.added.Sprint("{+" + d.Text + "+}"))
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		}
	}

	return b.String()
}
