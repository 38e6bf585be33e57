package segment

import "strings"

// IsControl reports whether r separates segments. Every code point below 32
// does, which covers tab, newline, carriage return, bell, backspace and NUL.
func IsControl(r rune) bool {
	return r >= 0 && r < 32
}

// Split is a string cut at its control character runs.
//
// Runs[i] sits between Segments[i] and Segments[i+1], so
// Prefix + Segments[0] + Runs[0] + ... + Segments[n-1] + Suffix is the original.
// There is always at least one segment.
type Split struct {
	Prefix   string
	Suffix   string
	Segments []string
	Runs     []string
}

// SplitText strips leading and trailing control runs from s, then cuts what
// remains at every maximal control run.
func SplitText(s string) Split {
	var sp Split

	body := strings.TrimLeftFunc(s, IsControl)
	sp.Prefix = s[:len(s)-len(body)]
	trimmed := strings.TrimRightFunc(body, IsControl)
	sp.Suffix = body[len(trimmed):]
	body = trimmed

	start := 0
	for i := 0; i < len(body); {
		if !IsControl(rune(body[i])) {
			i++
			continue
		}

		runStart := i
		for i < len(body) && IsControl(rune(body[i])) {
			i++
		}
		sp.Segments = append(sp.Segments, body[start:runStart])
		sp.Runs = append(sp.Runs, body[runStart:i])
		start = i
	}
	sp.Segments = append(sp.Segments, body[start:])

	return sp
}

// Count returns the number of segments.
func (sp Split) Count() int {
	return len(sp.Segments)
}

// Join reassembles the original string.
func (sp Split) Join() string {
	return sp.join(sp.Segments)
}

func (sp Split) join(segments []string) string {
	var b strings.Builder
	b.WriteString(sp.Prefix)
	for i, seg := range segments {
		b.WriteString(seg)
		if i < len(sp.Runs) {
			b.WriteString(sp.Runs[i])
		}
	}
	b.WriteString(sp.Suffix)

	return b.String()
}
