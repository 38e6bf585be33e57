package collision

import "github.com/arloliu/malie/internal/hash"

type first struct {
	index int
	text  string
}

// Tracker finds repeated texts by their xxHash64 ID.
//
// Two different texts with the same ID are a collision: the later text is
// counted as unique and the collision flag is set.
type Tracker struct {
	seen         map[uint64]first
	count        int
	duplicates   int
	hasCollision bool
}

// NewTracker creates a new tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[uint64]first)}
}

// TrackText tracks text at index using its hash.ID.
func (t *Tracker) TrackText(index int, text string) (int, bool) {
	return t.Track(index, text, hash.ID(text))
}

// Track records text at index under id. It returns the index of the first
// identical text and true when text was seen before.
func (t *Tracker) Track(index int, text string, id uint64) (int, bool) {
	t.count++

	if f, ok := t.seen[id]; ok {
		if f.text == text {
			t.duplicates++
			return f.index, true
		}
		t.hasCollision = true

		return -1, false
	}
	t.seen[id] = first{index: index, text: text}

	return -1, false
}

// HasCollision reports whether two different texts shared an ID.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Count returns the number of tracked texts.
func (t *Tracker) Count() int {
	return t.count
}

// Duplicates returns how many tracked texts repeated an earlier one.
func (t *Tracker) Duplicates() int {
	return t.duplicates
}

// Unique returns the number of distinct texts.
func (t *Tracker) Unique() int {
	return t.count - t.duplicates
}

// Reset clears all state, keeping the map allocation.
func (t *Tracker) Reset() {
	clear(t.seen)
	t.count = 0
	t.duplicates = 0
	t.hasCollision = false
}
