package browser

// DefaultHistoryLength bounds a History when no length is given.
const DefaultHistoryLength = 500

// History is a bounded list of visited items with a cursor naming the one
// currently displayed. Adding never truncates entries after the cursor; it
// appends and moves the cursor to the end. When the bound is exceeded the
// oldest entry is evicted.
//
// History is not safe for concurrent use.
type History[T comparable] struct {
	entries []T
	pos     int // -1 when empty
	max     int
}

// NewHistory creates a history holding at most maxLength items, seeded with
// items (oldest first). The cursor starts on the most recent item.
func NewHistory[T comparable](maxLength int, items ...T) *History[T] {
	if maxLength <= 0 {
		maxLength = DefaultHistoryLength
	}
	if len(items) > maxLength {
		items = items[len(items)-maxLength:]
	}
	h := &History[T]{
		entries: append([]T(nil), items...),
		max:     maxLength,
	}
	h.pos = len(h.entries) - 1
	return h
}

// Add appends item, evicting the oldest entry if the history is full, and
// makes it current.
func (h *History[T]) Add(item T) {
	h.entries = append(h.entries, item)
	if len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
	h.pos = len(h.entries) - 1
}

// Backward moves the cursor one step back. It reports whether it moved.
func (h *History[T]) Backward() bool {
	if h.pos <= 0 {
		return false
	}
	h.pos--
	return true
}

// Forward moves the cursor one step forward. It reports whether it moved.
func (h *History[T]) Forward() bool {
	if h.pos < 0 || h.pos >= len(h.entries)-1 {
		return false
	}
	h.pos++
	return true
}

// Goto moves the cursor to index, clamped into range. It does nothing on an
// empty history.
func (h *History[T]) Goto(index int) {
	if len(h.entries) == 0 {
		return
	}
	h.pos = clamp(index, 0, len(h.entries)-1)
}

// Remove deletes the entry at index. The cursor keeps naming the same item
// when an earlier entry is removed; removing the current item makes the
// previous one current. It reports false for an out of range index.
func (h *History[T]) Remove(index int) bool {
	if index < 0 || index >= len(h.entries) {
		return false
	}
	h.entries = append(h.entries[:index], h.entries[index+1:]...)
	if index <= h.pos {
		h.pos--
	}
	switch {
	case len(h.entries) == 0:
		h.pos = -1
	default:
		h.pos = clamp(h.pos, 0, len(h.entries)-1)
	}
	return true
}

// Clear empties the history.
func (h *History[T]) Clear() {
	h.entries = nil
	h.pos = -1
}

// Current returns the item under the cursor and false when empty.
func (h *History[T]) Current() (T, bool) {
	if h.pos < 0 || h.pos >= len(h.entries) {
		var zero T
		return zero, false
	}
	return h.entries[h.pos], true
}

// Cursor returns the current index, or -1 when empty.
func (h *History[T]) Cursor() int {
	if len(h.entries) == 0 {
		return -1
	}
	return h.pos
}

// CanGoBack reports whether there is a previous entry.
func (h *History[T]) CanGoBack() bool {
	return h.pos > 0
}

// CanGoForward reports whether there is a next entry.
func (h *History[T]) CanGoForward() bool {
	return h.pos >= 0 && h.pos < len(h.entries)-1
}

// Len returns the number of entries.
func (h *History[T]) Len() int {
	return len(h.entries)
}

// MaxLength returns the bound on the number of entries.
func (h *History[T]) MaxLength() int {
	return h.max
}

// Entries returns a copy of the entries, oldest first.
func (h *History[T]) Entries() []T {
	return append([]T(nil), h.entries...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
