package history

import (
	"strings"
	"sync"
)

// History holds submitted lines, most recent first, plus a browsing cursor.
// Index -1 means the user is not browsing.
type History struct {
	mu      sync.RWMutex
	entries []string
	index   int
	maxSize int
}

// New creates an empty history. maxSize <= 0 means unbounded.
func New(maxSize int) *History {
	return &History{
		index:   -1,
		maxSize: maxSize,
	}
}

// Push trims line and, if non-empty, inserts it at the front and resets the
// cursor. It reports whether the line was recorded.
func (h *History) Push(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append([]string{line}, h.entries...)
	if h.maxSize > 0 && len(h.entries) > h.maxSize {
		h.entries = h.entries[:h.maxSize]
	}
	h.index = -1
	return true
}

// Restore replaces the entries (most recent first), e.g. after loading from disk.
func (h *History) Restore(entries []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = make([]string, 0, len(entries))
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			h.entries = append(h.entries, e)
		}
	}
	if h.maxSize > 0 && len(h.entries) > h.maxSize {
		h.entries = h.entries[:h.maxSize]
	}
	h.index = -1
}

// Entries returns a copy of the history, most recent first.
func (h *History) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	result := make([]string, len(h.entries))
	copy(result, h.entries)
	return result
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Index returns the browsing cursor, -1 when not browsing.
func (h *History) Index() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.index
}

// Browsing reports whether the cursor points at an entry.
func (h *History) Browsing() bool {
	return h.Index() != -1
}

// Prev moves towards older entries. It returns the selected entry and
// whether the cursor moved; at the oldest entry it does nothing.
func (h *History) Prev() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index >= len(h.entries)-1 {
		return "", false
	}
	h.index++
	return h.entries[h.index], true
}

// Next moves towards newer entries. Stepping past the newest entry leaves
// browsing mode and returns the empty string. When not browsing it does nothing.
func (h *History) Next() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch {
	case h.index > 0:
		h.index--
		return h.entries[h.index], true
	case h.index == 0:
		h.index = -1
		return "", true
	default:
		return "", false
	}
}

// ResetNavigation leaves browsing mode without touching the entries.
func (h *History) ResetNavigation() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.index = -1
}
