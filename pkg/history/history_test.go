package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_Push(t *testing.T) {
	t.Run("inserts at the front", func(t *testing.T) {
		h := New(0)
		h.Push("first")
		h.Push("second")
		assert.Equal(t, []string{"second", "first"}, h.Entries())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		h := New(0)
		assert.True(t, h.Push("  echo hi  "))
		assert.Equal(t, []string{"echo hi"}, h.Entries())
	})

	t.Run("ignores blank lines", func(t *testing.T) {
		h := New(0)
		assert.False(t, h.Push(""))
		assert.False(t, h.Push(" \t "))
		assert.Equal(t, 0, h.Len())
	})

	t.Run("keeps duplicates", func(t *testing.T) {
		h := New(0)
		h.Push("ls")
		h.Push("ls")
		assert.Equal(t, []string{"ls", "ls"}, h.Entries())
	})

	t.Run("drops the oldest beyond max size", func(t *testing.T) {
		h := New(3)
		for i := 1; i <= 5; i++ {
			h.Push(fmt.Sprintf("command%d", i))
		}
		assert.Equal(t, []string{"command5", "command4", "command3"}, h.Entries())
	})

	t.Run("resets navigation", func(t *testing.T) {
		h := New(0)
		h.Push("a")
		h.Prev()
		assert.Equal(t, 0, h.Index())
		h.Push("b")
		assert.Equal(t, -1, h.Index())
	})
}

func TestHistory_Navigation(t *testing.T) {
	h := New(0)
	h.Push("oldest")
	h.Push("middle")
	h.Push("newest")

	entry, moved := h.Prev()
	assert.True(t, moved)
	assert.Equal(t, "newest", entry)

	entry, _ = h.Prev()
	assert.Equal(t, "middle", entry)

	entry, _ = h.Prev()
	assert.Equal(t, "oldest", entry)
	assert.Equal(t, 2, h.Index())

	_, moved = h.Prev()
	assert.False(t, moved, "stays on the oldest entry")
	assert.Equal(t, 2, h.Index())

	entry, _ = h.Next()
	assert.Equal(t, "middle", entry)
	entry, _ = h.Next()
	assert.Equal(t, "newest", entry)

	entry, moved = h.Next()
	assert.True(t, moved)
	assert.Equal(t, "", entry)
	assert.Equal(t, -1, h.Index())
	assert.False(t, h.Browsing())

	_, moved = h.Next()
	assert.False(t, moved, "no-op when not browsing")
}

func TestHistory_EmptyNavigation(t *testing.T) {
	h := New(0)
	_, moved := h.Prev()
	assert.False(t, moved)
	_, moved = h.Next()
	assert.False(t, moved)
	assert.Equal(t, -1, h.Index())
}

func TestHistory_Restore(t *testing.T) {
	h := New(2)
	h.Push("gone")
	h.Prev()
	h.Restore([]string{"c", "", "b", "a"})
	assert.Equal(t, []string{"c", "b"}, h.Entries())
	assert.Equal(t, -1, h.Index())
}

func TestHistory_EntriesIsACopy(t *testing.T) {
	h := New(0)
	h.Push("ls")
	entries := h.Entries()
	entries[0] = "mutated"
	assert.Equal(t, []string{"ls"}, h.Entries())
}
