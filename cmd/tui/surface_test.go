package tui

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewSurface(t *testing.T) {
	var repaints atomic.Int32
	screen := NewScreen(0)
	s := NewViewSurface(screen, func() { repaints.Add(1) })

	s.Writeln("Welcome!")
	s.Write("\r$ ")
	s.Write("d")

	assert.Equal(t, []string{"Welcome!", "$ d"}, screen.Lines())
	assert.Equal(t, int32(3), repaints.Load())
}

func TestViewSurface_NilCallback(t *testing.T) {
	screen := NewScreen(0)
	s := NewViewSurface(screen, nil)

	assert.NotPanics(t, func() { s.Writeln("ok") })
	assert.Equal(t, []string{"ok", ""}, screen.Lines())
}
