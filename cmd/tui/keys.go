package tui

import (
	"github.com/awesome-gocui/gocui"

	"github.com/Lesliedc339/linux-terminal/pkg/surface"
)

// TranslateKey turns a gocui key press into the interpreter's key event.
func TranslateKey(key gocui.Key, ch rune, mod gocui.Modifier) surface.KeyEvent {
	var modifiers surface.Modifier
	if mod&gocui.ModAlt != 0 {
		modifiers |= surface.ModAlt
	}

	if ch != 0 {
		return surface.KeyEvent{Key: string(ch), Modifiers: modifiers}
	}

	switch key {
	case gocui.KeyEnter:
		return surface.KeyEvent{Named: surface.KeyEnter, Modifiers: modifiers}
	case gocui.KeyBackspace, gocui.KeyBackspace2:
		return surface.KeyEvent{Named: surface.KeyBackspace, Modifiers: modifiers}
	case gocui.KeyArrowUp:
		return surface.KeyEvent{Named: surface.KeyArrowUp, Modifiers: modifiers}
	case gocui.KeyArrowDown:
		return surface.KeyEvent{Named: surface.KeyArrowDown, Modifiers: modifiers}
	case gocui.KeyTab:
		return surface.KeyEvent{Named: surface.KeyTab, Modifiers: modifiers}
	case gocui.KeySpace:
		return surface.KeyEvent{Key: " ", Modifiers: modifiers}
	}

	if isCtrlKey(key) {
		modifiers |= surface.ModCtrl
	}
	return surface.KeyEvent{Named: surface.KeyOther, Modifiers: modifiers}
}

func isCtrlKey(key gocui.Key) bool {
	switch key {
	case gocui.KeyCtrlA, gocui.KeyCtrlB, gocui.KeyCtrlE, gocui.KeyCtrlF,
		gocui.KeyCtrlK, gocui.KeyCtrlL, gocui.KeyCtrlN, gocui.KeyCtrlP,
		gocui.KeyCtrlR, gocui.KeyCtrlU, gocui.KeyCtrlW:
		return true
	}
	return false
}
