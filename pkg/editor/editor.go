package editor

import (
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/Lesliedc339/linux-terminal/pkg/history"
	"github.com/Lesliedc339/linux-terminal/pkg/surface"
)

// Completer supplies Tab-completion candidates.
type Completer interface {
	PrefixMatches(partial string) []string
}

// SubmitFunc receives the finished line when Enter is pressed.
type SubmitFunc func(line string)

// Editor is a single-line, append-only input editor. Every key causes at
// most one buffer mutation and the matching write to the surface.
type Editor struct {
	mu        sync.Mutex
	surface   surface.Surface
	history   *history.History
	completer Completer
	prompt    string
	submit    SubmitFunc
	buffer    []rune
}

// New creates an editor writing to s. submit may be nil until SetSubmit is called.
func New(s surface.Surface, h *history.History, completer Completer, prompt string, submit SubmitFunc) *Editor {
	return &Editor{
		surface:   s,
		history:   h,
		completer: completer,
		prompt:    prompt,
		submit:    submit,
	}
}

// SetSubmit replaces the submit callback.
func (e *Editor) SetSubmit(submit SubmitFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.submit = submit
}

// Buffer returns the in-progress line.
func (e *Editor) Buffer() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return string(e.buffer)
}

// Prompt returns the prompt text.
func (e *Editor) Prompt() string {
	return e.prompt
}

// ShowPrompt returns to column 0 and writes the prompt followed by any
// pending input typed while a command was running.
func (e *Editor) ShowPrompt() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.surface.Write("\r" + e.prompt + string(e.buffer))
}

// HandleKey applies one key event.
func (e *Editor) HandleKey(ev surface.KeyEvent) {
	e.mu.Lock()

	switch ev.Named {
	case surface.KeyEnter:
		line := string(e.buffer)
		e.buffer = nil
		e.history.ResetNavigation()
		e.surface.Write(surface.CRLF)
		submit := e.submit
		// submit may re-enter ShowPrompt synchronously
		e.mu.Unlock()
		if submit != nil {
			submit(line)
		}
		return
	case surface.KeyBackspace:
		e.handleBackspace()
	case surface.KeyArrowUp:
		if entry, ok := e.history.Prev(); ok {
			e.redraw(entry)
		}
	case surface.KeyArrowDown:
		if entry, ok := e.history.Next(); ok {
			e.redraw(entry)
		}
	case surface.KeyTab:
		e.triggerCompletion()
	case surface.KeyNone:
		if r, ok := printable(ev); ok {
			e.leaveHistory()
			e.buffer = append(e.buffer, r)
			e.surface.Write(ev.Key)
		}
	}

	e.mu.Unlock()
}

// HandleKeys applies a sequence of key events in order.
func (e *Editor) HandleKeys(events ...surface.KeyEvent) {
	for _, ev := range events {
		e.HandleKey(ev)
	}
}

func (e *Editor) handleBackspace() {
	if len(e.buffer) == 0 {
		return
	}
	e.leaveHistory()
	e.buffer = e.buffer[:len(e.buffer)-1]
	e.surface.Write(surface.EraseChar)
}

// redraw replaces the visible input line with the prompt and text.
func (e *Editor) redraw(text string) {
	e.buffer = []rune(text)
	e.surface.Write(surface.EraseLine)
	e.surface.Write(e.prompt + text)
}

// triggerCompletion completes the buffer when exactly one command name starts with it.
func (e *Editor) triggerCompletion() {
	if len(e.buffer) == 0 || e.completer == nil {
		return
	}
	current := string(e.buffer)
	matches := e.completer.PrefixMatches(current)
	if len(matches) != 1 {
		return
	}
	suffix := matches[0][len(current):]
	if suffix == "" {
		return
	}
	e.leaveHistory()
	e.buffer = []rune(matches[0])
	e.surface.Write(suffix)
}

// leaveHistory turns a recalled entry into free-typed text so edits never
// touch the stored history.
func (e *Editor) leaveHistory() {
	if e.history.Browsing() {
		e.history.ResetNavigation()
	}
}

// printable accepts a single printable code point typed without Alt, Ctrl or Meta.
func printable(ev surface.KeyEvent) (rune, bool) {
	if ev.Modifiers&(surface.ModAlt|surface.ModCtrl|surface.ModMeta) != 0 {
		return 0, false
	}
	if utf8.RuneCountInString(ev.Key) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(ev.Key)
	if r == utf8.RuneError || !unicode.IsPrint(r) {
		return 0, false
	}
	return r, true
}
