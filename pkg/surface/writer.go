package surface

import (
	"io"
	"regexp"
	"sync"
)

var controlSequence = regexp.MustCompile("\x1B(\\[[0-9;]*[A-Za-z]|c)|\r|\b \b")

// Writer is a Surface over a plain byte stream, used in line mode where there
// is no terminal emulator to interpret editing sequences.
type Writer struct {
	mu    sync.Mutex
	w     io.Writer
	plain bool
}

// NewWriter wraps w. When plain is true, control sequences are stripped
// before writing, which keeps piped output readable.
func NewWriter(w io.Writer, plain bool) *Writer {
	return &Writer{w: w, plain: plain}
}

func (s *Writer) Write(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	io.WriteString(s.w, s.filter(text))
}

func (s *Writer) Writeln(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	io.WriteString(s.w, s.filter(text)+"\n")
}

func (s *Writer) filter(text string) string {
	if !s.plain {
		return text
	}
	return controlSequence.ReplaceAllString(text, "")
}

// LinesOnly passes Writeln through and drops Write. Prompts and key echo go
// through Write, so wrapping a surface this way keeps only command output.
type LinesOnly struct {
	Surface Surface
}

func (l LinesOnly) Write(string) {}

func (l LinesOnly) Writeln(text string) {
	l.Surface.Writeln(text)
}
