package tui

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// DefaultScrollback bounds how many lines the screen keeps.
const DefaultScrollback = 2000

// Screen is the text model behind the terminal view. It understands the few
// control sequences the interpreter writes: carriage return, line feed,
// backspace, erase-line and full reset. SGR color sequences are kept with the
// cell they precede so the view can render them.
type Screen struct {
	mu         sync.Mutex
	lines      [][]string
	col        int
	pending    string
	scrollback int
}

// NewScreen creates an empty screen keeping at most scrollback lines.
func NewScreen(scrollback int) *Screen {
	if scrollback <= 0 {
		scrollback = DefaultScrollback
	}
	return &Screen{lines: [][]string{nil}, scrollback: scrollback}
}

// Write interprets text at the cursor.
func (s *Screen) Write(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < len(text); {
		switch c := text[i]; c {
		case '\r':
			s.flushPending()
			s.col = 0
			i++
		case '\n':
			s.flushPending()
			s.newline()
			i++
		case '\b':
			s.flushPending()
			if s.col > 0 {
				s.col--
			}
			i++
		case 0x1B:
			i += s.escape(text[i:])
		default:
			r, size := utf8.DecodeRuneInString(text[i:])
			s.put(s.pending + string(r))
			s.pending = ""
			i += size
		}
	}
	s.flushPending()
}

// Lines returns every line with color sequences intact and trailing blanks trimmed.
func (s *Screen) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]string, len(s.lines))
	for i, cells := range s.lines {
		lines[i] = strings.TrimRight(strings.Join(cells, ""), " ")
	}
	return lines
}

// String is the whole screen, one line per row.
func (s *Screen) String() string {
	return strings.Join(s.Lines(), "\n")
}

// Cursor returns the row and display column of the cursor.
func (s *Screen) Cursor() (row, col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row = len(s.lines) - 1
	cells := s.lines[row]
	end := s.col
	if end > len(cells) {
		end = len(cells)
	}
	return row, runewidth.StringWidth(stripSGR(strings.Join(cells[:end], "")))
}

// escape handles one escape sequence at the start of seq and returns its length.
func (s *Screen) escape(seq string) int {
	if len(seq) < 2 {
		return len(seq)
	}
	if seq[1] == 'c' {
		s.lines = [][]string{nil}
		s.col = 0
		s.pending = ""
		return 2
	}
	if seq[1] != '[' {
		return 2
	}
	end := 2
	for end < len(seq) && (seq[end] == ';' || (seq[end] >= '0' && seq[end] <= '9')) {
		end++
	}
	if end == len(seq) {
		return end
	}
	params, final := seq[2:end], seq[end]
	switch final {
	case 'm':
		s.pending += seq[:end+1]
	case 'K':
		if params == "2" {
			s.lines[len(s.lines)-1] = nil
		} else {
			cells := s.lines[len(s.lines)-1]
			if s.col < len(cells) {
				s.lines[len(s.lines)-1] = cells[:s.col]
			}
		}
	}
	return end + 1
}

// put writes one cell at the cursor, overwriting what is there.
func (s *Screen) put(cell string) {
	row := len(s.lines) - 1
	cells := s.lines[row]
	for len(cells) < s.col {
		cells = append(cells, " ")
	}
	if s.col < len(cells) {
		cells[s.col] = cell
	} else {
		cells = append(cells, cell)
	}
	s.lines[row] = cells
	s.col++
}

// flushPending attaches trailing color sequences to the cell before the
// cursor. At column 0 they wait for the next cell instead.
func (s *Screen) flushPending() {
	if s.pending == "" || s.col == 0 {
		return
	}
	cells := s.lines[len(s.lines)-1]
	if s.col <= len(cells) {
		cells[s.col-1] += s.pending
		s.pending = ""
	}
}

func (s *Screen) newline() {
	s.lines = append(s.lines, nil)
	s.col = 0
	if over := len(s.lines) - s.scrollback; over > 0 {
		s.lines = s.lines[over:]
	}
}

func stripSGR(text string) string {
	var b strings.Builder
	for i := 0; i < len(text); i++ {
		if text[i] == 0x1B && i+1 < len(text) && text[i+1] == '[' {
			j := i + 2
			for j < len(text) && text[j] != 'm' {
				j++
			}
			i = j
			continue
		}
		b.WriteByte(text[i])
	}
	return b.String()
}
