package surface

import (
	"strings"
	"sync"
)

// Op is one recorded surface call.
type Op struct {
	Text    string
	Newline bool
}

// Recorder is an in-memory Surface. It keeps every call in order and is safe
// for concurrent use, so handler goroutines and the key loop can share it.
type Recorder struct {
	mu  sync.Mutex
	ops []Op
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Write(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, Op{Text: text})
}

func (r *Recorder) Writeln(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, Op{Text: text, Newline: true})
}

// Ops returns a copy of the recorded calls.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]Op, len(r.ops))
	copy(result, r.ops)
	return result
}

// Lines returns the text of every Writeln call, in order.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var lines []string
	for _, op := range r.ops {
		if op.Newline {
			lines = append(lines, op.Text)
		}
	}
	return lines
}

// Writes returns the text of every Write call, in order.
func (r *Recorder) Writes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var writes []string
	for _, op := range r.ops {
		if !op.Newline {
			writes = append(writes, op.Text)
		}
	}
	return writes
}

// String renders the recording as a raw byte stream, Writeln ending in CRLF.
func (r *Recorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var b strings.Builder
	for _, op := range r.ops {
		b.WriteString(op.Text)
		if op.Newline {
			b.WriteString(CRLF)
		}
	}
	return b.String()
}

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
}
