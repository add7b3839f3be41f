package registry

import (
	"context"
	"errors"
)

// ErrInvalidArguments is reported when a descriptor's Validate rejects the arguments.
var ErrInvalidArguments = errors.New("invalid arguments")

// ExecContext is the read-only view a handler receives. It is built fresh for
// every dispatch and discarded once the handler returns.
type ExecContext struct {
	// CurrentDir is a fixed logical path; there is no filesystem behind it.
	CurrentDir string
	// History is a snapshot of submitted lines, most recent first, taken at dispatch time.
	History []string
	// Output writes one line to the surface immediately. Handlers may call it
	// any number of times before returning.
	Output func(line string)
}

// Handler runs a command. A handler that needs to wait (timers, I/O) simply
// blocks; the dispatcher runs it off the key-event path. Returning an error
// renders "Error: <message>".
type Handler func(ctx context.Context, args []string, ec *ExecContext) (Result, error)

// Descriptor is the registered definition of a command.
type Descriptor struct {
	Name        string
	Description string
	Handler     Handler
	// Validate is optional. When it returns false the handler is not run.
	Validate func(args []string) bool
}

// Entry is the enumeration view of a descriptor.
type Entry struct {
	Name        string
	Description string
}

// Result is what a handler returns: a single line or an ordered list of lines.
type Result struct {
	lines []string
}

// Single returns a one-line result. The empty string renders nothing.
func Single(s string) Result {
	if s == "" {
		return Result{}
	}
	return Result{lines: []string{s}}
}

// Lines returns a multi-line result, one surface line per element.
func Lines(lines ...string) Result {
	return Result{lines: lines}
}

// Empty is a result that renders nothing.
func Empty() Result {
	return Result{}
}

// Lines normalizes the result to the lines that should be written.
func (r Result) Lines() []string {
	result := make([]string, len(r.lines))
	copy(result, r.lines)
	return result
}
