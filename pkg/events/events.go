package events

// CommandExecuted is emitted after a handler returns without error.
type CommandExecuted struct {
	DispatchID string
	// Command is the trimmed submitted line.
	Command string
	// Output is the handler's result lines joined with "\n".
	Output string
}

// CommandFailed is emitted when a handler returns an error or panics.
type CommandFailed struct {
	DispatchID string
	Command    string
	Err        error
}

// CommandNotFound is emitted when the first word matches no registered command.
type CommandNotFound struct {
	DispatchID string
	Name       string
}
