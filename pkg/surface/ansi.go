package surface

// Control sequences the interpreter emits. Incoming sequences are never parsed.
const (
	Red   = "\x1B[31m"
	Reset = "\x1B[0m"

	// ClearScreen is RIS: clears scrollback and screen.
	ClearScreen = "\x1Bc"
	// EraseLine clears the whole current line and returns the cursor to column 0.
	EraseLine = "\x1B[2K\r"
	// EraseChar visually removes the glyph before the cursor.
	EraseChar = "\b \b"
	CRLF      = "\r\n"
)

// Error wraps text in the error style.
func Error(text string) string {
	return Red + text + Reset
}
