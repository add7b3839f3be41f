package surface

// Surface is the text endpoint the interpreter writes to. It is whatever
// renders text for the user: a gocui view, stdout, or a Recorder in tests.
type Surface interface {
	// Write writes text without a trailing line break.
	Write(text string)
	// Writeln writes text followed by a line break.
	Writeln(text string)
}

// NamedKey identifies keys the editor handles independently of their character value.
type NamedKey int

const (
	KeyNone NamedKey = iota
	KeyEnter
	KeyBackspace
	KeyArrowUp
	KeyArrowDown
	KeyTab
	// KeyOther is a non-printable key the editor ignores (F-keys, Home, ArrowLeft, ...).
	KeyOther
)

var namedKeyNames = map[NamedKey]string{
	KeyNone:      "",
	KeyEnter:     "Enter",
	KeyBackspace: "Backspace",
	KeyArrowUp:   "ArrowUp",
	KeyArrowDown: "ArrowDown",
	KeyTab:       "Tab",
	KeyOther:     "Other",
}

func (k NamedKey) String() string {
	return namedKeyNames[k]
}

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModAlt Modifier = 1 << iota
	ModCtrl
	ModMeta

	ModNone Modifier = 0
)

// Has reports whether all bits in m2 are set.
func (m Modifier) Has(m2 Modifier) bool {
	return m&m2 == m2
}

// KeyEvent is one physical key press as reported by a surface.
type KeyEvent struct {
	// Key is the printable text the key produced, empty for pure control keys.
	Key       string
	Named     NamedKey
	Modifiers Modifier
}

// Char builds a KeyEvent for a plain printable character.
func Char(r rune) KeyEvent {
	return KeyEvent{Key: string(r)}
}

// Named builds a KeyEvent for a named key with no modifiers.
func Named(k NamedKey) KeyEvent {
	return KeyEvent{Named: k}
}

// Keys expands text into one KeyEvent per rune.
func Keys(text string) []KeyEvent {
	events := make([]KeyEvent, 0, len(text))
	for _, r := range text {
		events = append(events, Char(r))
	}
	return events
}
