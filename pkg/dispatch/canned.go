package dispatch

import "strings"

// CannedEntry maps one literal input to fixed output. Out may span several
// lines separated by "\n".
type CannedEntry struct {
	Input string `yaml:"input"`
	Out   string `yaml:"out"`
}

// Canned is a lookup table consulted before the registry. Keys are exact,
// already-trimmed input lines.
type Canned map[string][]string

// NewCanned builds a table from entries. When several entries share an input
// the first one wins.
func NewCanned(entries []CannedEntry) Canned {
	canned := make(Canned, len(entries))
	for _, e := range entries {
		input := strings.TrimSpace(e.Input)
		if input == "" {
			continue
		}
		if _, seen := canned[input]; seen {
			continue
		}
		canned[input] = strings.Split(e.Out, "\n")
	}
	return canned
}

// Lookup returns the canned output for line.
func (c Canned) Lookup(line string) ([]string, bool) {
	out, ok := c[line]
	return out, ok
}
