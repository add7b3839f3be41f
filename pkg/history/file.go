package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists history as one escaped entry per line, oldest first,
// so the file reads naturally and appends stay cheap to reason about.
type FileStore struct {
	path    string
	maxSize int
}

// NewFileStore creates a store at path keeping at most maxSize entries (<= 0 is unbounded).
func NewFileStore(path string, maxSize int) *FileStore {
	return &FileStore{path: path, maxSize: maxSize}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the stored entries, most recent first. A missing file is an empty history.
func (s *FileStore) Load() ([]string, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	var stored []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		escaped := strings.TrimSpace(scanner.Text())
		if escaped != "" {
			stored = append(stored, unescape(escaped))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	if s.maxSize > 0 && len(stored) > s.maxSize {
		stored = stored[len(stored)-s.maxSize:]
	}

	entries := make([]string, len(stored))
	for i, e := range stored {
		entries[len(stored)-1-i] = e
	}
	return entries, nil
}

// Save writes entries (most recent first) to disk, creating the directory if needed.
func (s *FileStore) Save(entries []string) error {
	if s.maxSize > 0 && len(entries) > s.maxSize {
		entries = entries[:s.maxSize]
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for i := len(entries) - 1; i >= 0; i-- {
		if _, err := fmt.Fprintln(w, escape(entries[i])); err != nil {
			return fmt.Errorf("failed to write history entry: %w", err)
		}
	}
	return w.Flush()
}

// escape keeps an entry on one line: backslashes first, then newlines.
func escape(entry string) string {
	escaped := strings.ReplaceAll(entry, "\\", "\\\\")
	return strings.ReplaceAll(escaped, "\n", "\\n")
}

func unescape(escaped string) string {
	var result strings.Builder
	for i := 0; i < len(escaped); i++ {
		if escaped[i] == '\\' && i+1 < len(escaped) {
			switch escaped[i+1] {
			case 'n':
				result.WriteByte('\n')
				i++
				continue
			case '\\':
				result.WriteByte('\\')
				i++
				continue
			}
		}
		result.WriteByte(escaped[i])
	}
	return result.String()
}
