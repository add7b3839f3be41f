package commands

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Lesliedc339/linux-terminal/pkg/registry"
)

//go:embed docs/*.md
var docsFS embed.FS

const (
	DefaultDocStyle = "dark"
	DefaultWordWrap = 80
)

// DocNames lists the bundled documents without their .md extension.
func DocNames() []string {
	entries, err := fs.ReadDir(docsFS, "docs")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(names)
	return names
}

// NewDocs renders a bundled markdown document with glamour, one surface line
// per rendered line.
func NewDocs(style string, wordWrap int) (registry.Descriptor, error) {
	if style == "" {
		style = DefaultDocStyle
	}
	if wordWrap <= 0 {
		wordWrap = DefaultWordWrap
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return registry.Descriptor{}, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return registry.Descriptor{
		Name:        "docs",
		Description: "Show a document",
		Handler: func(_ context.Context, args []string, _ *registry.ExecContext) (registry.Result, error) {
			name := DefaultDoc
			if len(args) > 0 {
				name = args[0]
			}
			source, err := docsFS.ReadFile(path.Join("docs", path.Base(name)+".md"))
			if err != nil {
				return registry.Result{}, fmt.Errorf("no document named %s (available: %s)", name, strings.Join(DocNames(), ", "))
			}

			rendered, err := renderer.Render(string(source))
			if err != nil {
				return registry.Result{}, fmt.Errorf("failed to render %s: %w", name, err)
			}
			return registry.Lines(strings.Split(strings.TrimRight(rendered, "\n"), "\n")...), nil
		},
	}, nil
}
