// Package commands holds the descriptors the linuxterm host registers on top
// of the builtins.
package commands

import (
	"github.com/Lesliedc339/linux-terminal/pkg/events"
	"github.com/Lesliedc339/linux-terminal/pkg/registry"
)

// Options wires host commands to the services they need.
type Options struct {
	// Bus feeds yank with executed command output. Without it yank is not registered.
	Bus       *events.Bus
	Clipboard Clipboard
	// DocStyle is a glamour standard style name such as "dark" or "notty".
	DocStyle string
	WordWrap int
}

// New returns the host command set keyed by name.
func New(opts Options) (map[string]registry.Descriptor, error) {
	docs, err := NewDocs(opts.DocStyle, opts.WordWrap)
	if err != nil {
		return nil, err
	}

	set := map[string]registry.Descriptor{
		"echo":     NewEcho(),
		"calc":     NewCalc(),
		"open-doc": NewOpenDoc(),
		"history":  NewHistory(),
		"docs":     docs,
	}
	if opts.Bus != nil {
		clip := opts.Clipboard
		if clip == nil {
			clip = NewSystemClipboard()
		}
		set["yank"] = NewYank(opts.Bus, clip).Descriptor()
	}
	return set, nil
}
