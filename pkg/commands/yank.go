package commands

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/Lesliedc339/linux-terminal/pkg/events"
	"github.com/Lesliedc339/linux-terminal/pkg/registry"
)

var errNothingToYank = errors.New("nothing to copy yet")

// Clipboard is where yank puts text.
type Clipboard interface {
	Copy(text string) error
}

type SystemClipboard struct{}

func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{}
}

func (c *SystemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// Yank remembers the output of the most recent successful command so it can
// be copied to the clipboard.
type Yank struct {
	sub       *events.Subscription
	clipboard Clipboard

	mu   sync.Mutex
	last string
	seen bool
}

// NewYank starts tracking executed commands on bus.
func NewYank(bus *events.Bus, clip Clipboard) *Yank {
	y := &Yank{clipboard: clip}
	y.sub = bus.Subscribe(events.TopicCommandExecuted, y.record)
	return y
}

func (y *Yank) record(e interface{}) {
	executed, ok := e.(events.CommandExecuted)
	if !ok {
		return
	}
	if fields := strings.Fields(executed.Command); len(fields) > 0 && fields[0] == "yank" {
		return
	}
	y.mu.Lock()
	defer y.mu.Unlock()
	y.last = executed.Output
	y.seen = true
}

// Last returns the most recently recorded output.
func (y *Yank) Last() (string, bool) {
	y.mu.Lock()
	defer y.mu.Unlock()
	return y.last, y.seen
}

func (y *Yank) Descriptor() registry.Descriptor {
	return registry.Descriptor{
		Name:        "yank",
		Description: "Copy the previous output",
		Validate:    func(args []string) bool { return len(args) == 0 },
		Handler: func(ctx context.Context, _ []string, _ *registry.ExecContext) (registry.Result, error) {
			// only yank's own subscription; other subscribers may be slow
			if err := y.sub.Wait(ctx); err != nil {
				return registry.Result{}, err
			}
			text, ok := y.Last()
			if !ok {
				return registry.Result{}, errNothingToYank
			}
			if err := y.clipboard.Copy(text); err != nil {
				return registry.Result{}, err
			}
			return registry.Single("Copied to clipboard"), nil
		},
	}
}
