// Package builtins provides the commands every terminal starts with.
package builtins

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Lesliedc339/linux-terminal/pkg/registry"
	"github.com/Lesliedc339/linux-terminal/pkg/surface"
)

const (
	// HelpHeader is the first line of help output.
	HelpHeader = "Available commands:"
	// NameColumnWidth is the padded width of the name column in help output.
	NameColumnWidth = 8
	// CountdownStart is the first tick written by countdown.
	CountdownStart = 5
	// CountdownDone replaces the zero tick.
	CountdownDone = "BOOM!"
	// DateLayout formats the date command's output.
	DateLayout = "1/2/2006, 3:04:05 PM"
)

// Enumerator is the part of the registry help needs.
type Enumerator interface {
	Enumerate() []registry.Entry
}

// Options tunes the builtins. Zero values pick the defaults.
type Options struct {
	// Now is the clock used by date.
	Now func() time.Time
	// CountdownInterval is the delay after each countdown tick.
	CountdownInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.CountdownInterval <= 0 {
		o.CountdownInterval = time.Second
	}
	return o
}

// Register loads every builtin into reg. Anything registered afterwards under
// the same name replaces the builtin.
func Register(reg *registry.Registry, opts Options) {
	opts = opts.withDefaults()
	reg.RegisterAll(
		NewHelp(reg),
		NewClear(),
		NewDate(opts.Now),
		NewCountdown(opts.CountdownInterval),
	)
}

// NewHelp lists the registry as it is when help runs, not when it was registered.
func NewHelp(reg Enumerator) registry.Descriptor {
	return registry.Descriptor{
		Name:        "help",
		Description: "Show all available commands",
		Handler: func(context.Context, []string, *registry.ExecContext) (registry.Result, error) {
			entries := reg.Enumerate()
			lines := make([]string, 0, len(entries)+1)
			lines = append(lines, HelpHeader)
			for _, entry := range entries {
				lines = append(lines, fmt.Sprintf("%-*s - %s", NameColumnWidth, entry.Name, entry.Description))
			}
			return registry.Lines(lines...), nil
		},
	}
}

func NewClear() registry.Descriptor {
	return registry.Descriptor{
		Name:        "clear",
		Description: "Clear the terminal",
		Handler: func(_ context.Context, _ []string, ec *registry.ExecContext) (registry.Result, error) {
			ec.Output(surface.ClearScreen)
			return registry.Empty(), nil
		},
	}
}

func NewDate(now func() time.Time) registry.Descriptor {
	return registry.Descriptor{
		Name:        "date",
		Description: "Show the current date and time",
		Handler: func(context.Context, []string, *registry.ExecContext) (registry.Result, error) {
			return registry.Single(now().Local().Format(DateLayout)), nil
		},
	}
}

// NewCountdown writes 5 down to 1 and then BOOM!, pausing interval after each
// tick. It stops early with the context's error if the terminal shuts down.
func NewCountdown(interval time.Duration) registry.Descriptor {
	return registry.Descriptor{
		Name:        "countdown",
		Description: "Count down 5 seconds",
		Handler: func(ctx context.Context, _ []string, ec *registry.ExecContext) (registry.Result, error) {
			for i := CountdownStart; i >= 0; i-- {
				tick := strconv.Itoa(i)
				if i == 0 {
					tick = CountdownDone
				}
				ec.Output(tick)

				select {
				case <-time.After(interval):
				case <-ctx.Done():
					return registry.Result{}, ctx.Err()
				}
			}
			return registry.Empty(), nil
		},
	}
}
