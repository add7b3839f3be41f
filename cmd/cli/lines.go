package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/Lesliedc339/linux-terminal/internal/di"
	"github.com/Lesliedc339/linux-terminal/pkg/config"
	"github.com/Lesliedc339/linux-terminal/pkg/events"
	"github.com/Lesliedc339/linux-terminal/pkg/logging"
	"github.com/Lesliedc339/linux-terminal/pkg/surface"
)

// RunLines runs every line of r as if it had been typed, writing the session
// to w. plain strips control sequences for non-terminal output.
func RunLines(ctx context.Context, cfg *config.Config, r io.Reader, w io.Writer, plain bool, logger logging.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := surface.NewWriter(w, plain)
	term, err := di.InitializeTerminal(out, cfg, di.HostOptions{
		DocStyle:  docStyle(plain),
		OnExecute: logExecuted(logger),
	}, logger)
	if err != nil {
		return err
	}

	term.Start()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := term.PushCommand(scanner.Text()); err != nil {
			break
		}
		// keep each command's output under its own echo
		if err := term.Wait(ctx); err != nil {
			break
		}
	}
	scanErr := scanner.Err()

	if err := term.Close(ctx); err != nil {
		return fmt.Errorf("failed to finish commands: %w", err)
	}
	out.Writeln("")
	if scanErr != nil {
		return fmt.Errorf("failed to read input: %w", scanErr)
	}
	return nil
}

// RunOnce dispatches a single line and writes only the command's output. It
// fails when the command is unknown or returns an error.
func RunOnce(ctx context.Context, cfg *config.Config, line string, w io.Writer, plain bool, logger logging.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	term, err := di.InitializeTerminal(surface.LinesOnly{Surface: surface.NewWriter(w, plain)}, cfg, di.HostOptions{
		DocStyle: docStyle(plain),
	}, logger)
	if err != nil {
		return err
	}

	var failed atomic.Value
	term.Bus().Subscribe(events.TopicCommandFailed, func(e interface{}) {
		if f, ok := e.(events.CommandFailed); ok {
			failed.Store(fmt.Errorf("%s: %w", f.Command, f.Err))
		}
	})
	term.Bus().Subscribe(events.TopicCommandNotFound, func(e interface{}) {
		if nf, ok := e.(events.CommandNotFound); ok {
			failed.Store(fmt.Errorf("command not found: %s", nf.Name))
		}
	})

	if err := term.Submit(strings.TrimSpace(line)); err != nil {
		return err
	}
	if err := term.Close(ctx); err != nil {
		return fmt.Errorf("failed to finish command: %w", err)
	}
	if err, ok := failed.Load().(error); ok {
		return err
	}
	return nil
}

func docStyle(plain bool) string {
	if plain {
		return "notty"
	}
	return "dark"
}
