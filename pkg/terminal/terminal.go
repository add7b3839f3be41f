// Package terminal assembles the interpreter: registry, history, input editor
// and dispatcher, all talking to one display surface.
package terminal

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Lesliedc339/linux-terminal/pkg/builtins"
	"github.com/Lesliedc339/linux-terminal/pkg/dispatch"
	"github.com/Lesliedc339/linux-terminal/pkg/editor"
	"github.com/Lesliedc339/linux-terminal/pkg/events"
	"github.com/Lesliedc339/linux-terminal/pkg/history"
	"github.com/Lesliedc339/linux-terminal/pkg/logging"
	"github.com/Lesliedc339/linux-terminal/pkg/registry"
	"github.com/Lesliedc339/linux-terminal/pkg/surface"
)

const (
	DefaultPrompt     = "$ "
	DefaultWelcome    = "Welcome!"
	DefaultCurrentDir = "/"
)

// HistoryStore persists submitted lines between sessions.
type HistoryStore interface {
	Load() ([]string, error)
	Save(entries []string) error
}

// Config is everything a host can set when creating a Terminal.
type Config struct {
	// Commands are merged over the builtins, in name order.
	Commands       map[string]registry.Descriptor
	Prompt         string
	WelcomeMessage string
	// OnExecute is called after each successful dispatch with the submitted
	// line and its rendered output. It runs off the dispatch path; a panic in
	// it is logged and otherwise ignored.
	OnExecute  func(command, output string)
	CurrentDir string
	Canned     dispatch.Canned

	CountdownInterval time.Duration
	Now               func() time.Time

	// HistorySize caps the history list; zero means unbounded.
	HistorySize  int
	HistoryStore HistoryStore

	Bus    *events.Bus
	Logger logging.Logger
}

// Terminal is one interpreter instance bound to a surface.
type Terminal struct {
	surface    surface.Surface
	registry   *registry.Registry
	history    *history.History
	editor     *editor.Editor
	dispatcher *dispatch.Dispatcher
	bus        *events.Bus
	store      HistoryStore
	logger     logging.Logger
	prompt     string
	welcome    string

	subscriptions []*events.Subscription
}

// New builds a terminal writing to s. Nothing is written until Start.
func New(s surface.Surface, cfg Config) (*Terminal, error) {
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	if cfg.WelcomeMessage == "" {
		cfg.WelcomeMessage = DefaultWelcome
	}
	if cfg.CurrentDir == "" {
		cfg.CurrentDir = DefaultCurrentDir
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewDisabledLogger()
	}
	if cfg.Bus == nil {
		cfg.Bus = events.NewBus(cfg.Logger)
	}

	t := &Terminal{
		surface:  s,
		registry: registry.New(),
		history:  history.New(cfg.HistorySize),
		bus:      cfg.Bus,
		store:    cfg.HistoryStore,
		logger:   cfg.Logger.With("component", "terminal"),
		prompt:   cfg.Prompt,
		welcome:  cfg.WelcomeMessage,
	}

	builtins.Register(t.registry, builtins.Options{
		Now:               cfg.Now,
		CountdownInterval: cfg.CountdownInterval,
	})
	names := make([]string, 0, len(cfg.Commands))
	for name := range cfg.Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t.registry.Register(name, cfg.Commands[name])
	}

	if t.store != nil {
		entries, err := t.store.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load history: %w", err)
		}
		t.history.Restore(entries)
	}

	t.editor = editor.New(s, t.history, t.registry, cfg.Prompt, func(line string) {
		if err := t.Submit(line); err != nil {
			t.logger.Warn("submission dropped", "line", line, "error", err)
		}
	})
	t.dispatcher = dispatch.New(dispatch.Options{
		Registry:   t.registry,
		History:    t.history,
		Surface:    s,
		CurrentDir: cfg.CurrentDir,
		Canned:     cfg.Canned,
		Prompt:     t.editor.ShowPrompt,
		Bus:        t.bus,
		Logger:     cfg.Logger,
	})

	if cfg.OnExecute != nil {
		onExecute := cfg.OnExecute
		t.subscriptions = append(t.subscriptions, t.bus.Subscribe(events.TopicCommandExecuted, func(e interface{}) {
			if executed, ok := e.(events.CommandExecuted); ok {
				onExecute(executed.Command, executed.Output)
			}
		}))
	}

	return t, nil
}

// Start writes the welcome message and the first prompt.
func (t *Terminal) Start() {
	t.surface.Writeln(t.welcome)
	t.editor.ShowPrompt()
}

// HandleKey feeds one key event from the surface into the input editor.
func (t *Terminal) HandleKey(ev surface.KeyEvent) {
	t.editor.HandleKey(ev)
}

// PushCommand submits text as if it had been typed and Enter pressed. The
// line is echoed on its own row after the prompt first.
func (t *Terminal) PushCommand(text string) error {
	t.surface.Writeln(surface.CRLF + t.prompt + text)
	return t.Submit(text)
}

// Wait blocks until every submission so far has finished rendering and any
// OnExecute callbacks for them have returned, or ctx is done.
func (t *Terminal) Wait(ctx context.Context) error {
	if err := t.dispatcher.Wait(ctx); err != nil {
		return err
	}
	return t.bus.Wait(ctx)
}

// Close stops accepting input, drains queued submissions and saves history.
// It gives up waiting on handlers and OnExecute callbacks when ctx is done;
// history is saved either way.
func (t *Terminal) Close(ctx context.Context) error {
	err := t.dispatcher.Close(ctx)
	if err == nil {
		err = t.bus.Wait(ctx)
	}
	for _, sub := range t.subscriptions {
		sub.Unsubscribe()
	}
	t.persist()
	return err
}

func (t *Terminal) Registry() *registry.Registry {
	return t.registry
}

func (t *Terminal) History() *history.History {
	return t.history
}

// Buffer returns the line currently being typed.
func (t *Terminal) Buffer() string {
	return t.editor.Buffer()
}

func (t *Terminal) Bus() *events.Bus {
	return t.bus
}

// Submit dispatches line without echoing it, the same way Enter does.
func (t *Terminal) Submit(line string) error {
	if err := t.dispatcher.Submit(line); err != nil {
		return err
	}
	if strings.TrimSpace(line) != "" {
		t.persist()
	}
	return nil
}

func (t *Terminal) persist() {
	if t.store == nil {
		return
	}
	if err := t.store.Save(t.history.Entries()); err != nil {
		t.logger.Warn("failed to save history", "error", err)
	}
}
