package terminal

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lesliedc339/linux-terminal/pkg/commands"
	"github.com/Lesliedc339/linux-terminal/pkg/dispatch"
	"github.com/Lesliedc339/linux-terminal/pkg/events"
	"github.com/Lesliedc339/linux-terminal/pkg/registry"
	"github.com/Lesliedc339/linux-terminal/pkg/surface"
)

func echoCommand() registry.Descriptor {
	return registry.Descriptor{
		Description: "Echo arguments",
		Handler: func(_ context.Context, args []string, _ *registry.ExecContext) (registry.Result, error) {
			return registry.Single(strings.Join(args, " ")), nil
		},
	}
}

// calcCommand reports bad input as a normal result, not an error.
func calcCommand() registry.Descriptor {
	return registry.Descriptor{
		Description: "Simple calculator",
		Handler: func(_ context.Context, args []string, _ *registry.ExecContext) (registry.Result, error) {
			a, _ := strconv.ParseFloat(args[0], 64)
			b, _ := strconv.ParseFloat(args[2], 64)
			if args[1] == "/" && b == 0 {
				return registry.Single("Error: Division by zero"), nil
			}
			return registry.Single(strconv.FormatFloat(a+b, 'f', -1, 64)), nil
		},
	}
}

type memoryStore struct {
	mu      sync.Mutex
	entries []string
	saves   int
}

func (m *memoryStore) Load() ([]string, error) {
	return m.entries, nil
}

func (m *memoryStore) Save(entries []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = entries
	m.saves++
	return nil
}

func newTerminal(t *testing.T, cfg Config) (*Terminal, *surface.Recorder) {
	t.Helper()
	rec := surface.NewRecorder()
	term, err := New(rec, cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = term.Close(ctx)
	})
	return term, rec
}

func typeLine(term *Terminal, line string) {
	for _, ev := range surface.Keys(line) {
		term.HandleKey(ev)
	}
	term.HandleKey(surface.Named(surface.KeyEnter))
}

func wait(t *testing.T, term *Terminal) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, term.Wait(ctx))
}

func TestTerminal_Start(t *testing.T) {
	term, rec := newTerminal(t, Config{Prompt: "> ", WelcomeMessage: "hi there"})
	term.Start()

	assert.Equal(t, []surface.Op{
		{Text: "hi there", Newline: true},
		{Text: "\r> "},
	}, rec.Ops())
}

func TestTerminal_Defaults(t *testing.T) {
	term, rec := newTerminal(t, Config{})
	term.Start()

	assert.Equal(t, "Welcome!\r\n\r$ ", rec.String())
	assert.Equal(t, []string{"help", "clear", "date", "countdown"}, term.Registry().Names())
}

func TestTerminal_EchoScenario(t *testing.T) {
	term, rec := newTerminal(t, Config{Commands: map[string]registry.Descriptor{"echo": echoCommand()}})
	term.Start()
	rec.Reset()

	typeLine(term, "echo hello world")
	wait(t, term)

	assert.Equal(t, "echo hello world\r\nhello world\r\n\r$ ", rec.String())
	assert.Equal(t, []string{"echo hello world"}, term.History().Entries())
}

func TestTerminal_CalcScenario(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "calc 4 + 5", want: "9"},
		{input: "calc 4 / 0", want: "Error: Division by zero"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			term, rec := newTerminal(t, Config{Commands: map[string]registry.Descriptor{"calc": calcCommand()}})
			typeLine(term, tt.input)
			wait(t, term)
			assert.Equal(t, []string{tt.want}, rec.Lines())
		})
	}
}

func TestTerminal_UnknownCommand(t *testing.T) {
	term, rec := newTerminal(t, Config{})
	names := term.Registry().Names()

	typeLine(term, "foo")
	wait(t, term)

	require.Len(t, rec.Lines(), 1)
	assert.Contains(t, rec.Lines()[0], "foo")
	assert.Equal(t, names, term.Registry().Names())
}

func TestTerminal_EmptyLine(t *testing.T) {
	term, rec := newTerminal(t, Config{})

	typeLine(term, "   ")
	wait(t, term)

	assert.Empty(t, term.History().Entries())
	prompts := 0
	for _, w := range rec.Writes() {
		if w == "\r$ " {
			prompts++
		}
	}
	assert.Equal(t, 1, prompts)
}

func TestTerminal_UserCommandsShadowBuiltins(t *testing.T) {
	term, rec := newTerminal(t, Config{Commands: map[string]registry.Descriptor{
		"help": {Description: "Custom help", Handler: func(context.Context, []string, *registry.ExecContext) (registry.Result, error) {
			return registry.Single("custom"), nil
		}},
		"echo": echoCommand(),
	}})

	typeLine(term, "help")
	wait(t, term)

	assert.Equal(t, []string{"custom"}, rec.Lines())
	assert.Equal(t, []string{"help", "clear", "date", "countdown", "echo"}, term.Registry().Names())
}

func TestTerminal_HelpListsEveryCommandOnce(t *testing.T) {
	term, rec := newTerminal(t, Config{Commands: map[string]registry.Descriptor{"echo": echoCommand()}})
	term.Registry().Register("date", registry.Descriptor{Description: "Shadowed date"})

	typeLine(term, "help")
	wait(t, term)

	lines := rec.Lines()
	require.NotEmpty(t, lines)
	assert.Equal(t, "Available commands:", lines[0])
	for _, name := range term.Registry().Names() {
		count := 0
		for _, line := range lines[1:] {
			if strings.HasPrefix(line, name+" ") {
				count++
			}
		}
		assert.Equal(t, 1, count, name)
	}
	assert.Contains(t, lines, "date     - Shadowed date")
}

func TestTerminal_Countdown(t *testing.T) {
	term, rec := newTerminal(t, Config{CountdownInterval: 5 * time.Millisecond})

	typeLine(term, "countdown")
	wait(t, term)

	assert.Equal(t, []string{"5", "4", "3", "2", "1", "BOOM!"}, rec.Lines())
}

func TestTerminal_TypingDuringCountdown(t *testing.T) {
	term, rec := newTerminal(t, Config{
		CountdownInterval: 20 * time.Millisecond,
		Commands:          map[string]registry.Descriptor{"echo": echoCommand()},
	})

	typeLine(term, "countdown")
	typeLine(term, "echo next")
	for _, ev := range surface.Keys("ec") {
		term.HandleKey(ev)
	}
	wait(t, term)

	assert.Equal(t, []string{"5", "4", "3", "2", "1", "BOOM!", "next"}, rec.Lines())
	assert.Equal(t, "ec", term.Buffer())
	ops := rec.Ops()
	assert.Equal(t, surface.Op{Text: "\r$ ec"}, ops[len(ops)-1])
}

func TestTerminal_TabCompletion(t *testing.T) {
	term, rec := newTerminal(t, Config{Commands: map[string]registry.Descriptor{"history": echoCommand()}})

	for _, ev := range surface.Keys("he") {
		term.HandleKey(ev)
	}
	term.HandleKey(surface.Named(surface.KeyTab))
	assert.Equal(t, "help", term.Buffer())

	term.HandleKey(surface.Named(surface.KeyBackspace))
	term.HandleKey(surface.Named(surface.KeyBackspace))
	term.HandleKey(surface.Named(surface.KeyBackspace))
	term.HandleKey(surface.Named(surface.KeyTab))
	assert.Equal(t, "h", term.Buffer())
	assert.Equal(t, []string{"h", "e", "lp", "\b \b", "\b \b", "\b \b"}, rec.Writes())
}

func TestTerminal_HistoryNavigation(t *testing.T) {
	term, rec := newTerminal(t, Config{Commands: map[string]registry.Descriptor{"echo": echoCommand()}})
	typeLine(term, "echo one")
	typeLine(term, "echo two")
	wait(t, term)
	rec.Reset()

	term.HandleKey(surface.Named(surface.KeyArrowUp))
	assert.Equal(t, "echo two", term.Buffer())
	term.HandleKey(surface.Named(surface.KeyArrowUp))
	assert.Equal(t, "echo one", term.Buffer())
	term.HandleKey(surface.Named(surface.KeyArrowDown))
	term.HandleKey(surface.Named(surface.KeyArrowDown))
	assert.Equal(t, "", term.Buffer())

	assert.Equal(t, []string{
		surface.EraseLine, "$ echo two",
		surface.EraseLine, "$ echo one",
		surface.EraseLine, "$ echo two",
		surface.EraseLine, "$ ",
	}, rec.Writes())
}

func TestTerminal_PushCommand(t *testing.T) {
	term, rec := newTerminal(t, Config{Commands: map[string]registry.Descriptor{"echo": echoCommand()}})

	require.NoError(t, term.PushCommand("echo pushed"))
	wait(t, term)

	assert.Equal(t, []string{"\r\n$ echo pushed", "pushed"}, rec.Lines())
	assert.Equal(t, "\r\n$ echo pushed\r\npushed\r\n\r$ ", rec.String())
	assert.Equal(t, []string{"echo pushed"}, term.History().Entries())
}

func TestTerminal_PushCommandAfterClose(t *testing.T) {
	term, _ := newTerminal(t, Config{})
	require.NoError(t, term.Close(context.Background()))

	assert.ErrorIs(t, term.PushCommand("date"), dispatch.ErrClosed)
}

func TestTerminal_OnExecute(t *testing.T) {
	var mu sync.Mutex
	var calls [][2]string
	term, _ := newTerminal(t, Config{
		Commands: map[string]registry.Descriptor{
			"echo": echoCommand(),
			"fail": {Handler: func(context.Context, []string, *registry.ExecContext) (registry.Result, error) {
				return registry.Result{}, errors.New("nope")
			}},
		},
		OnExecute: func(command, output string) {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, [2]string{command, output})
		},
	})

	typeLine(term, "echo a b")
	typeLine(term, "fail")
	typeLine(term, "missing")
	wait(t, term)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, [][2]string{{"echo a b", "a b"}}, calls)
}

func TestTerminal_OnExecutePanicIsContained(t *testing.T) {
	term, rec := newTerminal(t, Config{
		Commands:  map[string]registry.Descriptor{"echo": echoCommand()},
		OnExecute: func(string, string) { panic("callback blew up") },
	})

	typeLine(term, "echo first")
	typeLine(term, "echo second")
	wait(t, term)

	assert.Equal(t, []string{"first", "second"}, rec.Lines())
}

func TestTerminal_OnExecuteOrder(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	term, _ := newTerminal(t, Config{
		Commands: map[string]registry.Descriptor{"echo": echoCommand()},
		OnExecute: func(command, _ string) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, command)
		},
	})

	var want []string
	for i := 0; i < 20; i++ {
		line := "echo " + strconv.Itoa(i)
		want = append(want, line)
		typeLine(term, line)
	}
	wait(t, term)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, want, seen)
}

type recordingClipboard struct {
	mu     sync.Mutex
	copied []string
}

func (c *recordingClipboard) Copy(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.copied = append(c.copied, text)
	return nil
}

func TestTerminal_StuckOnExecuteDoesNotBlockDispatch(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	bus := events.NewBus(nil)
	clip := &recordingClipboard{}

	term, rec := newTerminal(t, Config{
		Bus: bus,
		Commands: map[string]registry.Descriptor{
			"echo": echoCommand(),
			"yank": commands.NewYank(bus, clip).Descriptor(),
		},
		OnExecute: func(string, string) { <-release },
	})

	typeLine(term, "echo one")
	typeLine(term, "yank")
	typeLine(term, "echo two")

	assert.Eventually(t, func() bool {
		lines := rec.Lines()
		return len(lines) == 3 && lines[2] == "two"
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"one", "Copied to clipboard", "two"}, rec.Lines())

	clip.mu.Lock()
	defer clip.mu.Unlock()
	assert.Equal(t, []string{"one"}, clip.copied)
}

func TestTerminal_CloseHonorsContextWithStuckOnExecute(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	store := &memoryStore{}
	term, _ := newTerminal(t, Config{
		HistoryStore: store,
		OnExecute:    func(string, string) { <-release },
	})

	typeLine(term, "date")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	err := term.Close(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, []string{"date"}, store.entries)
}

func TestTerminal_WaitHonorsContextWithStuckOnExecute(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	term, rec := newTerminal(t, Config{OnExecute: func(string, string) { <-release }})

	typeLine(term, "date")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, term.Wait(ctx), context.DeadlineExceeded)
	assert.Len(t, rec.Lines(), 1)
}

func TestTerminal_Canned(t *testing.T) {
	term, rec := newTerminal(t, Config{
		Canned: dispatch.NewCanned([]dispatch.CannedEntry{{Input: "ls", Out: "docs\nsrc"}}),
	})

	typeLine(term, "ls")
	wait(t, term)

	assert.Equal(t, []string{"docs", "src"}, rec.Lines())
}

func TestTerminal_HistoryStore(t *testing.T) {
	store := &memoryStore{entries: []string{"echo old"}}
	term, _ := newTerminal(t, Config{
		HistoryStore: store,
		Commands:     map[string]registry.Descriptor{"echo": echoCommand()},
	})
	assert.Equal(t, []string{"echo old"}, term.History().Entries())

	typeLine(term, "echo new")
	typeLine(term, "  ")
	wait(t, term)

	store.mu.Lock()
	assert.Equal(t, []string{"echo new", "echo old"}, store.entries)
	assert.Equal(t, 1, store.saves)
	store.mu.Unlock()

	term.HandleKey(surface.Named(surface.KeyArrowUp))
	term.HandleKey(surface.Named(surface.KeyArrowUp))
	assert.Equal(t, "echo old", term.Buffer())
}

func TestTerminal_ExecContext(t *testing.T) {
	var got registry.ExecContext
	term, _ := newTerminal(t, Config{
		CurrentDir: "/home/guest",
		Commands: map[string]registry.Descriptor{"ctx": {Handler: func(_ context.Context, _ []string, ec *registry.ExecContext) (registry.Result, error) {
			got = *ec
			return registry.Empty(), nil
		}}},
	})

	typeLine(term, "date")
	typeLine(term, "ctx")
	wait(t, term)

	assert.Equal(t, "/home/guest", got.CurrentDir)
	assert.Equal(t, []string{"ctx", "date"}, got.History)
}
