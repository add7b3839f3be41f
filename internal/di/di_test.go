package di

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lesliedc339/linux-terminal/pkg/config"
	"github.com/Lesliedc339/linux-terminal/pkg/history"
	"github.com/Lesliedc339/linux-terminal/pkg/logging"
	"github.com/Lesliedc339/linux-terminal/pkg/surface"
)

type fakeClipboard struct {
	mu     sync.Mutex
	copied []string
}

func (f *fakeClipboard) Copy(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.copied = append(f.copied, text)
	return nil
}

func TestInitializeTerminal(t *testing.T) {
	cfg := config.Default()
	cfg.HistoryFile = filepath.Join(t.TempDir(), "history")
	clip := &fakeClipboard{}
	rec := surface.NewRecorder()

	term, err := InitializeTerminal(rec, cfg, HostOptions{DocStyle: "notty", Clipboard: clip}, logging.NewDisabledLogger())
	require.NoError(t, err)

	term.Start()
	require.NoError(t, term.Submit("calc 6 * 7"))
	require.NoError(t, term.Submit("yank"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, term.Wait(ctx))
	require.NoError(t, term.Close(ctx))

	assert.Equal(t, []string{"Welcome!", "42", "Copied to clipboard"}, rec.Lines())
	assert.Equal(t, []string{"42"}, clip.copied)

	saved, err := history.NewFileStore(cfg.HistoryFile, 0).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"yank", "calc 6 * 7"}, saved)
}

func TestProvideHistoryStore(t *testing.T) {
	cfg := config.Default()
	assert.Nil(t, ProvideHistoryStore(cfg))

	cfg.HistoryFile = "/tmp/linuxterm-history"
	assert.NotNil(t, ProvideHistoryStore(cfg))
}

func TestProvideTerminalConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Prompt = "> "

	tc := ProvideTerminalConfig(cfg, HostOptions{WelcomeMessage: "banner"}, nil, nil, nil, logging.NewDisabledLogger())

	assert.Equal(t, "> ", tc.Prompt)
	assert.Equal(t, "banner", tc.WelcomeMessage)
	assert.Equal(t, time.Second, tc.CountdownInterval)
}
