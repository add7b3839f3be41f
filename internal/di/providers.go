package di

import (
	"github.com/google/wire"

	"github.com/Lesliedc339/linux-terminal/pkg/commands"
	"github.com/Lesliedc339/linux-terminal/pkg/config"
	"github.com/Lesliedc339/linux-terminal/pkg/events"
	"github.com/Lesliedc339/linux-terminal/pkg/history"
	"github.com/Lesliedc339/linux-terminal/pkg/logging"
	"github.com/Lesliedc339/linux-terminal/pkg/registry"
	"github.com/Lesliedc339/linux-terminal/pkg/terminal"
)

// HostOptions carries what differs between the full-screen and line hosts.
type HostOptions struct {
	// DocStyle is the glamour style used by the docs command.
	DocStyle string
	// WelcomeMessage overrides the configured welcome, e.g. with a styled banner.
	WelcomeMessage string
	OnExecute      func(command, output string)
	Clipboard      commands.Clipboard
}

// ProvideBus creates the event bus shared by the terminal and yank.
func ProvideBus(logger logging.Logger) *events.Bus {
	return events.NewBus(logger)
}

// ProvideHistoryStore returns a file store when a history file is configured.
func ProvideHistoryStore(cfg *config.Config) terminal.HistoryStore {
	if cfg.HistoryFile == "" {
		return nil
	}
	return history.NewFileStore(cfg.HistoryFile, cfg.HistorySize)
}

func ProvideCommands(bus *events.Bus, opts HostOptions) (map[string]registry.Descriptor, error) {
	return commands.New(commands.Options{
		Bus:       bus,
		Clipboard: opts.Clipboard,
		DocStyle:  opts.DocStyle,
	})
}

func ProvideTerminalConfig(
	cfg *config.Config,
	opts HostOptions,
	cmds map[string]registry.Descriptor,
	store terminal.HistoryStore,
	bus *events.Bus,
	logger logging.Logger,
) terminal.Config {
	welcome := cfg.WelcomeMessage
	if opts.WelcomeMessage != "" {
		welcome = opts.WelcomeMessage
	}
	return terminal.Config{
		Commands:          cmds,
		Prompt:            cfg.Prompt,
		WelcomeMessage:    welcome,
		OnExecute:         opts.OnExecute,
		CurrentDir:        cfg.CurrentDir,
		Canned:            cfg.CannedTable(),
		CountdownInterval: cfg.CountdownInterval,
		HistorySize:       cfg.HistorySize,
		HistoryStore:      store,
		Bus:               bus,
		Logger:            logger,
	}
}

// TerminalSet builds a terminal from config, host options, a surface and a logger.
var TerminalSet = wire.NewSet(
	ProvideBus,
	ProvideHistoryStore,
	ProvideCommands,
	ProvideTerminalConfig,
	terminal.New,
)
