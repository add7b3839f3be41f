package cli

import (
	"fmt"
	"os"

	"github.com/awesome-gocui/gocui"
	"github.com/spf13/cobra"

	"github.com/Lesliedc339/linux-terminal/cmd/tui"
	"github.com/Lesliedc339/linux-terminal/internal/di"
	"github.com/Lesliedc339/linux-terminal/pkg/config"
	"github.com/Lesliedc339/linux-terminal/pkg/logging"
	"github.com/Lesliedc339/linux-terminal/pkg/version"
)

const debugLogFileName = "linuxterm-debug.log"

var (
	// Global flags
	configPath string
	verbose    bool
	quiet      bool
	prompt     string
	welcome    string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "linuxterm",
	Short: "An interactive Linux-style terminal",
	Long: `linuxterm is a small interactive command interpreter with line editing,
history, tab completion and a handful of built-in commands.

On a terminal it opens a full-screen session. When stdin is piped, each input
line is run as a command and the output is written to stdout.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Configure logger based on flags
		var logger logging.Logger
		if quiet {
			logger = logging.NewQuietLogger()
		} else if verbose {
			logger = logging.NewVerboseLogger()
		} else {
			logger = logging.NewDefaultLogger()
		}
		logging.SetGlobalLogger(logger)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if isInteractive() {
			// the screen belongs to gocui, so logs go to a file
			logger := logging.NewFileLoggerFromEnv(debugLogFileName)
			app, err := tui.New(cfg, di.HostOptions{
				WelcomeMessage: Banner(cfg.WelcomeMessage),
				OnExecute:      logExecuted(logger),
			}, logger, gocui.OutputTrue)
			if err != nil {
				return err
			}
			return app.Run()
		}

		logger := logging.GetGlobalLogger()
		return RunLines(cmd.Context(), cfg, os.Stdin, cmd.OutOrStdout(), !stdoutIsTerminal(), logger)
	},
}

func init() {
	// Global flags available to all commands
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./linuxterm.yaml, then ~/.linuxterm/config.yaml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug level)")
	RootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "quiet output (errors only)")
	RootCmd.PersistentFlags().StringVar(&prompt, "prompt", "", "prompt written before each input line")
	RootCmd.PersistentFlags().StringVar(&welcome, "welcome", "", "message written once at startup")

	RootCmd.SetVersionTemplate(version.GetInfo().String() + "\n")
	RootCmd.AddCommand(newExecCommand())
	RootCmd.AddCommand(newVersionCommand())
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if prompt != "" {
		cfg.Prompt = prompt
	}
	if welcome != "" {
		cfg.WelcomeMessage = welcome
	}
	if cfg.Source != "" {
		logging.GetGlobalLogger().Debug("config loaded", "path", cfg.Source)
	}
	return cfg, nil
}

func logExecuted(logger logging.Logger) func(command, output string) {
	return func(command, output string) {
		logger.Debug("command executed", "command", command, "output", output)
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
