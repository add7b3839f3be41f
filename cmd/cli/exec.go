package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lesliedc339/linux-terminal/pkg/logging"
)

func newExecCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command> [args...]",
		Short: "Run a single command and print its output",
		Example: `  linuxterm exec calc 4 + 5
  linuxterm exec date`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return RunOnce(cmd.Context(), cfg, strings.Join(args, " "), cmd.OutOrStdout(), !stdoutIsTerminal(), logging.GetGlobalLogger())
		},
	}
}
