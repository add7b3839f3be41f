package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lesliedc339/linux-terminal/pkg/version"
)

var shortVersion bool

func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()
			if shortVersion {
				fmt.Fprintln(cmd.OutOrStdout(), info.ShortString())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&shortVersion, "short", false, "print only the version number")
	return cmd
}
