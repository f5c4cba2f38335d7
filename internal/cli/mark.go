package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var markCmd = &cobra.Command{
	Use:   "mark <dir>",
	Short: "Mark a directory as injectable",
	Long: `Mark <dir> so the kernel surfaces injected children under it.

A directory must be marked before redirect or hide rules beneath it take
visible effect. 'inject' does this automatically for every affected
directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newDevice().MarkInjectable(args[0]); err != nil {
			return err
		}
		PrintSuccess(fmt.Sprintf("Marked %s injectable", args[0]))
		return nil
	},
}
