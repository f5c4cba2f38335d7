package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <target-base> <module-dir>",
	Short: "Remove the rules a module overlay installed",
	Long: `Walk <module-dir> and delete the rules a prior inject of it onto
<target-base> would have installed.

The walk classifies entries exactly as inject does, so both operations
agree on which paths carry rules. Directories are never un-marked; the
kernel module owns cleanup of marked directories. Failures are logged and
the remaining deletions still run.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newReconciler().Remove(args[0], args[1]); err != nil {
			return err
		}
		PrintSuccess(fmt.Sprintf("Removed overlay of %s from %s", args[1], args[0]))
		return nil
	},
}
