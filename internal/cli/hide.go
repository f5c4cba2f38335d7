package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var hideCmd = &cobra.Command{
	Use:   "hide <path>",
	Short: "Hide a path from directory listings",
	Long: `Install a rule that omits <path> from directory listings.

Redirection of references that are already open is unaffected; that
behavior belongs to the kernel module.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newDevice().HidePath(args[0]); err != nil {
			return err
		}
		PrintSuccess(fmt.Sprintf("Hidden %s", args[0]))
		return nil
	},
}
