package cli

import (
	"github.com/spf13/cobra"
)

// clearCmd drops the kernel module's entire rule table.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all redirection rules",
	Long: `Delete every rule held by the kernel module.

This affects all overlays at once, not just rules installed by this
invocation or this user.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newDevice().Clear(); err != nil {
			return err
		}
		PrintSuccess("Cleared all rules")
		return nil
	},
}
