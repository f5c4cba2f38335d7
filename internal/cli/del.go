package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var delCmd = &cobra.Command{
	Use:   "del <source>",
	Short: "Delete the rule installed for a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newDevice().DeleteRule(args[0]); err != nil {
			return err
		}
		PrintSuccess(fmt.Sprintf("Deleted rule for %s", args[0]))
		return nil
	},
}
