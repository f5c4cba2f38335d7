package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addKind uint8

var addCmd = &cobra.Command{
	Use:   "add <source> <target>",
	Short: "Install a single redirect rule",
	Long: `Install a rule that substitutes <target> in place of <source>.

<source> is the path the kernel intercepts; <target> is the path it serves
instead. Both should be absolute.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newDevice().AddRule(args[0], args[1], addKind); err != nil {
			return err
		}
		PrintSuccess(fmt.Sprintf("Redirected %s -> %s", args[0], args[1]))
		return nil
	},
}

func init() {
	// The kind byte is an opaque passthrough defined by the kernel module.
	addCmd.Flags().Uint8Var(&addKind, "kind", 0, "Rule kind byte passed through to the kernel module")
}
