package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List active redirection rules",
	Long: `Display the kernel module's dump of active rules.

The dump is diagnostic text produced by the kernel, not structured data.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := newDevice().ListActiveRules()
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(struct {
				Rules string `json:"rules"`
			}{Rules: rules})
		}

		if strings.TrimSpace(rules) == "" {
			PrintEmptyState("No active rules")
			return nil
		}
		PrintInfo(strings.TrimRight(rules, "\n"))
		return nil
	},
}
