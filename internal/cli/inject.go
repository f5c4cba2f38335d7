package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YongYe-bai/meta-hybrid-mount/internal/reconcile"
)

var injectDryRun bool

var injectCmd = &cobra.Command{
	Use:   "inject <target-base> <module-dir>",
	Short: "Overlay a module directory onto a target directory",
	Long: `Walk <module-dir> and install the rules that overlay it onto <target-base>.

Regular files and symlinks become redirect rules, zero-rdev character
device placeholders become hide rules, and every affected destination
directory is marked injectable first. A missing module directory is a
no-op.

The apply is best effort: individual failures are logged and the remaining
operations still run. Partial application is a valid outcome.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		targetBase, moduleDir := args[0], args[1]

		if injectDryRun {
			plan, err := reconcile.BuildPlan(targetBase, moduleDir, logger)
			if err != nil {
				return err
			}
			return printPlan(plan)
		}

		if err := newReconciler().Inject(targetBase, moduleDir); err != nil {
			return err
		}
		PrintSuccess(fmt.Sprintf("Injected %s over %s", moduleDir, targetBase))
		return nil
	},
}

// printPlan renders a materialized plan without applying it.
func printPlan(plan *reconcile.Plan) error {
	if jsonOutput {
		return outputJSON(plan)
	}

	PrintSection("Dry Run")
	PrintInfo(fmt.Sprintf("Would mark %s and apply %s",
		PrintCount(len(plan.InjectDirs), "directory", "directories"),
		PrintCount(len(plan.Ops), "operation", "operations")))
	for _, dir := range plan.InjectDirs {
		PrintLabelValue("mark", dir)
	}
	for _, op := range plan.Ops {
		switch op.Kind {
		case reconcile.OpAddRedirect:
			PrintLabelValue("redirect", fmt.Sprintf("%s -> %s", op.Dest, op.Source))
		case reconcile.OpHideVirtual:
			PrintLabelValue("hide", op.Dest)
		}
	}
	return nil
}

func init() {
	injectCmd.Flags().BoolVar(&injectDryRun, "dry-run", false, "Show the planned operations without applying them")
}
