package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/YongYe-bai/meta-hybrid-mount/internal/control"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the redirection facility is present",
	Long: `Check for the control device and query the advisory protocol version.

The check only probes for the device path; it never opens or modifies it.
A missing device means the kernel module is not loaded, which is a normal
state, not an error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dev := newDevice()
		st := dev.CheckStatus()

		var version *int
		if st == control.StatusAvailable {
			if v, ok := dev.Version(); ok {
				version = &v
			}
		}

		if jsonOutput {
			return outputJSON(struct {
				Device  string `json:"device"`
				Status  string `json:"status"`
				Version *int   `json:"version,omitempty"`
			}{
				Device:  devicePath,
				Status:  st.String(),
				Version: version,
			})
		}

		PrintSection("HymoFS Status")
		PrintLabelValue("Device", devicePath)
		PrintLabelValue("Status", st.String())
		if version != nil {
			PrintLabelValue("Protocol version", strconv.Itoa(*version))
		} else {
			PrintLabelValue("Protocol version", "unknown")
		}

		if st != control.StatusAvailable {
			PrintWarning("Redirection facility is not available")
		}
		return nil
	},
}
