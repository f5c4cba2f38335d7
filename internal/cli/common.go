package cli

import (
	"encoding/json"
	"os"

	"github.com/YongYe-bai/meta-hybrid-mount/internal/control"
	"github.com/YongYe-bai/meta-hybrid-mount/internal/reconcile"
)

// defaultDevicePath seeds the --device flag.
const defaultDevicePath = control.DevicePath

// newDevice returns a control client bound to the selected device path.
func newDevice() *control.Device {
	return control.NewAt(devicePath, logger)
}

// newReconciler returns a reconciler driving the selected device.
func newReconciler() *reconcile.Reconciler {
	return reconcile.New(newDevice(), logger)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
