package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func findCommand(t *testing.T, name string) bool {
	t.Helper()
	for _, c := range rootCmd.Commands() {
		if c.Name() == name {
			return true
		}
	}
	return false
}

func TestCommandRegistration(t *testing.T) {
	commands := []string{
		"status", "list", "add", "del", "hide", "mark", "clear",
		"inject", "remove", "version", "completion",
	}
	for _, name := range commands {
		if !findCommand(t, name) {
			t.Errorf("command %q is not registered", name)
		}
	}
}

func TestCommandGroups(t *testing.T) {
	wantGroups := map[string]string{
		"status": "rule-operations",
		"list":   "rule-operations",
		"add":    "rule-operations",
		"clear":  "rule-operations",
		"inject": "overlay-lifecycle",
		"remove": "overlay-lifecycle",
	}
	for _, c := range rootCmd.Commands() {
		want, tracked := wantGroups[c.Name()]
		if tracked && c.GroupID != want {
			t.Errorf("command %q in group %q, want %q", c.Name(), c.GroupID, want)
		}
	}
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	var bufOut, bufErr bytes.Buffer
	rootCmd.SetOut(&bufOut)
	rootCmd.SetErr(&bufErr)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// TestInjectMissingModuleIsNoOp runs the full command path: a missing
// module directory must succeed without the control device existing.
func TestInjectMissingModuleIsNoOp(t *testing.T) {
	tmpDir := t.TempDir()
	missingDevice := filepath.Join(tmpDir, "no-device")
	missingModule := filepath.Join(tmpDir, "no-module")

	err := execute(t, "--device", missingDevice, "inject", "/dst", missingModule)
	if err != nil {
		t.Fatalf("inject of a missing module dir should be a no-op, got %v", err)
	}
	if _, statErr := os.Lstat(missingDevice); !os.IsNotExist(statErr) {
		t.Errorf("inject touched the device path: %v", statErr)
	}
}

// TestInjectDryRunNeedsNoDevice verifies planning works without the
// kernel module present.
func TestInjectDryRunNeedsNoDevice(t *testing.T) {
	tmpDir := t.TempDir()
	moduleDir := filepath.Join(tmpDir, "module")
	if err := os.MkdirAll(filepath.Join(moduleDir, "a"), 0755); err != nil {
		t.Fatalf("failed to create module dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(moduleDir, "a", "f.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	err := execute(t, "--device", filepath.Join(tmpDir, "no-device"),
		"inject", "--dry-run", "/dst", moduleDir)
	if err != nil {
		t.Fatalf("dry-run inject failed: %v", err)
	}
}

func TestAddRejectsWrongArgCount(t *testing.T) {
	if err := execute(t, "add", "/only-source"); err == nil {
		t.Error("add with one argument should fail")
	}
	if err := execute(t, "del"); err == nil {
		t.Error("del with no arguments should fail")
	}
}
