// Package control implements the userspace side of the HymoFS control
// protocol: one ioctl per logical operation against the control device.
//
// Every operation opens the device read-write, issues a single blocking
// call, and closes the descriptor on all exit paths. The kernel module
// owns the durable rule table; this client keeps no state between calls
// and never retries.
package control

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"strings"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/YongYe-bai/meta-hybrid-mount/internal/ioctl"
)

// DevicePath is the well-known control device node created by the kernel
// module when it is loaded.
const DevicePath = "/dev/hymo_ctl"

// listBufferSize is the fixed capacity handed to the list-rules query.
// The kernel fails the call if its dump does not fit; there is no growth
// or retry.
const listBufferSize = 128 * 1024

// Status describes whether the redirection facility is reachable.
type Status int

const (
	StatusAvailable Status = iota
	StatusNotPresent

	// StatusKernelTooOld and StatusModuleTooOld are reserved for a
	// version-negotiation step the protocol does not implement yet; no
	// probe currently returns them.
	StatusKernelTooOld
	StatusModuleTooOld
)

func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusNotPresent:
		return "not present"
	case StatusKernelTooOld:
		return "kernel too old"
	case StatusModuleTooOld:
		return "module too old"
	default:
		return fmt.Sprintf("unknown status (%d)", int(s))
	}
}

// Device is a client for the control device. It holds no open handle;
// each operation acquires and releases its own descriptor.
type Device struct {
	path string
	log  *zap.Logger
}

// New returns a Device bound to the default control path.
func New(log *zap.Logger) *Device {
	return NewAt(DevicePath, log)
}

// NewAt returns a Device bound to an explicit control path. Used by tests
// and non-standard installs. A nil logger silences debug output.
func NewAt(path string, log *zap.Logger) *Device {
	if log == nil {
		log = zap.NewNop()
	}
	return &Device{path: path, log: log}
}

// CheckStatus reports whether the control device is present. It only
// stats the path; the device is never opened or modified.
func (d *Device) CheckStatus() Status {
	if _, err := os.Stat(d.path); err == nil {
		return StatusAvailable
	}
	return StatusNotPresent
}

// Available reports whether the redirection facility is usable.
func (d *Device) Available() bool {
	return d.CheckStatus() == StatusAvailable
}

func (d *Device) open() (*os.File, error) {
	f, err := os.OpenFile(d.path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDeviceUnavailable, d.path, err)
	}
	return f, nil
}

// Version returns the protocol version reported by the kernel module.
// The call is advisory: any failure reads as "unknown" with no error
// detail.
func (d *Device) Version() (int, bool) {
	f, err := d.open()
	if err != nil {
		return 0, false
	}
	defer func() {
		_ = f.Close()
	}()

	ret, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), uintptr(ioctl.CmdGetVersion), 0)
	if errno != 0 {
		return 0, false
	}
	return int(ret), true
}

// Clear drops every rule held by the kernel module.
func (d *Device) Clear() error {
	d.log.Debug("hymofs clearing all rules")

	f, err := d.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), uintptr(ioctl.CmdClearAll), 0); errno != 0 {
		return &OpError{Op: "clear", Errno: errno}
	}
	return nil
}

// AddRule asks the kernel to substitute target in place of src. The kind
// byte is an opaque passthrough whose value space belongs to the kernel
// module; every current call site passes 0.
func (d *Device) AddRule(src, target string, kind uint8) error {
	d.log.Debug("hymofs add rule",
		zap.String("src", src), zap.String("target", target), zap.Uint8("kind", kind))
	return d.ruleIoctl("add_rule", ioctl.CmdAddRule, src, target, kind)
}

// DeleteRule removes the rule installed for src.
func (d *Device) DeleteRule(src string) error {
	d.log.Debug("hymofs delete rule", zap.String("src", src))
	return d.ruleIoctl("delete_rule", ioctl.CmdDeleteRule, src, "", 0)
}

// HidePath marks path so directory listings omit it. Redirection of
// already-open references is unaffected; that behavior is kernel-defined.
func (d *Device) HidePath(path string) error {
	d.log.Debug("hymofs hide path", zap.String("path", path))
	return d.ruleIoctl("hide_path", ioctl.CmdHideRule, path, "", 0)
}

// MarkInjectable marks dir so the kernel will surface injected children
// under it. It must be applied before any add or hide rule beneath dir
// takes visible effect.
func (d *Device) MarkInjectable(dir string) error {
	d.log.Debug("hymofs mark directory injectable", zap.String("dir", dir))
	return d.ruleIoctl("inject_dir", ioctl.CmdInjectDir, dir, "", 0)
}

// ruleIoctl validates the paths, encodes a rule record, and issues one
// rule-family ioctl. An empty target encodes a nil pointer. Validation
// happens before the device is opened, so a malformed path never reaches
// the kernel.
func (d *Device) ruleIoctl(op string, cmd uint32, src, target string, kind uint8) error {
	srcPtr, err := unix.BytePtrFromString(src)
	if err != nil {
		return fmt.Errorf("%w: %s source path %q contains a NUL byte", ErrInvalidArgument, op, src)
	}
	var targetPtr *byte
	if target != "" {
		targetPtr, err = unix.BytePtrFromString(target)
		if err != nil {
			return fmt.Errorf("%w: %s target path %q contains a NUL byte", ErrInvalidArgument, op, target)
		}
	}

	f, err := d.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	arg := ioctl.RuleArg{Src: srcPtr, Target: targetPtr, Kind: kind}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), uintptr(cmd), uintptr(unsafe.Pointer(&arg)))
	runtime.KeepAlive(&arg)
	if errno != 0 {
		return &OpError{Op: op, Path: src, Errno: errno}
	}
	return nil
}

// ListActiveRules returns the kernel's NUL-terminated human-readable dump
// of active rules. The response is diagnostic text, not structured data,
// and is decoded permissively.
func (d *Device) ListActiveRules() (string, error) {
	f, err := d.open()
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, listBufferSize)
	arg := ioctl.ListArg{Buf: &buf[0], Size: uintptr(len(buf))}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), uintptr(ioctl.CmdListRules), uintptr(unsafe.Pointer(&arg)))
	runtime.KeepAlive(&arg)
	if errno != 0 {
		return "", &OpError{Op: "list_rules", Path: d.path, Errno: errno}
	}

	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return strings.ToValidUTF8(string(buf), "�"), nil
}
