package control

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

var (
	// ErrDeviceUnavailable indicates the control device is missing or
	// could not be opened. Absence of the facility is a normal, probe-able
	// state, not a fatal condition.
	ErrDeviceUnavailable = errors.New("control device unavailable")

	// ErrInvalidArgument indicates a path that cannot cross the ioctl
	// boundary, such as one containing an embedded NUL byte.
	ErrInvalidArgument = errors.New("invalid argument")
)

// OpError reports a control operation the kernel rejected.
type OpError struct {
	// Op is the logical operation name, e.g. "add_rule".
	Op string

	// Path is the primary path involved, if any.
	Path string

	// Errno is the OS error code returned by the device.
	Errno unix.Errno
}

func (e *OpError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("hymofs %s failed: %v", e.Op, e.Errno)
	}
	return fmt.Sprintf("hymofs %s failed for %s: %v", e.Op, e.Path, e.Errno)
}

func (e *OpError) Unwrap() error {
	return e.Errno
}
