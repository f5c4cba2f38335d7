package ioctl

import "unsafe"

// Magic is the type tag identifying the HymoFS command family.
const Magic = 0xE0

// RuleArg mirrors the kernel's rule record: two NUL-terminated string
// pointers and one tag byte. The payload size embedded in every rule
// command code is the size of this struct, so its layout must match the
// kernel's exactly.
type RuleArg struct {
	Src    *byte
	Target *byte
	Kind   uint8
}

// ListArg mirrors the kernel's list-query record: a caller-owned output
// buffer and its capacity in bytes.
type ListArg struct {
	Buf  *byte
	Size uintptr
}

// Command codes understood by the control device.
var (
	CmdAddRule    = IOW(Magic, 1, uint32(unsafe.Sizeof(RuleArg{})))
	CmdDeleteRule = IOW(Magic, 2, uint32(unsafe.Sizeof(RuleArg{})))
	CmdHideRule   = IOW(Magic, 3, uint32(unsafe.Sizeof(RuleArg{})))
	CmdInjectDir  = IOW(Magic, 4, uint32(unsafe.Sizeof(RuleArg{})))
	CmdClearAll   = IO(Magic, 5)
	CmdGetVersion = IOR(Magic, 6, uint32(unsafe.Sizeof(int32(0))))
	CmdListRules  = IOWR(Magic, 7, uint32(unsafe.Sizeof(ListArg{})))
)
