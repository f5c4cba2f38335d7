// Package ioctl computes the command codes used to address the HymoFS
// control device and defines the kernel's argument record layouts.
//
// The encoding follows the Linux ioctl convention: four sub-fields packed
// into a 32-bit code, cumulative from bit 0 upward. The layout is frozen
// by the kernel module's ABI and must be reproduced bit-for-bit.
package ioctl

// Field widths and shift offsets. Number and type are 8 bits each, size
// is 14 bits, direction is 2 bits; the fields never overlap.
const (
	nrBits   = 8
	typeBits = 8
	sizeBits = 14
	dirBits  = 2

	nrShift   = 0
	typeShift = nrShift + nrBits
	sizeShift = typeShift + typeBits
	dirShift  = sizeShift + sizeBits
)

// Transfer directions.
const (
	DirNone      uint32 = 0
	DirWrite     uint32 = 1
	DirRead      uint32 = 2
	DirReadWrite uint32 = 3
)

// IOC packs direction, type tag, command number, and payload size into a
// single command code.
func IOC(dir, typ, nr, size uint32) uint32 {
	return dir<<dirShift | typ<<typeShift | nr<<nrShift | size<<sizeShift
}

// IO encodes a command that carries no payload.
func IO(typ, nr uint32) uint32 {
	return IOC(DirNone, typ, nr, 0)
}

// IOR encodes a command whose payload is read from the kernel.
func IOR(typ, nr, size uint32) uint32 {
	return IOC(DirRead, typ, nr, size)
}

// IOW encodes a command whose payload is written to the kernel.
func IOW(typ, nr, size uint32) uint32 {
	return IOC(DirWrite, typ, nr, size)
}

// IOWR encodes a command whose payload travels both ways.
func IOWR(typ, nr, size uint32) uint32 {
	return IOC(DirReadWrite, typ, nr, size)
}
