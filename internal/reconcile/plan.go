// Package reconcile diffs a module's file tree against a target location
// and drives the control channel with the rule operations needed to
// overlay or remove it.
//
// Entry classification is an external-ABI convention inherited from the
// kernel module, not a choice made here: regular files and symlinks carry
// redirect rules, and a character device with device number zero is a
// placeholder meaning "hide this path", never a real device node.
package reconcile

import "io/fs"

// OpKind discriminates pending operations.
type OpKind int

const (
	// OpAddRedirect installs a rule substituting Source for Dest.
	OpAddRedirect OpKind = iota

	// OpHideVirtual hides Dest from directory listings.
	OpHideVirtual
)

func (k OpKind) String() string {
	switch k {
	case OpAddRedirect:
		return "add_redirect"
	case OpHideVirtual:
		return "hide_virtual"
	default:
		return "unknown"
	}
}

// PendingOp is a single rule operation awaiting apply. Ops exist only
// between the walk and the apply loop; nothing is persisted.
type PendingOp struct {
	Kind   OpKind
	Dest   string
	Source string
}

// Plan is the fully materialized outcome of one tree walk: the
// destination directories to mark injectable plus the ordered per-entry
// operations beneath them.
type Plan struct {
	// InjectDirs is the deduplicated set of destination directories that
	// must be marked before any operation under them, sorted so runs are
	// deterministic. The marks are independent commands; ordering between
	// them carries no protocol meaning.
	InjectDirs []string

	// Ops is the per-entry operation list in discovery order.
	Ops []PendingOp
}

// entryClass is the classification of one walked entry.
type entryClass int

const (
	classIgnore entryClass = iota
	classRedirect
	classHide
)

// classify applies the rule-bearing predicate shared by inject and
// remove. Directories are never redirected directly; they materialize on
// the destination side through their parents' injectable marks. Char
// devices with a non-zero or unreadable device number, sockets, FIFOs,
// and other special entries are ignored.
func classify(mode fs.FileMode, rdev uint64, rdevKnown bool) entryClass {
	switch {
	case mode.IsRegular() || mode&fs.ModeSymlink != 0:
		return classRedirect
	case mode&fs.ModeCharDevice != 0 && rdevKnown && rdev == 0:
		return classHide
	default:
		return classIgnore
	}
}
