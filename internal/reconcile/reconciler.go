package reconcile

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Channel is the subset of the control client the reconciler drives.
// *control.Device satisfies it; tests substitute a recording fake.
type Channel interface {
	AddRule(src, target string, kind uint8) error
	DeleteRule(src string) error
	HidePath(path string) error
	MarkInjectable(dir string) error
}

// Reconciler applies and removes module overlays through a Channel. It is
// stateless between invocations and safe to reuse.
type Reconciler struct {
	ch  Channel
	log *zap.Logger
}

// New returns a Reconciler driving ch. A nil logger silences warnings.
func New(ch Channel, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{ch: ch, log: log}
}

// Inject overlays moduleDir onto targetBase. A missing or non-directory
// module path succeeds trivially without touching the channel: an absent
// overlay module is a normal state, not an error.
//
// The apply is best effort, not a transaction. Directory marks go first
// (the kernel will not surface injected children under an unmarked
// directory), then the per-entry operations in discovery order. Each
// failure is logged with the offending path and the remaining operations
// are still attempted; the kernel offers no multi-op primitive that would
// make anything stronger possible.
func (r *Reconciler) Inject(targetBase, moduleDir string) error {
	info, err := os.Stat(moduleDir)
	if err != nil || !info.IsDir() {
		return nil
	}

	r.log.Debug("hymofs scanning module dir",
		zap.String("module", moduleDir), zap.String("target", targetBase))

	plan, err := BuildPlan(targetBase, moduleDir, r.log)
	if err != nil {
		return fmt.Errorf("failed to plan overlay of %s: %w", moduleDir, err)
	}

	r.apply(plan)
	return nil
}

// apply drives the channel with a materialized plan.
func (r *Reconciler) apply(plan *Plan) {
	for _, dir := range plan.InjectDirs {
		if err := r.ch.MarkInjectable(dir); err != nil {
			r.log.Warn("failed to mark directory injectable",
				zap.String("dir", dir), zap.Error(err))
		}
	}

	for _, op := range plan.Ops {
		switch op.Kind {
		case OpAddRedirect:
			if err := r.ch.AddRule(op.Dest, op.Source, 0); err != nil {
				r.log.Warn("failed to add redirect rule",
					zap.String("dest", op.Dest), zap.String("source", op.Source), zap.Error(err))
			}
		case OpHideVirtual:
			if err := r.ch.HidePath(op.Dest); err != nil {
				r.log.Warn("failed to hide path",
					zap.String("dest", op.Dest), zap.Error(err))
			}
		}
	}
}

// Remove deletes the rules a prior Inject of moduleDir onto targetBase
// would have installed. It reuses the inject walk so both sides agree on
// which entries are rule-bearing. Directories are never un-marked: the
// kernel module owns cleanup of marked directories.
func (r *Reconciler) Remove(targetBase, moduleDir string) error {
	info, err := os.Stat(moduleDir)
	if err != nil || !info.IsDir() {
		return nil
	}

	plan, err := BuildPlan(targetBase, moduleDir, r.log)
	if err != nil {
		return fmt.Errorf("failed to plan removal of %s: %w", moduleDir, err)
	}

	r.removeOps(plan)
	return nil
}

// removeOps issues a delete for every rule-bearing destination in plan.
func (r *Reconciler) removeOps(plan *Plan) {
	for _, op := range plan.Ops {
		if err := r.ch.DeleteRule(op.Dest); err != nil {
			r.log.Warn("failed to delete rule",
				zap.String("dest", op.Dest), zap.Error(err))
		}
	}
}
