package reconcile

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// BuildPlan walks moduleDir and produces the plan that overlays it onto
// targetBase. Every entry's path relative to moduleDir is re-rooted under
// targetBase to form the destination. Per-entry failures (permissions,
// races) are logged and skipped; a single unreadable entry must not abort
// the whole walk.
func BuildPlan(targetBase, moduleDir string, log *zap.Logger) (*Plan, error) {
	if log == nil {
		log = zap.NewNop()
	}

	plan := &Plan{}
	injectDirs := make(map[string]struct{})

	err := filepath.WalkDir(moduleDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("hymofs walk error", zap.String("path", path), zap.Error(err))
			return nil
		}
		if path == moduleDir {
			return nil
		}

		rel, err := filepath.Rel(moduleDir, path)
		if err != nil {
			return nil
		}
		dest := filepath.Join(targetBase, rel)

		// DirEntry info has lstat semantics: symlinks classify as
		// symlinks, not as their targets.
		info, err := d.Info()
		if err != nil {
			log.Warn("hymofs walk error", zap.String("path", path), zap.Error(err))
			return nil
		}

		rdev, rdevKnown := rdevOf(info)
		switch classify(info.Mode(), rdev, rdevKnown) {
		case classRedirect:
			injectDirs[filepath.Dir(dest)] = struct{}{}
			plan.Ops = append(plan.Ops, PendingOp{Kind: OpAddRedirect, Dest: dest, Source: path})
		case classHide:
			injectDirs[filepath.Dir(dest)] = struct{}{}
			plan.Ops = append(plan.Ops, PendingOp{Kind: OpHideVirtual, Dest: dest})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk module dir %s: %w", moduleDir, err)
	}

	plan.InjectDirs = make([]string, 0, len(injectDirs))
	for dir := range injectDirs {
		plan.InjectDirs = append(plan.InjectDirs, dir)
	}
	sort.Strings(plan.InjectDirs)

	return plan, nil
}
