package reconcile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type channelCall struct {
	method string
	src    string
	target string
}

// fakeChannel records every invocation and fails the calls listed in its
// fail maps, keyed by the primary path.
type fakeChannel struct {
	calls    []channelCall
	failAdd  map[string]error
	failHide map[string]error
	failMark map[string]error
	failDel  map[string]error
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{
		failAdd:  map[string]error{},
		failHide: map[string]error{},
		failMark: map[string]error{},
		failDel:  map[string]error{},
	}
}

func (c *fakeChannel) AddRule(src, target string, kind uint8) error {
	c.calls = append(c.calls, channelCall{method: "add", src: src, target: target})
	return c.failAdd[src]
}

func (c *fakeChannel) DeleteRule(src string) error {
	c.calls = append(c.calls, channelCall{method: "delete", src: src})
	return c.failDel[src]
}

func (c *fakeChannel) HidePath(path string) error {
	c.calls = append(c.calls, channelCall{method: "hide", src: path})
	return c.failHide[path]
}

func (c *fakeChannel) MarkInjectable(dir string) error {
	c.calls = append(c.calls, channelCall{method: "mark", src: dir})
	return c.failMark[dir]
}

func (c *fakeChannel) byMethod(method string) []channelCall {
	var out []channelCall
	for _, call := range c.calls {
		if call.method == method {
			out = append(out, call)
		}
	}
	return out
}

func TestInjectNoOpWhenModuleAbsent(t *testing.T) {
	tmpDir := t.TempDir()
	regularFile := filepath.Join(tmpDir, "not-a-dir")
	if err := os.WriteFile(regularFile, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	tests := []struct {
		name      string
		moduleDir string
	}{
		{"module dir missing", filepath.Join(tmpDir, "missing")},
		{"module path is a regular file", regularFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := newFakeChannel()
			r := New(ch, nil)

			if err := r.Inject("/dst", tt.moduleDir); err != nil {
				t.Fatalf("Inject() error = %v, want nil", err)
			}
			if err := r.Remove("/dst", tt.moduleDir); err != nil {
				t.Fatalf("Remove() error = %v, want nil", err)
			}
			if len(ch.calls) != 0 {
				t.Errorf("expected no channel calls, got %v", ch.calls)
			}
		})
	}
}

func TestInjectMarksDirectoriesBeforeRules(t *testing.T) {
	moduleDir := newModuleTree(t)
	ch := newFakeChannel()
	r := New(ch, nil)

	if err := r.Inject("/dst", moduleDir); err != nil {
		t.Fatalf("Inject() error = %v", err)
	}

	// Two marks, then two adds; every mark strictly precedes every rule.
	lastMark, firstRule := -1, len(ch.calls)
	for i, call := range ch.calls {
		if call.method == "mark" && i > lastMark {
			lastMark = i
		}
		if call.method != "mark" && i < firstRule {
			firstRule = i
		}
	}
	if lastMark == -1 || lastMark > firstRule {
		t.Errorf("directory marks must precede all rule operations, got %v", ch.calls)
	}

	marks := ch.byMethod("mark")
	wantMarks := []string{filepath.Join("/dst", "a"), filepath.Join("/dst", "a", "b")}
	if len(marks) != len(wantMarks) {
		t.Fatalf("marks = %v, want %v", marks, wantMarks)
	}
	for i, want := range wantMarks {
		if marks[i].src != want {
			t.Errorf("marks[%d] = %q, want %q", i, marks[i].src, want)
		}
	}

	adds := ch.byMethod("add")
	if len(adds) != 2 {
		t.Fatalf("adds = %v, want 2 calls", adds)
	}
	wantAdds := []channelCall{
		{
			method: "add",
			src:    filepath.Join("/dst", "a", "b", "link"),
			target: filepath.Join(moduleDir, "a", "b", "link"),
		},
		{
			method: "add",
			src:    filepath.Join("/dst", "a", "file.txt"),
			target: filepath.Join(moduleDir, "a", "file.txt"),
		},
	}
	for i, want := range wantAdds {
		if adds[i] != want {
			t.Errorf("adds[%d] = %+v, want %+v", i, adds[i], want)
		}
	}
}

// TestApplyContinuesPastFailures verifies the bulk apply is best effort:
// one failing operation must not prevent the others from being attempted.
func TestApplyContinuesPastFailures(t *testing.T) {
	plan := &Plan{
		InjectDirs: []string{"/dst/a", "/dst/a/b"},
		Ops: []PendingOp{
			{Kind: OpAddRedirect, Dest: "/dst/a/one", Source: "/mod/a/one"},
			{Kind: OpHideVirtual, Dest: "/dst/a/gone"},
			{Kind: OpAddRedirect, Dest: "/dst/a/b/two", Source: "/mod/a/b/two"},
		},
	}

	ch := newFakeChannel()
	ch.failMark["/dst/a"] = errors.New("mark rejected")
	ch.failAdd["/dst/a/one"] = errors.New("add rejected")
	ch.failHide["/dst/a/gone"] = errors.New("hide rejected")

	r := New(ch, nil)
	r.apply(plan)

	want := []channelCall{
		{method: "mark", src: "/dst/a"},
		{method: "mark", src: "/dst/a/b"},
		{method: "add", src: "/dst/a/one", target: "/mod/a/one"},
		{method: "hide", src: "/dst/a/gone"},
		{method: "add", src: "/dst/a/b/two", target: "/mod/a/b/two"},
	}
	if len(ch.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", ch.calls, want)
	}
	for i, w := range want {
		if ch.calls[i] != w {
			t.Errorf("calls[%d] = %+v, want %+v", i, ch.calls[i], w)
		}
	}
}

func TestRemoveDeletesEveryRuleBearingEntry(t *testing.T) {
	moduleDir := newModuleTree(t)
	ch := newFakeChannel()
	ch.failDel[filepath.Join("/dst", "a", "b", "link")] = errors.New("delete rejected")

	r := New(ch, nil)
	if err := r.Remove("/dst", moduleDir); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	// The failing delete must not stop the second one.
	want := []channelCall{
		{method: "delete", src: filepath.Join("/dst", "a", "b", "link")},
		{method: "delete", src: filepath.Join("/dst", "a", "file.txt")},
	}
	if len(ch.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", ch.calls, want)
	}
	for i, w := range want {
		if ch.calls[i] != w {
			t.Errorf("calls[%d] = %+v, want %+v", i, ch.calls[i], w)
		}
	}
}

// TestInjectAndRemoveClassifyIdentically verifies the round-trip intent:
// the entries inject targets are exactly the entries remove targets.
func TestInjectAndRemoveClassifyIdentically(t *testing.T) {
	moduleDir := newModuleTree(t)

	injectCh := newFakeChannel()
	if err := New(injectCh, nil).Inject("/dst", moduleDir); err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	removeCh := newFakeChannel()
	if err := New(removeCh, nil).Remove("/dst", moduleDir); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	injected := map[string]bool{}
	for _, call := range injectCh.calls {
		if call.method == "add" || call.method == "hide" {
			injected[call.src] = true
		}
	}
	deleted := map[string]bool{}
	for _, call := range removeCh.calls {
		if call.method == "delete" {
			deleted[call.src] = true
		}
	}

	if len(injected) != len(deleted) {
		t.Fatalf("inject targeted %v, remove targeted %v", injected, deleted)
	}
	for dest := range injected {
		if !deleted[dest] {
			t.Errorf("inject targeted %s but remove did not", dest)
		}
	}
}
