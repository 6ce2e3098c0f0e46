package selector

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/tinygo-tools/targetctl/internal/editor"
	"github.com/tinygo-tools/targetctl/internal/fs"
	"github.com/tinygo-tools/targetctl/internal/state"
	"github.com/tinygo-tools/targetctl/internal/toolchain"
)

// fakeRunner serves canned `targets` and `info` output.
type fakeRunner struct {
	targets string
	info    map[string]string
	calls   int
}

func (f *fakeRunner) Run(name string, args ...string) ([]byte, error) {
	f.calls++
	switch args[0] {
	case "targets":
		return []byte(f.targets), nil
	case "info":
		out, ok := f.info[args[1]]
		if !ok {
			return nil, fmt.Errorf("run %s info %s: exit status 1: unknown target", name, args[1])
		}
		return []byte(out), nil
	}
	return nil, fmt.Errorf("unexpected command %v", args)
}

type fakePrompter struct {
	choice string
	err    error
	seen   []string
}

func (f *fakePrompter) Pick(options []string) (string, error) {
	f.seen = slices.Clone(options)
	if f.err != nil {
		return "", f.err
	}
	return f.choice, nil
}

type statusRecorder struct {
	refreshed []string
}

func (s *statusRecorder) Refresh(active string) {
	s.refreshed = append(s.refreshed, active)
}

const root = "/work/project"

const infoC = "GOOS: linux\nGOARCH: arm\ncached GOROOT: /opt/tinygo/root\nbuild tags: tinygo gc.conservative\n"

func newTestSelector(t *testing.T, runner *fakeRunner, prompter Prompter) (*Selector, *state.Store, *editor.Store, *statusRecorder) {
	t.Helper()
	mock := fs.NewMock()
	states := state.NewStore(mock)
	settings := editor.NewStore(mock)
	status := &statusRecorder{}
	return New(runner, "tinygo", states, settings, prompter, status, root), states, settings, status
}

func TestSelectEndToEnd(t *testing.T) {
	runner := &fakeRunner{targets: "a\nb\nc\n", info: map[string]string{"c": infoC}}
	prompter := &fakePrompter{choice: "c"}

	sel, states, settings, status := newTestSelector(t, runner, prompter)
	if err := states.SaveHistory([]string{"c", "x"}); err != nil {
		t.Fatalf("SaveHistory() error = %v", err)
	}

	if err := sel.Select(); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	// The prompt saw the history-ordered catalog.
	wantCatalog := []string{"c", "-", "a", "b"}
	if !slices.Equal(prompter.seen, wantCatalog) {
		t.Errorf("prompt options = %v, want %v", prompter.seen, wantCatalog)
	}

	// "c" was already at the front, so the cached catalog is unchanged.
	got, err := sel.Catalog()
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	if !slices.Equal(got, wantCatalog) {
		t.Errorf("catalog after commit = %v, want %v", got, wantCatalog)
	}

	active, err := states.ActiveTarget(root)
	if err != nil {
		t.Fatalf("ActiveTarget() error = %v", err)
	}
	if active != "c" {
		t.Errorf("active target = %q, want c", active)
	}

	history, err := states.History()
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) == 0 || history[0] != "c" {
		t.Errorf("history = %v, want c at the front", history)
	}

	applied, err := settings.Get(root)
	if err != nil {
		t.Fatalf("settings Get() error = %v", err)
	}
	env := applied["gopls"].(map[string]any)["env"].(map[string]any)
	if env["GOFLAGS"] != "-tags=tinygo,gc.conservative" {
		t.Errorf("GOFLAGS = %v, want -tags=tinygo,gc.conservative", env["GOFLAGS"])
	}

	if !slices.Equal(status.refreshed, []string{"c"}) {
		t.Errorf("status refreshed with %v, want [c]", status.refreshed)
	}
}

func TestSelectNewTargetMovesToFront(t *testing.T) {
	runner := &fakeRunner{targets: "a\nb\nc\n", info: map[string]string{"b": infoC}}
	prompter := &fakePrompter{choice: "b"}

	sel, states, _, _ := newTestSelector(t, runner, prompter)

	if err := sel.Select(); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	got, err := sel.Catalog()
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	want := []string{"b", "-", "a", "c"}
	if !slices.Equal(got, want) {
		t.Errorf("catalog after commit = %v, want %v", got, want)
	}

	history, err := states.History()
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if !slices.Equal(history, []string{"b"}) {
		t.Errorf("history = %v, want [b]", history)
	}
}

func TestSelectCancelledWritesNothing(t *testing.T) {
	runner := &fakeRunner{targets: "a\nb\n"}
	prompter := &fakePrompter{err: ErrCancelled}

	sel, states, settings, status := newTestSelector(t, runner, prompter)

	if err := sel.Select(); err != nil {
		t.Fatalf("Select() after cancel error = %v, want nil", err)
	}

	active, err := states.ActiveTarget(root)
	if err != nil {
		t.Fatalf("ActiveTarget() error = %v", err)
	}
	if active != toolchain.DefaultTarget {
		t.Errorf("active target = %q after cancel, want default", active)
	}

	applied, err := settings.Get(root)
	if err != nil {
		t.Fatalf("settings Get() error = %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("settings written after cancel: %v", applied)
	}
	if len(status.refreshed) != 0 {
		t.Errorf("status refreshed after cancel: %v", status.refreshed)
	}
}

func TestSelectResolveFailureWritesNothing(t *testing.T) {
	// "a" resolves with no build tags line, which must abort the commit.
	runner := &fakeRunner{targets: "a\n", info: map[string]string{"a": "cached GOROOT: /root\n"}}
	prompter := &fakePrompter{choice: "a"}

	sel, states, settings, _ := newTestSelector(t, runner, prompter)

	err := sel.Select()
	if err == nil {
		t.Fatal("Select() error = nil, want resolution failure")
	}
	if !strings.Contains(err.Error(), "build tags") {
		t.Errorf("Select() error = %v, want build-tags message", err)
	}

	history, err := states.History()
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history written after failed resolution: %v", history)
	}

	applied, err := settings.Get(root)
	if err != nil {
		t.Fatalf("settings Get() error = %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("settings written after failed resolution: %v", applied)
	}
}

func TestSelectDefaultTargetClearsEnv(t *testing.T) {
	runner := &fakeRunner{targets: "a\n", info: map[string]string{"a": infoC}}

	sel, states, settings, _ := newTestSelector(t, runner, &fakePrompter{choice: "a"})

	if err := sel.Select(); err != nil {
		t.Fatalf("Select(a) error = %v", err)
	}
	if err := sel.SelectTarget(toolchain.DefaultTarget); err != nil {
		t.Fatalf("SelectTarget(-) error = %v", err)
	}

	active, err := states.ActiveTarget(root)
	if err != nil {
		t.Fatalf("ActiveTarget() error = %v", err)
	}
	if active != toolchain.DefaultTarget {
		t.Errorf("active target = %q, want default", active)
	}

	applied, err := settings.Get(root)
	if err != nil {
		t.Fatalf("settings Get() error = %v", err)
	}
	if _, ok := applied["gopls"]; ok {
		t.Errorf("gopls env not cleared for default target: %v", applied)
	}
}

func TestSelectTargetUnknownSurfacesToolchainError(t *testing.T) {
	runner := &fakeRunner{targets: "a\n", info: map[string]string{}}

	sel, _, _, _ := newTestSelector(t, runner, &fakePrompter{})

	err := sel.SelectTarget("nope")
	if err == nil {
		t.Fatal("SelectTarget(nope) error = nil, want toolchain failure")
	}
	if !strings.Contains(err.Error(), "unknown target") {
		t.Errorf("SelectTarget() error = %v, want underlying toolchain text", err)
	}
}

func TestCatalogIsCachedPerSession(t *testing.T) {
	runner := &fakeRunner{targets: "a\nb\n"}

	sel, _, _, _ := newTestSelector(t, runner, &fakePrompter{err: ErrCancelled})

	if _, err := sel.Catalog(); err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	if _, err := sel.Catalog(); err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	if runner.calls != 1 {
		t.Errorf("toolchain invoked %d times, want 1 (catalog cached)", runner.calls)
	}
}

func TestCatalogLoadFailure(t *testing.T) {
	mock := fs.NewMock()
	states := state.NewStore(mock)
	runner := &failingRunner{}
	sel := New(runner, "tinygo", states, editor.NewStore(mock), &fakePrompter{}, &statusRecorder{}, root)

	if err := sel.Select(); err == nil {
		t.Fatal("Select() error = nil, want catalog load failure")
	}
}

type failingRunner struct{}

func (failingRunner) Run(string, ...string) ([]byte, error) {
	return nil, errors.New("exec: \"tinygo\": executable file not found in $PATH")
}

func TestLabel(t *testing.T) {
	if got := Label("TinyGo", toolchain.DefaultTarget); got != "TinyGo" {
		t.Errorf("Label(-) = %q, want TinyGo", got)
	}
	if got := Label("TinyGo", "wioterminal"); got != "TinyGo: wioterminal" {
		t.Errorf("Label(wioterminal) = %q, want TinyGo: wioterminal", got)
	}
}
