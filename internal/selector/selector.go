// Package selector drives the target selection flow: load the catalog,
// prompt for a choice, resolve the target's environment, and commit it to
// the workspace.
package selector

import (
	"errors"

	"github.com/tinygo-tools/targetctl/internal/catalog"
	"github.com/tinygo-tools/targetctl/internal/editor"
	"github.com/tinygo-tools/targetctl/internal/state"
	"github.com/tinygo-tools/targetctl/internal/toolchain"
)

// ErrCancelled is returned by a Prompter when the user dismisses the prompt
// without choosing. It is not an error condition for the selection flow.
var ErrCancelled = errors.New("selection cancelled")

// Prompter presents the catalog and returns the chosen target.
type Prompter interface {
	Pick(options []string) (string, error)
}

// StatusIndicator reflects the active target after each commit. Refresh has
// no return value: nothing downstream depends on it.
type StatusIndicator interface {
	Refresh(active string)
}

// Selector owns the selection flow for one workspace. It caches the target
// catalog for the lifetime of the process; all state it touches is only
// ever accessed from the single sequential flow.
type Selector struct {
	runner   toolchain.Runner
	bin      string
	states   *state.Store
	settings *editor.Store
	prompter Prompter
	status   StatusIndicator
	root     string

	catalog []string
}

// New creates a Selector for the workspace rooted at root.
func New(runner toolchain.Runner, bin string, states *state.Store, settings *editor.Store, prompter Prompter, status StatusIndicator, root string) *Selector {
	return &Selector{
		runner:   runner,
		bin:      bin,
		states:   states,
		settings: settings,
		prompter: prompter,
		status:   status,
		root:     root,
	}
}

// Catalog returns the ordered target catalog, loading it from the toolchain
// on first use and from the process cache afterwards.
func (s *Selector) Catalog() ([]string, error) {
	if s.catalog != nil {
		return s.catalog, nil
	}

	history, err := s.states.History()
	if err != nil {
		return nil, err
	}
	loaded, err := catalog.Load(s.runner, s.bin, history)
	if err != nil {
		return nil, err
	}
	s.catalog = loaded
	return s.catalog, nil
}

// Select runs one interactive selection. A cancelled prompt returns nil
// with nothing written; any failure aborts before state is touched.
func (s *Selector) Select() error {
	targets, err := s.Catalog()
	if err != nil {
		return err
	}

	choice, err := s.prompter.Pick(targets)
	if errors.Is(err, ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	return s.commit(choice)
}

// SelectTarget applies the given target without prompting. The identifier
// is not checked against the catalog: the toolchain is the authority and
// resolution fails for targets it does not know.
func (s *Selector) SelectTarget(target string) error {
	return s.commit(target)
}

// commit resolves the target and applies it: editor settings first, then
// the active-target record, the status indicator, and finally recency on
// the cached catalog and the persisted history. Resolution failure leaves
// all of them untouched.
func (s *Selector) commit(target string) error {
	md, err := toolchain.Resolve(s.runner, s.bin, target)
	if err != nil {
		return err
	}

	settings, err := s.settings.Get(s.root)
	if err != nil {
		return err
	}
	if err := s.settings.Set(s.root, editor.ApplyEnv(settings, md)); err != nil {
		return err
	}

	if err := s.states.SaveActiveTarget(s.root, target); err != nil {
		return err
	}
	s.status.Refresh(target)

	if s.catalog != nil {
		s.catalog = catalog.MoveToFront(s.catalog, target)
	}

	history, err := s.states.History()
	if err != nil {
		return err
	}
	return s.states.SaveHistory(catalog.MoveToFront(history, target))
}
