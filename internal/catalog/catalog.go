// Package catalog builds the ordered list of selectable targets, biased
// towards recently used ones.
package catalog

import (
	"slices"

	"github.com/tinygo-tools/targetctl/internal/toolchain"
)

// MoveToFront moves the first occurrence of v to the front of seq,
// inserting it when absent. The returned slice must be used in place of
// seq. Applying it twice with the same value is a no-op after the first.
func MoveToFront(seq []string, v string) []string {
	if i := slices.Index(seq, v); i >= 0 {
		seq = slices.Delete(seq, i, i+1)
	}
	return slices.Insert(seq, 0, v)
}

// Load lists the toolchain's targets and orders them for selection: the
// default-target sentinel is prepended, then each history entry that is
// already present is moved to the front, least recent first, so the most
// recently used target ends up first. History entries the toolchain no
// longer offers are skipped; reordering never invents targets.
func Load(r toolchain.Runner, bin string, history []string) ([]string, error) {
	targets, err := toolchain.ListTargets(r, bin)
	if err != nil {
		return nil, err
	}

	targets = slices.Insert(targets, 0, toolchain.DefaultTarget)
	for i := len(history) - 1; i >= 0; i-- {
		if slices.Contains(targets, history[i]) {
			targets = MoveToFront(targets, history[i])
		}
	}
	return targets, nil
}
