package selector

import (
	"fmt"
	"io"

	"github.com/tinygo-tools/targetctl/internal/toolchain"
)

// Label formats the status text for the active target: the bare toolchain
// name when no target is applied, "name: target" otherwise.
func Label(name, active string) string {
	if active == toolchain.DefaultTarget {
		return name
	}
	return fmt.Sprintf("%s: %s", name, active)
}

// ConsoleStatus prints the status label after each commit.
type ConsoleStatus struct {
	Out  io.Writer
	Name string
}

func (c *ConsoleStatus) Refresh(active string) {
	fmt.Fprintln(c.Out, Label(c.Name, active))
}
