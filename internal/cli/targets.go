package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinygo-tools/targetctl/internal/catalog"
	"github.com/tinygo-tools/targetctl/internal/toolchain"
)

// newTargetsCmd creates the targets command.
func newTargetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "targets",
		Short:   "List available TinyGo targets",
		Long:    `List the targets the toolchain offers, recently used ones first. The active target is marked with an asterisk.`,
		Aliases: []string{"list", "ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := a.stateStore.History()
			if err != nil {
				return err
			}
			targets, err := catalog.Load(a.runner(), a.config.Toolchain, history)
			if err != nil {
				return err
			}

			active := toolchain.DefaultTarget
			if root, err := a.workspaceRoot(); err == nil {
				active, err = a.stateStore.ActiveTarget(root)
				if err != nil {
					return err
				}
			}

			for _, target := range targets {
				name := target
				if target == toolchain.DefaultTarget {
					name = "- (host defaults)"
				}
				mark := " "
				if target == active {
					mark = "*"
				}
				fmt.Printf("%s %s\n", mark, name)
			}
			return nil
		},
	}
}
