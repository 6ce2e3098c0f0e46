package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newSelectCmd creates the select command.
func newSelectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select [target]",
		Short: "Select the TinyGo target for this workspace",
		Long: `Select a TinyGo cross-compilation target and apply its environment to the
workspace's gopls configuration.

Without an argument, targets are offered interactively with recently used
ones first. Pass "-" to clear the override and return to host defaults.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := a.newSelector()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				if err := sel.SelectTarget(args[0]); err != nil {
					return fmt.Errorf("failed to select target: %w", err)
				}
				return nil
			}

			if err := sel.Select(); err != nil {
				return fmt.Errorf("failed to select target: %w", err)
			}
			return nil
		},
	}
}
