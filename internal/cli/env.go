package cli

import (
	"fmt"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/tinygo-tools/targetctl/internal/editor"
)

// newEnvCmd creates the env command.
func newEnvCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print the applied environment as export statements",
		Long: `Print the environment the active target applies, one export statement per
line, suitable for eval in a shell. Prints nothing when no target override
is applied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.workspaceRoot()
			if err != nil {
				return err
			}

			settings, err := editor.NewStore(a.fs).Get(root)
			if err != nil {
				return err
			}

			env := goplsEnv(settings)
			for _, name := range envOrder {
				if value, ok := env[name]; ok {
					fmt.Printf("export %s=%s\n", name, shellquote.Join(value))
				}
			}
			return nil
		},
	}
}
