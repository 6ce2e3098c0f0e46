package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/modfile"

	"github.com/tinygo-tools/targetctl/internal/config"
	"github.com/tinygo-tools/targetctl/internal/editor"
	"github.com/tinygo-tools/targetctl/internal/selector"
)

// envOrder fixes the display order of the managed environment entries.
var envOrder = []string{"GOOS", "GOARCH", "GOROOT", "GOFLAGS"}

// newStatusCmd creates the status command.
func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active target for this workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.workspaceRoot()
			if err != nil {
				return err
			}

			active, err := a.stateStore.ActiveTarget(root)
			if err != nil {
				return err
			}

			fmt.Println(selector.Label(a.config.StatusName, active))
			if module := workspaceModule(a, root); module != "" {
				fmt.Printf("Module: %s\n", module)
			}

			settings, err := editor.NewStore(a.fs).Get(root)
			if err != nil {
				return err
			}
			env := goplsEnv(settings)
			if len(env) == 0 {
				fmt.Println("No environment overrides applied.")
				return nil
			}

			fmt.Println("Applied gopls environment:")
			for _, name := range envOrder {
				if value, ok := env[name]; ok {
					fmt.Printf("  %s=%s\n", name, value)
				}
			}
			return nil
		},
	}
}

// workspaceModule returns the module path declared by the workspace go.mod,
// or empty when it cannot be read.
func workspaceModule(a *app, root string) string {
	data, err := a.fs.ReadFile(a.fs.Join(root, config.WorkspaceMarker))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

// goplsEnv extracts the managed env entries from a settings mapping.
func goplsEnv(settings map[string]any) map[string]string {
	gopls, ok := settings["gopls"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := gopls["env"].(map[string]any)
	if !ok {
		return nil
	}

	env := make(map[string]string)
	for _, name := range envOrder {
		if value, ok := raw[name].(string); ok {
			env[name] = value
		}
	}
	return env
}
