package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tinygo-tools/targetctl/internal/toolchain"
)

// newPreviewCmd creates the preview command.
func newPreviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview [package]",
		Short: "Build a package for the active target and show the size report",
		Long: `Compile a package with the active target's environment and stream the
toolchain's size report. The binary itself is written to a temporary file
and discarded. Defaults to the package in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.workspaceRoot()
			if err != nil {
				return err
			}
			active, err := a.stateStore.ActiveTarget(root)
			if err != nil {
				return err
			}

			pkg := "."
			if len(args) == 1 {
				pkg = args[0]
			}

			out := filepath.Join(os.TempDir(), "targetctl-preview")
			defer os.Remove(out)

			buildArgs := []string{"build", "-size", "short", "-o", out}
			if active != toolchain.DefaultTarget {
				buildArgs = append(buildArgs, "-target", active)
			}
			buildArgs = append(buildArgs, pkg)

			a.log.Debug().Strs("args", buildArgs).Msg("running preview build")

			// Streamed straight through: the toolchain's output is the preview.
			build := exec.Command(a.config.Toolchain, buildArgs...)
			build.Stdout = os.Stdout
			build.Stderr = os.Stderr
			if err := build.Run(); err != nil {
				return fmt.Errorf("preview build failed: %w", err)
			}
			return nil
		},
	}
}
