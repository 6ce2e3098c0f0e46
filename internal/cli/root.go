package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/tinygo-tools/targetctl/internal/config"
	"github.com/tinygo-tools/targetctl/internal/editor"
	"github.com/tinygo-tools/targetctl/internal/fs"
	"github.com/tinygo-tools/targetctl/internal/selector"
	"github.com/tinygo-tools/targetctl/internal/state"
	"github.com/tinygo-tools/targetctl/internal/toolchain"
)

var (
	// version is set via ldflags during build: -ldflags "-X github.com/tinygo-tools/targetctl/internal/cli.version=v1.0.0"
	version = "v0.0.0"
	cfgFile string
	verbose bool
)

func init() {
	if !semver.IsValid(version) {
		panic(fmt.Sprintf("invalid version set via ldflags: %q (must be valid semver)", version))
	}
}

// app represents the CLI application with its dependencies.
type app struct {
	fs          fs.System
	config      *config.Config
	configStore *config.Store
	stateStore  *state.Store
	log         zerolog.Logger
}

// newApp creates a new app instance.
func newApp() *app {
	fsys := fs.New()
	return &app{
		fs:          fsys,
		configStore: config.NewStore(fsys),
		stateStore:  state.NewStore(fsys),
		log:         zerolog.Nop(),
	}
}

// runner returns the toolchain runner, tracing invocations when --verbose
// is set.
func (a *app) runner() toolchain.Runner {
	return toolchain.NewExecRunner(a.log)
}

// workspaceRoot returns the enclosing workspace root.
func (a *app) workspaceRoot() (string, error) {
	root, err := a.configStore.FindWorkspaceRoot()
	if err != nil {
		return "", fmt.Errorf("not inside a Go workspace: %w", err)
	}
	return root, nil
}

// newSelector builds the selection orchestrator for the current workspace.
func (a *app) newSelector() (*selector.Selector, error) {
	root, err := a.workspaceRoot()
	if err != nil {
		return nil, err
	}
	status := &selector.ConsoleStatus{Out: os.Stdout, Name: a.config.StatusName}
	return selector.New(a.runner(), a.config.Toolchain, a.stateStore, editor.NewStore(a.fs), &surveyPrompter{}, status, root), nil
}

// newRootCmd creates the root command for targetctl.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "targetctl",
		Short:   "TinyGo target selector",
		Long:    `Targetctl selects a TinyGo cross-compilation target for the current workspace and applies its environment (GOOS, GOARCH, GOROOT, GOFLAGS) to the gopls configuration.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				a.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
					With().Timestamp().Logger().Level(zerolog.DebugLevel)
			}

			cfg, err := a.configStore.Load(cfgFile)
			if err != nil {
				a.log.Debug().Err(err).Msg("using default configuration")
				cfg = config.Default()
			}
			a.config = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default ~/.config/targetctl/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable diagnostic logging")

	rootCmd.AddCommand(newSelectCmd(a))
	rootCmd.AddCommand(newTargetsCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newEnvCmd(a))
	rootCmd.AddCommand(newPreviewCmd(a))

	return rootCmd
}

// Execute runs the CLI application.
func Execute() {
	a := newApp()
	rootCmd := newRootCmd(a)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
