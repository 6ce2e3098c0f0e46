package toolchain

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
)

// Runner abstracts toolchain command execution so the parsing and
// orchestration layers can be tested without a TinyGo installation.
type Runner interface {
	Run(name string, args ...string) ([]byte, error)
}

// ExecRunner executes toolchain commands on the local host.
type ExecRunner struct {
	log zerolog.Logger
}

// NewExecRunner returns an ExecRunner that traces invocations to log.
func NewExecRunner(log zerolog.Logger) *ExecRunner {
	return &ExecRunner{log: log}
}

// Run executes the command and returns its standard output. On failure the
// error carries the quoted command line and any stderr text the command
// produced, so it can be surfaced to the user verbatim.
func (r *ExecRunner) Run(name string, args ...string) ([]byte, error) {
	cmdline := shellquote.Join(append([]string{name}, args...)...)
	r.log.Debug().Str("cmd", cmdline).Msg("running toolchain command")

	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("run %s: %w: %s", cmdline, err, msg)
		}
		return nil, fmt.Errorf("run %s: %w", cmdline, err)
	}
	return nil, fmt.Errorf("run %s: %w", cmdline, err)
}
