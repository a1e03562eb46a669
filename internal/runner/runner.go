package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Exit codes reported by the wrapper process. Every non-zero linter exit,
// whatever its cause, collapses to ExitFailure.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Options describes a single lint invocation.
type Options struct {
	Dir    string   // project directory, becomes the child's working directory
	Linter string   // linter command, resolved against Env's PATH
	Args   []string // arguments placed before the implicit target directory
	Env    []string // nil inherits the parent environment
	Stdout io.Writer
	Stderr io.Writer
}

// Run invokes the linter synchronously with its stdout/stderr passed through
// unmodified and returns the child's exit code. The working directory is
// scoped to the child via exec.Cmd.Dir; the wrapper's own cwd never changes.
func Run(opts Options) (int, error) {
	info, err := os.Stat(opts.Dir)
	if err != nil {
		return -1, fmt.Errorf("directory does not exist: %s", opts.Dir)
	}
	if !info.IsDir() {
		return -1, fmt.Errorf("not a directory: %s", opts.Dir)
	}

	cmd := exec.Command(opts.Linter, opts.Args...)
	cmd.Dir = opts.Dir
	cmd.Env = opts.Env
	cmd.Stdin = os.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("failed to run %s: %w", opts.Linter, err)
	}

	return 0, nil
}

// MapExitCode translates a linter exit code into the wrapper's own exit
// status: zero stays zero, everything else becomes exactly ExitFailure.
func MapExitCode(code int) int {
	if code == 0 {
		return ExitSuccess
	}
	return ExitFailure
}

// IsNotFound reports whether err came from the linter binary not being
// resolvable on the execution PATH.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
