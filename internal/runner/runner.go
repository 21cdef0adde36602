// Package runner executes shell command lines for the collaborating
// components. The contract is deliberately small: run a command, get the
// exit code and, when requested, the combined output. Everything podbay
// delegates to the container engine and the service manager flows through
// this boundary.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"podbay/pkg/logging"
)

// Result holds the outcome of a completed command.
type Result struct {
	// ExitCode is the command's exit status. 0 means success.
	ExitCode int
	// Output is the combined stdout and stderr, only populated when the
	// command was run with capture enabled.
	Output string
}

// Options controls how a command is run.
type Options struct {
	// Capture suppresses the command's output on the live terminal and
	// collects stdout and stderr combined into Result.Output instead.
	Capture bool
	// ValidExitCodes, when non-empty, is the set of exit codes treated as
	// success. Any other exit code produces an *ExitError.
	ValidExitCodes []int
}

// ExitError reports a command that finished with an exit code outside the
// valid set.
type ExitError struct {
	// Command is the command line that was executed.
	Command string
	// ExitCode is the code the command exited with.
	ExitCode int
	// Output is the captured combined output, empty when not captured.
	Output string
}

func (e *ExitError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%q exited with code %d:\n   %s", e.Command, e.ExitCode, strings.TrimSpace(e.Output))
	}
	return fmt.Sprintf("%q exited with code %d", e.Command, e.ExitCode)
}

// Runner runs a command line and reports its result. Implementations must
// be safe for sequential reuse; podbay never runs two commands at once on
// the same terminal.
type Runner interface {
	Run(ctx context.Context, command string, opts Options) (Result, error)
}

// ShellRunner runs command lines through the POSIX shell, inheriting the
// process's standard streams unless capture is requested.
type ShellRunner struct {
	// Shell is the shell binary, "sh" when empty.
	Shell string
	// Stdin, Stdout, Stderr are the streams handed to non-captured
	// commands. The os defaults apply when nil.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a ShellRunner wired to the process's standard streams.
func New() *ShellRunner {
	return &ShellRunner{}
}

// Run executes the command line and returns its result. A non-zero exit
// code alone is not an error; it becomes one only when opts.ValidExitCodes
// is set and does not include the code. Failures to start the command at
// all (shell missing, context canceled) are returned as ordinary errors.
func (r *ShellRunner) Run(ctx context.Context, command string, opts Options) (Result, error) {
	shell := r.Shell
	if shell == "" {
		shell = "sh"
	}

	logging.Debug("Runner", "running %q (capture=%t)", command, opts.Capture)

	cmd := exec.CommandContext(ctx, shell, "-c", command)

	var result Result
	if opts.Capture {
		out, err := cmd.CombinedOutput()
		result.Output = string(out)
		if err != nil {
			exitCode, ok := exitCodeOf(err)
			if !ok {
				return result, fmt.Errorf("running %q: %w", command, err)
			}
			result.ExitCode = exitCode
		}
	} else {
		cmd.Stdin = r.Stdin
		if cmd.Stdin == nil {
			cmd.Stdin = os.Stdin
		}
		cmd.Stdout = r.Stdout
		if cmd.Stdout == nil {
			cmd.Stdout = os.Stdout
		}
		cmd.Stderr = r.Stderr
		if cmd.Stderr == nil {
			cmd.Stderr = os.Stderr
		}
		if err := cmd.Run(); err != nil {
			exitCode, ok := exitCodeOf(err)
			if !ok {
				return result, fmt.Errorf("running %q: %w", command, err)
			}
			result.ExitCode = exitCode
		}
	}

	if len(opts.ValidExitCodes) > 0 && !containsCode(opts.ValidExitCodes, result.ExitCode) {
		return result, &ExitError{
			Command:  command,
			ExitCode: result.ExitCode,
			Output:   result.Output,
		}
	}
	return result, nil
}

// exitCodeOf extracts the exit code from an error returned by exec. The
// second return is false when the command never ran.
func exitCodeOf(err error) (int, bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}

func containsCode(codes []int, code int) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
