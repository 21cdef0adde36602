// Package runnertest provides a scripted runner for tests that exercise
// command-driven components without touching the host.
package runnertest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"podbay/internal/runner"
)

// Response is what the fake returns for a matching command.
type Response struct {
	Result runner.Result
	Err    error
}

// Fake records every command it is asked to run and answers from a script.
// Commands are matched by prefix so callers do not have to spell out full
// argument lists. Unmatched commands succeed with empty output.
type Fake struct {
	mu        sync.Mutex
	responses map[string]Response
	commands  []string
}

// NewFake returns an empty fake runner.
func NewFake() *Fake {
	return &Fake{
		responses: make(map[string]Response),
	}
}

// Respond registers a response for commands starting with the given prefix.
func (f *Fake) Respond(prefix string, result runner.Result, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[prefix] = Response{Result: result, Err: err}
}

// RespondOutput registers a successful captured-output response.
func (f *Fake) RespondOutput(prefix, output string) {
	f.Respond(prefix, runner.Result{Output: output}, nil)
}

// Fail registers a failing response with the given exit code.
func (f *Fake) Fail(prefix string, exitCode int) {
	f.Respond(prefix, runner.Result{ExitCode: exitCode}, &runner.ExitError{
		Command:  prefix,
		ExitCode: exitCode,
	})
}

// Run implements runner.Runner.
func (f *Fake) Run(ctx context.Context, command string, opts runner.Options) (runner.Result, error) {
	if err := ctx.Err(); err != nil {
		return runner.Result{}, fmt.Errorf("running %q: %w", command, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, command)

	var (
		best  string
		found bool
	)
	for prefix := range f.responses {
		if strings.HasPrefix(command, prefix) && len(prefix) > len(best) {
			best = prefix
			found = true
		}
	}
	if !found {
		return runner.Result{}, nil
	}

	resp := f.responses[best]
	return resp.Result, resp.Err
}

// Commands returns every command run so far, in order.
func (f *Fake) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

// Ran reports whether some executed command starts with the given prefix.
func (f *Fake) Ran(prefix string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, command := range f.commands {
		if strings.HasPrefix(command, prefix) {
			return true
		}
	}
	return false
}
