// Package app wires the engine, the service manager, the argument store
// and the console into the operations the menu and the subcommands share.
package app

import (
	"context"
	"fmt"
	"strings"

	"podbay/internal/argstore"
	"podbay/internal/config"
	"podbay/internal/console"
	"podbay/internal/engine"
	"podbay/internal/runner"
	"podbay/internal/service"
	"podbay/internal/term"
	"podbay/pkg/logging"
)

// App carries every collaborator an operation may need. Interactive mode
// enables prompts and confirmations; scripted invocations take the safe
// defaults instead.
type App struct {
	cfg         *config.Config
	term        *term.Terminal
	engine      *engine.Engine
	service     *service.Manager
	args        *argstore.Store
	runner      runner.Runner
	version     string
	interactive bool
}

// Options collects the collaborators for New.
type Options struct {
	Config      *config.Config
	Terminal    *term.Terminal
	Engine      *engine.Engine
	Service     *service.Manager
	Args        *argstore.Store
	Runner      runner.Runner
	Version     string
	Interactive bool
}

// New assembles an App from its collaborators.
func New(opts Options) *App {
	return &App{
		cfg:         opts.Config,
		term:        opts.Terminal,
		engine:      opts.Engine,
		service:     opts.Service,
		args:        opts.Args,
		runner:      opts.Runner,
		version:     opts.Version,
		interactive: opts.Interactive,
	}
}

func (a *App) lines() console.Lines {
	return console.Lines{T: a.term}
}

// ServiceActive implements console.Guard.
func (a *App) ServiceActive(ctx context.Context) bool {
	return a.service.IsActive(ctx)
}

// ContainerRunning implements console.Guard.
func (a *App) ContainerRunning(ctx context.Context) bool {
	return a.engine.ContainerRunning(ctx)
}

// StopService implements console.Guard.
func (a *App) StopService(ctx context.Context) error {
	return a.service.Stop(ctx)
}

// StopContainer implements console.Guard. Removing the container also
// prunes leftover engine state.
func (a *App) StopContainer(ctx context.Context) error {
	return a.clearContainer(ctx)
}

// StopBackground stops an active unit or container before a scripted
// operation runs, mirroring what the menu guard asks interactively.
func (a *App) StopBackground(ctx context.Context) error {
	if a.service.IsActive(ctx) {
		if err := a.service.Stop(ctx); err != nil {
			return err
		}
	}
	if a.engine.ContainerRunning(ctx) {
		if err := a.clearContainer(ctx); err != nil {
			return err
		}
	}
	return nil
}

// clearImage removes the image and prunes, as done before building or
// after a failed build or load.
func (a *App) clearImage(ctx context.Context) error {
	if err := a.engine.RemoveImage(ctx); err != nil {
		return err
	}
	return a.engine.Prune(ctx)
}

// clearContainer removes the container and prunes, as done after building
// or before starting.
func (a *App) clearContainer(ctx context.Context) error {
	if err := a.engine.RemoveContainer(ctx); err != nil {
		return err
	}
	return a.engine.Prune(ctx)
}

// prepareStart loads the extra run arguments and clears stale container
// state. Argument file problems surface decorated before the error
// returns, so the operator sees what to fix in the file.
func (a *App) prepareStart(ctx context.Context) ([]string, error) {
	extraArgs, err := a.args.Load()
	if err != nil {
		console.Error(a.lines(), fmt.Sprintf("Could not use %s: %v", a.args.Path(), err), true)
		return nil, err
	}

	if err := a.clearContainer(ctx); err != nil {
		return nil, err
	}

	logging.Debug("App", "run arguments: %s", strings.Join(extraArgs, " "))
	return extraArgs, nil
}
