package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	xterm "golang.org/x/term"

	"podbay/internal/app"
	"podbay/internal/argstore"
	"podbay/internal/config"
	"podbay/internal/console"
	"podbay/internal/engine"
	"podbay/internal/runner"
	"podbay/internal/service"
	"podbay/internal/sudo"
	"podbay/internal/term"
	"podbay/pkg/logging"
)

// session wires the collaborators one invocation needs and owns their
// teardown: the sudo keepalive and, in menu mode, the argument file
// watcher.
type session struct {
	app     *app.App
	cancel  context.CancelFunc
	watcher *argstore.Watcher
}

// newSession loads the configuration, acquires sudo credentials and
// assembles the application. Interactive sessions additionally watch the
// argument file so hand edits get validated while the menu is open.
func newSession(interactive bool) (*session, error) {
	level := logging.LevelInfo
	if debugLog {
		level = logging.LevelDebug
	}
	logging.Init(level, os.Stderr)

	path := configPath
	if path == "" {
		path = config.GetDefaultConfigPathOrPanic()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	tm := term.New()
	sh := runner.New()

	var engineOpts []engine.Option
	if xterm.IsTerminal(int(os.Stdout.Fd())) {
		engineOpts = append(engineOpts, engine.WithSpinner())
	}

	store := argstore.New(cfg.Args.File)

	ctx, cancel := context.WithCancel(context.Background())
	keeper := sudo.New(sh, cfg.Sudo.RefreshInterval.Std())
	if err := keeper.Acquire(ctx); err != nil {
		cancel()
		return nil, err
	}
	keeper.Start(ctx)

	s := &session{
		app: app.New(app.Options{
			Config:      &cfg,
			Terminal:    tm,
			Engine:      engine.New(sh, cfg.Container, engineOpts...),
			Service:     service.New(sh, cfg.Service, cfg.Container.Name),
			Args:        store,
			Runner:      sh,
			Version:     rootCmd.Version,
			Interactive: interactive,
		}),
		cancel: cancel,
	}

	if interactive {
		watcher, err := argstore.NewWatcher(argstore.WatcherConfig{
			Path: cfg.Args.File,
			OnChange: argFileChanged(store, tm),
		})
		if err == nil {
			if startErr := watcher.Start(); startErr == nil {
				s.watcher = watcher
			}
		}
	}

	return s, nil
}

// argFileChanged validates the argument file after a change on disk.
// Problems go to the log and, decorated, to the operator's terminal so a
// bad hand edit is visible without waiting for the next start.
func argFileChanged(store *argstore.Store, tm *term.Terminal) func() {
	return func() {
		if err := store.Validate(); err != nil {
			logging.Warn("ArgStore", "argument file changed and is invalid: %v", err)
			console.Error(console.Lines{T: tm},
				fmt.Sprintf("Argument file %s changed and is invalid: %v", store.Path(), err), true)
		}
	}
}

func (s *session) Close() {
	if s.watcher != nil {
		_ = s.watcher.Stop()
	}
	s.cancel()
}

// runMenu is the root command's behavior: the interactive action loop.
func runMenu(cmd *cobra.Command, args []string) error {
	s, err := newSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.app.RunMenu(cmd.Context())
}

// runScripted executes one operation non-interactively, stopping an
// active unit or container first.
func runScripted(cmd *cobra.Command, op func(ctx context.Context, a *app.App) error) error {
	s, err := newSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if err := s.app.StopBackground(ctx); err != nil {
		return err
	}
	return op(ctx, s.app)
}
