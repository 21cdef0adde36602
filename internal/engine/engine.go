// Package engine drives the container engine for a single named container:
// image build/load/save, container run/create/remove, environment prune and
// reset, and the debug probes operators paste into issue reports. Every
// operation goes through the runner contract, so tests script the command
// lines instead of touching podman.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	"podbay/internal/config"
	"podbay/internal/runner"
	"podbay/pkg/logging"
)

// Engine wraps podman invocations for one configured container.
type Engine struct {
	runner runner.Runner
	cfg    config.ContainerConfig

	// interactive enables progress spinners on long captured operations.
	interactive bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithSpinner enables progress spinners on long operations. Only set this
// when stdout is a terminal.
func WithSpinner() Option {
	return func(e *Engine) {
		e.interactive = true
	}
}

// New creates an engine over the given runner and container configuration.
func New(r runner.Runner, cfg config.ContainerConfig, opts ...Option) *Engine {
	e := &Engine{
		runner: r,
		cfg:    cfg,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// quote wraps s in single quotes for safe interpolation into a shell
// command line.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// machineArch maps the Go architecture name onto the kernel's machine
// name, which is what containerfile suffixes use.
func machineArch() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	default:
		return runtime.GOARCH
	}
}

// captured runs a command with captured output, showing a spinner while it
// works when the engine is interactive.
func (e *Engine) captured(ctx context.Context, message, command string, validExitCodes ...int) (runner.Result, error) {
	if e.interactive {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " " + message
		s.Start()
		defer s.Stop()
	}

	return e.runner.Run(ctx, command, runner.Options{
		Capture:        true,
		ValidExitCodes: validExitCodes,
	})
}

// GraphRoot discovers the engine's image storage root. The info call runs
// twice because the first call may fail right after the graph root was
// changed or removed.
func (e *Engine) GraphRoot(ctx context.Context) (string, error) {
	result, err := e.runner.Run(ctx, "sudo podman info >/dev/null 2>&1; sudo podman info --format=json", runner.Options{
		Capture:        true,
		ValidExitCodes: []int{0},
	})
	if err != nil {
		return "", fmt.Errorf("querying engine info: %w", err)
	}

	var info struct {
		Store struct {
			GraphRoot string `json:"graphRoot"`
		} `json:"store"`
	}
	if err := json.Unmarshal([]byte(result.Output), &info); err != nil {
		return "", fmt.Errorf("parsing engine info: %w", err)
	}

	root := strings.TrimSpace(info.Store.GraphRoot)
	if root == "" {
		return "", fmt.Errorf("engine info did not report a graph root")
	}
	return root, nil
}

// Info returns the engine's full info report as a JSON string.
func (e *Engine) Info(ctx context.Context) (string, error) {
	result, err := e.runner.Run(ctx, "sudo podman info >/dev/null 2>&1; sudo podman info --format=json", runner.Options{
		Capture: true,
	})
	if err != nil {
		return "", fmt.Errorf("querying engine info: %w", err)
	}
	return strings.TrimSpace(result.Output), nil
}

// MountInfo returns findmnt's JSON view of the filesystem holding the
// given path.
func (e *Engine) MountInfo(ctx context.Context, target string) (string, error) {
	result, err := e.runner.Run(ctx, fmt.Sprintf("sudo findmnt --json --all --target %s", quote(target)), runner.Options{
		Capture: true,
	})
	if err != nil {
		return "", fmt.Errorf("querying mount info for %s: %w", target, err)
	}
	return strings.TrimSpace(result.Output), nil
}

// Build builds the image from the architecture-specific containerfile,
// streaming build output to the terminal. TMPDIR points at the graph root
// so large build layers never fill /tmp.
func (e *Engine) Build(ctx context.Context) error {
	graphRoot, err := e.GraphRoot(ctx)
	if err != nil {
		return err
	}

	command := fmt.Sprintf(
		"sudo TMPDIR=%s podman build --force-rm --no-cache --pull=always --tag %s "+
			"--build-arg UID=%d --build-arg GID=%d --build-arg DISPLAY=$DISPLAY "+
			"-f %s%s %s",
		quote(graphRoot), e.cfg.ImageRef(),
		os.Getuid(), os.Getgid(),
		e.cfg.ContainerfilePrefix, machineArch(), quote(e.cfg.ContextDir),
	)

	logging.Info("Engine", "building image %s", e.cfg.ImageRef())
	if _, err := e.runner.Run(ctx, command, runner.Options{ValidExitCodes: []int{0}}); err != nil {
		return fmt.Errorf("building image %s: %w", e.cfg.ImageRef(), err)
	}
	return nil
}

// Load imports an image archive into the engine's storage.
func (e *Engine) Load(ctx context.Context, path string) error {
	command := fmt.Sprintf("sudo podman load --input %s", quote(path))
	if _, err := e.runner.Run(ctx, command, runner.Options{ValidExitCodes: []int{0}}); err != nil {
		return fmt.Errorf("loading image from %s: %w", path, err)
	}
	return nil
}

// Save exports the image to an archive and hands ownership back to the
// invoking user, since podman writes the file as root.
func (e *Engine) Save(ctx context.Context, path string) error {
	command := fmt.Sprintf("sudo podman save --output %s %s", quote(path), e.cfg.ImageRef())
	if _, err := e.runner.Run(ctx, command, runner.Options{ValidExitCodes: []int{0}}); err != nil {
		return fmt.Errorf("saving image to %s: %w", path, err)
	}

	chown := fmt.Sprintf("sudo chown $USER:$USER %s", quote(path))
	if _, err := e.captured(ctx, "Fixing archive ownership...", chown); err != nil {
		logging.Warn("Engine", "could not chown %s: %v", path, err)
	}
	return nil
}

// runFlags returns the shared flag set of Run and Create.
func (e *Engine) runFlags(extraArgs []string) string {
	parts := []string{
		"--rm", "--name", e.cfg.Name,
		"--privileged", "--network='host'", "--ipc='host'", "--systemd='true'",
		fmt.Sprintf("--volume=%s:/entrypoint.sh", e.cfg.Entrypoint),
		"--volume=/lib/modules:/lib/modules:ro",
	}
	parts = append(parts, extraArgs...)
	return strings.Join(parts, " ")
}

// Run starts the container in the foreground with an interactive terminal.
func (e *Engine) Run(ctx context.Context, extraArgs []string) error {
	command := fmt.Sprintf("sudo podman run -i -t %s %s", e.runFlags(extraArgs), e.cfg.ImageRef())
	if _, err := e.runner.Run(ctx, command, runner.Options{}); err != nil {
		return fmt.Errorf("running container %s: %w", e.cfg.Name, err)
	}
	return nil
}

// Create creates the container without starting it, as needed for systemd
// unit generation.
func (e *Engine) Create(ctx context.Context, extraArgs []string) error {
	command := fmt.Sprintf("sudo podman create -t %s %s", e.runFlags(extraArgs), e.cfg.ImageRef())
	if _, err := e.captured(ctx, "Creating container...", command, 0); err != nil {
		return fmt.Errorf("creating container %s: %w", e.cfg.Name, err)
	}
	return nil
}

// ImageExists reports whether the configured image is present in storage.
func (e *Engine) ImageExists(ctx context.Context) bool {
	result, err := e.runner.Run(ctx, fmt.Sprintf("sudo podman image exists %s", e.cfg.ImageRef()), runner.Options{
		Capture: true,
	})
	return err == nil && result.ExitCode == 0
}

// ContainerRunning reports whether the named container currently exists.
func (e *Engine) ContainerRunning(ctx context.Context) bool {
	result, err := e.runner.Run(ctx, fmt.Sprintf("sudo podman container inspect %s", e.cfg.Name), runner.Options{
		Capture: true,
	})
	return err == nil && result.ExitCode == 0
}

// RemoveImage removes the image. Exit codes for "no such image" count as
// success.
func (e *Engine) RemoveImage(ctx context.Context) error {
	command := fmt.Sprintf("sudo podman image rm --force %s", e.cfg.Name)
	if _, err := e.captured(ctx, "Removing image...", command, 0, 1, 2); err != nil {
		return fmt.Errorf("removing image %s: %w", e.cfg.Name, err)
	}
	return nil
}

// RemoveContainer removes the container. Exit codes for "no such
// container" count as success.
func (e *Engine) RemoveContainer(ctx context.Context) error {
	command := fmt.Sprintf("sudo podman container rm --force %s", e.cfg.Name)
	if _, err := e.captured(ctx, "Removing container...", command, 0, 1, 2); err != nil {
		return fmt.Errorf("removing container %s: %w", e.cfg.Name, err)
	}
	return nil
}

// Prune clears unused engine state (stopped containers, dangling images).
func (e *Engine) Prune(ctx context.Context) error {
	if _, err := e.captured(ctx, "Pruning engine state...", "sudo podman system prune --force", 0); err != nil {
		return fmt.Errorf("pruning engine state: %w", err)
	}
	if _, err := e.captured(ctx, "Pruning images...", "sudo podman image prune --force", 0); err != nil {
		return fmt.Errorf("pruning images: %w", err)
	}
	return nil
}

// Reset wipes the engine's storage completely: the graph root directory is
// removed and the engine state reset.
func (e *Engine) Reset(ctx context.Context) error {
	graphRoot, err := e.GraphRoot(ctx)
	if err != nil {
		return err
	}

	if _, err := e.captured(ctx, "Removing graph root...", fmt.Sprintf("sudo rm -rf %s", quote(graphRoot)), 0); err != nil {
		return fmt.Errorf("removing graph root %s: %w", graphRoot, err)
	}
	if _, err := e.captured(ctx, "Resetting engine...", "sudo podman system reset --force", 0); err != nil {
		return fmt.Errorf("resetting engine: %w", err)
	}
	return nil
}
