// Package service manages the systemd unit wrapping the container. Unit
// installation goes through the engine's unit generator; lifecycle
// operations go through systemctl via the runner. Activity queries prefer
// a read-only D-Bus lookup and fall back to systemctl when the system bus
// is not reachable.
package service

import (
	"context"
	"errors"
	"fmt"

	sysdbus "github.com/coreos/go-systemd/v22/dbus"

	"podbay/internal/config"
	"podbay/internal/runner"
	"podbay/pkg/logging"
)

// dbusConnector opens the read-only system bus connection. Swapped in
// tests.
type dbusConnector func(ctx context.Context) (dbusConn, error)

type dbusConn interface {
	GetUnitPropertiesContext(ctx context.Context, unit string) (map[string]interface{}, error)
	Close()
}

func systemBusConnector(ctx context.Context) (dbusConn, error) {
	return sysdbus.NewSystemConnectionContext(ctx)
}

// Manager drives the systemd unit for the configured container.
type Manager struct {
	runner  runner.Runner
	cfg     config.ServiceConfig
	name    string
	connect dbusConnector
}

// Option configures a Manager.
type Option func(*Manager)

// WithoutBus skips the D-Bus query entirely, deciding activity purely via
// the systemctl exit code. For hosts where the system bus is off limits.
func WithoutBus() Option {
	return func(m *Manager) {
		m.connect = func(ctx context.Context) (dbusConn, error) {
			return nil, errors.New("system bus disabled")
		}
	}
}

// New creates a manager for the given unit and container name.
func New(r runner.Runner, cfg config.ServiceConfig, containerName string, opts ...Option) *Manager {
	m := &Manager{
		runner:  r,
		cfg:     cfg,
		name:    containerName,
		connect: systemBusConnector,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// InstallUnit generates and installs the unit file. Unit generation needs
// an existing container, so the caller creates one beforehand and removes
// it afterwards.
func (m *Manager) InstallUnit(ctx context.Context) error {
	command := fmt.Sprintf(
		"sudo podman generate systemd --name --new --restart-policy=always %s | sudo tee %s > /dev/null",
		m.name, m.cfg.UnitPath,
	)
	if _, err := m.runner.Run(ctx, command, runner.Options{Capture: true, ValidExitCodes: []int{0}}); err != nil {
		return fmt.Errorf("installing unit %s: %w", m.cfg.Unit, err)
	}

	if _, err := m.runner.Run(ctx, "sudo systemctl daemon-reload", runner.Options{Capture: true, ValidExitCodes: []int{0}}); err != nil {
		return fmt.Errorf("reloading unit definitions: %w", err)
	}

	logging.Info("Service", "installed unit %s at %s", m.cfg.Unit, m.cfg.UnitPath)
	return nil
}

// Start starts the unit.
func (m *Manager) Start(ctx context.Context) error {
	return m.systemctl(ctx, "start")
}

// Stop stops the unit.
func (m *Manager) Stop(ctx context.Context) error {
	return m.systemctl(ctx, "stop")
}

// Enable enables the unit at boot.
func (m *Manager) Enable(ctx context.Context) error {
	return m.systemctl(ctx, "enable")
}

// Disable disables the unit at boot.
func (m *Manager) Disable(ctx context.Context) error {
	return m.systemctl(ctx, "disable")
}

func (m *Manager) systemctl(ctx context.Context, verb string) error {
	command := fmt.Sprintf("sudo systemctl %s %s", verb, m.cfg.Unit)
	if _, err := m.runner.Run(ctx, command, runner.Options{Capture: true, ValidExitCodes: []int{0}}); err != nil {
		return fmt.Errorf("%s of unit %s: %w", verb, m.cfg.Unit, err)
	}
	return nil
}

// IsActive reports whether the unit is currently active. The D-Bus query
// needs no elevated privileges; when the bus is unavailable the systemctl
// exit code decides.
func (m *Manager) IsActive(ctx context.Context) bool {
	conn, err := m.connect(ctx)
	if err == nil {
		defer conn.Close()
		props, err := conn.GetUnitPropertiesContext(ctx, m.cfg.Unit)
		if err == nil {
			state, _ := props["ActiveState"].(string)
			return state == "active"
		}
		logging.Debug("Service", "dbus property query failed for %s: %v", m.cfg.Unit, err)
	} else {
		logging.Debug("Service", "system bus unavailable, falling back to systemctl: %v", err)
	}

	command := fmt.Sprintf("sudo systemctl is-active %s", m.cfg.Unit)
	result, runErr := m.runner.Run(ctx, command, runner.Options{Capture: true})
	return runErr == nil && result.ExitCode == 0
}
