package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "app", cfg.Container.Name)
	assert.Equal(t, "app:latest", cfg.Container.ImageRef())
	assert.Equal(t, "container-app.service", cfg.Service.Unit)
	assert.Equal(t, "/etc/systemd/system/container-app.service", cfg.Service.UnitPath)
	assert.Equal(t, "args.json", cfg.Args.File)
	assert.Equal(t, 60*time.Second, cfg.Sudo.RefreshInterval.Std())
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
container:
  name: auv
  tag: stable
sudo:
  refreshInterval: 30s
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := LoadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, "auv:stable", cfg.Container.ImageRef())
	// Derived values track the configured container name.
	assert.Equal(t, "container-auv.service", cfg.Service.Unit)
	assert.Equal(t, "/etc/systemd/system/container-auv.service", cfg.Service.UnitPath)
	assert.Equal(t, 30*time.Second, cfg.Sudo.RefreshInterval.Std())
	// Untouched keys keep their defaults.
	assert.Equal(t, "Containerfile_", cfg.Container.ContainerfilePrefix)
}

func TestLoadConfigExplicitUnitWins(t *testing.T) {
	dir := t.TempDir()
	content := `
service:
  unit: my-container.service
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := LoadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, "my-container.service", cfg.Service.Unit)
	assert.Equal(t, "/etc/systemd/system/my-container.service", cfg.Service.UnitPath)
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("container: ["), 0o644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
