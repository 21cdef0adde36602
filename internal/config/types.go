package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so config files can use the usual "30s"
// notation.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the root configuration for podbay. Everything has a working
// default; a config.yaml only needs the keys it wants to change.
type Config struct {
	// Container describes the single managed container and its image.
	Container ContainerConfig `yaml:"container"`
	// Service describes the systemd unit wrapping the container.
	Service ServiceConfig `yaml:"service"`
	// Args configures the JSON file holding extra engine run arguments.
	Args ArgsConfig `yaml:"args"`
	// Xhost configures X server access for graphical programs inside the
	// container.
	Xhost XhostConfig `yaml:"xhost"`
	// Sudo configures the privilege keepalive.
	Sudo SudoConfig `yaml:"sudo"`
}

// ContainerConfig names the managed container and how its image is built.
type ContainerConfig struct {
	// Name is the container and image name.
	Name string `yaml:"name"`
	// Tag is the image tag.
	Tag string `yaml:"tag"`
	// ContainerfilePrefix is prepended to the machine architecture to pick
	// the build file, e.g. "Containerfile_" selects Containerfile_x86_64.
	ContainerfilePrefix string `yaml:"containerfilePrefix"`
	// ContextDir is the build context directory.
	ContextDir string `yaml:"contextDir"`
	// Entrypoint is the host path of the entrypoint script mounted into
	// the container.
	Entrypoint string `yaml:"entrypoint"`
}

// ImageRef returns the full image reference, name:tag.
func (c ContainerConfig) ImageRef() string {
	return c.Name + ":" + c.Tag
}

// ServiceConfig names the systemd unit for boot-time management.
type ServiceConfig struct {
	// Unit is the systemd unit name.
	Unit string `yaml:"unit"`
	// UnitPath is where the generated unit file is installed.
	UnitPath string `yaml:"unitPath"`
}

// ArgsConfig locates the JSON argument store.
type ArgsConfig struct {
	// File is the path of the JSON file holding one list of strings.
	File string `yaml:"file"`
}

// XhostConfig controls local X server access for the container.
type XhostConfig struct {
	// Source is the host-side xhost script copied into place on enable.
	Source string `yaml:"source"`
	// ProfileScript is the installed location under /etc/profile.d.
	ProfileScript string `yaml:"profileScript"`
}

// SudoConfig controls the privilege keepalive loop.
type SudoConfig struct {
	// RefreshInterval is how often cached sudo credentials are renewed.
	RefreshInterval Duration `yaml:"refreshInterval"`
}
