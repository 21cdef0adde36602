package config

import "time"

const (
	// DefaultContainerName is the managed container when none is configured.
	DefaultContainerName = "app"

	// DefaultSudoRefreshInterval keeps cached sudo credentials warm.
	DefaultSudoRefreshInterval = Duration(60 * time.Second)
)

// GetDefaultConfig returns the built-in configuration.
func GetDefaultConfig() Config {
	return Config{
		Container: ContainerConfig{
			Name:                DefaultContainerName,
			Tag:                 "latest",
			ContainerfilePrefix: "Containerfile_",
			ContextDir:          ".",
			Entrypoint:          "./entrypoint.sh",
		},
		Args: ArgsConfig{
			File: "args.json",
		},
		Xhost: XhostConfig{
			Source:        "./xhost.sh",
			ProfileScript: "/etc/profile.d/xhost.sh",
		},
		Sudo: SudoConfig{
			RefreshInterval: DefaultSudoRefreshInterval,
		},
	}
}

// applyDerivedDefaults fills fields whose default depends on other values.
// The unit name tracks the container name unless set explicitly.
func applyDerivedDefaults(cfg *Config) {
	if cfg.Service.Unit == "" {
		cfg.Service.Unit = "container-" + cfg.Container.Name + ".service"
	}
	if cfg.Service.UnitPath == "" {
		cfg.Service.UnitPath = "/etc/systemd/system/" + cfg.Service.Unit
	}
	if cfg.Sudo.RefreshInterval <= 0 {
		cfg.Sudo.RefreshInterval = DefaultSudoRefreshInterval
	}
}
