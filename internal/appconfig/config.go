// Package appconfig manages application configuration and its file path.
package appconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/treykane/hkctl/internal/util"
	"gopkg.in/yaml.v3"
)

// Config holds application-level configuration.
type Config struct {
	// Host of the automation service. The command surface has no host flag.
	Host string `yaml:"host"`
	// Port used when --port is absent.
	Port uint16 `yaml:"port"`
	// Home used when --home is absent. Empty selects the primary home.
	Home string `yaml:"home,omitempty"`

	// portErr holds a malformed HKCTL_PORT. It only matters when no
	// --port flag overrides it.
	portErr error
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Host: util.DefaultHost,
		Port: util.DefaultPort,
	}
}

// ConfigDir returns the application config directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/hkctl.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, util.AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, ".config", util.AppName), nil
}

// FilePath returns the full path to config.yaml.
func FilePath() (string, error) {
	d, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config.yaml"), nil
}

// Load reads config.yaml from the config directory and applies HKCTL_*
// environment overrides. A missing file yields the defaults.
func Load() (Config, error) {
	path, err := FilePath()
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return Config{}, err
	}

	if v := os.Getenv(util.EnvHost); strings.TrimSpace(v) != "" {
		cfg.Host = v
	}
	if v := os.Getenv(util.EnvPort); strings.TrimSpace(v) != "" {
		port, err := util.ParsePort(v)
		if err != nil {
			cfg.portErr = fmt.Errorf("%s: %w", util.EnvPort, err)
		} else {
			cfg.Port = port
		}
	}
	if v := os.Getenv(util.EnvHome); strings.TrimSpace(v) != "" {
		cfg.Home = v
	}

	cfg.Host = util.NormalizeHost(cfg.Host)
	if cfg.Port == 0 {
		cfg.Port = util.DefaultPort
	}
	cfg.Home = strings.TrimSpace(cfg.Home)
	return cfg, nil
}

// ResolvePort returns flag when set, otherwise the configured port. A
// malformed HKCTL_PORT is reported only when it would be used.
func (c Config) ResolvePort(flag *uint16) (uint16, error) {
	if flag != nil {
		return *flag, nil
	}
	if c.portErr != nil {
		return 0, c.portErr
	}
	return c.Port, nil
}
