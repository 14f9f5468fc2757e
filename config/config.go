// Package config holds the toolchain's persisted settings: memory size,
// step budget, default entry point, and trace verbosity. It is loaded
// once by the vm command and otherwise has no runtime effect on the
// assembler or VM packages themselves.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is the toolchain's configuration.
type Config struct {
	VM struct {
		MemorySize   int    `toml:"memory_size"`
		MaxSteps     uint64 `toml:"max_steps"`
		DefaultEntry string `toml:"default_entry"`
	} `toml:"vm"`

	Trace struct {
		Verbose bool `toml:"verbose"`
	} `toml:"trace"`
}

// DefaultConfig returns a Config populated with the toolchain's default
// values, used whenever no config file is present.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.VM.MemorySize = 1024
	cfg.VM.MaxSteps = 1_000_000
	cfg.VM.DefaultEntry = "main"
	cfg.Trace.Verbose = false
	return cfg
}

// GetConfigPath returns the platform-specific config file path,
// creating its containing directory if necessary.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "riscsub")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "riscsub")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return "config.toml"
	}
	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file path.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path. A missing file is not an
// error: it yields DefaultConfig.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save saves configuration to the default config file path.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
