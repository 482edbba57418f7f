package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable values for the server. Every field can be
// set in a YAML config file; the CLI flags override the file.
type Config struct {
	// Root is the directory request paths are resolved against and
	// confined to.
	Root string `yaml:"root"`
	// Transport selects the serving transport: "http" or "stdio".
	Transport string `yaml:"transport"`
	// Port is the listen port for the HTTP transport.
	Port int `yaml:"port"`
	// MaxFileSizeMB caps the size of files read into memory. 0 disables
	// the cap.
	MaxFileSizeMB int `yaml:"max_file_size_mb"`
	// SharedLocks enables best-effort advisory read locks on target files.
	SharedLocks bool `yaml:"shared_locks"`
	// LockTimeoutSec bounds how long a shared lock acquisition may poll.
	LockTimeoutSec int `yaml:"lock_timeout_sec"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration defaults applied before any file or
// flag overrides.
func Default() *Config {
	return &Config{
		Transport:      "stdio",
		Port:           8080,
		MaxFileSizeMB:  10,
		SharedLocks:    false,
		LockTimeoutSec: 5,
		LogLevel:       "info",
	}
}

// LoadFile overlays values from a YAML file onto c. Fields absent from the
// file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root directory is required")
	}
	info, err := os.Stat(c.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("root directory does not exist: %s", c.Root)
		}
		return fmt.Errorf("error accessing root directory: %v", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path is not a directory: %s", c.Root)
	}

	if c.Transport != "http" && c.Transport != "stdio" {
		return fmt.Errorf("transport must be 'http' or 'stdio'")
	}
	if c.Port < 1024 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1024 and 65535")
	}
	if c.MaxFileSizeMB < 0 || c.MaxFileSizeMB > 100 {
		return fmt.Errorf("max file size must be between 0 and 100 MB")
	}
	if c.LockTimeoutSec < 1 || c.LockTimeoutSec > 300 {
		return fmt.Errorf("lock timeout must be between 1 and 300 seconds")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error")
	}
	return nil
}
