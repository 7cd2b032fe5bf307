package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Tool is a payload fetched by the deployment glue.
type Tool struct {
	URL  string `json:"url"`
	File string `json:"file"`
}

// Config is built once at startup and passed to whatever needs it.
type Config struct {
	ConfirmationToken string          `json:"confirmation_token"`
	WorkDir           string          `json:"work_dir"`
	Tools             map[string]Tool `json:"tools"`
}

// DefaultConfirmationToken must be typed to select a device with warnings.
const DefaultConfirmationToken = "YES"

// Default returns the built-in configuration.
func Default() *Config {
	workDir := filepath.Join(os.TempDir(), "usbprep")
	if cache, err := os.UserCacheDir(); err == nil {
		workDir = filepath.Join(cache, "usbprep")
	}

	return &Config{
		ConfirmationToken: DefaultConfirmationToken,
		WorkDir:           workDir,
		Tools: map[string]Tool{
			"rufus": {
				URL:  "https://github.com/pbatard/rufus/releases/download/v4.6/rufus-4.6p.exe",
				File: "rufus.exe",
			},
			"ventoy": {
				URL:  "https://github.com/ventoy/Ventoy/releases/download/v1.0.99/ventoy-1.0.99-windows.zip",
				File: "ventoy.zip",
			},
			"activation": {
				URL:  "https://github.com/massgravel/Microsoft-Activation-Scripts/archive/refs/heads/master.zip",
				File: "activation.zip",
			},
			"office": {
				URL:  "https://officecdn.microsoft.com/pr/wsus/setup.exe",
				File: "office-setup.exe",
			},
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(dir, "usbprep", "config.json"), nil
}

// Load reads the config at path. A missing file yields the defaults; fields
// absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values the program depends on.
func (c *Config) Validate() error {
	if c.ConfirmationToken == "" {
		return errors.New("confirmation_token must not be empty")
	}
	for _, name := range c.ToolNames() {
		if c.Tools[name].URL == "" {
			return fmt.Errorf("tool %q has no url", name)
		}
	}
	return nil
}

// ToolNames returns the configured tool names in sorted order.
func (c *Config) ToolNames() []string {
	names := make([]string, 0, len(c.Tools))
	for name := range c.Tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Save writes the config to path with owner-only permissions. An existing
// file is only replaced when overwrite is set.
func (c *Config) Save(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}
