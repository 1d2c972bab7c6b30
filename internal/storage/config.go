package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vidyasagar/hike/internal/browser"
	"github.com/vidyasagar/hike/internal/location"
)

// Config holds hike user configuration, read from config.yaml.
type Config struct {
	Theme              string        `yaml:"theme"`
	GlamourStyle       string        `yaml:"glamour_style"` // glamour style name, "auto" or "theme"
	MarkdownExtensions []string      `yaml:"markdown_extensions"`
	HistoryLength      int           `yaml:"history_length"`
	NavigationVisible  bool          `yaml:"navigation_visible"`
	WatchLocalFiles    bool          `yaml:"watch_local_files"`
	NotifyTimeout      time.Duration `yaml:"notify_timeout"`

	path string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:              "default",
		GlamourStyle:       "auto",
		MarkdownExtensions: append([]string(nil), location.DefaultMarkdownExtensions...),
		HistoryLength:      browser.DefaultHistoryLength,
		NavigationVisible:  true,
		WatchLocalFiles:    true,
		NotifyTimeout:      5 * time.Second,
	}
}

// ConfigPath returns the default config.yaml location.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadConfig reads the configuration at path, or at ConfigPath when path is
// empty. A missing file yields the defaults, which are written out so the
// user has something to edit.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := cfg.Save(); err != nil {
				return &cfg, err
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

// Save writes the configuration back to where it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		c.path = p
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Path returns the file the configuration is stored in.
func (c *Config) Path() string {
	return c.path
}

func (c *Config) normalize() {
	def := DefaultConfig()
	if c.HistoryLength <= 0 {
		c.HistoryLength = def.HistoryLength
	}
	if len(c.MarkdownExtensions) == 0 {
		c.MarkdownExtensions = def.MarkdownExtensions
	}
	if c.NotifyTimeout <= 0 {
		c.NotifyTimeout = def.NotifyTimeout
	}
	if c.GlamourStyle == "" {
		c.GlamourStyle = def.GlamourStyle
	}
}
