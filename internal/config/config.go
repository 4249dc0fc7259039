// Package config loads kvit-watch settings from a YAML file and applies
// defaults. A missing config file is not an error: the watcher runs fine
// on defaults against the active tmux pane.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Watch struct {
		// TmuxTarget is the pane to poll (tmux -t syntax). Empty means the
		// active pane.
		TmuxTarget string `yaml:"tmux_target"`
		// PollIntervalMs is the polling period in milliseconds.
		PollIntervalMs int `yaml:"poll_interval_ms"`
		// HistoryLines bounds how much scrollback each capture pulls.
		// 0 captures the entire history.
		HistoryLines int `yaml:"history_lines"`
	} `yaml:"watch"`

	Workspace struct {
		// Root is the directory preview paths resolve against.
		Root string `yaml:"root"`
		// AllowedReadPaths are directories outside the root the watcher may
		// still read files from.
		AllowedReadPaths []string `yaml:"allowed_read_paths"`
		// DeniedPaths are never read even when inside the root.
		DeniedPaths []string `yaml:"denied_paths"`
		// AllowOutsideWorkspace permits reading any path a preview names.
		AllowOutsideWorkspace bool `yaml:"allow_outside_workspace"`
	} `yaml:"workspace"`

	Display struct {
		// Mode is "plain" (colorized diff to stdout) or "pager"
		// (interactive scrollable view).
		Mode string `yaml:"mode"`
		// ContextLines for rendered unified diffs.
		ContextLines int `yaml:"context_lines"`
	} `yaml:"display"`

	Log struct {
		// Path of the JSON log file. Empty disables logging.
		Path string `yaml:"path"`
		// Development switches to the readable zap encoder config.
		Development bool `yaml:"development"`
	} `yaml:"log"`

	Snapshot struct {
		// MaxEntries bounds the in-memory snapshot store.
		MaxEntries int `yaml:"max_entries"`
	} `yaml:"snapshot"`
}

const (
	DefaultPollIntervalMs = 500
	DefaultContextLines   = 3
	DisplayPlain          = "plain"
	DisplayPager          = "pager"
)

// Load reads the config file at path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := &Config{}
			if err := cfg.applyDefaults(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.Watch.PollIntervalMs == 0 {
		c.Watch.PollIntervalMs = DefaultPollIntervalMs
	}
	if c.Display.ContextLines == 0 {
		c.Display.ContextLines = DefaultContextLines
	}
	if c.Display.Mode == "" {
		c.Display.Mode = DisplayPlain
	}
	if c.Display.Mode != DisplayPlain && c.Display.Mode != DisplayPager {
		return fmt.Errorf("unknown display mode %q (want %q or %q)",
			c.Display.Mode, DisplayPlain, DisplayPager)
	}

	// Convert workspace root to absolute path
	if c.Workspace.Root != "" {
		absRoot, err := filepath.Abs(c.Workspace.Root)
		if err != nil {
			return fmt.Errorf("failed to resolve workspace root: %w", err)
		}
		c.Workspace.Root = absRoot
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		c.Workspace.Root = cwd
	}
	return nil
}

// PollInterval returns the poll period as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Watch.PollIntervalMs) * time.Millisecond
}
