// Package config handles configuration loading and validation for nextup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	TasksFile string         `yaml:"tasks_file"` // file name within the data dir
	NotesFile string         `yaml:"notes_file"`
	Server    ServerConfig   `yaml:"server"`
	Reminders ReminderConfig `yaml:"reminders"`
	DataDir   string         `yaml:"-"` // set by caller, not from config file
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ReminderConfig holds the background reminder loop schedule.
type ReminderConfig struct {
	InitialDelaySeconds int `yaml:"initial_delay_seconds"`
	IntervalSeconds     int `yaml:"interval_seconds"`
}

// TasksPath returns the absolute path of the task CSV file.
func (c *Config) TasksPath() string {
	return filepath.Join(c.DataDir, c.TasksFile)
}

// NotesPath returns the absolute path of the notes CSV file.
func (c *Config) NotesPath() string {
	return filepath.Join(c.DataDir, c.NotesFile)
}

// InitialDelay returns the delay before the first reminder scan.
func (r ReminderConfig) InitialDelay() time.Duration {
	return time.Duration(r.InitialDelaySeconds) * time.Second
}

// Interval returns the period between reminder scans.
func (r ReminderConfig) Interval() time.Duration {
	return time.Duration(r.IntervalSeconds) * time.Second
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TasksFile: "tasks.csv",
		NotesFile: "notes.csv",
		Server: ServerConfig{
			Addr: "localhost:8080",
		},
		Reminders: ReminderConfig{
			InitialDelaySeconds: 5,
			IntervalSeconds:     30,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the
// provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.TasksFile == "" {
		c.TasksFile = defaults.TasksFile
	}
	if c.NotesFile == "" {
		c.NotesFile = defaults.NotesFile
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Reminders.InitialDelaySeconds == 0 {
		c.Reminders.InitialDelaySeconds = defaults.Reminders.InitialDelaySeconds
	}
	if c.Reminders.IntervalSeconds == 0 {
		c.Reminders.IntervalSeconds = defaults.Reminders.IntervalSeconds
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}
	if c.Reminders.InitialDelaySeconds < 0 {
		return fmt.Errorf("reminders.initial_delay_seconds cannot be negative")
	}
	if c.Reminders.IntervalSeconds < 1 {
		return fmt.Errorf("reminders.interval_seconds must be at least 1")
	}
	return nil
}
