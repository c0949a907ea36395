package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Listen   string         `yaml:"listen" json:"listen"`
	DataDir  string         `yaml:"data_dir" json:"data_dir"`
	Auth     AuthConfig     `yaml:"auth" json:"auth"`
	Pomodoro PomodoroConfig `yaml:"pomodoro" json:"pomodoro"`
}

// AuthConfig overrides the placeholder credential pair. It stays a
// placeholder either way; nothing here is a security boundary.
type AuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"-"`
}

// PomodoroConfig points the timer UI at an ambient audio track.
type PomodoroConfig struct {
	AudioURL string `yaml:"audio_url" json:"audio_url"`
}

func (c *Config) ApplyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8484"
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.Auth.Username == "" {
		c.Auth.Username = "admin"
	}
	if c.Auth.Password == "" {
		c.Auth.Password = "admin"
	}
}

// Load reads the YAML config at path, then applies env overrides and
// defaults. A missing file is fine: env and defaults still apply.
func Load(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	c.applyEnv()
	c.ApplyDefaults()
	return &c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PLANNER_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("PLANNER_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("PLANNER_AUTH_USERNAME"); v != "" {
		c.Auth.Username = v
	}
	if v := os.Getenv("PLANNER_AUTH_PASSWORD"); v != "" {
		c.Auth.Password = v
	}
}

// UseDiskStaticByEnv switches static assets to disk for development.
func UseDiskStaticByEnv() bool {
	switch os.Getenv("PLANNER_DEV_STATIC") {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
