package config

import (
	"fmt"
	"os"

	"github.com/san-kum/orbsim/internal/orb"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS      = 60
	DefaultDataDir  = ".orbsim"
	DefaultTheme    = "cyberpunk"
	DefaultLogLevel = "info"
)

type Config struct {
	Orb      orb.Settings `yaml:"orb"`
	FPS      int          `yaml:"fps"`
	DataDir  string       `yaml:"data_dir"`
	Theme    string       `yaml:"theme"`
	Seed     int64        `yaml:"seed"`
	LogLevel string       `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Orb:      orb.DefaultSettings(),
		FPS:      DefaultFPS,
		DataDir:  DefaultDataDir,
		Theme:    DefaultTheme,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads a yaml file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	return LoadWith(path, DefaultConfig())
}

// LoadWith reads a yaml file over a copy of base.
func LoadWith(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.FPS <= 0 || c.FPS > 240 {
		return fmt.Errorf("fps must be in (0,240], got %d", c.FPS)
	}
	return c.Orb.Validate()
}

// Marshal renders the config as yaml.
func (c *Config) Marshal() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
