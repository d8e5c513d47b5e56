// Package config loads the optional wallslide config file. Command line
// flags take precedence over anything loaded from it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	Directory      string `yaml:"directory"`
	TransitionTime int    `yaml:"transition_time"`
	Resolution     string `yaml:"resolution"`
	Fit            string `yaml:"fit"`
	Shuffle        bool   `yaml:"shuffle"`
	Listen         string `yaml:"listen"`
	DB             string `yaml:"db"`
	S3Bucket       string `yaml:"s3_bucket"`
	S3Profile      string `yaml:"s3_profile"`
}

// Dir returns the OS-specific config directory (e.g. ~/Library/Application Support/wallslide).
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "wallslide"), nil
}

// Path returns the full path to config.yaml.
func Path() (string, error) {
	d, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config.yaml"), nil
}

// Load reads config from the OS config dir, or returns default if missing.
func Load() (*Config, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(p)
}

// LoadFile reads config from path, or returns default if the file is missing.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	if c.TransitionTime == 0 {
		c.TransitionTime = 10
	}
	if c.Fit == "" {
		c.Fit = "fill"
	}
	return &c, nil
}

// Save writes config to the OS config dir.
func Save(c *Config) error {
	d, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d, 0755); err != nil {
		return err
	}
	p, _ := Path()
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0644)
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		TransitionTime: 10,
		Fit:            "fill",
	}
}
