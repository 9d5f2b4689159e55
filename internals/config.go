package internals

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultInput    = "../links.json"
	DefaultOutput   = "../links_cleaned.json"
	DefaultLogLevel = "info"
)

type Config struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	LogLevel string `yaml:"log_level"`
}

func (config *Config) LoadFromYaml(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot find config file %s - UID %d", path, os.Getuid())
	}
	err = yaml.Unmarshal(content, config)
	if err != nil {
		return fmt.Errorf("cannot parse config file %s: %w", path, err)
	}
	return nil
}

func (config *Config) SetDefaults() {
	if config.Input == "" {
		config.Input = DefaultInput
	}
	if config.Output == "" {
		config.Output = DefaultOutput
	}
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}
}
