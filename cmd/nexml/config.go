package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config controls the converter. Values come from an optional YAML file and
// can be overridden by flags.
type Config struct {
	// Input selects the input serialization.
	Input string `yaml:"input" validate:"required,oneof=nexml nexus"`

	// Format selects the output serialization.
	Format string `yaml:"format" validate:"required,oneof=nexml newick"`

	// Indent is the per-level indentation width for NeXML output.
	Indent int `yaml:"indent" validate:"min=0,max=8"`

	// Validate runs the structural checks before writing output.
	Validate bool `yaml:"validate"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"required,oneof=debug info warn warning error"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Input:    "nexml",
		Format:   "nexml",
		Indent:   2,
		LogLevel: "info",
	}
}

// LoadConfig reads and validates a YAML config file, starting from the
// defaults so partial files work.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := config.Check(); err != nil {
		return config, err
	}
	return config, nil
}

var validate = validator.New()

// Check validates the configuration against its struct tags.
func (c *Config) Check() error {
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("config field %s: failed %s validation (value %v)",
				e.Field(), e.Tag(), e.Value())
		}
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}
