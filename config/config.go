// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles process-wide descriptor configuration.
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dacolabs/typedesc/model"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// Config represents the typedesc.yaml configuration file. It carries the
// defaults the descriptor system reads after startup; Apply installs them
// once during process initialization.
type Config struct {
	Version int `yaml:"version"`

	// NullableDefault is the process-wide nullability default used by
	// descriptors whose nillable constraint was never set. Unset keeps
	// the built-in default (true).
	NullableDefault *bool `yaml:"nullable_default,omitempty"`

	// DefaultNamespace is the namespace handed to namespace resolution
	// when the owning interface does not supply one.
	DefaultNamespace string `yaml:"default_namespace,omitempty"`
}

// Load reads a Config from a file path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	return nil
}

// Apply installs the process-wide defaults carried by the config. It is
// meant to run once during process initialization; the descriptor system
// only reads these values afterwards.
func (c *Config) Apply() {
	if c.NullableDefault != nil {
		model.SetNullableDefault(*c.NullableDefault)
	}
}
