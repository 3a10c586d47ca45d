// Copyright ©️ Slate SCM contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the optional per-user defaults for the diff tools.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const ENV_DIFFMERGE_CONFIG = "DIFFMERGE_CONFIG"

// Config holds tool defaults; flags override every field.
type Config struct {
	// Context is the unified diff context radius.
	Context int `toml:"context,omitempty"`
	// ConflictStyle is the default merge conflict style name.
	ConflictStyle string `toml:"conflict-style,omitempty"`
	// Color is auto, always or never.
	Color string `toml:"color,omitempty"`
}

func configPath() string {
	if p, ok := os.LookupEnv(ENV_DIFFMERGE_CONFIG); ok {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".diffmerge.toml")
}

// Load reads the defaults file. A missing file yields a zero Config and
// no error.
func Load() (*Config, error) {
	var cfg Config
	p := configPath()
	if p == "" {
		return &cfg, nil
	}
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, err
	}
	if _, err := toml.DecodeFile(p, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
