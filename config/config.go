// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config takes care of the configuration file parsing.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxCommitsLimit is the largest number of commits a single changelog is
// generated from.
const MaxCommitsLimit = 100

// Default prompt settings.
const (
	DefaultSystemPrompt = "You are an expert changelog writer. Keep entries concise, user-facing and grouped by category."

	DefaultUserInstructions = "Write one bullet per change, starting with a verb. Put breaking changes first and mention migration steps when the commit body gives them."
)

// sslModes corresponds to the SSL modes available for the connection to the
// PostgreSQL database.
// See http://www.postgresql.org/docs/9.4/static/libpq-ssl.html for details.
var sslModes = map[string]bool{
	"disable":     true,
	"require":     true,
	"verify-ca":   true,
	"verify-full": true,
}

// Config is the main configuration structure.
type Config struct {
	Database   *DatabaseConfig  `json:"database" yaml:"database"`
	Data       DataConfig       `json:"data" yaml:"data"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`
}

// DatabaseConfig is a configuration for PostgreSQL database connection
// information
type DatabaseConfig struct {
	HostName string `json:"hostname" yaml:"hostname"`
	Port     int    `json:"port" yaml:"port"`
	UserName string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	DBName   string `json:"dbname" yaml:"dbname"`

	// Can take values: disable, require, verify-ca or verify-full
	SSLMode string `json:"ssl_mode" yaml:"ssl_mode"`
}

// DataConfig is used to specify how commits are retrieved.
type DataConfig struct {
	// TmpDir can be used to specify a temporary working directory where
	// repository archives are extracted. If left unspecified, the default
	// system temporary directory will be used.
	TmpDir string `json:"tmp_dir" yaml:"tmp_dir"`

	// MaxCommits is the maximum number of commits fetched for one
	// changelog. It defaults to, and cannot exceed, MaxCommitsLimit.
	MaxCommits int `json:"max_commits" yaml:"max_commits"`
}

// GenerationConfig holds the settings of changelog generation requests.
type GenerationConfig struct {
	// ExcludePatterns are added to the built-in noise patterns. Commits
	// whose message contains one of them are left out.
	ExcludePatterns []string `json:"exclude_patterns" yaml:"exclude_patterns"`

	SystemPrompt     string `json:"system_prompt" yaml:"system_prompt"`
	UserInstructions string `json:"user_instructions" yaml:"user_instructions"`

	// Command is the program, followed by its arguments, that turns the
	// prompts into changelog text. It reads them on its standard input.
	// When empty, no text is generated.
	Command []string `json:"command" yaml:"command"`
}

// Default returns a configuration with every default value set and no
// database.
func Default() *Config {
	cfg := new(Config)
	cfg.setDefaults()
	return cfg
}

// ReadConfig reads a JSON or YAML formatted configuration file, verifies the
// values of the configuration parameters and fills the Config structure.
// The format is picked from the file extension; anything but .yaml and .yml
// is read as JSON. An empty path yields the default configuration.
func ReadConfig(path string) (*Config, error) {
	if len(path) == 0 {
		return Default(), nil
	}

	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := new(Config)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bs, cfg)
	default:
		err = json.Unmarshal(bs, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.setDefaults()

	if err := cfg.verify(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Data.MaxCommits == 0 {
		c.Data.MaxCommits = MaxCommitsLimit
	}
	if c.Generation.SystemPrompt == "" {
		c.Generation.SystemPrompt = DefaultSystemPrompt
	}
	if c.Generation.UserInstructions == "" {
		c.Generation.UserInstructions = DefaultUserInstructions
	}
}

func (c Config) verify() error {
	if c.Database != nil {
		if err := c.Database.verify(); err != nil {
			return err
		}
	}

	return c.Data.verify()
}

// Verify checks that a database configuration can be used to connect.
func (dc DatabaseConfig) Verify() error {
	return dc.verify()
}

func (dc DatabaseConfig) verify() error {
	if len(strings.Trim(dc.HostName, " ")) == 0 {
		return errors.New("database hostname cannot be empty")
	}

	if dc.Port <= 0 {
		return errors.New("database port must be greater than 0")
	}

	if len(strings.Trim(dc.UserName, " ")) == 0 {
		return errors.New("database username cannot be empty")
	}

	if len(strings.Trim(dc.DBName, " ")) == 0 {
		return errors.New("database name cannot be empty")
	}

	if _, ok := sslModes[dc.SSLMode]; !ok {
		return errors.New("database can only be disable, require, verify-ca or verify-full")
	}

	return nil
}

func (dc DataConfig) verify() error {
	if dc.MaxCommits < 0 || dc.MaxCommits > MaxCommitsLimit {
		return fmt.Errorf("max commits must be between 1 and %d", MaxCommitsLimit)
	}

	return nil
}
