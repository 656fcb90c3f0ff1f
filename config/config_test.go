// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestReadConfigEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := ReadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database != nil {
		t.Fatalf("expected no database by default, got %+v", cfg.Database)
	}
	if cfg.Data.MaxCommits != MaxCommitsLimit {
		t.Fatalf("expected max commits %d, got %d", MaxCommitsLimit, cfg.Data.MaxCommits)
	}
	if cfg.Generation.SystemPrompt == "" || cfg.Generation.UserInstructions == "" {
		t.Fatalf("expected prompt defaults to be populated, got %+v", cfg.Generation)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	if _, err := ReadConfig(filepath.Join(t.TempDir(), "does-not-exist.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestReadConfigJSON(t *testing.T) {
	path := writeConfig(t, "cfg.json", `{
		"database": {
			"hostname": "localhost",
			"port": 5432,
			"username": "changelog",
			"dbname": "changelogs",
			"ssl_mode": "disable"
		},
		"data": {"max_commits": 50},
		"generation": {"exclude_patterns": ["renovate", "[skip ci]"]}
	}`)

	cfg, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database == nil || cfg.Database.Port != 5432 || cfg.Database.DBName != "changelogs" {
		t.Fatalf("expected database section to be read, got %+v", cfg.Database)
	}
	if cfg.Data.MaxCommits != 50 {
		t.Fatalf("expected max commits override, got %d", cfg.Data.MaxCommits)
	}
	if len(cfg.Generation.ExcludePatterns) != 2 || cfg.Generation.ExcludePatterns[1] != "[skip ci]" {
		t.Fatalf("expected exclude patterns to be read, got %+v", cfg.Generation.ExcludePatterns)
	}
}

func TestReadConfigYAML(t *testing.T) {
	path := writeConfig(t, "cfg.yaml", `
data:
  tmp_dir: /tmp/changelogcraft
generation:
  exclude_patterns:
    - dependabot
  user_instructions: custom text
  command: [llm, --model, small]
`)

	cfg, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Data.TmpDir != "/tmp/changelogcraft" {
		t.Fatalf("expected tmp_dir to be read, got %q", cfg.Data.TmpDir)
	}
	if cfg.Generation.UserInstructions != "custom text" {
		t.Fatalf("expected user_instructions override, got %q", cfg.Generation.UserInstructions)
	}
	if cfg.Generation.SystemPrompt != DefaultSystemPrompt {
		t.Fatalf("expected default system prompt, got %q", cfg.Generation.SystemPrompt)
	}
	if len(cfg.Generation.ExcludePatterns) != 1 || cfg.Generation.ExcludePatterns[0] != "dependabot" {
		t.Fatalf("expected exclude patterns to be read, got %+v", cfg.Generation.ExcludePatterns)
	}
	if len(cfg.Generation.Command) != 3 || cfg.Generation.Command[0] != "llm" {
		t.Fatalf("expected generation command to be read, got %+v", cfg.Generation.Command)
	}
}

func TestReadConfigVerify(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"too many commits", `{"data": {"max_commits": 500}}`},
		{"negative commits", `{"data": {"max_commits": -1}}`},
		{"missing hostname", `{"database": {"port": 5432, "username": "u", "dbname": "d", "ssl_mode": "disable"}}`},
		{"bad port", `{"database": {"hostname": "h", "username": "u", "dbname": "d", "ssl_mode": "disable"}}`},
		{"bad ssl mode", `{"database": {"hostname": "h", "port": 5432, "username": "u", "dbname": "d", "ssl_mode": "maybe"}}`},
		{"malformed", `{"data": `},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, "cfg.json", tc.content)
			if _, err := ReadConfig(path); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}
