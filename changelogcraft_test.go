// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"
	"time"

	"github.com/DevMine/changelogcraft/config"
)

func TestParseWindow(t *testing.T) {
	t.Run("open window", func(t *testing.T) {
		w, err := parseWindow("", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !w.Since.IsZero() || !w.Until.IsZero() {
			t.Fatalf("expected open window, got %+v", w)
		}
	})

	t.Run("until is inclusive", func(t *testing.T) {
		w, err := parseWindow("2024-01-01", "2024-01-31")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !w.Contains(time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)) {
			t.Fatalf("expected last day to be inside the window")
		}
		if w.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("expected next day to be outside the window")
		}
	})

	t.Run("rejects reversed window", func(t *testing.T) {
		if _, err := parseWindow("2024-02-01", "2024-01-01"); err == nil {
			t.Fatalf("expected error for reversed window")
		}
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		if _, err := parseWindow("01/02/2024", ""); err == nil {
			t.Fatalf("expected error for malformed date")
		}
	})
}

func TestSplitPatterns(t *testing.T) {
	got := splitPatterns(" renovate, ,[skip ci],")
	if len(got) != 2 || got[0] != "renovate" || got[1] != "[skip ci]" {
		t.Fatalf("unexpected patterns: %q", got)
	}
	if splitPatterns("") != nil {
		t.Fatalf("expected no patterns for empty flag")
	}
}

func TestExcludePatternsKeepsConfig(t *testing.T) {
	base := make([]string, 1, 4)
	base[0] = "renovate"
	cfg := config.GenerationConfig{ExcludePatterns: base}

	got := excludePatterns(cfg, "dependabot")
	if len(got) != 2 || got[0] != "renovate" || got[1] != "dependabot" {
		t.Fatalf("unexpected patterns: %q", got)
	}

	got[0] = "changed"
	if extended := base[:2]; extended[0] != "renovate" || extended[1] != "" {
		t.Fatalf("configuration backing array was modified: %q", extended)
	}
}
