// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prompt formats classified commits as input for a text generation
// model.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DevMine/changelogcraft/config"
	"github.com/DevMine/changelogcraft/model"
)

// Generator turns prompts into changelog prose.
type Generator interface {
	Generate(systemPrompt, userPrompt string) (string, error)
}

// BuildUserPrompt formats the sections of a changelog for the model.
// Empty sections are left out.
func BuildUserPrompt(cfg config.GenerationConfig, cl model.Changelog) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a changelog for %s", cl.Repository)
	if w := windowText(cl.Window); w != "" {
		b.WriteString(" ")
		b.WriteString(w)
	}
	b.WriteString(".\n")
	fmt.Fprintf(&b, "%s\n\n", cfg.UserInstructions)

	b.WriteString("Keep the sections below and their order. Do not invent changes that are not listed.\n")

	for _, cat := range model.Categories {
		entries := cl.Groups[cat]
		if len(entries) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n## %s\n", cat.Title())
		for _, cc := range entries {
			writeEntry(&b, cc)
		}
	}

	return b.String()
}

// Render asks g for the changelog prose of cl.
func Render(g Generator, cfg config.GenerationConfig, cl model.Changelog) (string, error) {
	if len(cl.Entries()) == 0 {
		return "", errors.New("no commits left to describe")
	}

	out, err := g.Generate(cfg.SystemPrompt, BuildUserPrompt(cfg, cl))
	if err != nil {
		return "", fmt.Errorf("generate changelog: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func writeEntry(b *strings.Builder, cc model.ClassifiedCommit) {
	fmt.Fprintf(b, "- %s", cc.Parsed.Description)
	if cc.Parsed.Scope != "" {
		fmt.Fprintf(b, " [%s]", cc.Parsed.Scope)
	}
	fmt.Fprintf(b, " (%s by %s)\n", cc.Commit.ShortID(), cc.Commit.Author.DisplayName())

	if cc.Parsed.Body != "" {
		b.WriteString("  ")
		b.WriteString(strings.ReplaceAll(cc.Parsed.Body, "\n", "\n  "))
		b.WriteString("\n")
	}
}

func windowText(w model.TimeWindow) string {
	const layout = "2006-01-02"
	switch {
	case !w.Since.IsZero() && !w.Until.IsZero():
		return fmt.Sprintf("from %s to %s", w.Since.Format(layout), w.Until.Format(layout))
	case !w.Since.IsZero():
		return "since " + w.Since.Format(layout)
	case !w.Until.IsZero():
		return "until " + w.Until.Format(layout)
	}
	return ""
}
