// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package classify turns raw commits into categorized changelog entries.
//
// It parses conventional commit messages, files every commit under one of
// the six categories of model.Categories, drops noise commits and collapses
// near-duplicate summaries. All functions are pure: they do no I/O and
// never fail.
package classify

import (
	"regexp"
	"strings"

	"github.com/DevMine/changelogcraft/model"
)

// BreakingMarker flags a breaking change anywhere in a commit message.
const BreakingMarker = "BREAKING CHANGE"

var (
	// type(scope)!: description
	conventionalRe = regexp.MustCompile(`^(\w+)(?:\(([^)]+)\))?(!)?:\s*(.+)$`)
	bangRe         = regexp.MustCompile(`^\w+(?:\([^)]+\))?!:`)
)

// Parse turns a commit message into a model.ParsedMessage.
// Messages that do not follow the conventional commit grammar keep their
// first line as description.
func Parse(message string) model.ParsedMessage {
	header, body := splitMessage(message)

	pm := model.ParsedMessage{
		Description: header,
		Body:        body,
		Breaking:    strings.Contains(message, BreakingMarker) || bangRe.MatchString(header),
		Raw:         message,
	}

	m := conventionalRe.FindStringSubmatch(header)
	if m == nil {
		return pm
	}

	pm.Type = m[1]
	pm.Scope = m[2]
	pm.Description = m[4]
	pm.Breaking = pm.Breaking || m[3] == "!"

	return pm
}

// splitMessage separates the first line of a message from the rest.
func splitMessage(message string) (header, body string) {
	lines := strings.Split(message, "\n")
	header = strings.TrimSuffix(lines[0], "\r")
	if len(lines) > 1 {
		body = strings.TrimSpace(strings.Join(lines[1:], "\n"))
	}
	return header, body
}
