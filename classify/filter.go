// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classify

import (
	"strings"

	"github.com/DevMine/changelogcraft/model"
)

// NoisePatterns are the built-in patterns of commits left out of changelogs.
var NoisePatterns = []string{
	"merge",
	"merge branch",
	"merge pull request",
	"wip",
	"work in progress",
	"bump version",
	"update dependencies",
	"update package",
	"fix typo",
	"typo",
	"update .gitignore",
	"initial commit",
}

// ShouldExclude reports whether a commit message is noise. The lower-cased
// message is matched against NoisePatterns and extraPatterns as substrings.
// Empty extra patterns are ignored.
func ShouldExclude(message string, extraPatterns []string) bool {
	msg := strings.ToLower(message)
	if containsAny(msg, NoisePatterns) {
		return true
	}

	for _, p := range extraPatterns {
		if p == "" {
			continue
		}
		if strings.Contains(msg, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// IsMerge reports whether c is a merge commit: it has several parents or
// its first line starts with "merge".
func IsMerge(c model.Commit) bool {
	if len(c.ParentIDs) > 1 {
		return true
	}
	return strings.HasPrefix(strings.ToLower(c.Summary()), "merge")
}

// Filter returns the commits that are not noise, in input order, along with
// the number of excluded commits.
func Filter(commits []model.Commit, extraPatterns []string) ([]model.Commit, int) {
	kept := make([]model.Commit, 0, len(commits))
	for _, c := range commits {
		if ShouldExclude(c.Message, extraPatterns) {
			continue
		}
		kept = append(kept, c)
	}
	return kept, len(commits) - len(kept)
}
