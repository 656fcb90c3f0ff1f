// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classify

import (
	"strings"

	"github.com/DevMine/changelogcraft/model"
)

// typeCategories maps conventional commit types to categories.
var typeCategories = map[string]model.Category{
	"feat":     model.Features,
	"feature":  model.Features,
	"perf":     model.Features,
	"fix":      model.BugFixes,
	"bugfix":   model.BugFixes,
	"docs":     model.Documentation,
	"doc":      model.Documentation,
	"style":    model.StyleRefactor,
	"refactor": model.StyleRefactor,
	"test":     model.Chores,
	"build":    model.Chores,
	"ci":       model.Chores,
	"chore":    model.Chores,
	"revert":   model.Chores,
}

type keywordRule struct {
	category model.Category
	keywords []string
}

// keywordRules are tried in order; a message may hold words of several
// rules and the first one wins.
var keywordRules = []keywordRule{
	{model.BreakingChanges, []string{"breaking", "breaking change", "deprecated"}},
	{model.Features, []string{"add", "implement", "create", "new feature", "enhance"}},
	{model.BugFixes, []string{"fix", "bug", "resolve", "patch", "correct"}},
	{model.Documentation, []string{"doc", "readme", "comment", "documentation"}},
	{model.StyleRefactor, []string{"refactor", "cleanup", "reorganize", "style", "format"}},
}

// Categorize files a parsed commit message under exactly one category.
//
// A breaking change always wins. Otherwise the conventional commit type
// decides when it is a known one, then keywords found in rawMessage, and
// model.Chores is the default.
// Keywords are matched as substrings of the lower-cased message, so
// "fixture" counts as "fix".
func Categorize(parsed model.ParsedMessage, rawMessage string) model.Category {
	if parsed.Breaking {
		return model.BreakingChanges
	}

	if parsed.HasType() {
		if cat, ok := typeCategories[strings.ToLower(parsed.Type)]; ok {
			return cat
		}
	}

	msg := strings.ToLower(rawMessage)
	for _, rule := range keywordRules {
		if containsAny(msg, rule.keywords) {
			return rule.category
		}
	}

	return model.Chores
}

// Classify parses a commit message and categorizes it.
func Classify(c model.Commit) model.ClassifiedCommit {
	parsed := Parse(c.Message)
	return model.ClassifiedCommit{
		Commit:   c,
		Category: Categorize(parsed, c.Message),
		Parsed:   parsed,
	}
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
