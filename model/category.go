// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

// Category is the changelog section a commit is filed under.
type Category string

// Changelog categories.
const (
	Features        Category = "features"
	BugFixes        Category = "bug_fixes"
	BreakingChanges Category = "breaking_changes"
	Documentation   Category = "documentation"
	StyleRefactor   Category = "style_refactor"
	Chores          Category = "chores"
)

// Categories lists every category in the order changelog sections are
// presented.
var Categories = []Category{
	BreakingChanges,
	Features,
	BugFixes,
	Documentation,
	StyleRefactor,
	Chores,
}

var categoryTitles = map[Category]string{
	Features:        "Features",
	BugFixes:        "Bug Fixes",
	BreakingChanges: "Breaking Changes",
	Documentation:   "Documentation",
	StyleRefactor:   "Style & Refactoring",
	Chores:          "Chores",
}

// Title returns the section heading of a category.
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

// Valid reports whether c is one of the six known categories.
func (c Category) Valid() bool {
	_, ok := categoryTitles[c]
	return ok
}
