// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classify

import "github.com/DevMine/changelogcraft/model"

// Result is the outcome of Run.
type Result struct {
	Commits []model.ClassifiedCommit
	Stats   model.Stats
}

// Run drops noise commits, removes near-duplicates and classifies what is
// left, in input order.
func Run(commits []model.Commit, extraPatterns []string) Result {
	stats := model.Stats{
		Total:       len(commits),
		PerCategory: make(map[model.Category]int, len(model.Categories)),
	}
	for _, c := range commits {
		if IsMerge(c) {
			stats.Merges++
		}
	}

	filtered, excluded := Filter(commits, extraPatterns)
	stats.Excluded = excluded

	unique := Deduplicate(filtered)
	stats.Duplicates = len(filtered) - len(unique)

	classified := make([]model.ClassifiedCommit, 0, len(unique))
	for _, c := range unique {
		cc := Classify(c)
		stats.PerCategory[cc.Category]++
		classified = append(classified, cc)
	}
	stats.Classified = len(classified)

	return Result{Commits: classified, Stats: stats}
}

// Group files classified commits by category. Every category has an entry,
// possibly empty, and commits keep their relative order.
func Group(commits []model.ClassifiedCommit) map[model.Category][]model.ClassifiedCommit {
	groups := make(map[model.Category][]model.ClassifiedCommit, len(model.Categories))
	for _, cat := range model.Categories {
		groups[cat] = []model.ClassifiedCommit{}
	}
	for _, cc := range commits {
		groups[cc.Category] = append(groups[cc.Category], cc)
	}
	return groups
}
