// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classify

import (
	"strings"
	"testing"

	"github.com/DevMine/changelogcraft/model"
)

func lower(s string) string { return strings.ToLower(s) }

func TestRun(t *testing.T) {
	commits := []model.Commit{
		{VCSID: "1", Message: "feat(ui): add dark mode"},
		{VCSID: "2", Message: "Merge pull request #42 from foo/bar", ParentIDs: []string{"a", "b"}},
		{VCSID: "3", Message: "fix: crash on empty config"},
		{VCSID: "4", Message: "fix: crash on empty config."},
		{VCSID: "5", Message: "feat!: drop python 2\n\nBREAKING CHANGE: removed"},
		{VCSID: "6", Message: "docs: explain setup"},
		{VCSID: "7", Message: "chore(release): 1.2.0"},
		{VCSID: "8", Message: "xyz123 misc update zz"},
		{VCSID: "9", Message: "internal: vendor sync"},
	}

	res := Run(commits, []string{"vendor sync"})

	var ids []string
	for _, cc := range res.Commits {
		ids = append(ids, cc.Commit.VCSID)
	}
	if got := strings.Join(ids, ","); got != "1,3,5,6,7,8" {
		t.Fatalf("unexpected commits kept: %s", got)
	}

	st := res.Stats
	if st.Total != 9 || st.Excluded != 2 || st.Duplicates != 1 || st.Merges != 1 || st.Classified != 6 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if st.PerCategory[model.Features] != 1 || st.PerCategory[model.BreakingChanges] != 1 ||
		st.PerCategory[model.Chores] != 2 {
		t.Fatalf("unexpected per category stats: %+v", st.PerCategory)
	}
}

func TestGroupPartitionsCommits(t *testing.T) {
	commits := []model.Commit{
		{VCSID: "1", Message: "feat: add search page"},
		{VCSID: "2", Message: "fix: nil pointer in parser"},
		{VCSID: "3", Message: "feat(api): expose metrics endpoint"},
		{VCSID: "4", Message: "style: reorder imports"},
		{VCSID: "5", Message: "something else entirely"},
	}
	res := Run(commits, nil)
	groups := Group(res.Commits)

	if len(groups) != len(model.Categories) {
		t.Fatalf("expected %d groups, got %d", len(model.Categories), len(groups))
	}

	seen := map[string]int{}
	for cat, ccs := range groups {
		for _, cc := range ccs {
			if cc.Category != cat {
				t.Fatalf("commit %s filed under %s but classified %s", cc.Commit.VCSID, cat, cc.Category)
			}
			seen[cc.Commit.VCSID]++
		}
	}
	for _, cc := range res.Commits {
		if seen[cc.Commit.VCSID] != 1 {
			t.Fatalf("commit %s appears %d times", cc.Commit.VCSID, seen[cc.Commit.VCSID])
		}
	}
	if len(seen) != len(res.Commits) {
		t.Fatalf("groups hold %d commits, want %d", len(seen), len(res.Commits))
	}

	feats := groups[model.Features]
	if len(feats) != 2 || feats[0].Commit.VCSID != "1" || feats[1].Commit.VCSID != "3" {
		t.Fatalf("features group lost order: %+v", feats)
	}
	if groups[model.Documentation] == nil {
		t.Fatalf("expected empty documentation group, got nil")
	}
}
