// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classify

import (
	"fmt"
	"testing"

	"github.com/DevMine/changelogcraft/model"
)

func commitsFromSummaries(summaries ...string) []model.Commit {
	commits := make([]model.Commit, len(summaries))
	for i, s := range summaries {
		commits[i] = model.Commit{VCSID: fmt.Sprintf("%d", i), Message: s}
	}
	return commits
}

func summaries(commits []model.Commit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.Summary()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"fix login bug", "fix login bug!!", 2},
		{"héllo", "hello", 1},
	}

	for _, tc := range tests {
		if got := Levenshtein(tc.a, tc.b); got != tc.want {
			t.Fatalf("Levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
		if got := Levenshtein(tc.b, tc.a); got != tc.want {
			t.Fatalf("Levenshtein(%q, %q) = %d, want %d", tc.b, tc.a, got, tc.want)
		}
	}
}

func TestSimilarityBounds(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"", "a"},
		{"abc", "xyz"},
		{"fix login bug", "fix login bug!!"},
		{"add feature", "fix login bug"},
		{"日本語", "日本"},
	}

	for _, p := range pairs {
		s := Similarity(p[0], p[1])
		if s < 0 || s > 1 {
			t.Fatalf("Similarity(%q, %q) = %f out of [0, 1]", p[0], p[1], s)
		}
		if self := Similarity(p[0], p[0]); self != 1.0 {
			t.Fatalf("Similarity(%q, %q) = %f, want 1", p[0], p[0], self)
		}
	}

	if s := Similarity("", ""); s != 1.0 {
		t.Fatalf("expected empty strings to be identical, got %f", s)
	}
	if s := Similarity("abc", "xyz"); s != 0 {
		t.Fatalf("expected fully different strings to score 0, got %f", s)
	}
}

func TestDeduplicateKeepsFirst(t *testing.T) {
	in := commitsFromSummaries("Fix login bug", "Fix login bug!!", "Add feature")
	if s := Similarity("fix login bug", "fix login bug!!"); s <= DuplicateThreshold {
		t.Fatalf("test premise broken: similarity %f", s)
	}

	got := summaries(Deduplicate(in))
	want := []string{"Fix login bug", "Add feature"}
	if !equalStrings(got, want) {
		t.Fatalf("Deduplicate() = %q, want %q", got, want)
	}
}

func TestDeduplicateComparesSummariesOnly(t *testing.T) {
	in := []model.Commit{
		{VCSID: "1", Message: "feat: add search\n\nfirst body"},
		{VCSID: "2", Message: "FEAT: Add search\n\ncompletely different body"},
		{VCSID: "3", Message: "feat: add search page"},
	}

	got := Deduplicate(in)
	if len(got) != 2 || got[0].VCSID != "1" || got[1].VCSID != "3" {
		t.Fatalf("unexpected dedup result: %+v", got)
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	inputs := [][]model.Commit{
		nil,
		commitsFromSummaries(""),
		commitsFromSummaries("", "", "a"),
		commitsFromSummaries("Fix login bug", "Fix login bug!!", "Add feature"),
		commitsFromSummaries("abcdefghij", "abcdefghiX", "abcdefghXX", "abcdefgXXX", "zzz"),
		commitsFromSummaries("docs: readme", "docs: readme.", "docs: readmes", "chore: ci", "chore: ci!"),
	}

	for _, in := range inputs {
		once := Deduplicate(in)
		twice := Deduplicate(once)
		if !equalStrings(summaries(once), summaries(twice)) {
			t.Fatalf("dedup not idempotent for %q: %q then %q", summaries(in), summaries(once), summaries(twice))
		}
	}
}

func TestDeduplicateLengthBoundMatchesFullScan(t *testing.T) {
	in := commitsFromSummaries(
		"refactor storage layer",
		"refactor storage layers",
		"refactor the storage layer entirely",
		"fix",
		"fix!",
		"fixes",
		"update changelog for 1.0",
		"update changelog for 1.1",
	)

	got := summaries(Deduplicate(in))

	// reference: compare with every kept summary, no shortcut
	var want, seen []string
	for _, s := range summaries(in) {
		dup := false
		for _, k := range seen {
			if Similarity(lower(s), k) > DuplicateThreshold {
				dup = true
				break
			}
		}
		if !dup {
			want = append(want, s)
			seen = append(seen, lower(s))
		}
	}

	if !equalStrings(got, want) {
		t.Fatalf("Deduplicate() = %q, want %q", got, want)
	}
}

func TestDeduplicateInvalidUTF8(t *testing.T) {
	if s := Similarity("a\xffb", "a\xfeb"); s > DuplicateThreshold {
		t.Fatalf("expected distinct invalid bytes to differ, got similarity %f", s)
	}
	if d := Levenshtein("a\xffb", "a\xfeb"); d != 1 {
		t.Fatalf("Levenshtein() = %d, want 1", d)
	}
	if d := Levenshtein("café", "cafe"); d != 1 {
		t.Fatalf("expected valid UTF-8 to be compared by rune, got %d", d)
	}

	got := summaries(Deduplicate(commitsFromSummaries("a\xffb", "a\xfeb", "A\xffB")))
	want := []string{"a\xffb", "a\xfeb"}
	if !equalStrings(got, want) {
		t.Fatalf("Deduplicate() = %q, want %q", got, want)
	}
}
