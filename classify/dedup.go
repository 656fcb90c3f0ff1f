// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/DevMine/changelogcraft/model"
)

// DuplicateThreshold is the similarity above which two summaries are
// considered near-duplicates.
const DuplicateThreshold = 0.8

// Levenshtein returns the edit distance between a and b, counting
// single-rune insertions, deletions and substitutions. When either string is
// not valid UTF-8, bytes are compared instead of runes.
func Levenshtein(a, b string) int {
	ra, rb := symbols(a, b)
	return levenshtein(ra, rb)
}

func levenshtein(ra, rb []rune) int {
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}

	return prev[len(rb)]
}

// Similarity returns the normalized edit distance similarity of a and b,
// between 0 and 1. Two empty strings are identical. Lengths are counted the
// way Levenshtein compares: in runes, or in bytes for invalid UTF-8.
func Similarity(a, b string) float64 {
	ra, rb := symbols(a, b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1.0
	}
	return ratio(longest, levenshtein(ra, rb))
}

func ratio(longest, distance int) float64 {
	return float64(longest-distance) / float64(longest)
}

// symbols returns the units a and b are compared on. Decoding invalid UTF-8
// turns every bad byte into utf8.RuneError, so such strings are compared
// byte by byte.
func symbols(a, b string) ([]rune, []rune) {
	if utf8.ValidString(a) && utf8.ValidString(b) {
		return []rune(a), []rune(b)
	}
	return byteSymbols(a), byteSymbols(b)
}

func byteSymbols(s string) []rune {
	rs := make([]rune, len(s))
	for i := 0; i < len(s); i++ {
		rs[i] = rune(s[i])
	}
	return rs
}

// summary is a lower-cased commit summary along with its decoded runes.
type summary struct {
	text  string
	runes []rune
	valid bool
}

func newSummary(text string) summary {
	s := summary{text: text, valid: utf8.ValidString(text)}
	if s.valid {
		s.runes = []rune(text)
	}
	return s
}

// units returns the symbols a and b are compared on, reusing decoded runes.
func units(a, b summary) ([]rune, []rune) {
	if a.valid && b.valid {
		return a.runes, b.runes
	}
	return symbols(a.text, b.text)
}

// Deduplicate drops commits whose lower-cased summary is more than
// DuplicateThreshold similar to the summary of a commit kept before it.
// The first commit of a group of near-duplicates is always kept and the
// input order is preserved.
func Deduplicate(commits []model.Commit) []model.Commit {
	kept := make([]model.Commit, 0, len(commits))
	exact := make(map[string]bool)
	var seen []summary

	for _, c := range commits {
		s := newSummary(foldCase(c.Summary()))
		if isNearDuplicate(s, exact, seen) {
			continue
		}

		kept = append(kept, c)
		exact[s.text] = true
		seen = append(seen, s)
	}

	return kept
}

// foldCase lower-cases a summary. strings.ToLower replaces invalid UTF-8 with
// utf8.RuneError, so invalid summaries are only folded in ASCII.
func foldCase(s string) string {
	if utf8.ValidString(s) {
		return strings.ToLower(s)
	}

	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

func isNearDuplicate(cand summary, exact map[string]bool, seen []summary) bool {
	// identical summaries have a similarity of 1
	if exact[cand.text] {
		return true
	}

	for _, s := range seen {
		ra, rb := units(cand, s)
		longest := max(len(ra), len(rb))
		if longest == 0 {
			return true
		}
		// the edit distance is at least the length difference
		if ratio(longest, abs(len(ra)-len(rb))) <= DuplicateThreshold {
			continue
		}
		if ratio(longest, levenshtein(ra, rb)) > DuplicateThreshold {
			return true
		}
	}
	return false
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
