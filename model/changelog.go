// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"encoding/hex"
	"io"
	"time"

	"github.com/google/uuid"
	mmh3 "github.com/spaolacci/murmur3"
)

// Changelog is a generated changelog for a repository and a time window.
type Changelog struct {
	ID         string                          `json:"id"`
	Repository string                          `json:"repository"`
	Window     TimeWindow                      `json:"window"`
	Hash       string                          `json:"hash"`
	Groups     map[Category][]ClassifiedCommit `json:"groups"`
	Stats      Stats                           `json:"stats"`
	Content    string                          `json:"content,omitempty"`
	CreatedAt  time.Time                       `json:"created_at"`
}

// NewChangelog creates a changelog record for the given groups and computes
// its fingerprint.
func NewChangelog(repository string, w TimeWindow, groups map[Category][]ClassifiedCommit, stats Stats) *Changelog {
	return &Changelog{
		ID:         uuid.NewString(),
		Repository: repository,
		Window:     w,
		Hash:       ChangelogHash(repository, groups),
		Groups:     groups,
		Stats:      stats,
		CreatedAt:  time.Now().UTC(),
	}
}

// Entries returns the classified commits of the changelog, section by
// section in Categories order.
func (cl Changelog) Entries() []ClassifiedCommit {
	var entries []ClassifiedCommit
	for _, cat := range Categories {
		entries = append(entries, cl.Groups[cat]...)
	}
	return entries
}

// ChangelogHash generates a hash (mmh3) from the repository and the
// classified commits of each section.
// Two changelogs with the same hash hold the same commits filed under the
// same categories.
func ChangelogHash(repository string, groups map[Category][]ClassifiedCommit) string {
	h := mmh3.New128()

	io.WriteString(h, repository)
	for _, cat := range Categories {
		io.WriteString(h, "\x00")
		io.WriteString(h, string(cat))
		for _, cc := range groups[cat] {
			io.WriteString(h, "\x1f")
			io.WriteString(h, cc.Commit.VCSID)
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
