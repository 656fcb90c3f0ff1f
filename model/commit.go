// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"strings"
	"time"
)

// Commit is a representation of a VCS commit.
type Commit struct {
	VCSID            string    `json:"vcs_id"`
	Message          string    `json:"message"`
	Author           Developer `json:"author"`
	Committer        Developer `json:"committer"`
	AuthorDate       time.Time `json:"author_date"`
	CommitDate       time.Time `json:"commit_date"`
	ParentIDs        []string  `json:"parent_ids,omitempty"`
	FileChangedCount int       `json:"file_changed_count"`
	InsertionsCount  int       `json:"insertions_count"`
	DeletionsCount   int       `json:"deletions_count"`
}

// Summary returns the first line of the commit message.
func (c Commit) Summary() string {
	if i := strings.IndexByte(c.Message, '\n'); i >= 0 {
		return c.Message[:i]
	}
	return c.Message
}

// ShortID returns the first 8 characters of the commit identifier.
func (c Commit) ShortID() string {
	if len(c.VCSID) > 8 {
		return c.VCSID[:8]
	}
	return c.VCSID
}
