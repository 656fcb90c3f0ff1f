// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

// ParsedMessage is the structured form of a commit message.
// Type, Scope and Body are empty when absent.
type ParsedMessage struct {
	// Type is the conventional commit verb, such as "feat" or "fix".
	Type string `json:"type,omitempty"`

	// Scope is the optional parenthesized qualifier following the type.
	Scope string `json:"scope,omitempty"`

	// Description is the summary after the prefix, or the whole first line
	// when the message does not follow the conventional commit grammar.
	Description string `json:"description"`

	// Body is the trimmed text after the first line.
	Body string `json:"body,omitempty"`

	// Breaking is set when the message carries a breaking change marker.
	Breaking bool `json:"breaking"`

	Raw string `json:"-"`
}

// HasType reports whether the message matched the conventional commit
// grammar.
func (p ParsedMessage) HasType() bool {
	return p.Type != ""
}

// ClassifiedCommit is a commit together with its category and parsed message.
type ClassifiedCommit struct {
	Commit   Commit        `json:"commit"`
	Category Category      `json:"category"`
	Parsed   ParsedMessage `json:"parsed"`
}

// Stats summarizes what the classification pipeline did with its input.
type Stats struct {
	Total       int              `json:"total"`
	Excluded    int              `json:"excluded"`
	Merges      int              `json:"merges"`
	Duplicates  int              `json:"duplicates"`
	Classified  int              `json:"classified"`
	PerCategory map[Category]int `json:"per_category"`
}
