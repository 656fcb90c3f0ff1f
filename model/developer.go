// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "strings"

// Developer is the author or the committer of a commit, as recorded in the
// commit signature.
type Developer struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// DisplayName returns the name used to credit d in a changelog: its name,
// the local part of its email when the name is blank, or "unknown".
func (d Developer) DisplayName() string {
	if name := strings.TrimSpace(d.Name); name != "" {
		return name
	}
	if local, _, _ := strings.Cut(strings.TrimSpace(d.Email), "@"); local != "" {
		return local
	}
	return "unknown"
}
