// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package changelog builds changelog records out of repository history.
package changelog

import (
	"errors"
	"fmt"

	"github.com/DevMine/changelogcraft/classify"
	"github.com/DevMine/changelogcraft/config"
	"github.com/DevMine/changelogcraft/model"
	"github.com/DevMine/changelogcraft/prompt"
	"github.com/DevMine/changelogcraft/repo"
)

// ErrNoCommits is returned when a repository has no commit in the
// requested window.
var ErrNoCommits = errors.New("no commits found in the specified window")

// Generate fetches the commits of r authored inside w and files them into a
// new changelog. excludePatterns are added to the built-in noise patterns.
func Generate(r repo.Repo, w model.TimeWindow, excludePatterns []string) (*model.Changelog, error) {
	if err := r.FetchCommits(w); err != nil {
		return nil, fmt.Errorf("fetch commits of %s: %w", r.GetName(), err)
	}

	commits := r.GetCommits()
	if len(commits) == 0 {
		return nil, ErrNoCommits
	}

	return FromCommits(r.GetCloneURL(), w, commits, excludePatterns), nil
}

// FromCommits files already fetched commits into a new changelog.
func FromCommits(repository string, w model.TimeWindow, commits []model.Commit, excludePatterns []string) *model.Changelog {
	res := classify.Run(commits, excludePatterns)
	return model.NewChangelog(repository, w, classify.Group(res.Commits), res.Stats)
}

// Describe fills the content of cl with the text g generates for it.
// A changelog left without entries keeps an empty content.
func Describe(g prompt.Generator, cfg config.GenerationConfig, cl *model.Changelog) error {
	if len(cl.Entries()) == 0 {
		return nil
	}

	content, err := prompt.Render(g, cfg, *cl)
	if err != nil {
		return err
	}
	cl.Content = content
	return nil
}
