// Copyright 2014-2015 The DevMine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repo provides functions for accessing VCS information.
package repo

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/DevMine/changelogcraft/config"
	"github.com/DevMine/changelogcraft/model"
)

// Repository types.
const (
	Git = "git"
	Hg  = "mercurial"
	SVN = "subversion"
	Bzr = "bazaar"
	CVS = "cvs"
)

// Repo interface defines what needs to be implemented to construct a Repo object.
type Repo interface {
	// FetchCommits populates the list of commits of a repository with the
	// commits authored inside the given window, newest first.
	FetchCommits(w model.TimeWindow) error

	// GetName returns the name of a repo.
	GetName() string

	// GetCloneURL returns the clone URL of a repo.
	GetCloneURL() string

	// GetCommits returns the list of commits of a repo.
	GetCommits() []model.Commit

	// Cleanup frees resources held by the repo and removes temporary files.
	Cleanup() error
}

var _ Repo = (*gitRepo)(nil)

// New creates a new Repo object.
func New(cfg config.DataConfig, path string) (Repo, error) {
	vcs, err := detectVCS(path)
	if err != nil {
		return nil, err
	}

	gitDir := path
	var tmpDir string
	if strings.HasSuffix(path, ".tar") {
		tmpDir, err = os.MkdirTemp(cfg.TmpDir, "changelogcraft-")
		if err != nil {
			return nil, fmt.Errorf("create temporary directory: %w", err)
		}
		if err = untarGitFolder(tmpDir, path); err != nil {
			os.RemoveAll(tmpDir)
			return nil, err
		}
		gitDir = tmpDir
		path = strings.TrimSuffix(path, ".tar")
	}

	cloneURL, err := cloneURLOrPath(gitDir, path)
	if err != nil {
		os.RemoveAll(tmpDir)
		return nil, err
	}

	branch, err := extractGitDefaultBranch(gitDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		return nil, err
	}

	repository := model.Repository{
		Name:          extractName(path),
		VCS:           vcs,
		CloneURL:      cloneURL,
		ClonePath:     path,
		DefaultBranch: branch,
	}

	repo, err := newGitRepo(cfg, repository, gitDir, tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		return nil, err
	}

	return repo, nil
}

// detect vcs used
func detectVCS(path string) (string, error) {
	if strings.HasSuffix(path, ".tar") {
		archiveFile, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer archiveFile.Close()

		tr := tar.NewReader(archiveFile)

		for {
			hdr, err := tr.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return "", err
			}
			if strings.Contains(hdr.Name, ".git") {
				return Git, nil
			}
		}
	} else if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
		return Git, nil
	}

	return "", errors.New("unsupported repository type")
}

// extractName extracts to name of a repository given its clone path.
func extractName(path string) string {
	return filepath.Base(path)
}
