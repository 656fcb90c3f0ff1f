// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repo

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	g2g "github.com/libgit2/git2go/v34"

	"github.com/DevMine/changelogcraft/config"
	"github.com/DevMine/changelogcraft/model"
)

// detachedHead is the branch reported when HEAD does not point to a branch.
const detachedHead = "HEAD"

var (
	errNoRemote = errors.New("cannot extract git clone url")

	remoteURLRe = regexp.MustCompile(`url ?= ?(.+)`)
	headRefRe   = regexp.MustCompile(`ref: refs/heads/([a-zA-Z0-9].*)`)
)

// gitRepo is a repository with some things specific to git.
type gitRepo struct {
	model.Repository
	cfg    config.DataConfig
	r      *g2g.Repository
	tmpDir string

	window model.TimeWindow
	err    error
}

// newGitRepo creates a new gitRepo object. tmpDir, when not empty, is
// removed on Cleanup.
func newGitRepo(cfg config.DataConfig, repository model.Repository, gitDir, tmpDir string) (*gitRepo, error) {
	r, err := g2g.OpenRepository(gitDir)
	if err != nil {
		return nil, fmt.Errorf("open git repository %s: %w", gitDir, err)
	}

	return &gitRepo{Repository: repository, cfg: cfg, r: r, tmpDir: tmpDir}, nil
}

// FetchCommits walks the history from HEAD, newest first, and keeps the
// commits authored inside w. It stops once cfg.MaxCommits commits are
// collected.
func (gr *gitRepo) FetchCommits(w model.TimeWindow) error {
	gr.Commits = make([]model.Commit, 0, gr.maxCommits())
	gr.window = w
	gr.err = nil

	rw, err := gr.r.Walk()
	if err != nil {
		return err
	}
	defer rw.Free()

	rw.Sorting(g2g.SortTime)

	if err = rw.PushHead(); err != nil {
		return fmt.Errorf("walk %s from HEAD: %w", gr.Name, err)
	}

	if err = rw.Iterate(gr.addCommit); err != nil {
		return err
	}

	return gr.err
}

// GetName returns the name of a git repository.
func (gr *gitRepo) GetName() string {
	return gr.Name
}

// GetCloneURL returns the git repository clone URL.
func (gr *gitRepo) GetCloneURL() string {
	return gr.CloneURL
}

// GetCommits returns the list of commits in the git repository.
// If the list is empty of nil, this probably means that a call to
// FetchCommits() is needed to populate the list.
func (gr *gitRepo) GetCommits() []model.Commit {
	return gr.Commits
}

// Cleanup frees open repositories and removes temporary created files, if any.
func (gr *gitRepo) Cleanup() error {
	gr.r.Free()
	if gr.tmpDir == "" {
		return nil
	}
	return os.RemoveAll(gr.tmpDir)
}

func (gr *gitRepo) maxCommits() int {
	if gr.cfg.MaxCommits <= 0 || gr.cfg.MaxCommits > config.MaxCommitsLimit {
		return config.MaxCommitsLimit
	}
	return gr.cfg.MaxCommits
}

// addCommit is conform to the g2g.RevWalkIterator type in order to be used
// by the g2g.Iterate() function to iterate over the commits of a Git
// repository. Returning false stops the walk.
func (gr *gitRepo) addCommit(c *g2g.Commit) bool {
	if c == nil {
		return false
	}
	defer c.Free()

	author := c.Author()
	if !gr.window.Contains(author.When) {
		return true
	}

	commit := model.Commit{
		VCSID:   c.Id().String(),
		Message: c.Message(),
		Author: model.Developer{
			Name:  author.Name,
			Email: author.Email,
		},
		AuthorDate: author.When,
	}

	committer := c.Committer()
	commit.Committer = model.Developer{Name: committer.Name, Email: committer.Email}
	commit.CommitDate = committer.When

	for i := uint(0); i < c.ParentCount(); i++ {
		commit.ParentIDs = append(commit.ParentIDs, c.ParentId(i).String())
	}

	if err := gr.diffStats(c, &commit); err != nil {
		gr.err = fmt.Errorf("commit %s: %w", commit.VCSID, err)
		return false
	}

	gr.Commits = append(gr.Commits, commit)

	return len(gr.Commits) < gr.maxCommits()
}

// diffStats fills the change counters of commit by diffing c against its
// first parent, or against the empty tree for a root commit.
func (gr *gitRepo) diffStats(c *g2g.Commit, commit *model.Commit) error {
	var parentTree *g2g.Tree
	if c.ParentCount() > 0 {
		parent := c.Parent(0)
		if parent == nil {
			return errors.New("cannot load parent commit")
		}
		defer parent.Free()

		var err error
		if parentTree, err = parent.Tree(); err != nil {
			return err
		}
		defer parentTree.Free()
	}

	cTree, err := c.Tree()
	if err != nil {
		return err
	}
	defer cTree.Free()

	diffOpts, err := g2g.DefaultDiffOptions()
	if err != nil {
		return err
	}

	diff, err := gr.r.DiffTreeToTree(parentTree, cTree, &diffOpts)
	if err != nil {
		return err
	}
	defer diff.Free()

	stats, err := diff.Stats()
	if err != nil {
		return err
	}
	defer stats.Free()

	commit.FileChangedCount = stats.FilesChanged()
	commit.InsertionsCount = stats.Insertions()
	commit.DeletionsCount = stats.Deletions()

	return nil
}

// extractGitURL returns a git repository clone URL as a string, given the
// path to its location on disk.
func extractGitURL(path string) (string, error) {
	bs, err := os.ReadFile(filepath.Join(path, ".git", "config"))
	if err != nil {
		return "", err
	}

	match := remoteURLRe.FindStringSubmatch(string(bs))
	if len(match) != 2 || len(strings.TrimSpace(match[1])) == 0 {
		return "", errNoRemote
	}

	return strings.TrimSpace(match[1]), nil
}

// cloneURLOrPath returns the clone URL of the repository found in gitDir,
// or the absolute path of the repository when it has no remote.
func cloneURLOrPath(gitDir, path string) (string, error) {
	url, err := extractGitURL(gitDir)
	if err == nil {
		return url, nil
	}
	if !errors.Is(err, errNoRemote) {
		return "", err
	}
	return filepath.Abs(path)
}

// extractGitDefaultBranch returns the branch to which HEAD of a git
// repository is pointing at. A detached HEAD yields "HEAD".
func extractGitDefaultBranch(path string) (string, error) {
	bs, err := os.ReadFile(filepath.Join(path, ".git", "HEAD"))
	if err != nil {
		return "", err
	}

	match := headRefRe.FindStringSubmatch(string(bs))
	if len(match) != 2 {
		return detachedHead, nil
	}

	return strings.TrimSpace(match[1]), nil
}

// untarGitFolder extracts the root's .git directory contained in a tar archive
// of a git repository into destPath. Entries and symbolic links leading
// outside of destPath are rejected.
func untarGitFolder(destPath, archivePath string) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer archiveFile.Close()

	// make sure to create dest path
	if err = os.MkdirAll(destPath, os.ModePerm); err != nil {
		return err
	}

	tr := tar.NewReader(archiveFile)

	// make sure we keep the trailing /
	basePath := filepath.Base(strings.TrimSuffix(archivePath, ".tar"))
	dotGitDirPath := basePath + "/.git/"
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		// we only want to extract the .git/ subtree and skip the rest
		if !strings.HasPrefix(hdr.Name, dotGitDirPath) {
			continue
		}

		name := strings.TrimPrefix(hdr.Name, basePath)
		target := filepath.Join(destPath, filepath.FromSlash(name))
		if !isWithin(destPath, target) {
			return fmt.Errorf("invalid path in archive: %s", hdr.Name)
		}
		if crossesSymlink(destPath, target) {
			return fmt.Errorf("path in archive goes through a symbolic link: %s", hdr.Name)
		}

		mode := hdr.FileInfo().Mode()
		switch {
		case mode&os.ModeDir != 0:
			if err := os.MkdirAll(target, mode.Perm()|0o700); err != nil {
				return err
			}
		case mode&os.ModeSymlink != 0:
			link := filepath.Clean(filepath.FromSlash(hdr.Linkname))
			if filepath.IsAbs(link) || !isWithin(destPath, filepath.Join(filepath.Dir(target), link)) {
				return fmt.Errorf("invalid symbolic link in archive: %s -> %s", hdr.Name, hdr.Linkname)
			}
			if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
				return err
			}
			if err := os.Symlink(link, target); err != nil {
				return err
			}
		default: // consider it a regular file
			if err := extractFile(target, tr); err != nil {
				return err
			}
		}
	}

	return nil
}

// isWithin reports whether path, once cleaned, is dir or lies below it.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// crossesSymlink reports whether target, or one of its parents below dir,
// already exists as a symbolic link.
func crossesSymlink(dir, target string) bool {
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == "." {
		return false
	}

	p := dir
	for _, elem := range strings.Split(rel, string(filepath.Separator)) {
		p = filepath.Join(p, elem)
		fi, err := os.Lstat(p)
		if err != nil {
			return false
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			return true
		}
	}
	return false
}

func extractFile(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return err
	}

	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, r)
	return err
}
