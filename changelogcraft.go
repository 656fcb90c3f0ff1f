// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command changelogcraft builds a categorized changelog out of the commit
// history of a repository.
// Commits are fetched from HEAD within a time window, noise commits and
// near-duplicates are dropped and the rest is grouped by category. The
// result is printed as a JSON object and may be inserted into a PostgreSQL
// database. With -generate, the configured generation command turns the
// grouped commits into changelog text, stored as the changelog content.
// Currently, only the Git VCS is supported.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/DevMine/changelogcraft/changelog"
	"github.com/DevMine/changelogcraft/config"
	"github.com/DevMine/changelogcraft/model"
	"github.com/DevMine/changelogcraft/prompt"
	"github.com/DevMine/changelogcraft/repo"
	"github.com/DevMine/changelogcraft/store"
)

const version = "0.1.0"

// dateLayout is the layout of the -since and -until flags.
const dateLayout = "2006-01-02"

// program flags
var (
	configPath  = flag.String("c", "", "configuration file (JSON or YAML)")
	vflag       = flag.Bool("V", false, "print version.")
	jsonflag    = flag.Bool("json", true, "json output")
	promptflag  = flag.Bool("prompt", false, "print the text generation prompt instead of json")
	dbflag      = flag.Bool("db", false, "insert the changelog into the database")
	genflag     = flag.Bool("generate", false, "generate the changelog text with the configured generation command")
	sinceflag   = flag.String("since", "", "only consider commits authored on or after this date (YYYY-MM-DD)")
	untilflag   = flag.String("until", "", "only consider commits authored before the end of this date (YYYY-MM-DD)")
	excludeflag = flag.String("exclude", "", "comma separated list of additional noise patterns")
)

func main() {
	flag.Usage = func() {
		fmt.Printf("usage: %s [OPTION(S)] [REPOSITORY PATH]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(0)
	}
	flag.Parse()

	// Make sure we finish writing logs before exiting.
	defer glog.Flush()

	if *vflag {
		fmt.Printf("%s - %s\n", filepath.Base(os.Args[0]), version)
		os.Exit(0)
	}

	if len(flag.Args()) != 1 {
		fmt.Fprintln(os.Stderr, "invalid # of arguments")
		flag.Usage()
	}

	cfg, err := config.ReadConfig(*configPath)
	if err != nil {
		glog.Fatal(err)
	}

	if *dbflag && cfg.Database == nil {
		glog.Fatal(errors.New("a configuration file with a database section must be specified when using db option"))
	}

	if *genflag && len(cfg.Generation.Command) == 0 {
		glog.Fatal(errors.New("a configuration file with a generation command must be specified when using generate option"))
	}

	window, err := parseWindow(*sinceflag, *untilflag)
	if err != nil {
		glog.Fatal(err)
	}

	if err := run(cfg, flag.Arg(0), window, excludePatterns(cfg.Generation, *excludeflag)); err != nil {
		glog.Flush()
		fatal(err)
	}
}

func run(cfg *config.Config, repoPath string, w model.TimeWindow, patterns []string) error {
	repository, err := repo.New(cfg.Data, repoPath)
	if err != nil {
		return err
	}
	defer repository.Cleanup()

	glog.Info("fetching commits of ", repository.GetName())
	tic := time.Now()
	cl, err := changelog.Generate(repository, w, patterns)
	if err != nil {
		return err
	}
	glog.Infof("done in %v: %d commits, %d excluded, %d duplicates, %d classified",
		time.Since(tic), cl.Stats.Total, cl.Stats.Excluded, cl.Stats.Duplicates, cl.Stats.Classified)
	glog.V(1).Infof("%d merge commits, per category: %v", cl.Stats.Merges, cl.Stats.PerCategory)

	if *genflag {
		g, err := prompt.NewCommandGenerator(cfg.Generation.Command)
		if err != nil {
			return err
		}
		glog.Info("generating changelog text with ", g.Name)
		if err := changelog.Describe(g, cfg.Generation, cl); err != nil {
			return err
		}
	}

	switch {
	case *promptflag:
		fmt.Println(prompt.BuildUserPrompt(cfg.Generation, *cl))
	case *jsonflag:
		bs, err := json.Marshal(cl)
		if err != nil {
			return err
		}
		fmt.Println(string(bs))
	}

	if *dbflag {
		return insertChangelog(*cfg.Database, cl)
	}
	return nil
}

// insertChangelog stores cl unless an identical changelog is already there.
func insertChangelog(dbCfg config.DatabaseConfig, cl *model.Changelog) error {
	s, err := store.Open(dbCfg)
	if err != nil {
		return err
	}
	defer s.Close()

	exists, err := s.ExistsHash(cl.Hash)
	if err != nil {
		return err
	}
	if exists {
		glog.Infof("changelog %s already stored, skipping", cl.Hash)
		return nil
	}

	glog.Infof("inserting changelog with %d entries into the database", cl.Stats.Classified)
	return s.Insert(cl)
}

// parseWindow builds a time window out of the -since and -until flags. The
// until date is inclusive.
func parseWindow(since, until string) (model.TimeWindow, error) {
	var w model.TimeWindow
	var err error

	if since != "" {
		if w.Since, err = time.Parse(dateLayout, since); err != nil {
			return w, fmt.Errorf("invalid -since date: %w", err)
		}
	}
	if until != "" {
		var t time.Time
		if t, err = time.Parse(dateLayout, until); err != nil {
			return w, fmt.Errorf("invalid -until date: %w", err)
		}
		w.Until = t.Add(24*time.Hour - time.Nanosecond)
	}
	if !w.Since.IsZero() && !w.Until.IsZero() && w.Until.Before(w.Since) {
		return w, errors.New("-until must not be before -since")
	}

	return w, nil
}

// excludePatterns returns the configured exclude patterns followed by the
// ones given on the command line. The configuration is left untouched.
func excludePatterns(cfg config.GenerationConfig, flagValue string) []string {
	extra := splitPatterns(flagValue)
	patterns := make([]string, 0, len(cfg.ExcludePatterns)+len(extra))
	patterns = append(patterns, cfg.ExcludePatterns...)
	return append(patterns, extra...)
}

func splitPatterns(s string) []string {
	var patterns []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// fatal prints an error on standard error stream and exits.
func fatal(a ...interface{}) {
	fmt.Fprintln(os.Stderr, a...)
	os.Exit(1)
}
