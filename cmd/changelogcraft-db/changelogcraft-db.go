// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command changelogcraft-db builds changelogs for every repository found
// under a folder and inserts them into a PostgreSQL database.
// Repositories may be git working trees or tar archives of them. When the
// configuration names a generation command, the changelog text is generated
// before insertion.
// Currently, only the Git VCS is supported.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync"
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

// program flags
var (
	configPath    = flag.String("c", "", "configuration file (JSON or YAML)")
	vflag         = flag.Bool("V", false, "print version.")
	cpuprofile    = flag.String("cpuprofile", "", "write cpu profile to file")
	depthflag     = flag.Uint("d", 0, "depth level where to find repositories")
	numGoroutines = flag.Uint("g", uint(runtime.NumCPU()), "max number of goroutines to spawn")
	daysflag      = flag.Uint("days", 30, "number of days of history to take into account (0 for all)")
)

func main() {
	var err error

	flag.Usage = func() {
		fmt.Printf("usage: %s [OPTION(S)] [REPOSITORIES ROOT FOLDER]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(0)
	}
	flag.Parse()

	if *vflag {
		fmt.Printf("%s - %s\n", filepath.Base(os.Args[0]), version)
		os.Exit(0)
	}

	if *cpuprofile != "" {
		var f *os.File
		f, err = os.Create(*cpuprofile)
		if err != nil {
			glog.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if len(flag.Args()) != 1 {
		fmt.Fprintln(os.Stderr, "invalid # of arguments")
		flag.Usage()
	}

	if len(*configPath) == 0 {
		glog.Fatal(errors.New("a configuration file must be specified"))
	}

	var cfg *config.Config
	cfg, err = config.ReadConfig(*configPath)
	if err != nil {
		glog.Fatal(err)
	}
	if cfg.Database == nil {
		glog.Fatal(errors.New("the configuration file has no database section"))
	}

	// Make sure we finish writing logs before exiting.
	defer glog.Flush()

	var s *store.Store
	s, err = store.Open(*cfg.Database)
	if err != nil {
		glog.Fatal(err)
	}
	defer s.Close()

	var g prompt.Generator
	if len(cfg.Generation.Command) > 0 {
		if g, err = prompt.NewCommandGenerator(cfg.Generation.Command); err != nil {
			glog.Fatal(err)
		}
	}

	w := windowFromDays(time.Now(), *daysflag)

	reposPath := make(chan string)
	var wg sync.WaitGroup
	for i := uint(0); i < workerCount(*numGoroutines); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range reposPath {
				if err := work(cfg, s, g, path, w); err != nil {
					glog.Errorf("%s: %v", path, err)
				}
			}
		}()
	}

	reposDir := flag.Arg(0)
	iterateRepos(reposPath, reposDir, *depthflag)

	close(reposPath)
	wg.Wait()
}

// work builds the changelog of the repository at path and stores it. g may
// be nil, in which case no text is generated.
func work(cfg *config.Config, s *store.Store, g prompt.Generator, path string, w model.TimeWindow) error {
	repository, err := repo.New(cfg.Data, path)
	if err != nil {
		return err
	}
	defer repository.Cleanup()

	cl, err := changelog.Generate(repository, w, cfg.Generation.ExcludePatterns)
	if errors.Is(err, changelog.ErrNoCommits) {
		glog.V(1).Infof("%s: no commits in window, skipping", path)
		return nil
	}
	if err != nil {
		return err
	}
	glog.V(1).Infof("%s: %d commits, %d excluded, %d duplicates, %d classified",
		path, cl.Stats.Total, cl.Stats.Excluded, cl.Stats.Duplicates, cl.Stats.Classified)

	exists, err := s.ExistsHash(cl.Hash)
	if err != nil {
		return err
	}
	if exists {
		glog.V(1).Infof("%s: changelog %s already stored", path, cl.Hash)
		return nil
	}

	if g != nil {
		if err := changelog.Describe(g, cfg.Generation, cl); err != nil {
			return err
		}
	}

	return s.Insert(cl)
}

// workerCount returns the size of the worker pool; at least one worker is
// needed to drain the repositories channel.
func workerCount(n uint) uint {
	if n == 0 {
		return 1
	}
	return n
}

// windowFromDays returns the window covering the last days before now.
// Zero days leaves the window open.
func windowFromDays(now time.Time, days uint) model.TimeWindow {
	if days == 0 {
		return model.TimeWindow{}
	}
	return model.TimeWindow{
		Since: now.AddDate(0, 0, -int(days)),
		Until: now,
	}
}

func iterateRepos(reposPath chan string, path string, depth uint) {
	fis, err := os.ReadDir(path)
	if err != nil {
		glog.Fatal(err)
	}

	if depth == 0 {
		for _, fi := range fis {
			if !fi.IsDir() {
				if filepath.Ext(fi.Name()) != ".tar" {
					continue
				}
			}

			repoPath := filepath.Join(path, fi.Name())
			glog.Info("adding repository: ", repoPath, " to the pool")
			reposPath <- repoPath
		}
		return
	}

	for _, fi := range fis {
		if !fi.IsDir() {
			continue
		}

		iterateRepos(reposPath, filepath.Join(path, fi.Name()), depth-1)
	}
}
