//usr/bin/env go run $0 $@; exit
// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package batch.go allows for batch processing several repositories with
// changelogcraft.
// It writes the JSON changelog of every repository found in a folder into
// an output folder, one file per repository.
// Repositories may be git working trees or tar archives of them.
// Depth where to find repositories from the given directory may be specified
// with the -d argument (which defaults to 0). At most -g repositories are
// processed at the same time.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// job is one repository to process and the file its changelog goes to.
type job struct {
	repoPath string
	outPath  string
}

func main() {
	flag.Usage = func() {
		fmt.Printf("usage: %s [-d depth] [-g workers] [-since date] [REPOSITORIES ROOT FOLDER] [OUTPUT FOLDER]\n",
			filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(0)
	}
	depthflag := flag.Uint("d", 0, "depth level where to find repositories")
	numGoroutines := flag.Uint("g", uint(runtime.NumCPU()), "max number of repositories processed at once")
	configflag := flag.String("c", "", "changelogcraft configuration file")
	sinceflag := flag.String("since", "", "only consider commits authored on or after this date (YYYY-MM-DD)")
	flag.Parse()

	if len(flag.Args()) != 2 {
		fmt.Fprintln(os.Stderr, "invalid # of arguments")
		flag.Usage()
	}

	reposDir := flag.Arg(0)
	outDir := flag.Arg(1)

	ccBin, err := exec.LookPath("changelogcraft")
	if err != nil {
		fatal(err)
	}

	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		fatal(err)
	}

	var args []string
	if *configflag != "" {
		args = append(args, "-c", *configflag)
	}
	if *sinceflag != "" {
		args = append(args, "-since", *sinceflag)
	}

	jobs, err := collectRepos(reposDir, outDir, *depthflag)
	if err != nil {
		fatal(err)
	}

	workers := *numGoroutines
	if workers == 0 {
		workers = 1
	}
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for _, j := range jobs {
		fmt.Println("current repository: ", j.repoPath)

		wg.Add(1)
		sem <- struct{}{}
		go func(j job) {
			defer func() {
				<-sem
				wg.Done()
			}()
			if err := process(ccBin, args, j); err != nil {
				fmt.Println(j.repoPath, err)
			}
		}(j)
	}
	wg.Wait()
}

// process runs changelogcraft on one repository and writes its output.
func process(ccBin string, args []string, j job) error {
	cmdArgs := append(append([]string{}, args...), j.repoPath)
	out, err := exec.Command(ccBin, cmdArgs...).Output()
	if err != nil {
		return err
	}
	return os.WriteFile(j.outPath, []byte(strings.TrimSpace(string(out))+"\n"), 0o644)
}

// collectRepos lists the repositories, directories or .tar archives, found
// depth levels below path.
func collectRepos(path, outDir string, depth uint) ([]job, error) {
	fis, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var jobs []job
	for _, fi := range fis {
		if depth == 0 {
			if !fi.IsDir() && filepath.Ext(fi.Name()) != ".tar" {
				continue
			}
			jobs = append(jobs, job{
				repoPath: filepath.Join(path, fi.Name()),
				outPath:  filepath.Join(outDir, strings.TrimSuffix(fi.Name(), ".tar")+".json"),
			})
			continue
		}

		if !fi.IsDir() {
			continue
		}
		sub, err := collectRepos(filepath.Join(path, fi.Name()), outDir, depth-1)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, sub...)
	}
	return jobs, nil
}

func fatal(a ...interface{}) {
	fmt.Fprintln(os.Stderr, a...)
	os.Exit(1)
}
