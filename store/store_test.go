// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"testing"
	"time"

	"github.com/DevMine/changelogcraft/config"
)

func TestGenInsQuery(t *testing.T) {
	got := genInsQuery("changelogs", "id", "hash", "content")
	want := "INSERT INTO changelogs(id,hash,content)\nVALUES($1,$2,$3)\n"
	if got != want {
		t.Fatalf("genInsQuery() = %q, want %q", got, want)
	}
}

func TestDataSourceNameQuotesValues(t *testing.T) {
	dsn := dataSourceName(config.DatabaseConfig{
		HostName: "db.local",
		Port:     5433,
		UserName: "o'brien",
		Password: `p\w`,
		DBName:   "changelogs",
		SSLMode:  "require",
	})

	want := `user='o\'brien' password='p\\w' host='db.local' port=5433 dbname='changelogs' sslmode='require'`
	if dsn != want {
		t.Fatalf("dataSourceName() = %q, want %q", dsn, want)
	}
}

func TestOpenVerifiesConfig(t *testing.T) {
	if _, err := Open(config.DatabaseConfig{HostName: "localhost"}); err == nil {
		t.Fatalf("expected error for incomplete database config")
	}
}

func TestNullValues(t *testing.T) {
	if nullString("").Valid || !nullString("feat").Valid {
		t.Fatalf("unexpected nullString validity")
	}
	if nullTime(time.Time{}).Valid || !nullTime(time.Now()).Valid {
		t.Fatalf("unexpected nullTime validity")
	}
}
