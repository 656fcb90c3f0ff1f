// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store persists changelogs into a PostgreSQL database.
package store

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/DevMine/changelogcraft/config"
	"github.com/DevMine/changelogcraft/model"
)

// database fields per tables
var (
	changelogFields = []string{
		"id",
		"clone_url",
		"since",
		"until",
		"hash",
		"content",
		"total_count",
		"excluded_count",
		"merge_count",
		"duplicate_count",
		"created_at"}

	entryFields = []string{
		"changelog_id",
		"position",
		"category",
		"vcs_id",
		"commit_type",
		"commit_scope",
		"description",
		"is_breaking",
		"author_name",
		"author_date"}
)

// Store is a PostgreSQL backed changelog store.
type Store struct {
	db *sql.DB
}

// Open creates a session to the database.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	if err := cfg.Verify(); err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", dataSourceName(cfg))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database session.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert inserts a changelog and its entries into the database, in a
// single transaction.
func (s *Store) Insert(cl *model.Changelog) error {
	if cl == nil {
		return errors.New("nil changelog given")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(genInsQuery("changelogs", changelogFields...),
		cl.ID, cl.Repository, nullTime(cl.Window.Since), nullTime(cl.Window.Until),
		cl.Hash, cl.Content,
		cl.Stats.Total, cl.Stats.Excluded, cl.Stats.Merges, cl.Stats.Duplicates,
		cl.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert changelog %s: %w", cl.ID, err)
	}

	entryStmt, err := tx.Prepare(genInsQuery("changelog_entries", entryFields...))
	if err != nil {
		return err
	}

	for i, cc := range cl.Entries() {
		if err := insertEntry(entryStmt, cl.ID, i, cc); err != nil {
			return fmt.Errorf("insert entry %s: %w", cc.Commit.VCSID, err)
		}
	}

	if err := entryStmt.Close(); err != nil {
		return err
	}

	return tx.Commit()
}

// ExistsHash returns true if a changelog with the given hash is already
// stored, false otherwise.
func (s *Store) ExistsHash(hash string) (bool, error) {
	var state bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM changelogs WHERE hash=$1 LIMIT 1)", hash).Scan(&state)
	return state, err
}

// insertEntry inserts one classified commit of a changelog.
func insertEntry(stmt *sql.Stmt, changelogID string, position int, cc model.ClassifiedCommit) error {
	_, err := stmt.Exec(
		changelogID, position, string(cc.Category), cc.Commit.VCSID,
		nullString(cc.Parsed.Type), nullString(cc.Parsed.Scope), cc.Parsed.Description,
		cc.Parsed.Breaking, cc.Commit.Author.Name, cc.Commit.AuthorDate)
	return err
}

func dataSourceName(cfg config.DatabaseConfig) string {
	return fmt.Sprintf(
		"user='%s' password='%s' host='%s' port=%d dbname='%s' sslmode='%s'",
		quote(cfg.UserName), quote(cfg.Password), quote(cfg.HostName), cfg.Port,
		quote(cfg.DBName), cfg.SSLMode)
}

// quote escapes a value for a single-quoted libpq connection parameter.
func quote(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

// genInsQuery generates a query string for an insertion in the database.
func genInsQuery(tableName string, fields ...string) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("INSERT INTO %s(%s)\n",
		tableName, strings.Join(fields, ",")))
	buf.WriteString("VALUES(")

	for ind := range fields {
		if ind > 0 {
			buf.WriteString(",")
		}

		buf.WriteString(fmt.Sprintf("$%d", ind+1))
	}

	buf.WriteString(")\n")

	return buf.String()
}
