// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/consensys/go-jelib/pkg/design"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// timeLayout is a fixed width layout, such that timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store persists imported designs into an sqlite database.  Each import is
// saved under its own session.
type Store struct {
	path  string
	db    *sql.DB
	mutex sync.Mutex
}

// Session summarises one saved import.
type Session struct {
	Id        uuid.UUID
	Started   time.Time
	Libraries int
	Cells     int
}

// Open opens (or creates) the database at a given path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("store path must not be empty")
	} else if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil, fmt.Errorf("store path %q is a directory, expected file", path)
	}
	//
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory %q: %w", dir, err)
		}
	}
	//
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	//
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store %q: %w", path, err)
	}
	//
	db.SetMaxOpenConns(1)
	//
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite store %q: %w", path, err)
	} else if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", path, err)
	}
	//
	return &Store{path: path, db: db}, nil
}

// Path returns the file holding this store.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	//
	return s.db.Close()
}

// NewSession allocates the identifier of a new import.
func NewSession() uuid.UUID {
	return uuid.New()
}

// SaveDesign writes a set of libraries, with all their contents, under a given
// session.  Either everything is written, or nothing is.
func (s *Store) SaveDesign(ctx context.Context, session uuid.UUID, libs []*design.Library) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	//
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	//
	w := &writer{ctx: ctx, tx: tx, session: session.String()}
	//
	if err := w.design(libs); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("save session %s: %w", session, err)
	}
	//
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session %s: %w", session, err)
	}
	//
	return nil
}

// Sessions lists the saved imports, oldest first.
func (s *Store) Sessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_utc, library_count, cell_count FROM sessions ORDER BY started_utc, id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	//
	defer rows.Close()
	//
	var sessions []Session
	//
	for rows.Next() {
		var (
			s              Session
			sid, startedTS string
		)
		//
		if err := rows.Scan(&sid, &startedTS, &s.Libraries, &s.Cells); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		} else if s.Id, err = uuid.Parse(sid); err != nil {
			return nil, fmt.Errorf("session id %q: %w", sid, err)
		} else if s.Started, err = time.Parse(timeLayout, startedTS); err != nil {
			return nil, fmt.Errorf("session %s start time: %w", sid, err)
		}
		//
		sessions = append(sessions, s)
	}
	//
	return sessions, rows.Err()
}

// Count returns the number of rows of a table saved under a given session.
func (s *Store) Count(ctx context.Context, session uuid.UUID, table string) (int, error) {
	switch table {
	case "libraries", "cells", "nodes", "arcs", "exports", "variables":
	default:
		return 0, fmt.Errorf("unknown table %s", table)
	}
	//
	var n int
	//
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE session = ?`, table)
	if err := s.db.QueryRowContext(ctx, query, session.String()).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	//
	return n, nil
}
