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
	"database/sql"
	"fmt"
)

// SchemaVersion is the newest version of the schema.
const SchemaVersion = 1

type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  started_utc TEXT NOT NULL,
  library_count INTEGER NOT NULL,
  cell_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS libraries (
  session TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
  id INTEGER NOT NULL,
  name TEXT NOT NULL,
  path TEXT NOT NULL DEFAULT '',
  version TEXT NOT NULL DEFAULT '',
  dummy INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (session, id)
);
CREATE TABLE IF NOT EXISTS cells (
  session TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
  id INTEGER NOT NULL,
  library INTEGER NOT NULL,
  name TEXT NOT NULL,
  cell_group TEXT NOT NULL DEFAULT '',
  tech TEXT NOT NULL DEFAULT '',
  dummy INTEGER NOT NULL DEFAULT 0,
  created_utc TEXT NOT NULL DEFAULT '',
  revised_utc TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (session, id)
);
CREATE TABLE IF NOT EXISTS nodes (
  session TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
  id INTEGER NOT NULL,
  cell INTEGER NOT NULL,
  name TEXT NOT NULL,
  proto TEXT NOT NULL,
  x REAL NOT NULL,
  y REAL NOT NULL,
  width REAL NOT NULL,
  height REAL NOT NULL,
  angle INTEGER NOT NULL,
  mirror_x INTEGER NOT NULL,
  mirror_y INTEGER NOT NULL,
  PRIMARY KEY (session, id)
);
CREATE TABLE IF NOT EXISTS arcs (
  session TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
  id INTEGER NOT NULL,
  cell INTEGER NOT NULL,
  name TEXT NOT NULL,
  proto TEXT NOT NULL,
  width REAL NOT NULL,
  head_node TEXT NOT NULL,
  head_port TEXT NOT NULL,
  head_x REAL NOT NULL,
  head_y REAL NOT NULL,
  tail_node TEXT NOT NULL,
  tail_port TEXT NOT NULL,
  tail_x REAL NOT NULL,
  tail_y REAL NOT NULL,
  PRIMARY KEY (session, id)
);
CREATE TABLE IF NOT EXISTS exports (
  session TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
  id INTEGER NOT NULL,
  cell INTEGER NOT NULL,
  name TEXT NOT NULL,
  node TEXT NOT NULL,
  port TEXT NOT NULL,
  characteristic TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (session, id)
);
CREATE TABLE IF NOT EXISTS variables (
  session TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
  owner_kind TEXT NOT NULL,
  owner INTEGER NOT NULL,
  key TEXT NOT NULL,
  value TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cells_library ON cells(session, library);
CREATE INDEX IF NOT EXISTS idx_nodes_cell ON nodes(session, cell);
CREATE INDEX IF NOT EXISTS idx_variables_owner ON variables(session, owner_kind, owner);
`,
	},
}

// EnsureSchema brings a database up to the newest schema.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  applied_at_utc TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP)
);
`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}
	//
	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("read schema_migrations version: %w", err)
	} else if current > SchemaVersion {
		return fmt.Errorf("schema version %d is newer than supported version %d", current, SchemaVersion)
	}
	//
	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		//
		if err := apply(db, m); err != nil {
			return err
		}
	}
	//
	return nil
}

func apply(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", m.version, err)
	}
	//
	if _, err := tx.Exec(m.sql); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply migration %d: %w", m.version, err)
	} else if _, err := tx.Exec(`INSERT INTO schema_migrations(version) VALUES (?)`, m.version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %d: %w", m.version, err)
	}
	//
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", m.version, err)
	}
	//
	return nil
}
