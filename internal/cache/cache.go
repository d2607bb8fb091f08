/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package cache keeps the last-known layouts in a local SQLite database so
// a failed remote load can still show the user's screens. The cache is a
// mirror, never the source of truth: every successful remote fetch and
// every local mutation overwrite it.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	applog "screendesigner/internal/log"

	"screendesigner/internal/domain"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// FileName is the cache database file inside the user's data dir.
	FileName = "layouts.sqlite"

	schemaVersion = 1
)

// Cache wraps the SQLite handle.
type Cache struct {
	db  *sql.DB
	log *slog.Logger
}

// Open creates or opens the cache database under dir, enables WAL mode and
// ensures the schema exists.
func Open(dir string) (*Cache, error) {
	l := applog.WithComponent("cache")
	if dir == "" {
		return nil, errors.New("cache dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	l.Debug("cache ready", slog.String("path", path))
	return &Cache{db: db, log: l}, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS layouts (
			tab_id     TEXT PRIMARY KEY,
			doc        TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('schema', ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		fmt.Sprint(schemaVersion)); err != nil {
		return fmt.Errorf("seed schema version: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (c *Cache) Close() error { return c.db.Close() }

// PutLayout upserts one tab's JSON document.
func (c *Cache) PutLayout(l domain.Layout) error {
	doc, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = c.db.Exec(
		`INSERT INTO layouts (tab_id, doc, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(tab_id) DO UPDATE SET doc=excluded.doc, updated_at=excluded.updated_at`,
		l.TabID, string(doc), now)
	if err != nil {
		return fmt.Errorf("put layout: %w", err)
	}
	return nil
}

// PutLayouts replaces the whole cache content with the given layouts.
func (c *Cache) PutLayouts(layouts map[string]domain.Layout) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.Exec(`DELETE FROM layouts`); err != nil {
		return fmt.Errorf("clear layouts: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, l := range layouts {
		doc, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("marshal layout %s: %w", l.TabID, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO layouts (tab_id, doc, updated_at) VALUES (?, ?, ?)`,
			l.TabID, string(doc), now); err != nil {
			return fmt.Errorf("insert layout %s: %w", l.TabID, err)
		}
	}
	return tx.Commit()
}

// DeleteTab removes one cached tab.
func (c *Cache) DeleteTab(tabID string) error {
	_, err := c.db.Exec(`DELETE FROM layouts WHERE tab_id = ?`, tabID)
	return err
}

// Layouts returns all cached layouts keyed by tab id.
func (c *Cache) Layouts() (map[string]domain.Layout, error) {
	rows, err := c.db.Query(`SELECT tab_id, doc FROM layouts`)
	if err != nil {
		return nil, fmt.Errorf("query layouts: %w", err)
	}
	defer rows.Close()
	out := map[string]domain.Layout{}
	for rows.Next() {
		var tabID, doc string
		if err := rows.Scan(&tabID, &doc); err != nil {
			return nil, err
		}
		var l domain.Layout
		if err := json.Unmarshal([]byte(doc), &l); err != nil {
			// A corrupt row must not take the rest of the cache down.
			c.log.Warn("dropping corrupt cache row", slog.String("tab_id", tabID), slog.Any("err", err))
			continue
		}
		out[tabID] = l
	}
	return out, rows.Err()
}
