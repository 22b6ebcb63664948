// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: store/history.go
// Summary: SQLite-backed scene revision history.
// Usage: Each save appends a revision; the editor can list, reload, prune.

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/charloom/charloom/grid"
)

// HistoryStore keeps an append-only log of scene revisions in SQLite.
type HistoryStore struct {
	db *sql.DB
	mu sync.Mutex
}

// RevisionInfo describes one stored revision without its payload.
type RevisionInfo struct {
	ID        int64
	Label     string
	CreatedAt time.Time
	Size      int
}

// ErrNoRevisions is returned when the history is empty.
var ErrNoRevisions = errors.New("store: no revisions")

const historySchema = `
CREATE TABLE IF NOT EXISTS revisions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at INTEGER NOT NULL,
	label TEXT NOT NULL DEFAULT '',
	data BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_revisions_created ON revisions(created_at);
`

// OpenHistory opens (creating if needed) the history database at path.
func OpenHistory(path string) (*HistoryStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open history db: %w", err)
	}
	// Single writer; the editor is single-threaded with respect to saves.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init history schema: %w", err)
	}
	return &HistoryStore{db: db}, nil
}

// SaveRevision appends the scene as a new revision and returns its id.
func (h *HistoryStore) SaveRevision(label string, scene *grid.Scene) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(scene.ToObject())
	if err != nil {
		return 0, err
	}
	res, err := h.db.Exec(
		`INSERT INTO revisions (created_at, label, data) VALUES (?, ?, ?)`,
		time.Now().UnixMilli(), label, data,
	)
	if err != nil {
		return 0, fmt.Errorf("store: save revision: %w", err)
	}
	return res.LastInsertId()
}

func sceneFromBlob(data []byte) (*grid.Scene, error) {
	var obj grid.SceneObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("store: corrupt revision: %w", err)
	}
	return grid.SceneFromObject(obj)
}

// LoadRevision rebuilds the scene stored under the given revision id.
func (h *HistoryStore) LoadRevision(id int64) (*grid.Scene, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var data []byte
	err := h.db.QueryRow(`SELECT data FROM revisions WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNoRevisions
	}
	if err != nil {
		return nil, fmt.Errorf("store: load revision %d: %w", id, err)
	}
	return sceneFromBlob(data)
}

// LatestRevision rebuilds the most recently saved scene.
func (h *HistoryStore) LatestRevision() (*grid.Scene, int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var (
		id   int64
		data []byte
	)
	err := h.db.QueryRow(
		`SELECT id, data FROM revisions ORDER BY id DESC LIMIT 1`,
	).Scan(&id, &data)
	if err == sql.ErrNoRows {
		return nil, 0, ErrNoRevisions
	}
	if err != nil {
		return nil, 0, fmt.Errorf("store: load latest revision: %w", err)
	}
	scene, err := sceneFromBlob(data)
	return scene, id, err
}

// Revisions lists stored revisions, newest first, up to limit (0 = all).
func (h *HistoryStore) Revisions(limit int) ([]RevisionInfo, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	query := `SELECT id, created_at, label, length(data) FROM revisions ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list revisions: %w", err)
	}
	defer rows.Close()

	var out []RevisionInfo
	for rows.Next() {
		var (
			info RevisionInfo
			ms   int64
		)
		if err := rows.Scan(&info.ID, &ms, &info.Label, &info.Size); err != nil {
			return nil, err
		}
		info.CreatedAt = time.UnixMilli(ms)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Prune deletes all but the newest keep revisions.
func (h *HistoryStore) Prune(keep int) error {
	if keep < 0 {
		keep = 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.db.Exec(
		`DELETE FROM revisions WHERE id NOT IN (SELECT id FROM revisions ORDER BY id DESC LIMIT ?)`,
		keep,
	)
	if err != nil {
		return fmt.Errorf("store: prune revisions: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (h *HistoryStore) Close() error {
	return h.db.Close()
}
