// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: store/snapshot.go
// Summary: JSON scene snapshots on disk with a content hash for integrity.
// Usage: The editor saves/loads working documents through a SnapshotStore.

package store

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charloom/charloom/grid"
)

// SnapshotStore persists scene snapshots to a single JSON file.
type SnapshotStore struct {
	path string
	mu   sync.Mutex
}

// StoredSnapshot is the serialized representation written to disk.
type StoredSnapshot struct {
	Timestamp time.Time        `json:"timestamp"`
	Hash      string           `json:"hash"`
	Scene     grid.SceneObject `json:"scene"`
}

// ErrHashMismatch means the file's content hash does not match its scene
// payload, usually a sign of hand editing or a torn write.
var ErrHashMismatch = errors.New("store: snapshot hash mismatch")

// NewSnapshotStore creates a store writing to the given path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

func sceneHash(obj grid.SceneObject) (string, error) {
	payload, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}
	sum := sha1.Sum(payload)
	return hex.EncodeToString(sum[:]), nil
}

// Save writes the scene to disk, computing a SHA-1 hash over the serialized
// scene for integrity checks on load.
func (s *SnapshotStore) Save(scene *grid.Scene) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj := scene.ToObject()
	hash, err := sceneHash(obj)
	if err != nil {
		return err
	}
	stored := StoredSnapshot{
		Timestamp: time.Now().UTC(),
		Hash:      hash,
		Scene:     obj,
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Load reads the stored snapshot, verifies its hash, and rebuilds the scene.
func (s *SnapshotStore) Load() (*grid.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var stored StoredSnapshot
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("store: corrupt snapshot %s: %w", s.path, err)
	}
	hash, err := sceneHash(stored.Scene)
	if err != nil {
		return nil, err
	}
	if stored.Hash != "" && stored.Hash != hash {
		return nil, fmt.Errorf("%w: %s", ErrHashMismatch, s.path)
	}
	return grid.SceneFromObject(stored.Scene)
}
