// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Editor configuration store (~/.charloom/charloom.json).
// Usage: Load once at startup; missing files fall back to defaults.

package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const (
	configDirName    = ".charloom"
	systemConfigName = "charloom.json"
	legacyConfigName = "config.json"
)

// Config holds the editor's persisted settings.
type Config struct {
	GridWidth    int    `json:"gridWidth"`
	GridHeight   int    `json:"gridHeight"`
	FPS          int    `json:"fps"`
	PaletteID    string `json:"paletteId"`
	SnapshotPath string `json:"snapshotPath"`
	HistoryPath  string `json:"historyPath"`
	SyntaxStyle  string `json:"syntaxStyle"`
}

var (
	mu      sync.RWMutex
	once    sync.Once
	current Config
	loadErr error
)

// Err returns the most recent config load error, if any. A load error never
// prevents startup; defaults are used instead.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// Get returns the loaded configuration.
func Get() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Dir returns the configuration directory, creating nothing.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName), nil
}

func initStore() {
	mu.Lock()
	defer mu.Unlock()

	current = defaults()

	dir, err := Dir()
	if err != nil {
		log.Printf("Config: Failed to resolve config dir: %v", err)
		loadErr = err
		return
	}
	applyPathDefaults(&current, dir)

	path := filepath.Join(dir, systemConfigName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run, or a legacy layout to migrate.
		if migrateLegacy(dir, path) {
			data, err = os.ReadFile(path)
		}
	}
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Config: Failed to read %s: %v", path, err)
			loadErr = err
		}
		return
	}

	loaded := defaults()
	applyPathDefaults(&loaded, dir)
	if err := json.Unmarshal(data, &loaded); err != nil {
		log.Printf("Config: Corrupt config %s, using defaults: %v", path, err)
		loadErr = err
		return
	}
	sanitize(&loaded, dir)
	current = loaded
}

// migrateLegacy renames a pre-1.0 config.json into place. Returns true when
// a file was migrated.
func migrateLegacy(dir, target string) bool {
	legacy := filepath.Join(dir, legacyConfigName)
	if _, err := os.Stat(legacy); err != nil {
		return false
	}
	if err := os.Rename(legacy, target); err != nil {
		log.Printf("Config: Failed to migrate legacy config: %v", err)
		return false
	}
	log.Printf("Config: Migrated legacy %s to %s", legacyConfigName, systemConfigName)
	return true
}

// Save writes cfg to disk and makes it current.
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	sanitize(&cfg, dir)
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, systemConfigName), data, 0o644); err != nil {
		return err
	}
	mu.Lock()
	current = cfg
	mu.Unlock()
	return nil
}
