package storage

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Logical record keys. Values are kept identical to the browser-era
// localStorage keys so that exported records stay wire-compatible.
const (
	KeyTasks    = "planning-tasks"
	KeySchedule = "weekly-schedule"
	KeyUser     = "planning-user"
	KeySettings = "pomodoro-settings"
)

// Store is a key-value record store over a data directory. Each key
// persists as <dir>/<key>.json and every Save is a full overwrite of
// that file.
//
// Store never surfaces errors to callers: Load falls back to the
// caller's default and Save drops the write, logging either way.
// Callers must not assume durability.
type Store struct {
	mu     sync.RWMutex
	dir    string
	logger *log.Logger
}

func New(dir string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir, logger: logger}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load decodes the record for key into out. It returns false when the
// record is absent or unreadable; the caller then uses its default.
func (s *Store) Load(key string, out any) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Printf("[storage] load %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		s.logger.Printf("[storage] decode %s: %v", key, err)
		return false
	}
	return true
}

// Save overwrites the record for key. Failures are logged and swallowed,
// leaving the previously persisted record unchanged.
func (s *Store) Save(key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.logger.Printf("[storage] encode %s: %v", key, err)
		return
	}
	if err := os.WriteFile(s.path(key), b, 0o644); err != nil {
		s.logger.Printf("[storage] save %s: %v", key, err)
	}
}
