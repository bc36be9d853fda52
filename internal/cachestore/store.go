// Package cachestore persists the most recent known-good tender snapshot.
// The store holds exactly one snapshot at a time and is deliberately
// forgiving: a write failure is logged and swallowed, and an absent or
// corrupt snapshot reads back as empty.
package cachestore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/orchestrarfp/gotender/internal/domain"
	"github.com/orchestrarfp/gotender/internal/logger"
)

// Store is the snapshot persistence contract used by the pipeline.
type Store interface {
	// Save replaces the snapshot with the given records, best-effort.
	Save(records []domain.TenderRecord)
	// Load returns the current snapshot, or an empty slice.
	Load() []domain.TenderRecord
}

// FileStore persists the snapshot as a JSON file.
type FileStore struct {
	path string
	log  logger.Interface
}

// NewFileStore creates a file-backed store at the given path.
func NewFileStore(path string, log logger.Interface) *FileStore {
	return &FileStore{path: path, log: log}
}

// Save writes the full snapshot atomically (temp file plus rename) so a
// concurrent reader never observes a partial write. Failures are logged and
// swallowed; persistence is best-effort by contract.
func (s *FileStore) Save(records []domain.TenderRecord) {
	if records == nil {
		records = []domain.TenderRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		s.log.Error("marshal snapshot failed", "error", err.Error())
		return
	}

	if mkErr := os.MkdirAll(filepath.Dir(s.path), 0o755); mkErr != nil {
		s.log.Error("create cache dir failed", "path", s.path, "error", mkErr.Error())
		return
	}

	tmp := s.path + ".tmp"
	if writeErr := os.WriteFile(tmp, data, 0o644); writeErr != nil {
		s.log.Error("write snapshot failed", "path", tmp, "error", writeErr.Error())
		return
	}

	if renameErr := os.Rename(tmp, s.path); renameErr != nil {
		s.log.Error("rename snapshot failed", "path", s.path, "error", renameErr.Error())
		_ = os.Remove(tmp)
		return
	}

	s.log.Debug("snapshot saved", "path", s.path, "records", len(records))
}

// Load reads the snapshot. Absent, empty, or unreadable files are all
// equivalent to an empty cache.
func (s *FileStore) Load() []domain.TenderRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("read snapshot failed", "path", s.path, "error", err.Error())
		}
		return []domain.TenderRecord{}
	}

	var records []domain.TenderRecord
	if unmarshalErr := json.Unmarshal(data, &records); unmarshalErr != nil {
		s.log.Warn("snapshot corrupt, treating as empty",
			"path", s.path,
			"error", unmarshalErr.Error(),
		)
		return []domain.TenderRecord{}
	}

	if records == nil {
		records = []domain.TenderRecord{}
	}

	return records
}

// MemoryStore is an in-memory Store for tests and ephemeral runs.
type MemoryStore struct {
	records []domain.TenderRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save replaces the snapshot.
func (s *MemoryStore) Save(records []domain.TenderRecord) {
	s.records = append([]domain.TenderRecord(nil), records...)
}

// Load returns the snapshot.
func (s *MemoryStore) Load() []domain.TenderRecord {
	return append([]domain.TenderRecord(nil), s.records...)
}
