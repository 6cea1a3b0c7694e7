package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultFile is the canonical calibration file name.
const DefaultFile = "fc2231_calibration.json"

// Store reads and writes the persisted calibration record. The intended
// deployment has at most one process touching the file; no advisory locking
// is done.
type Store struct {
	// Path is the canonical location of the calibration JSON file.
	Path string
}

// NewStore returns a store for the given path, falling back to DefaultFile
// when path is empty.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultFile
	}
	return &Store{Path: path}
}

// Load reads the persisted record. It never fails: a missing, unreadable,
// unparsable, or out-of-range file yields the default record and a true
// second return value so the caller can warn the user.
//
// Fields absent from the file keep their default values, so records written
// by older versions load cleanly.
func (s *Store) Load() (Record, bool) {
	rec := DefaultRecord()

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Warnf("cannot read calibration file %s", s.Path)
		}
		return DefaultRecord(), true
	}

	if err := json.Unmarshal(data, &rec); err != nil {
		log.WithError(err).Warnf("calibration file %s is corrupt", s.Path)
		return DefaultRecord(), true
	}

	if err := rec.Validate(); err != nil {
		log.WithError(err).Warnf("calibration file %s failed validation", s.Path)
		return DefaultRecord(), true
	}

	return rec, false
}

// Save persists the record atomically: the JSON is written to a temporary
// file in the same directory and renamed over the canonical path, so a crash
// mid-write cannot leave a half-written file. If a previous file exists it is
// first copied to a timestamped backup; a backup failure is logged but does
// not abort the save. On error the previous file on disk remains intact.
func (s *Store) Save(rec Record) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid calibration: %w", err)
	}

	s.backup()

	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal calibration: %w", err)
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".calibration-*.json")
	if err != nil {
		return fmt.Errorf("create temp calibration file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write calibration: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close calibration: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		return fmt.Errorf("replace calibration file: %w", err)
	}
	return nil
}

// backup copies the current file aside before it is overwritten. Best effort.
func (s *Store) backup() {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return // nothing to back up
	}
	stamp := time.Now().Format("20060102-150405")
	bakPath := fmt.Sprintf("%s.bak-%s", s.Path, stamp)
	if err := os.WriteFile(bakPath, data, 0644); err != nil {
		log.WithError(err).Warnf("cannot back up calibration file to %s", bakPath)
	}
}
