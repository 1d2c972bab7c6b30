package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/vidyasagar/hike/internal/location"
)

// HistoryFile persists navigation history as a JSON list of location
// strings, oldest first. No cursor is stored; a loaded history starts on
// its most recent entry.
type HistoryFile struct {
	path string
}

// NewHistoryFile returns the history record kept in dir.
func NewHistoryFile(dir string) *HistoryFile {
	return &HistoryFile{path: filepath.Join(dir, "history.json")}
}

// Path returns the file location.
func (hf *HistoryFile) Path() string {
	return hf.path
}

// Load reads the record. A missing file is an empty history.
func (hf *HistoryFile) Load() ([]location.Location, error) {
	data, err := os.ReadFile(hf.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing history: %w", err)
	}

	locs := make([]location.Location, 0, len(raw))
	for _, s := range raw {
		if loc := location.FromString(s); !loc.IsZero() {
			locs = append(locs, loc)
		}
	}
	return locs, nil
}

// Save replaces the record with entries.
func (hf *HistoryFile) Save(entries []location.Location) error {
	raw := make([]string, 0, len(entries))
	for _, loc := range entries {
		raw = append(raw, loc.String())
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(hf.path), 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}
	tmp := hf.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	if err := os.Rename(tmp, hf.path); err != nil {
		return fmt.Errorf("replacing history: %w", err)
	}
	return nil
}
