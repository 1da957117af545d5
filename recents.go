package testmaker

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

type (
	// RecentFiles tracks the documents a researcher had open, newest
	// first. The list lives in a small JSON file so every tool on the
	// workstation sees the same history
	RecentFiles struct {
		path string
		max  int
	}

	recentDoc struct {
		RecentTests []string `json:"recent_tests"`
	}
)

// NewRecentFiles manages the list stored at path, keeping at most max
// entries. Limits below one fall back to DefaultRecentLimit
func NewRecentFiles(path string, max int) *RecentFiles {
	if max <= 0 {
		max = DefaultRecentLimit
	}
	return &RecentFiles{
		path: path,
		max:  max,
	}
}

// Add moves the document to the front of the list, dropping any earlier
// mention of it and anything beyond the limit
func (r *RecentFiles) Add(path string) error {
	entries, err := r.read()
	if err != nil {
		return err
	}
	entries = slices.DeleteFunc(entries, func(s string) bool {
		return s == path
	})
	entries = append([]string{path}, entries...)
	if len(entries) > r.max {
		entries = entries[:r.max]
	}
	return r.write(entries)
}

// List returns the remembered documents, newest first, skipping entries
// whose files no longer exist
func (r *RecentFiles) List() ([]string, error) {
	entries, err := r.read()
	if err != nil {
		return nil, err
	}
	var kept []string
	for _, entry := range entries {
		if _, err := os.Stat(entry); err == nil {
			kept = append(kept, entry)
		}
	}
	return kept, nil
}

func (r *RecentFiles) read() ([]string, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var doc recentDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		// a corrupt list resets instead of wedging every future Add
		return nil, nil
	}
	return doc.RecentTests, nil
}

func (r *RecentFiles) write(entries []string) error {
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(recentDoc{
		RecentTests: entries,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o644)
}
