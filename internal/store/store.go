// Package store persists analysis results on disk, one directory per
// record, so patterns can be listed, replayed, and exported offline.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/kolam/internal/pattern"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Entry is a stored analysis: the record plus where its source image
// ended up.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	ImageFile string    `json:"image_file"`
}

// Save writes the record and the uploaded image under a fresh id and
// returns it. The id doubles as the directory name.
func (s *Store) Save(rec *pattern.Record, imageName string, imageData []byte) (string, error) {
	id := fmt.Sprintf("%s_%d", rec.ID, time.Now().UnixNano())
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	recPath := filepath.Join(dir, "record.json")
	f, err := os.Create(recPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return "", err
	}

	entry := Entry{ID: id, Timestamp: time.Now()}
	if len(imageData) > 0 {
		entry.ImageFile = filepath.Base(imageName)
		if err := os.WriteFile(filepath.Join(dir, entry.ImageFile), imageData, 0644); err != nil {
			return "", err
		}
	}

	entryData, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "entry.json"), entryData, 0644); err != nil {
		return "", err
	}

	return id, nil
}

// Load reads a stored record by id.
func (s *Store) Load(id string) (*pattern.Record, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "record.json"))
	if err != nil {
		return nil, err
	}

	var rec pattern.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns stored entries, newest first. Unreadable entries are
// skipped rather than failing the whole listing.
func (s *Store) List() ([]Entry, error) {
	dirs, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}

	entries := make([]Entry, 0)
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, d.Name(), "entry.json"))
		if err != nil {
			continue
		}

		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, nil
}
